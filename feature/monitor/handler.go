package monitor

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"grail-monitor/core/logger"
)

// Handler handles HTTP requests for the save file monitor.
type Handler struct {
	monitor *Monitor
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(monitor *Monitor, logger *zap.Logger) *Handler {
	return &Handler{monitor: monitor, logger: logger}
}

// RegisterRoutes registers the monitor routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/monitor")
	group.Get("/status", h.HandleGetStatus)
	group.Post("/start", h.HandleStart)
	group.Post("/stop", h.HandleStop)
	group.Post("/parse", h.HandleParse)
}

// HandleGetStatus returns the monitor state.
func (h *Handler) HandleGetStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"state": h.monitor.State().String(),
	})
}

// HandleStart begins monitoring. A missing save directory is reported via
// the event bus and leaves the monitor idle; the request itself succeeds.
func (h *Handler) HandleStart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if err := h.monitor.Start(); err != nil {
		l.Error("Failed to start monitoring", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"state": h.monitor.State().String(),
	})
}

// HandleStop stops monitoring. Safe to call when already idle.
func (h *Handler) HandleStop(c *fiber.Ctx) error {
	h.monitor.Stop()
	return c.JSON(fiber.Map{
		"state": h.monitor.State().String(),
	})
}

// HandleParse requests a parse pass. While watching, the pass runs through
// the regular tick so it coalesces with pending changes; this is also the
// entry point for manual game mode.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	if h.monitor.State() == StateWatching {
		h.monitor.RequestParse()
		return c.JSON(fiber.Map{
			"status": "requested",
		})
	}

	// Idle monitor: run one synchronous pass.
	files := h.monitor.ParseAll(c.Context())
	return c.JSON(fiber.Map{
		"status": "parsed",
		"files":  files,
	})
}
