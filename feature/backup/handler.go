package backup

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"grail-monitor/core/logger"
)

// Handler handles HTTP requests for save-file backups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the backup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/backups")
	group.Get("/", h.HandleList)
	group.Get("/download", h.HandleDownload)
}

// HandleList returns the backup object keys, optionally filtered by the
// "name" query parameter (the save file's base name).
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	keys, err := h.service.List(c.Context(), c.Query("name"))
	if err != nil {
		l.Error("Backup listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"backups": keys,
	})
}

// HandleDownload streams one backup object identified by the "key" query
// parameter.
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	key := c.Query("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing key parameter",
		})
	}

	data, err := h.service.Fetch(c.Context(), key)
	if err != nil {
		l.Error("Backup download failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "application/octet-stream")
	return c.Send(data)
}
