package detection

import (
	"grail-monitor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for detection state.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the detection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/detections")
	group.Get("/count", h.HandleGetCount)
	group.Delete("/", h.HandleClear)
}

// HandleGetCount returns the number of distinct detections so far.
func (h *Handler) HandleGetCount(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"count": h.service.SeenCount(),
	})
}

// HandleClear resets detection state. With a "file" query parameter only
// that file's contributions are released; otherwise everything is
// forgotten. The "persisted" flag additionally wipes the progress records,
// and only applies to a full clear.
func (h *Handler) HandleClear(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	file := c.Query("file")
	h.service.ClearSeen(file)

	if file == "" && c.QueryBool("persisted") && h.service.store != nil {
		if err := h.service.store.DeleteAll(c.Context()); err != nil {
			l.Error("Failed to clear persisted progress", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	l.Info("Detection state cleared", zap.String("file", file))
	return c.JSON(fiber.Map{
		"status": "cleared",
		"file":   file,
	})
}
