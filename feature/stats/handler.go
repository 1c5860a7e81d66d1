package stats

import (
	"github.com/gofiber/fiber/v2"
)

// OwnershipFunc supplies the current ownership set, typically assembled from
// detection state.
type OwnershipFunc func() *Ownership

// Handler handles HTTP requests for grail statistics.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the stats routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/stats", h.HandleGetStats)
	app.Get("/progress", h.HandleGetProgress)
	app.Post("/stats/reset", h.HandleReset)
}

// HandleGetStats returns the full per-category breakdown.
func (h *Handler) HandleGetStats(c *fiber.Ctx) error {
	return c.JSON(h.service.Compute())
}

// HandleGetProgress returns the condensed completion summary.
func (h *Handler) HandleGetProgress(c *fiber.Ctx) error {
	stats := h.service.Compute()
	return c.JSON(fiber.Map{
		"owned":     stats.Total.Owned,
		"exists":    stats.Total.Exists,
		"remaining": stats.Total.Remaining,
		"percent":   stats.Total.Percent,
	})
}

// HandleReset forgets the previous computation's snapshot so the next
// computation reports every owned item as newly found.
func (h *Handler) HandleReset(c *fiber.Ctx) error {
	h.service.ResetPrevious()
	return c.JSON(fiber.Map{
		"status": "reset",
	})
}
