package stats

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"grail-monitor/feature/catalog"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Stats feature.
func NewFeature(logger *zap.Logger, c *catalog.Catalog, ownership OwnershipFunc, settings Settings) *Feature {
	engine := NewEngine(logger, c)
	svc := NewService(logger, engine, ownership, settings)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "stats"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the stats service for wiring.
func (f *Feature) Service() *Service {
	return f.service
}

// Engine exposes the underlying engine for the sound trigger hookup.
func (f *Feature) Engine() *Engine {
	return f.service.engine
}
