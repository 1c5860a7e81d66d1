package detection

import (
	"grail-monitor/core/eventbus"
	"grail-monitor/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Detection feature.
func NewFeature(logger *zap.Logger, bus *eventbus.Bus, matcher *catalog.Matcher, store *Store, parser FileParser) *Feature {
	svc := NewService(logger, bus, matcher, store, parser)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "detection"
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

// Service exposes the detection service for wiring into the monitor.
func (f *Feature) Service() *Service {
	return f.service
}
