package backup

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"grail-monitor/core/eventbus"
	"grail-monitor/core/storage"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new Backup feature and attaches it to the save-file
// event stream when enabled.
func NewFeature(client storage.Client, bucket string, cfg Config, logger *zap.Logger, bus *eventbus.Bus) *Feature {
	svc := NewService(client, bucket, cfg, logger)
	h := NewHandler(svc)
	if cfg.Enabled {
		svc.Subscribe(bus)
	}
	return &Feature{service: svc, handler: h, enabled: cfg.Enabled}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "backup"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the backup service.
func (f *Feature) Service() *Service {
	return f.service
}
