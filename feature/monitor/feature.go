package monitor

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"grail-monitor/core/eventbus"
	"grail-monitor/core/save"
	"grail-monitor/feature/catalog"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	monitor *Monitor
	handler *Handler
}

// NewFeature creates a new Monitor feature.
func NewFeature(cfg Config, logger *zap.Logger, bus *eventbus.Bus, decoder save.Decoder, stashDecoder save.StashDecoder, matcher *catalog.Matcher) *Feature {
	m := New(cfg, logger, bus, decoder, stashDecoder, matcher)
	h := NewHandler(m, logger)
	return &Feature{monitor: m, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "monitor"
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

// Monitor exposes the underlying monitor for wiring and shutdown.
func (f *Feature) Monitor() *Monitor {
	return f.monitor
}
