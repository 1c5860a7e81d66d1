package stats

import (
	"go.uber.org/zap"

	"grail-monitor/feature/catalog"
)

// Service binds the stats engine to its inputs: the ownership supplier and
// the configured settings.
type Service struct {
	logger    *zap.Logger
	engine    *Engine
	ownership OwnershipFunc
	settings  Settings
}

// NewService creates the stats service.
func NewService(logger *zap.Logger, engine *Engine, ownership OwnershipFunc, settings Settings) *Service {
	return &Service{
		logger:    logger,
		engine:    engine,
		ownership: ownership,
		settings:  settings,
	}
}

// Compute runs one full stats computation over the current ownership state.
func (s *Service) Compute() Stats {
	return s.engine.Compute(s.ownership(), s.settings)
}

// ResetPrevious clears the newly-found baseline.
func (s *Service) ResetPrevious() {
	s.engine.ResetPrevious()
}

// SetCatalog swaps the engine's catalog.
func (s *Service) SetCatalog(c *catalog.Catalog) {
	s.engine.SetCatalog(c)
}
