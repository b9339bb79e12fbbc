package stations

import (
	"log/slog"
	"sync/atomic"

	"github.com/ngmaloney/divebot/internal/models"
	"github.com/ngmaloney/divebot/internal/observability"
)

// Store publishes the current catalog. Readers always see a complete catalog;
// a reload builds a new one and swaps the pointer.
type Store struct {
	dir     string
	current atomic.Pointer[Catalog]
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewStore creates a store that reloads from the snapshots in dir.
// metrics may be nil.
func NewStore(dir string, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{dir: dir, logger: logger, metrics: metrics}
}

// Current returns the published catalog, or nil before the first load
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Swap publishes c
func (s *Store) Swap(c *Catalog) {
	s.current.Store(c)
	if s.metrics != nil && c != nil {
		s.metrics.CatalogStations.WithLabelValues(models.CategoryPrimaryOceanographic.String()).Set(float64(len(c.Primary())))
		s.metrics.CatalogStations.WithLabelValues(models.CategoryGeneral.String()).Set(float64(len(c.General())))
	}
}

// Reload loads the snapshots and publishes the result.
// On failure the previously published catalog stays in place.
func (s *Store) Reload() (*Catalog, error) {
	c, err := LoadDir(s.dir)
	if err != nil {
		s.record("error")
		s.logger.Error("station catalog reload failed", "dir", s.dir, "error", err)
		return nil, err
	}
	s.Swap(c)
	s.record("success")
	s.logger.Info("station catalog loaded",
		"dir", s.dir,
		"primary", len(c.Primary()),
		"general", len(c.General()),
	)
	return c, nil
}

func (s *Store) record(outcome string) {
	if s.metrics != nil {
		s.metrics.CatalogReloads.WithLabelValues(outcome).Inc()
	}
}
