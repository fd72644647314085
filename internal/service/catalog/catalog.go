package service_catalog

import (
	"context"
	"log/slog"
	"time"
)

type Catalog interface {
	Maintain(ctx context.Context) error
}

// Maintainer keeps the movie catalog topped up. It runs one pass on start
// and then one per interval.
type Maintainer struct {
	catalog  Catalog
	interval time.Duration
	logger   *slog.Logger
}

func NewMaintainer(catalog Catalog, interval time.Duration, logger *slog.Logger) *Maintainer {
	return &Maintainer{
		catalog:  catalog,
		interval: interval,
		logger:   logger.With(slog.String("component", "catalog-maintainer")),
	}
}

func (m *Maintainer) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.runOnce(ctx)
		}
	}
}

// Failed passes are retried on the next tick.
func (m *Maintainer) runOnce(ctx context.Context) {
	start := time.Now()
	if err := m.catalog.Maintain(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Error("catalog maintenance failed", slog.String("error", err.Error()))
		return
	}
	m.logger.Debug("catalog maintenance done", slog.Duration("took", time.Since(start)))
}

func (m *Maintainer) String() string {
	return "catalog-maintainer"
}
