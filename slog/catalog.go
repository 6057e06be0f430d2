package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/modwiki"
)

// Ensure LoggingCatalogStore implements modwiki.CatalogStore.
var _ modwiki.CatalogStore = (*LoggingCatalogStore)(nil)

// LoggingCatalogStore wraps a CatalogStore with logging.
type LoggingCatalogStore struct {
	next   modwiki.CatalogStore
	logger *slog.Logger
}

// NewLoggingCatalogStore creates a new LoggingCatalogStore.
func NewLoggingCatalogStore(next modwiki.CatalogStore, logger *slog.Logger) *LoggingCatalogStore {
	return &LoggingCatalogStore{next: next, logger: logger}
}

// Load delegates to the wrapped store and logs the catalog size.
func (s *LoggingCatalogStore) Load(ctx context.Context) (catalog *modwiki.Catalog, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if catalog != nil {
			attrs = append(attrs, "mods", catalog.Len(), "fetched_at", catalog.FetchedAt)
		}
		s.logger.Info("catalog load", attrs...)
	}(time.Now())
	return s.next.Load(ctx)
}

// Save delegates to the wrapped store and logs the catalog size.
func (s *LoggingCatalogStore) Save(ctx context.Context, catalog *modwiki.Catalog) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("catalog save",
			"mods", catalog.Len(),
			"categories", len(catalog.Categories),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, catalog)
}
