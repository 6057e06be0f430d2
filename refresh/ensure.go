package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/modwiki"
)

// EnsureFresh loads the stored catalog and, if it is stale at now,
// refreshes and saves it. The returned result is nil when the stored
// catalog was fresh enough to use.
func EnsureFresh(ctx context.Context, store modwiki.CatalogStore, refresher modwiki.CatalogRefresher, maxAge time.Duration, now time.Time) (*modwiki.Catalog, *modwiki.RefreshResult, error) {
	catalog, err := store.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !catalog.IsStale(now, maxAge) {
		return catalog, nil, nil
	}

	result, err := Update(ctx, store, refresher)
	if err != nil {
		return nil, nil, err
	}
	return result.Catalog, result, nil
}

// Update refreshes the catalog unconditionally and saves the result.
func Update(ctx context.Context, store modwiki.CatalogStore, refresher modwiki.CatalogRefresher) (*modwiki.RefreshResult, error) {
	result, err := refresher.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, result.Catalog); err != nil {
		return nil, fmt.Errorf("save catalog: %w", err)
	}
	return result, nil
}
