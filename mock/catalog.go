package mock

import (
	"context"

	"github.com/fwojciec/modwiki"
)

var _ modwiki.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is a mock implementation of modwiki.CatalogStore.
type CatalogStore struct {
	LoadFn func(ctx context.Context) (*modwiki.Catalog, error)
	SaveFn func(ctx context.Context, catalog *modwiki.Catalog) error
}

func (s *CatalogStore) Load(ctx context.Context) (*modwiki.Catalog, error) {
	return s.LoadFn(ctx)
}

func (s *CatalogStore) Save(ctx context.Context, catalog *modwiki.Catalog) error {
	return s.SaveFn(ctx, catalog)
}

var _ modwiki.CatalogRefresher = (*CatalogRefresher)(nil)

// CatalogRefresher is a mock implementation of modwiki.CatalogRefresher.
type CatalogRefresher struct {
	RefreshFn func(ctx context.Context) (*modwiki.RefreshResult, error)
}

func (r *CatalogRefresher) Refresh(ctx context.Context) (*modwiki.RefreshResult, error) {
	return r.RefreshFn(ctx)
}
