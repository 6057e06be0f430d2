package main_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/modwiki"
	main "github.com/fwojciec/modwiki/cmd/modwiki"
	"github.com/fwojciec/modwiki/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowseCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("without category summarises every category", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(t, storedCatalog())

		err := (&main.BrowseCmd{}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "All mods (2 total)")
		assert.Contains(t, out, "API Mods (0 mods)")
		assert.Contains(t, out, "Joker Mods (1 mods)")
		assert.Contains(t, out, "Quality of Life Mods (1 mods)")
		assert.Less(t, strings.Index(out, "API Mods"), strings.Index(out, "Joker Mods"))
		assert.Empty(t, stderr.String())
	})

	t.Run("lists mods in a category", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, storedCatalog())

		err := (&main.BrowseCmd{Category: "Joker Mods"}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Joker Mods (1 mods)")
		assert.Contains(t, out, "Foo Mod")
		assert.Contains(t, out, "Adds fifty new jokers to the game")
		assert.Contains(t, out, "by Alice")
		assert.Contains(t, out, "https://github.com/alice/foo")
		assert.NotContains(t, out, "Bar Mod")
	})

	t.Run("truncates long descriptions", func(t *testing.T) {
		t.Parallel()

		catalog := storedCatalog()
		catalog.Mods["Foo Mod"].Description = strings.Repeat("joker ", 100)
		deps, stdout, _ := newDeps(t, catalog)

		err := (&main.BrowseCmd{Category: "Joker Mods"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), modwiki.Ellipsis)
		assert.NotContains(t, stdout.String(), strings.Repeat("joker ", 60))
	})

	t.Run("unknown category lists the available ones", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(t, storedCatalog())

		err := (&main.BrowseCmd{Category: "Nope"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, modwiki.ENOTFOUND, modwiki.ErrorCode(err))
		assert.Contains(t, stderr.String(), `error: category "Nope" not found`)
		assert.Contains(t, stderr.String(), "Joker Mods")
		assert.Empty(t, stdout.String())
	})

	t.Run("refreshes a stale catalog before browsing", func(t *testing.T) {
		t.Parallel()

		stale := storedCatalog()
		stale.FetchedAt = fixedNow.Add(-48 * time.Hour).Format(time.RFC3339)
		fresh := storedCatalog()
		fresh.FetchedAt = fixedNow.Format(time.RFC3339)

		deps, stdout, _ := newDeps(t, stale)
		var saved *modwiki.Catalog
		deps.Store = &mock.CatalogStore{
			LoadFn: func(_ context.Context) (*modwiki.Catalog, error) {
				return stale, nil
			},
			SaveFn: func(_ context.Context, c *modwiki.Catalog) error {
				saved = c
				return nil
			},
		}
		deps.Refresher = refresherReturning(fresh)

		err := (&main.BrowseCmd{}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, fresh.FetchedAt, saved.FetchedAt)
		assert.Contains(t, stdout.String(), "All mods (2 total)")
	})

	t.Run("corrupt cache is reported with a hint", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(t, nil)
		deps.Store = &mock.CatalogStore{
			LoadFn: func(_ context.Context) (*modwiki.Catalog, error) {
				return nil, modwiki.Errorf(modwiki.ECORRUPT, "catalog cache is corrupt")
			},
		}

		err := (&main.BrowseCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, modwiki.ECORRUPT, modwiki.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: catalog cache is corrupt")
		assert.Contains(t, stderr.String(), "modwiki update")
	})
}
