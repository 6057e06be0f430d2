package main_test

import (
	"testing"

	"github.com/fwojciec/modwiki"
	main "github.com/fwojciec/modwiki/cmd/modwiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows every known field", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(t, storedCatalog())

		err := (&main.InfoCmd{Name: []string{"Foo", "Mod"}}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Foo Mod")
		assert.Contains(t, out, "Category: Joker Mods")
		assert.Contains(t, out, "Description: Adds fifty new jokers to the game")
		assert.Contains(t, out, "Author: Alice")
		assert.Contains(t, out, "Version: 1.2.0")
		assert.Contains(t, out, "Repository: https://github.com/alice/foo")
		assert.Contains(t, out, "Wiki: https://wiki.test/wiki/Foo_Mod")
		assert.Contains(t, out, "Dependencies: Steamodded, Talisman")
		assert.Contains(t, out, "To install this mod:\n  balatro-install-mod https://github.com/alice/foo\n")
		assert.Empty(t, stderr.String())
	})

	t.Run("omits missing optional fields", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, storedCatalog())

		err := (&main.InfoCmd{Name: []string{"Bar Mod"}}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.NotContains(t, out, "Version:")
		assert.NotContains(t, out, "Repository:")
		assert.NotContains(t, out, "To install")
		assert.NotContains(t, out, "Dependencies:")
	})

	t.Run("matches names case-insensitively", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, storedCatalog())

		err := (&main.InfoCmd{Name: []string{"foo", "mod"}}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Author: Alice")
	})

	t.Run("unknown mod is an error", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(t, storedCatalog())

		err := (&main.InfoCmd{Name: []string{"Nonexistent"}}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, modwiki.ENOTFOUND, modwiki.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: ")
		assert.Contains(t, stderr.String(), "Nonexistent")
		assert.Empty(t, stdout.String())
	})
}

func TestCategoriesCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(t, storedCatalog())

	err := (&main.CategoriesCmd{}).Run(deps)

	require.NoError(t, err)
	out := stdout.String()
	assert.Contains(t, out, "Available categories")
	assert.Contains(t, out, "  API Mods (0 mods)")
	assert.Contains(t, out, "  Joker Mods (1 mods)")
	assert.Contains(t, out, "  Quality of Life Mods (1 mods)")
}
