// Package difflib renders catalog changes as unified diffs using
// github.com/pmezard/go-difflib.
package difflib

import (
	"fmt"
	"slices"

	"github.com/fwojciec/modwiki"
	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged lines around each hunk.
const DefaultContext = 3

// UnifiedCatalogDiff returns a unified diff between the listings of two
// catalogs. Either catalog may be nil. An empty string means the listings
// are identical.
func UnifiedCatalogDiff(old, new *modwiki.Catalog) (string, error) {
	u := difflib.UnifiedDiff{
		A:        Listing(old),
		B:        Listing(new),
		FromFile: label("previous", old),
		ToFile:   label("current", new),
		Context:  DefaultContext,
	}
	return difflib.GetUnifiedDiffString(u)
}

// Listing renders one line per mod, grouped by category in name order.
// Each line carries the mod's content hash so edits show up as changes.
func Listing(c *modwiki.Catalog) []string {
	if c == nil {
		return []string{}
	}
	lines := []string{}
	for _, category := range c.CategoryNames() {
		lines = append(lines, fmt.Sprintf("[%s]\n", category))
		names := slices.Sorted(slices.Values(c.Categories[category]))
		for _, name := range names {
			mod := c.Mods[name]
			if mod == nil {
				continue
			}
			line := "  " + mod.Name
			if mod.Version != "" {
				line += " " + mod.Version
			}
			if mod.ContentHash != "" {
				line += " #" + mod.ContentHash
			}
			lines = append(lines, line+"\n")
		}
	}
	return lines
}

func label(name string, c *modwiki.Catalog) string {
	if c == nil || c.FetchedAt == "" {
		return name
	}
	return name + " " + c.FetchedAt
}
