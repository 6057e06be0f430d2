package modwiki

import (
	"context"
	"slices"
	"time"
)

// Catalog is a snapshot of every mod collected by one refresh.
// A catalog is never patched after it is built; each refresh produces a new
// value that replaces the previous one wholesale.
type Catalog struct {
	Mods       map[string]*Mod     `json:"mods"`
	Categories map[string][]string `json:"categories"`

	// FetchedAt is an RFC 3339 timestamp. It is kept as text so that a
	// damaged value loads and marks the catalog stale.
	FetchedAt string `json:"fetched_at"`
}

// NewCatalog returns an empty catalog stamped with the given time.
func NewCatalog(now time.Time) *Catalog {
	return &Catalog{
		Mods:       make(map[string]*Mod),
		Categories: make(map[string][]string),
		FetchedAt:  now.UTC().Format(time.RFC3339),
	}
}

// Len returns the number of mods in the catalog.
func (c *Catalog) Len() int {
	return len(c.Mods)
}

// FetchedTime parses FetchedAt.
func (c *Catalog) FetchedTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.FetchedAt)
	if err != nil {
		return time.Time{}, Errorf(EINVALID, "invalid fetched_at %q", c.FetchedAt)
	}
	return t, nil
}

// IsStale reports whether the catalog must be refreshed: it holds no mods,
// its timestamp cannot be parsed, or it is at least maxAge old.
func (c *Catalog) IsStale(now time.Time, maxAge time.Duration) bool {
	if c == nil || len(c.Mods) == 0 {
		return true
	}
	fetched, err := c.FetchedTime()
	if err != nil {
		return true
	}
	return now.Sub(fetched) >= maxAge
}

// CategoryNames returns the indexed category names in sorted order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ModNames returns the names of all mods in sorted order.
func (c *Catalog) ModNames() []string {
	names := make([]string, 0, len(c.Mods))
	for name := range c.Mods {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate checks the index invariants: every indexed name refers to a mod
// filed under that category, and every mod is indexed exactly once.
func (c *Catalog) Validate() error {
	if c.Mods == nil {
		return Errorf(EINVALID, "catalog mods missing")
	}
	if c.Categories == nil {
		return Errorf(EINVALID, "catalog categories missing")
	}

	indexed := make(map[string]string, len(c.Mods))
	for _, category := range c.CategoryNames() {
		for _, name := range c.Categories[category] {
			mod, ok := c.Mods[name]
			if !ok {
				return Errorf(EINVALID, "category %q lists unknown mod %q", category, name)
			}
			if mod == nil {
				return Errorf(EINVALID, "mod %q is empty", name)
			}
			if mod.Category != category {
				return Errorf(EINVALID, "mod %q indexed under %q but filed under %q", name, category, mod.Category)
			}
			if prev, dup := indexed[name]; dup {
				return Errorf(EINVALID, "mod %q indexed twice (%q, %q)", name, prev, category)
			}
			indexed[name] = category
		}
	}

	for key, mod := range c.Mods {
		if mod == nil {
			return Errorf(EINVALID, "mod %q is empty", key)
		}
		if err := mod.Validate(); err != nil {
			return err
		}
		if mod.Name != key {
			return Errorf(EINVALID, "mod keyed %q is named %q", key, mod.Name)
		}
		if _, ok := indexed[key]; !ok {
			return Errorf(EINVALID, "mod %q is not indexed", key)
		}
	}
	return nil
}

// CatalogStore persists catalog snapshots.
type CatalogStore interface {
	// Load returns the stored catalog, or a new empty catalog if nothing
	// has been stored yet. Returns ECORRUPT if stored data cannot be read
	// back as a valid catalog.
	Load(ctx context.Context) (*Catalog, error)

	// Save replaces the stored catalog.
	Save(ctx context.Context, catalog *Catalog) error
}

// RefreshResult holds the outcome of a catalog refresh.
type RefreshResult struct {
	Catalog          *Catalog
	Failures         []ModFailure
	CategoryFailures []CategoryFailure
	RunID            string
	Duration         time.Duration
}

// CatalogRefresher builds a fresh catalog from the wiki.
type CatalogRefresher interface {
	Refresh(ctx context.Context) (*RefreshResult, error)
}
