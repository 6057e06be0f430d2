package modwiki

import (
	"slices"
	"time"
)

// MergeCatalog assembles a catalog from category listings and per-mod
// results.
//
// Categories are processed in order. A name listed by several categories is
// owned by the last one that lists it. Mods whose result is missing or failed
// are left out and reported. When two lookup names parse to the same display
// name the first one processed is kept and the other is reported with
// ECONFLICT. Every category appears in the index, even when empty.
// The inputs are not modified.
func MergeCatalog(members []CategoryMembers, results map[string]ModResult, fetchedAt time.Time) (*Catalog, []ModFailure) {
	catalog := NewCatalog(fetchedAt)

	owner := make(map[string]string)
	for _, cm := range members {
		for _, name := range cm.Names {
			owner[name] = cm.Category
		}
	}

	var failures []ModFailure
	seen := make(map[string]bool)
	for _, cm := range members {
		if _, ok := catalog.Categories[cm.Category]; !ok {
			catalog.Categories[cm.Category] = []string{}
		}
		for _, name := range cm.Names {
			if owner[name] != cm.Category || seen[name] {
				continue
			}
			seen[name] = true

			result, ok := results[name]
			switch {
			case !ok:
				failures = append(failures, ModFailure{Name: name, Err: Errorf(EINTERNAL, "no result for mod %q", name)})
				continue
			case result.Err != nil:
				failures = append(failures, ModFailure{Name: name, Err: result.Err})
				continue
			case result.Fields == nil:
				failures = append(failures, ModFailure{Name: name, Err: Errorf(EPARSE, "mod %q has no fields", name)})
				continue
			}

			mod := newMod(name, cm.Category, result)
			if prev, dup := catalog.Mods[mod.Name]; dup {
				failures = append(failures, ModFailure{
					Name: name,
					Err:  Errorf(ECONFLICT, "mod %q resolves to %q, already taken by %s", name, mod.Name, prev.SourceURL),
				})
				continue
			}
			catalog.Mods[mod.Name] = mod
			catalog.Categories[cm.Category] = append(catalog.Categories[cm.Category], mod.Name)
		}
	}
	return catalog, failures
}

func newMod(lookupName, category string, result ModResult) *Mod {
	f := result.Fields
	name := f.Name
	if name == "" {
		name = lookupName
	}
	deps := slices.Clone(f.Dependencies)
	if deps == nil {
		deps = []string{}
	}
	return &Mod{
		Name:          name,
		Description:   f.Description,
		Author:        f.Author,
		Version:       f.Version,
		RepositoryURL: f.RepositoryURL,
		SourceURL:     result.SourceURL,
		Category:      category,
		Dependencies:  deps,
		ContentHash:   result.ContentHash,
	}
}
