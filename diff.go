package modwiki

import "fmt"

// Changes summarizes the difference between two catalogs.
type Changes struct {
	Added   []string
	Removed []string
	Changed []string
}

// Empty reports whether the catalogs hold the same mods.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0
}

func (c Changes) String() string {
	return fmt.Sprintf("%d added, %d removed, %d changed", len(c.Added), len(c.Removed), len(c.Changed))
}

// DiffCatalogs compares two catalogs by mod name. A mod counts as changed
// when its content hash or category differs. Either catalog may be nil.
// Names in each list are sorted.
func DiffCatalogs(old, new *Catalog) Changes {
	var changes Changes
	if new != nil {
		for _, name := range new.ModNames() {
			cur := new.Mods[name]
			prev, ok := lookupMod(old, name)
			switch {
			case !ok:
				changes.Added = append(changes.Added, name)
			case prev.ContentHash != cur.ContentHash || prev.Category != cur.Category:
				changes.Changed = append(changes.Changed, name)
			}
		}
	}
	if old != nil {
		for _, name := range old.ModNames() {
			if _, ok := lookupMod(new, name); !ok {
				changes.Removed = append(changes.Removed, name)
			}
		}
	}
	return changes
}

func lookupMod(c *Catalog, name string) (*Mod, bool) {
	if c == nil {
		return nil, false
	}
	mod, ok := c.Mods[name]
	return mod, ok
}
