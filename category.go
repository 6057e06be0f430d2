package modwiki

// Category pairs a display name with the key of its listing page on the wiki.
type Category struct {
	Name string `toml:"name"`
	Key  string `toml:"key"`
}

// DefaultCategories returns the mod categories of the Balatro mods wiki.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Content Mods", Key: "Content Mods"},
		{Name: "Joker Mods", Key: "Joker Mods"},
		{Name: "Quality of Life Mods", Key: "Quality of Life Mods"},
		{Name: "Crossover Mods", Key: "Crossover Mods"},
		{Name: "Technical Mods", Key: "Technical Mods"},
		{Name: "API Mods", Key: "API Mods"},
	}
}
