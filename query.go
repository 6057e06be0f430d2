package modwiki

import (
	"cmp"
	"slices"
	"strings"
)

// MaxSearchResults caps the number of results returned by Search.
const MaxSearchResults = 20

// Search scores.
const (
	ScoreExactName      = 100
	ScoreNameSubstring  = 50
	ScoreDescriptionHit = 25
	ScoreAuthorHit      = 20
	ScoreCategoryHit    = 15
)

// SearchResult is a mod matched by Search along with its relevance score.
type SearchResult struct {
	Mod   *Mod
	Score int
}

// CategorySummary is the number of mods indexed under one category.
type CategorySummary struct {
	Name  string
	Count int
}

// Browse returns the mods indexed under category, in index order.
// Returns ENOTFOUND listing the known categories if category is not indexed.
func (c *Catalog) Browse(category string) ([]*Mod, error) {
	names, ok := c.Categories[category]
	if !ok {
		return nil, Errorf(ENOTFOUND, "category %q not found. Available categories: %s",
			category, strings.Join(c.CategoryNames(), ", "))
	}
	mods := make([]*Mod, 0, len(names))
	for _, name := range names {
		if mod, ok := c.Mods[name]; ok && mod.Category == category {
			mods = append(mods, mod)
		}
	}
	return mods, nil
}

// Summary returns the mod count of every indexed category, sorted by name.
func (c *Catalog) Summary() []CategorySummary {
	names := c.CategoryNames()
	summary := make([]CategorySummary, 0, len(names))
	for _, name := range names {
		summary = append(summary, CategorySummary{Name: name, Count: len(c.Categories[name])})
	}
	return summary
}

// Search returns up to MaxSearchResults mods matching query, highest score
// first. Ties are ordered by mod name. A blank query matches nothing.
func (c *Catalog) Search(query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []SearchResult
	for _, name := range c.ModNames() {
		mod := c.Mods[name]
		if score := Score(mod, q); score > 0 {
			results = append(results, SearchResult{Mod: mod, Score: score})
		}
	}
	slices.SortStableFunc(results, func(a, b SearchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(results) > MaxSearchResults {
		results = results[:MaxSearchResults]
	}
	return results
}

// Score rates how well mod matches a lowercased query.
func Score(mod *Mod, query string) int {
	var score int
	name := strings.ToLower(mod.Name)
	switch {
	case name == query:
		score += ScoreExactName
	case strings.Contains(name, query):
		score += ScoreNameSubstring
	}
	if strings.Contains(strings.ToLower(mod.Description), query) {
		score += ScoreDescriptionHit
	}
	if mod.Author != "" && strings.Contains(strings.ToLower(mod.Author), query) {
		score += ScoreAuthorHit
	}
	if strings.Contains(strings.ToLower(mod.Category), query) {
		score += ScoreCategoryHit
	}
	return score
}

// Info returns the mod whose name matches name case-insensitively.
func (c *Catalog) Info(name string) (*Mod, error) {
	if mod, ok := c.Mods[name]; ok {
		return mod, nil
	}
	for _, key := range c.ModNames() {
		if strings.EqualFold(key, name) {
			return c.Mods[key], nil
		}
	}
	return nil, Errorf(ENOTFOUND, "mod %q not found", name)
}
