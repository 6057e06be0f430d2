package main

import "strings"

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	catalog, err := deps.catalog()
	if err != nil {
		return reportError(deps.Stderr, err)
	}

	out := newPrinter(deps.Stdout)

	results := catalog.Search(query)
	if len(results) == 0 {
		out.line("No mods found matching '%s'", query)
		return nil
	}

	out.heading("Search results for '%s' (%d matches)", query, len(results))
	for _, r := range results {
		out.modEntry(r.Mod, true)
	}
	return nil
}
