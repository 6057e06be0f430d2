package main

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	catalog, err := deps.catalog()
	if err != nil {
		return reportError(deps.Stderr, err)
	}

	out := newPrinter(deps.Stdout)
	out.heading("Available categories")
	for _, s := range catalog.Summary() {
		out.line("  %s (%d mods)", s.Name, s.Count)
	}
	return nil
}
