package main

// Run executes the browse command.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	catalog, err := deps.catalog()
	if err != nil {
		return reportError(deps.Stderr, err)
	}

	out := newPrinter(deps.Stdout)

	if c.Category == "" {
		out.heading("All mods (%d total)", catalog.Len())
		for _, s := range catalog.Summary() {
			out.line("%s (%d mods)", s.Name, s.Count)
		}
		out.blank()
		out.line("Use 'modwiki browse <category>' to see mods in a specific category")
		return nil
	}

	mods, err := catalog.Browse(c.Category)
	if err != nil {
		return reportError(deps.Stderr, err)
	}

	out.heading("%s (%d mods)", c.Category, len(mods))
	for _, mod := range mods {
		out.modEntry(mod, false)
	}
	return nil
}
