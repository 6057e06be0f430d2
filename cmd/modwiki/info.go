package main

import (
	"strings"
)

// installCommand installs a mod from its repository.
const installCommand = "balatro-install-mod"

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	name := strings.Join(c.Name, " ")

	catalog, err := deps.catalog()
	if err != nil {
		return reportError(deps.Stderr, err)
	}

	mod, err := catalog.Info(name)
	if err != nil {
		return reportError(deps.Stderr, err)
	}

	out := newPrinter(deps.Stdout)
	out.heading("%s", mod.Name)
	out.field("Category", mod.Category)
	out.field("Description", mod.Description)
	if mod.Author != "" {
		out.field("Author", mod.Author)
	}
	if mod.Version != "" {
		out.field("Version", mod.Version)
	}
	if mod.RepositoryURL != "" {
		out.field("Repository", out.link.Render(mod.RepositoryURL))
		out.blank()
		out.line("To install this mod:")
		out.line("  %s %s", installCommand, mod.RepositoryURL)
		out.blank()
	}
	out.field("Wiki", out.link.Render(mod.SourceURL))
	if len(mod.Dependencies) > 0 {
		out.field("Dependencies", strings.Join(mod.Dependencies, ", "))
	}
	return nil
}
