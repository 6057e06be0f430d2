package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/modwiki"
	"github.com/fwojciec/modwiki/difflib"
	"github.com/fwojciec/modwiki/refresh"
)

// Run executes the update command.
func (c *UpdateCmd) Run(deps *Dependencies) error {
	// The previous catalog only feeds the change summary, so a cache that
	// cannot be read is replaced rather than fatal.
	previous, err := deps.Store.Load(deps.Ctx)
	if err != nil {
		deps.logger().Warn("previous catalog unreadable, it will be replaced", "err", err)
		previous = nil
	}

	if deps.Pipeline != nil {
		deps.Pipeline.Progress = progressPrinter(deps.Stderr)
	}

	out := newPrinter(deps.Stdout)
	out.line("Updating mod catalog from wiki...")

	result, err := refresh.Update(deps.Ctx, deps.Store, deps.Refresher)
	if err != nil {
		return reportError(deps.Stderr, err)
	}

	out.line("%s", out.success.Render(fmt.Sprintf("Catalog updated with %d mods", result.Catalog.Len())))
	if len(result.CategoryFailures) > 0 || len(result.Failures) > 0 {
		out.line("%s", out.warning.Render(fmt.Sprintf("Skipped %d categories and %d mods (use --verbose for details)",
			len(result.CategoryFailures), len(result.Failures))))
	}

	changes := modwiki.DiffCatalogs(previous, result.Catalog)
	out.line("Changes: %s", changes)
	for _, name := range changes.Added {
		out.line("  %s", out.added.Render("+ "+name))
	}
	for _, name := range changes.Removed {
		out.line("  %s", out.removed.Render("- "+name))
	}
	for _, name := range changes.Changed {
		out.line("  ~ %s", name)
	}

	if c.Diff && !changes.Empty() {
		diff, err := difflib.UnifiedCatalogDiff(previous, result.Catalog)
		if err != nil {
			return reportError(deps.Stderr, err)
		}
		out.blank()
		fmt.Fprint(deps.Stdout, diff)
	}
	return nil
}

// progressPrinter reports refresh progress to w, one line per category
// and per mod.
func progressPrinter(w io.Writer) refresh.ProgressFunc {
	return func(e refresh.Event) {
		switch e.State {
		case refresh.CollectingCategories:
			if e.Name == "" {
				fmt.Fprintf(w, "Collecting %d categories\n", e.Total)
			} else if e.Err != nil {
				fmt.Fprintf(w, "  ✗ %s: %s\n", e.Name, modwiki.ErrorMessage(e.Err))
			} else {
				fmt.Fprintf(w, "  ✓ %s\n", e.Name)
			}
		case refresh.FetchingMods:
			if e.Name == "" {
				fmt.Fprintf(w, "Processing %d unique mods\n", e.Total)
			} else if e.Err != nil {
				fmt.Fprintf(w, "  ✗ [%d/%d] %s: %s\n", e.Completed, e.Total, e.Name, modwiki.ErrorMessage(e.Err))
			} else {
				fmt.Fprintf(w, "  ✓ [%d/%d] %s\n", e.Completed, e.Total, e.Name)
			}
		case refresh.Failed:
			fmt.Fprintf(w, "Refresh failed: %v\n", e.Err)
		}
	}
}
