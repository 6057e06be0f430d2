package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/modwiki"
	"github.com/fwojciec/modwiki/refresh"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Store     modwiki.CatalogStore
	Refresher modwiki.CatalogRefresher

	// Pipeline is the refresher behind Refresher, exposed so commands can
	// attach progress reporting. May be nil.
	Pipeline *refresh.Refresher

	// MaxAge is how old the stored catalog may get before commands
	// refresh it.
	MaxAge time.Duration
	Now    func() time.Time
}

// catalog returns the stored catalog, refreshing it first if it is stale.
func (d *Dependencies) catalog() (*modwiki.Catalog, error) {
	catalog, result, err := refresh.EnsureFresh(d.Ctx, d.Store, d.Refresher, d.MaxAge, d.now())
	if err != nil {
		return nil, err
	}
	if result != nil {
		d.logger().Info("catalog refreshed",
			"mods", result.Catalog.Len(),
			"failed_mods", len(result.Failures),
			"failed_categories", len(result.CategoryFailures))
	}
	return catalog, nil
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config      string `type:"path" placeholder:"PATH" help:"Configuration file (default $MODWIKI_CONFIG or the user config dir)"`
	Cache       string `type:"path" placeholder:"PATH" help:"Catalog cache location (default $MODWIKI_CACHE or the user cache dir)"`
	Store       string `placeholder:"BACKEND" help:"Cache backend: json or sqlite"`
	Concurrency int    `default:"-1" help:"Concurrent page fetches, 0 for no limit (default from config)"`
	MetricsFile string `type:"path" placeholder:"PATH" help:"Write Prometheus metrics to this textfile on exit"`
	Verbose     bool   `short:"v" help:"Enable debug logging"`

	Browse     BrowseCmd     `cmd:"" help:"Browse mods, optionally within one category"`
	Search     SearchCmd     `cmd:"" help:"Search mods by name, description, author and category"`
	Info       InfoCmd       `cmd:"" help:"Show details for a mod"`
	Categories CategoriesCmd `cmd:"" help:"List categories with mod counts"`
	Update     UpdateCmd     `cmd:"" help:"Refresh the catalog from the wiki"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	Category string `arg:"" optional:"" help:"Category to list"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query []string `arg:"" help:"Search terms"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct {
	Name []string `arg:"" help:"Mod name"`
}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct{}

// UpdateCmd is the "update" subcommand.
type UpdateCmd struct {
	Diff bool `short:"d" help:"Print a unified diff of the catalog listing"`
}
