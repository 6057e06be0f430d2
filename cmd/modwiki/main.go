package main

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/modwiki"
	"github.com/fwojciec/modwiki/etree"
	"github.com/fwojciec/modwiki/fs"
	"github.com/fwojciec/modwiki/goquery"
	"github.com/fwojciec/modwiki/http"
	"github.com/fwojciec/modwiki/mediawiki"
	"github.com/fwojciec/modwiki/prometheus"
	"github.com/fwojciec/modwiki/refresh"
	modslog "github.com/fwojciec/modwiki/slog"
	"github.com/fwojciec/modwiki/sqlite"
	"github.com/fwojciec/modwiki/toml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration and cache locations. Flags take precedence; empty
	// values fall back to the environment and user directories.
	ConfigPath string
	CachePath  string

	// Transport replaces the HTTP transport used to reach the wiki.
	Transport nethttp.RoundTripper

	Now func() time.Time

	// SQLite database, open only when the sqlite store is selected.
	DB *sqlite.DB

	Fetcher modwiki.Fetcher
	Metrics *prometheus.Metrics
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Now: time.Now,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		_ = m.Fetcher.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments. Errors are reported on
// stderr before being returned.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if m.Now == nil {
		m.Now = time.Now
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("modwiki"),
		kong.Description("Browse and search the mod wiki catalog from the command line."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		err := fmt.Errorf("no command specified. Run 'modwiki --help' to see available commands")
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	deps.Logger = logger

	cfg, err := m.loadConfig(cli)
	if err != nil {
		return reportError(stderr, err)
	}
	deps.MaxAge = time.Duration(cfg.MaxAge)
	logger.Debug("config loaded", "config", cfg.String())

	m.Metrics = prometheus.NewMetrics()

	store, err := m.openStore(cfg, cli.Cache)
	if err != nil {
		return reportError(stderr, err)
	}
	defer m.Close()
	deps.Store = modslog.NewLoggingCatalogStore(store, logger)

	var fetcher modwiki.Fetcher = http.NewFetcher(m.fetcherOptions(cfg)...)
	fetcher = prometheus.InstrumentFetcher(fetcher, m.Metrics)
	fetcher = modslog.NewLoggingFetcher(fetcher, logger)
	m.Fetcher = fetcher

	pipeline := &refresh.Refresher{
		Wiki:        cfg.Wiki(),
		Categories:  cfg.Categories,
		Fetcher:     fetcher,
		Members:     memberParser(cfg.ListingFormat),
		Mods:        goquery.NewModParser(cfg.RepositoryHosts...),
		Concurrency: cfg.Concurrency,
		RetryDelays: cfg.RetryDelays(),
		Logger:      logger,
		Now:         m.Now,
	}
	if cfg.RequestsPerSecond > 0 {
		pipeline.RateLimiter = refresh.NewDomainLimiter(cfg.RequestsPerSecond)
	}
	deps.Pipeline = pipeline
	deps.Refresher = prometheus.InstrumentRefresher(pipeline, m.Metrics)

	err = kongCtx.Run(deps)

	if cli.MetricsFile != "" {
		if werr := m.Metrics.WriteTextfile(cli.MetricsFile); werr != nil {
			logger.Warn("write metrics", "path", cli.MetricsFile, "err", werr)
		}
	}
	return err
}

// loadConfig reads the configuration file and applies flag overrides.
func (m *Main) loadConfig(cli *CLI) (*modwiki.Config, error) {
	path := cli.Config
	if path == "" {
		path = m.ConfigPath
	}
	if path == "" {
		p, err := toml.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := toml.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if cli.Store != "" {
		cfg.Store = strings.ToLower(cli.Store)
	}
	if cli.Concurrency >= 0 {
		cfg.Concurrency = cli.Concurrency
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the catalog store selected by the configuration. An
// explicit cache path is used as given; the default location gets a .db
// extension for the sqlite store.
func (m *Main) openStore(cfg *modwiki.Config, cachePath string) (modwiki.CatalogStore, error) {
	path := cachePath
	if path == "" {
		path = m.CachePath
	}
	if path == "" {
		p, err := fs.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
		if cfg.Store == modwiki.StoreSQLite {
			path = strings.TrimSuffix(path, filepath.Ext(path)) + ".db"
		}
	}

	switch cfg.Store {
	case modwiki.StoreSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("open catalog database %q: %w", path, err)
		}
		store := sqlite.NewCatalogStore(m.DB)
		store.Now = m.Now
		return store, nil
	default:
		store := fs.NewCatalogStore(path)
		store.Now = m.Now
		return store, nil
	}
}

func (m *Main) fetcherOptions(cfg *modwiki.Config) []http.Option {
	opts := []http.Option{
		http.WithTimeout(time.Duration(cfg.Timeout)),
		http.WithUserAgent(cfg.UserAgent),
	}
	if m.Transport != nil {
		opts = append(opts, http.WithTransport(m.Transport))
	}
	return opts
}

func memberParser(format string) modwiki.MemberParser {
	if format == modwiki.ListingXML {
		return etree.NewMemberParser()
	}
	return mediawiki.NewMemberParser()
}
