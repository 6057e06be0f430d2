package modwiki

import (
	"fmt"
	"net/url"
	"time"
)

// Default policy values.
const (
	DefaultBaseURL     = "https://balatromods.miraheze.org"
	DefaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxAge      = 24 * time.Hour
	DefaultMemberLimit = 500
	DefaultRetries     = 2
)

// Store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Duration is a time.Duration that decodes from strings such as "30s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds the tool configuration.
type Config struct {
	BaseURL           string     `toml:"base_url"`
	UserAgent         string     `toml:"user_agent"`
	Timeout           Duration   `toml:"timeout"`
	MaxAge            Duration   `toml:"max_age"`
	Concurrency       int        `toml:"concurrency"`
	RequestsPerSecond float64    `toml:"requests_per_second"`
	Retries           int        `toml:"retries"`
	ListingFormat     string     `toml:"listing_format"`
	MemberLimit       int        `toml:"member_limit"`
	Store             string     `toml:"store"`
	RepositoryHosts   []string   `toml:"repository_hosts"`
	Categories        []Category `toml:"categories"`
}

// DefaultConfig returns the configuration for the Balatro mods wiki.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		UserAgent:       DefaultUserAgent,
		Timeout:         Duration(DefaultTimeout),
		MaxAge:          Duration(DefaultMaxAge),
		Retries:         DefaultRetries,
		ListingFormat:   ListingJSON,
		MemberLimit:     DefaultMemberLimit,
		Store:           StoreJSON,
		RepositoryHosts: []string{"github.com"},
		Categories:      DefaultCategories(),
	}
}

// Wiki returns the source description derived from the configuration.
func (c *Config) Wiki() Wiki {
	return Wiki{
		BaseURL:       c.BaseURL,
		ListingFormat: c.ListingFormat,
		MemberLimit:   c.MemberLimit,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return Errorf(EINVALID, "base URL cannot be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return Errorf(EINVALID, "invalid base URL: %v", err)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "base URL must include a host")
	}
	if c.UserAgent == "" {
		return Errorf(EINVALID, "user agent cannot be empty")
	}
	if c.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be positive")
	}
	if c.MaxAge <= 0 {
		return Errorf(EINVALID, "max age must be positive")
	}
	if c.Concurrency < 0 {
		return Errorf(EINVALID, "concurrency cannot be negative")
	}
	if c.RequestsPerSecond < 0 {
		return Errorf(EINVALID, "requests per second cannot be negative")
	}
	if c.Retries < 0 {
		return Errorf(EINVALID, "retries cannot be negative")
	}
	if c.ListingFormat != ListingJSON && c.ListingFormat != ListingXML {
		return Errorf(EINVALID, "listing format must be %s or %s", ListingJSON, ListingXML)
	}
	if c.MemberLimit <= 0 {
		return Errorf(EINVALID, "member limit must be positive")
	}
	if c.Store != StoreJSON && c.Store != StoreSQLite {
		return Errorf(EINVALID, "store must be %s or %s", StoreJSON, StoreSQLite)
	}
	if len(c.Categories) == 0 {
		return Errorf(EINVALID, "at least one category is required")
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Name == "" || cat.Key == "" {
			return Errorf(EINVALID, "category name and key required")
		}
		if seen[cat.Name] {
			return Errorf(EINVALID, "duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true
	}
	return nil
}

// RetryDelays returns the backoff schedule for the configured retry count:
// 1s, 2s, 4s, ...
func (c *Config) RetryDelays() []time.Duration {
	delays := make([]time.Duration, 0, c.Retries)
	d := time.Second
	for i := 0; i < c.Retries; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// String renders the configuration source for log lines.
func (c *Config) String() string {
	return fmt.Sprintf("%s (%d categories, store=%s)", c.BaseURL, len(c.Categories), c.Store)
}
