package modwiki_test

import (
	"testing"
	"time"

	"github.com/fwojciec/modwiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := modwiki.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30*time.Second, time.Duration(cfg.Timeout))
	assert.Equal(t, 24*time.Hour, time.Duration(cfg.MaxAge))
	assert.Len(t, cfg.Categories, 6)
	assert.Equal(t, 0, cfg.Concurrency, "fan-out is unbounded by default")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*modwiki.Config)
	}{
		{"empty base url", func(c *modwiki.Config) { c.BaseURL = "" }},
		{"base url without host", func(c *modwiki.Config) { c.BaseURL = "/just/a/path" }},
		{"empty user agent", func(c *modwiki.Config) { c.UserAgent = "" }},
		{"zero timeout", func(c *modwiki.Config) { c.Timeout = 0 }},
		{"zero max age", func(c *modwiki.Config) { c.MaxAge = 0 }},
		{"negative concurrency", func(c *modwiki.Config) { c.Concurrency = -1 }},
		{"negative rate", func(c *modwiki.Config) { c.RequestsPerSecond = -1 }},
		{"negative retries", func(c *modwiki.Config) { c.Retries = -1 }},
		{"unknown listing format", func(c *modwiki.Config) { c.ListingFormat = "yaml" }},
		{"zero member limit", func(c *modwiki.Config) { c.MemberLimit = 0 }},
		{"unknown store", func(c *modwiki.Config) { c.Store = "redis" }},
		{"no categories", func(c *modwiki.Config) { c.Categories = nil }},
		{"category without key", func(c *modwiki.Config) { c.Categories = []modwiki.Category{{Name: "A"}} }},
		{"duplicate category", func(c *modwiki.Config) {
			c.Categories = []modwiki.Category{{Name: "A", Key: "A"}, {Name: "A", Key: "B"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := modwiki.DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, modwiki.EINVALID, modwiki.ErrorCode(err))
		})
	}
}

func TestConfig_RetryDelays(t *testing.T) {
	t.Parallel()

	cfg := modwiki.DefaultConfig()
	cfg.Retries = 3

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, cfg.RetryDelays())

	cfg.Retries = 0
	assert.Empty(t, cfg.RetryDelays())
}

func TestDuration_UnmarshalText(t *testing.T) {
	t.Parallel()

	var d modwiki.Duration
	require.NoError(t, d.UnmarshalText([]byte("90s")))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.Error(t, d.UnmarshalText([]byte("soon")))
}
