package toml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/modwiki"
	"github.com/fwojciec/modwiki/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := toml.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))

		require.NoError(t, err)
		assert.Equal(t, modwiki.DefaultConfig(), cfg)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
base_url = "https://wiki.example.org"
timeout = "10s"
max_age = "6h"
concurrency = 8
requests_per_second = 2.5
listing_format = "xml"
store = "sqlite"
repository_hosts = ["github.com", "codeberg.org"]

[[categories]]
name = "Joker Mods"

[[categories]]
name = "Tools"
key = "Tool Mods"
`), 0o644))

		cfg, err := toml.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "https://wiki.example.org", cfg.BaseURL)
		assert.Equal(t, modwiki.Duration(10*time.Second), cfg.Timeout)
		assert.Equal(t, modwiki.Duration(6*time.Hour), cfg.MaxAge)
		assert.Equal(t, 8, cfg.Concurrency)
		assert.InDelta(t, 2.5, cfg.RequestsPerSecond, 0)
		assert.Equal(t, modwiki.ListingXML, cfg.ListingFormat)
		assert.Equal(t, modwiki.StoreSQLite, cfg.Store)
		assert.Equal(t, []string{"github.com", "codeberg.org"}, cfg.RepositoryHosts)
		assert.Equal(t, []modwiki.Category{
			{Name: "Joker Mods", Key: "Joker Mods"},
			{Name: "Tools", Key: "Tool Mods"},
		}, cfg.Categories)
		assert.Equal(t, modwiki.DefaultUserAgent, cfg.UserAgent)
		assert.Equal(t, modwiki.DefaultRetries, cfg.Retries)
	})

	t.Run("invalid file is reported with its path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`timeout = "soon"`), 0o644))

		_, err := toml.LoadConfig(path)

		assert.Equal(t, modwiki.EINVALID, modwiki.ErrorCode(err))
		assert.Contains(t, modwiki.ErrorMessage(err), path)
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "syntax error", data: `base_url = `},
		{name: "unknown key", data: `base_ulr = "https://x.test"`},
		{name: "invalid value", data: `store = "redis"`},
		{name: "bad duration", data: `max_age = "forever"`},
		{name: "duplicate category", data: "[[categories]]\nname = \"A\"\n[[categories]]\nname = \"A\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := toml.Parse(tt.data)

			assert.Equal(t, modwiki.EINVALID, modwiki.ErrorCode(err))
		})
	}

	t.Run("empty text yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := toml.Parse("")

		require.NoError(t, err)
		assert.Equal(t, modwiki.DefaultConfig(), cfg)
	})
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(toml.ConfigEnv, "/tmp/modwiki.toml")

	path, err := toml.DefaultPath()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/modwiki.toml", path)
}
