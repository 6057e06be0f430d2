// Package toml loads modwiki configuration files using
// github.com/BurntSushi/toml.
package toml

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/modwiki"
)

// ConfigEnv overrides the default configuration file location.
const ConfigEnv = "MODWIKI_CONFIG"

// DefaultPath returns the configuration file location: $MODWIKI_CONFIG if
// set, otherwise modwiki/config.toml under the user configuration directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", modwiki.Errorf(modwiki.EINVALID, "locate config directory: %v", err)
	}
	return filepath.Join(dir, "modwiki", "config.toml"), nil
}

// LoadConfig reads the file at path over the default configuration.
// A missing file yields the defaults. Unknown keys and invalid values are
// reported as EINVALID.
func LoadConfig(path string) (*modwiki.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return modwiki.DefaultConfig(), nil
	} else if err != nil {
		return nil, err
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, modwiki.Errorf(modwiki.ErrorCode(err), "config %s: %s", path, modwiki.ErrorMessage(err))
	}
	return cfg, nil
}

// Parse decodes configuration text over the defaults.
func Parse(data string) (*modwiki.Config, error) {
	cfg := modwiki.DefaultConfig()

	// Lists in the file replace the defaults instead of being decoded
	// over them element by element.
	defaults := *cfg
	cfg.Categories = nil
	cfg.RepositoryHosts = nil

	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, modwiki.Errorf(modwiki.EINVALID, "%v", err)
	}
	if !md.IsDefined("categories") {
		cfg.Categories = defaults.Categories
	}
	if !md.IsDefined("repository_hosts") {
		cfg.RepositoryHosts = defaults.RepositoryHosts
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, modwiki.Errorf(modwiki.EINVALID, "unknown keys: %s", strings.Join(keys, ", "))
	}

	for i := range cfg.Categories {
		if cfg.Categories[i].Key == "" {
			cfg.Categories[i].Key = cfg.Categories[i].Name
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
