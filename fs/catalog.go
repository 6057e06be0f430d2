// Package fs stores the mod catalog as a JSON file on the local filesystem.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/modwiki"
)

// CacheEnv overrides the default cache file location.
const CacheEnv = "MODWIKI_CACHE"

const cacheFileName = "mods.json"

// Ensure CatalogStore implements modwiki.CatalogStore at compile time.
var _ modwiki.CatalogStore = (*CatalogStore)(nil)

// CatalogStore keeps the catalog in a single JSON file. Saves replace the
// file atomically.
type CatalogStore struct {
	path string

	// Now stamps the empty catalog returned when no file exists yet.
	Now func() time.Time
}

// NewCatalogStore creates a store backed by the file at path.
func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path, Now: time.Now}
}

// Path returns the location of the cache file.
func (s *CatalogStore) Path() string {
	return s.path
}

// DefaultPath returns the cache file location: $MODWIKI_CACHE if set,
// otherwise modwiki/mods.json under the user cache directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(CacheEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", modwiki.Errorf(modwiki.EINVALID, "locate cache directory: %v", err)
	}
	return filepath.Join(dir, "modwiki", cacheFileName), nil
}

// Load reads the catalog file. A missing file yields a new empty catalog.
// Returns ECORRUPT if the file cannot be decoded, lacks a top-level key, or
// holds an inconsistent index.
func (s *CatalogStore) Load(ctx context.Context) (*modwiki.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return modwiki.NewCatalog(s.Now()), nil
	} else if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses catalog JSON.
func Decode(data []byte) (*modwiki.Catalog, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, modwiki.Errorf(modwiki.ECORRUPT, "cache file is not valid JSON: %v", err)
	}
	for _, key := range []string{"mods", "categories", "fetched_at"} {
		if _, ok := raw[key]; !ok {
			return nil, modwiki.Errorf(modwiki.ECORRUPT, "cache file is missing %q", key)
		}
	}

	var catalog modwiki.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, modwiki.Errorf(modwiki.ECORRUPT, "cache file has unexpected shape: %v", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, modwiki.Errorf(modwiki.ECORRUPT, "cache file is inconsistent: %s", modwiki.ErrorMessage(err))
	}
	for _, mod := range catalog.Mods {
		if mod.Dependencies == nil {
			mod.Dependencies = []string{}
		}
	}
	return &catalog, nil
}

// Save writes the catalog to a temporary file next to the cache file and
// renames it into place.
func (s *CatalogStore) Save(ctx context.Context, catalog *modwiki.Catalog) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalog); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.path)
}
