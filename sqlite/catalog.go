package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/modwiki"
)

// Compile-time interface verification.
var _ modwiki.CatalogStore = (*CatalogStore)(nil)

const metaFetchedAt = "fetched_at"

// CatalogStore implements modwiki.CatalogStore using SQLite.
type CatalogStore struct {
	db *DB

	// Now stamps the empty catalog returned when nothing is stored.
	Now func() time.Time
}

// NewCatalogStore creates a new CatalogStore.
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db, Now: time.Now}
}

// Load reads the stored catalog. An empty database yields a new empty
// catalog. Returns ECORRUPT if the stored rows do not form a valid catalog.
func (s *CatalogStore) Load(ctx context.Context) (*modwiki.Catalog, error) {
	var fetchedAt string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, metaFetchedAt).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return modwiki.NewCatalog(s.Now()), nil
	}
	if err != nil {
		return nil, err
	}

	catalog := &modwiki.Catalog{
		Mods:       make(map[string]*modwiki.Mod),
		Categories: make(map[string][]string),
		FetchedAt:  fetchedAt,
	}

	if err := s.loadCategories(ctx, catalog); err != nil {
		return nil, err
	}
	if err := s.loadMods(ctx, catalog); err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, catalog); err != nil {
		return nil, err
	}

	if err := catalog.Validate(); err != nil {
		return nil, modwiki.Errorf(modwiki.ECORRUPT, "catalog database is inconsistent: %s", modwiki.ErrorMessage(err))
	}
	return catalog, nil
}

func (s *CatalogStore) loadCategories(ctx context.Context, catalog *modwiki.Catalog) error {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY position`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		catalog.Categories[name] = []string{}
	}
	return rows.Err()
}

func (s *CatalogStore) loadMods(ctx context.Context, catalog *modwiki.Catalog) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, description, author, version, repository_url, source_url,
			category, dependencies, content_hash
		FROM mods
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var mod modwiki.Mod
		var deps string
		if err := rows.Scan(&mod.Name, &mod.Description, &mod.Author, &mod.Version,
			&mod.RepositoryURL, &mod.SourceURL, &mod.Category, &deps, &mod.ContentHash); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(deps), &mod.Dependencies); err != nil {
			return modwiki.Errorf(modwiki.ECORRUPT, "mod %q has invalid dependencies: %v", mod.Name, err)
		}
		if mod.Dependencies == nil {
			mod.Dependencies = []string{}
		}
		catalog.Mods[mod.Name] = &mod
	}
	return rows.Err()
}

func (s *CatalogStore) loadMembers(ctx context.Context, catalog *modwiki.Catalog) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, mod_name FROM category_members ORDER BY category, position
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var category, name string
		if err := rows.Scan(&category, &name); err != nil {
			return err
		}
		catalog.Categories[category] = append(catalog.Categories[category], name)
	}
	return rows.Err()
}

// Save replaces the stored catalog in a single transaction.
func (s *CatalogStore) Save(ctx context.Context, catalog *modwiki.Catalog) error {
	if err := catalog.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM category_members`,
		`DELETE FROM mods`,
		`DELETE FROM categories`,
		`DELETE FROM meta`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
	}

	for i, name := range catalog.CategoryNames() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (name, position) VALUES (?, ?)`, name, i); err != nil {
			return fmt.Errorf("insert category %q: %w", name, err)
		}
	}

	for _, name := range catalog.ModNames() {
		mod := catalog.Mods[name]
		deps, err := json.Marshal(mod.Dependencies)
		if err != nil {
			return err
		}
		if mod.Dependencies == nil {
			deps = []byte("[]")
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO mods (name, description, author, version, repository_url, source_url,
				category, dependencies, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, mod.Name, mod.Description, mod.Author, mod.Version, mod.RepositoryURL, mod.SourceURL,
			mod.Category, string(deps), mod.ContentHash); err != nil {
			return fmt.Errorf("insert mod %q: %w", name, err)
		}
	}

	for category, names := range catalog.Categories {
		for i, name := range names {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO category_members (category, position, mod_name) VALUES (?, ?, ?)
			`, category, i, name); err != nil {
				return fmt.Errorf("insert member %q of %q: %w", name, category, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, metaFetchedAt, catalog.FetchedAt); err != nil {
		return fmt.Errorf("insert fetched_at: %w", err)
	}

	return tx.Commit()
}
