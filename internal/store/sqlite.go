// internal/store/sqlite.go
//
// SQLite-backed catalog store.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (recorded in _migrations).
//   - Reading the catalog in its stored category/item order.
//   - Importing a catalog (replaces the previous one in a single transaction).
//
// Notes:
//   - categories.position is the bit index used by share-link masks, so the
//     import keeps the source order verbatim.

package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bingo/internal/catalog"
)

//go:embed sql/*.sql
var migrations embed.FS

// SQLite is a Store reading categories and items from a database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the database at dsn and migrates it.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// openDB opens a SQLite file, making its parent directory for relative paths
// like ./data/catalog.db.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies every embedded sql/*.sql file once, in lexical order.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Catalog loads categories ordered by position, items by position.
func (s *SQLite) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT c.name, i.description
        FROM categories c
        LEFT JOIN items i ON i.category_id = c.id
        ORDER BY c.position ASC, i.position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var cats []catalog.Category
	for rows.Next() {
		var name string
		var desc sql.NullString
		if err := rows.Scan(&name, &desc); err != nil {
			return nil, err
		}
		if len(cats) == 0 || cats[len(cats)-1].Name != name {
			cats = append(cats, catalog.Category{Name: name})
		}
		if desc.Valid {
			last := &cats[len(cats)-1]
			last.Items = append(last.Items, catalog.Item{Description: desc.String})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, ErrNoCatalog
	}
	return catalog.New(cats)
}

// Import replaces the stored catalog with cat.
func (s *SQLite) Import(ctx context.Context, cat *catalog.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	for pos, c := range cat.Categories() {
		res, err := tx.ExecContext(ctx, `INSERT INTO categories (position, name) VALUES (?, ?)`, pos, c.Name)
		if err != nil {
			return fmt.Errorf("insert category %q: %w", c.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for ipos, it := range c.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO items (category_id, position, description) VALUES (?, ?, ?)`,
				id, ipos, it.Description,
			); err != nil {
				return fmt.Errorf("insert item %q: %w", it.Description, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	log.Info().Int("categories", cat.Len()).Msg("catalog imported")
	return nil
}
