// internal/content/content.go
//
// Resolves the item catalog and sprite table the server runs with.
//
// Catalog resolution (Load):
//   1. If CATALOG_DB is set, read the catalog from that SQLite database.
//   2. Else if CATALOG_FILE is set, read that JSON file.
//   3. Else fall back to the embedded default catalog.
//
// Sprite resolution: SPRITES_FILE if set, otherwise the embedded table.
//
// Constraints:
//   • The catalog must hold at least one category.
//   • At most 32 categories (mask width).

package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bingo/assets"
	"github.com/robalobadob/bingo/internal/catalog"
	"github.com/robalobadob/bingo/internal/config"
	"github.com/robalobadob/bingo/internal/sprites"
	"github.com/robalobadob/bingo/internal/store"
)

// ErrEmptyCatalog is returned when the resolved catalog has no categories.
var ErrEmptyCatalog = errors.New("content: catalog has no categories")

// Content is what the renderer needs besides the request.
type Content struct {
	Store   store.Store
	Sprites *sprites.Table
	closers []func() error
}

// Close releases any database handles opened by Load.
func (c *Content) Close() error {
	var errs []error
	for _, fn := range c.closers {
		errs = append(errs, fn())
	}
	return errors.Join(errs...)
}

// Load resolves catalog and sprites from cfg.
func Load(ctx context.Context, cfg config.Config) (*Content, error) {
	c := &Content{}

	switch {
	case cfg.CatalogDB != "":
		db, err := store.OpenSQLite(cfg.CatalogDB)
		if err != nil {
			return nil, fmt.Errorf("open catalog db: %w", err)
		}
		c.closers = append(c.closers, db.Close)
		cat, err := db.Catalog(ctx)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("load catalog db: %w", err)
		}
		if err := checkCatalog(cat); err != nil {
			_ = c.Close()
			return nil, err
		}
		c.Store = db
		log.Info().Str("source", cfg.CatalogDB).Int("categories", cat.Len()).Msg("catalog from sqlite")

	case cfg.CatalogFile != "":
		cat, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("load catalog file: %w", err)
		}
		if err := checkCatalog(cat); err != nil {
			return nil, err
		}
		c.Store = store.NewMemoryStore(cat)
		log.Info().Str("source", cfg.CatalogFile).Int("categories", cat.Len()).Msg("catalog from file")

	default:
		cat, err := assets.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("load embedded catalog: %w", err)
		}
		c.Store = store.NewMemoryStore(cat)
		log.Info().Int("categories", cat.Len()).Msg("catalog from embedded defaults")
	}

	var err error
	if cfg.SpritesFile != "" {
		c.Sprites, err = sprites.LoadFile(cfg.SpritesFile)
	} else {
		c.Sprites, err = assets.DefaultSprites()
	}
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("load sprites: %w", err)
	}
	return c, nil
}

func checkCatalog(cat *catalog.Catalog) error {
	if cat.Len() == 0 {
		return ErrEmptyCatalog
	}
	return nil
}
