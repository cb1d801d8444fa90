// internal/store/memory.go
//
// Catalog stores: where the item catalog comes from.
// This file holds the Store interface and the in-memory implementation used for
// the embedded default catalog and for catalogs read from JSON files.
//
// Characteristics:
//   - Catalogs are immutable once loaded, so concurrent reads need no locking.

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/bingo/internal/catalog"
)

// ErrNoCatalog is returned when a store has nothing loaded yet.
var ErrNoCatalog = errors.New("no catalog loaded")

// Store supplies the current catalog.
// Implementations may be backed by memory (this file) or SQLite (sqlite.go).
type Store interface {
	Catalog(ctx context.Context) (*catalog.Catalog, error)
}

// Memory is a Store holding one catalog value.
type Memory struct {
	cat *catalog.Catalog
}

// NewMemoryStore wraps cat. A nil cat yields ErrNoCatalog.
func NewMemoryStore(cat *catalog.Catalog) *Memory {
	return &Memory{cat: cat}
}

// Catalog returns the loaded catalog.
func (m *Memory) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	if m.cat == nil {
		return nil, ErrNoCatalog
	}
	return m.cat, nil
}
