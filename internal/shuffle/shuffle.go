// internal/shuffle/shuffle.go
//
// Deterministic shuffle of a filtered item pool.
// Responsibilities:
//   - Build the pool for a category selection (catalog order).
//   - Refuse pools that cannot fill a gridSize x gridSize grid.
//   - Fisher-Yates over the whole pool driven by seedhash draws.
//
// Notes:
//   - The draw-to-index mapping j = floor(u / 2^32 * (i+1)) is part of the
//     share-link contract; it is computed exactly in integer arithmetic.

package shuffle

import (
	"errors"
	"fmt"

	"github.com/robalobadob/bingo/internal/catalog"
	"github.com/robalobadob/bingo/internal/seedhash"
)

// ErrInsufficientItems is matched by every *InsufficientItemsError.
var ErrInsufficientItems = errors.New("not enough items to fill the grid")

// InsufficientItemsError reports a selection too small for the grid.
type InsufficientItemsError struct {
	Have int // items in the selected categories
	Need int // gridSize * gridSize
}

func (e *InsufficientItemsError) Error() string {
	return fmt.Sprintf("not enough items to fill the grid: have %d, need %d; select more categories", e.Have, e.Need)
}

// Is lets errors.Is(err, ErrInsufficientItems) match.
func (e *InsufficientItemsError) Is(target error) bool { return target == ErrInsufficientItems }

// Shuffle returns the full pool of the selected categories permuted by seed.
// The grid uses the first gridSize*gridSize entries, row-major.
func Shuffle(cat *catalog.Catalog, seed string, gridSize int, selected []string) ([]catalog.Item, error) {
	pool := cat.Pool(selected)
	need := gridSize * gridSize
	if len(pool) < need {
		return nil, &InsufficientItemsError{Have: len(pool), Need: need}
	}
	Permute(pool, seedhash.Func(seed))
	return pool, nil
}

// Permute runs Fisher-Yates over items in place using next for draws.
func Permute[T any](items []T, next func() uint32) {
	for i := len(items) - 1; i > 0; i-- {
		j := Index(next(), i+1)
		items[i], items[j] = items[j], items[i]
	}
}

// Index scales a 32-bit draw into [0, n).
func Index(u uint32, n int) int {
	return int((uint64(u) * uint64(n)) >> 32)
}

// Grid shuffles and lays out the first gridSize*gridSize items row-major.
func Grid(cat *catalog.Catalog, seed string, gridSize int, selected []string) ([][]catalog.Item, error) {
	pool, err := Shuffle(cat, seed, gridSize, selected)
	if err != nil {
		return nil, err
	}
	rows := make([][]catalog.Item, gridSize)
	for r := range rows {
		rows[r] = pool[r*gridSize : (r+1)*gridSize : (r+1)*gridSize]
	}
	return rows, nil
}
