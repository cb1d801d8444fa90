// internal/game/engine.go
//
// Mark/unmark engine for a bingo grid.
// Responsibilities:
//   - Allocate a zeroed state for a grid size.
//   - Toggle a player's bit on a cell (XOR; the other bit is untouched).
//   - Scan the row and column through a cell for completion.
//   - Encode/decode the state as a compact digit string for client storage.
//
// Notes:
//   - Completion is derived from the marks on every call. Nothing remembers that
//     a line was already reported, so re-completing a line reports it again.
//   - Diagonals are not checked.

package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinGridSize = 3
	MaxGridSize = 6
)

var (
	ErrInvalidSize   = fmt.Errorf("grid size must be between %d and %d", MinGridSize, MaxGridSize)
	ErrOutOfRange    = errors.New("cell out of range")
	ErrInvalidPlayer = errors.New("player must be 1 or 2")
	ErrInvalidState  = errors.New("invalid encoded state")
)

// ValidSize reports whether n is a supported grid size.
func ValidSize(n int) bool { return n >= MinGridSize && n <= MaxGridSize }

// NewState returns an all-zero state for an n x n grid.
func NewState(n int) (*State, error) {
	if !ValidSize(n) {
		return nil, ErrInvalidSize
	}
	return &State{size: n, cells: make([]Mark, n*n)}, nil
}

// Size returns the grid dimension.
func (s *State) Size() int { return s.size }

// At returns the mark at (row, col); out of range reads as MarkNone.
func (s *State) At(row, col int) Mark {
	if !s.inRange(row, col) {
		return MarkNone
	}
	return s.cells[row*s.size+col]
}

// Toggle flips p's bit at (row, col) and returns the new cell value.
func (s *State) Toggle(row, col int, p Player) (Mark, error) {
	if p != Player1 && p != Player2 {
		return MarkNone, ErrInvalidPlayer
	}
	if !s.inRange(row, col) {
		return MarkNone, ErrOutOfRange
	}
	i := row*s.size + col
	s.cells[i] ^= Mark(p)
	return s.cells[i], nil
}

// CheckLineCompletion scans the row and column containing (row, col).
// A line is complete for p when every cell carries p's bit (value p or 3).
func (s *State) CheckLineCompletion(row, col int, p Player) Completion {
	if !s.inRange(row, col) || (p != Player1 && p != Player2) {
		return Completion{}
	}
	c := Completion{Row: true, Col: true}
	for k := 0; k < s.size; k++ {
		if !s.cells[row*s.size+k].Has(p) {
			c.Row = false
		}
		if !s.cells[k*s.size+col].Has(p) {
			c.Col = false
		}
	}
	return c
}

// Reset clears every mark.
func (s *State) Reset() {
	for i := range s.cells {
		s.cells[i] = MarkNone
	}
}

// Encode returns the marks row-major as digits '0'..'3'.
func (s *State) Encode() string {
	var b strings.Builder
	b.Grow(len(s.cells))
	for _, m := range s.cells {
		b.WriteByte('0' + byte(m))
	}
	return b.String()
}

// DecodeState parses an Encode string for an n x n grid. An empty string is
// a fresh state.
func DecodeState(n int, enc string) (*State, error) {
	s, err := NewState(n)
	if err != nil {
		return nil, err
	}
	if enc == "" {
		return s, nil
	}
	if len(enc) != n*n {
		return nil, ErrInvalidState
	}
	for i := 0; i < len(enc); i++ {
		d := enc[i]
		if d < '0' || d > '3' {
			return nil, ErrInvalidState
		}
		s.cells[i] = Mark(d - '0')
	}
	return s, nil
}

// PlayerFromButton maps a pointer button to a player: 0 (primary) is
// Player1, 2 (secondary / context menu) is Player2.
func PlayerFromButton(button int) (Player, error) {
	switch button {
	case 0:
		return Player1, nil
	case 2:
		return Player2, nil
	}
	return 0, ErrInvalidPlayer
}

func (s *State) inRange(row, col int) bool {
	return row >= 0 && row < s.size && col >= 0 && col < s.size
}
