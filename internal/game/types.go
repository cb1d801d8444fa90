// internal/game/types.go
//
// Core type definitions for the two-player mark model.
// Defines:
//   - Player: who is marking (primary click = Player1, secondary = Player2).
//   - Mark: per-cell 2-bit field (bit 0 = player 1, bit 1 = player 2).
//   - State: an N x N matrix of marks for one generated grid.
//   - Completion: result of a row/column scan.

package game

// Player identifies a marker. Its value is the bit it owns in a Mark.
type Player uint8

const (
	Player1 Player = 1
	Player2 Player = 2
)

// Mark is the per-cell bitfield.
//   - 0: unmarked
//   - 1: marked by player 1
//   - 2: marked by player 2
//   - 3: marked by both
type Mark uint8

const (
	MarkNone Mark = 0
	MarkP1   Mark = Mark(Player1)
	MarkP2   Mark = Mark(Player2)
	MarkBoth Mark = MarkP1 | MarkP2
)

// Has reports whether p's bit is set.
func (m Mark) Has(p Player) bool { return m&Mark(p) != 0 }

// Completion reports which lines through a cell are fully marked by a player.
type Completion struct {
	Row bool `json:"rowComplete"`
	Col bool `json:"colComplete"`
}

// Any is true if either line is complete.
func (c Completion) Any() bool { return c.Row || c.Col }

// State holds the marks for a single grid. It lives from grid generation until
// the next one; it is never persisted server side.
type State struct {
	size  int
	cells []Mark // row-major, size*size
}
