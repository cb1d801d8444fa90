package game

import (
	"errors"
	"testing"
)

func newState(t *testing.T, n int) *State {
	t.Helper()
	s, err := NewState(n)
	if err != nil {
		t.Fatalf("NewState(%d): %v", n, err)
	}
	return s
}

func TestNewStateSizes(t *testing.T) {
	for n := MinGridSize; n <= MaxGridSize; n++ {
		s := newState(t, n)
		if len(s.Encode()) != n*n {
			t.Fatalf("size %d: encoded length %d", n, len(s.Encode()))
		}
	}
	for _, n := range []int{0, 2, 7} {
		if _, err := NewState(n); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("NewState(%d): expected ErrInvalidSize, got %v", n, err)
		}
	}
}

func TestToggleInvolution(t *testing.T) {
	s := newState(t, 4)
	_, _ = s.Toggle(1, 1, Player2)
	before := s.Encode()
	for _, p := range []Player{Player1, Player2} {
		if _, err := s.Toggle(1, 1, p); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Toggle(1, 1, p); err != nil {
			t.Fatal(err)
		}
		if got := s.Encode(); got != before {
			t.Fatalf("player %d: double toggle changed state %q -> %q", p, before, got)
		}
	}
}

func TestPlayersAreIndependent(t *testing.T) {
	s := newState(t, 3)
	steps := []struct {
		p    Player
		want Mark
	}{
		{Player1, MarkP1},
		{Player2, MarkBoth},
		{Player1, MarkP2},
		{Player2, MarkNone},
	}
	for i, st := range steps {
		other := Player1
		if st.p == Player1 {
			other = Player2
		}
		had := s.At(0, 0).Has(other)
		got, err := s.Toggle(0, 0, st.p)
		if err != nil {
			t.Fatal(err)
		}
		if got != st.want {
			t.Fatalf("step %d: got %d, want %d", i, got, st.want)
		}
		if got.Has(other) != had {
			t.Fatalf("step %d: player %d bit changed", i, other)
		}
	}
}

func TestToggleErrors(t *testing.T) {
	s := newState(t, 3)
	if _, err := s.Toggle(3, 0, Player1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := s.Toggle(0, -1, Player1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := s.Toggle(0, 0, Player(3)); !errors.Is(err, ErrInvalidPlayer) {
		t.Fatalf("expected ErrInvalidPlayer, got %v", err)
	}
}

func TestRowCompletion(t *testing.T) {
	s := newState(t, 3)
	cells := [][2]int{{0, 0}, {0, 1}, {0, 2}}
	for i, rc := range cells {
		if _, err := s.Toggle(rc[0], rc[1], Player1); err != nil {
			t.Fatal(err)
		}
		c := s.CheckLineCompletion(rc[0], rc[1], Player1)
		last := i == len(cells)-1
		if c.Row != last {
			t.Fatalf("toggle %d: rowComplete = %v", i, c.Row)
		}
		if c.Col {
			t.Fatalf("toggle %d: column should not be complete", i)
		}
	}
	if s.CheckLineCompletion(0, 2, Player2).Any() {
		t.Fatal("player 2 should have nothing complete")
	}
	// no other row or column is complete
	for r := 1; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if got := s.CheckLineCompletion(r, c, Player1); got.Any() {
				t.Fatalf("(%d,%d) reported %+v", r, c, got)
			}
		}
	}
}

func TestBothMarksCountForEither(t *testing.T) {
	s := newState(t, 3)
	for r := 0; r < 3; r++ {
		_, _ = s.Toggle(r, 1, Player2)
	}
	_, _ = s.Toggle(0, 1, Player1) // (0,1) = 3
	if !s.CheckLineCompletion(0, 1, Player2).Col {
		t.Fatal("column should be complete for player 2 with a shared cell")
	}
	if s.CheckLineCompletion(0, 1, Player1).Col {
		t.Fatal("column should not be complete for player 1")
	}
}

func TestCompletionIsReportedAgain(t *testing.T) {
	s := newState(t, 3)
	for c := 0; c < 3; c++ {
		_, _ = s.Toggle(2, c, Player1)
	}
	_, _ = s.Toggle(2, 0, Player1)
	if s.CheckLineCompletion(2, 0, Player1).Row {
		t.Fatal("row broken, should not be complete")
	}
	_, _ = s.Toggle(2, 0, Player1)
	if !s.CheckLineCompletion(2, 0, Player1).Row {
		t.Fatal("re-completed row should be reported again")
	}
}

func TestEncodeDecode(t *testing.T) {
	s := newState(t, 3)
	_, _ = s.Toggle(0, 0, Player1)
	_, _ = s.Toggle(1, 2, Player2)
	_, _ = s.Toggle(2, 2, Player1)
	_, _ = s.Toggle(2, 2, Player2)
	enc := s.Encode()
	if enc != "100002003" {
		t.Fatalf("Encode = %q", enc)
	}
	back, err := DecodeState(3, enc)
	if err != nil {
		t.Fatal(err)
	}
	if back.At(2, 2) != MarkBoth || back.At(1, 2) != MarkP2 {
		t.Fatalf("decoded cells = %v", back.Encode())
	}
	for _, bad := range []string{"10000200", "10000200x", "100002004"} {
		if _, err := DecodeState(3, bad); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("DecodeState(%q): expected ErrInvalidState, got %v", bad, err)
		}
	}
	fresh, err := DecodeState(4, "")
	if err != nil {
		t.Fatalf("empty decode: %v", err)
	}
	if fresh.Encode() != "0000000000000000" {
		t.Fatalf("empty decode = %q", fresh.Encode())
	}
}

func TestReset(t *testing.T) {
	s := newState(t, 3)
	_, _ = s.Toggle(1, 1, Player1)
	s.Reset()
	if s.At(1, 1) != MarkNone {
		t.Fatal("reset left a mark")
	}
}

func TestPlayerFromButton(t *testing.T) {
	if p, _ := PlayerFromButton(0); p != Player1 {
		t.Fatal("primary should be player 1")
	}
	if p, _ := PlayerFromButton(2); p != Player2 {
		t.Fatal("secondary should be player 2")
	}
	if _, err := PlayerFromButton(1); err == nil {
		t.Fatal("middle button should be rejected")
	}
}
