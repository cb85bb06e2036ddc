package engine

import (
	"testing"

	"nogo/internal/domain/game"
)

type coord struct{ row, col int }

// playAll applies moves in order and fails the test on any error or early
// game end before the last move. It returns the last result.
func playAll(t *testing.T, s *Session, moves ...coord) game.MoveResult {
	t.Helper()
	var res game.MoveResult
	for i, m := range moves {
		var err error
		res, err = s.ApplyMove(m.row, m.col)
		if err != nil {
			t.Fatalf("move %d at (%d, %d): unexpected error: %v", i, m.row, m.col, err)
		}
		if res.Status == game.MoveGameOver && i != len(moves)-1 {
			t.Fatalf("move %d at (%d, %d) ended the game early: %+v", i, m.row, m.col, res)
		}
	}
	return res
}

func newStarted(t *testing.T, height, width int) *Session {
	t.Helper()
	s, err := NewSession(height, width)
	if err != nil {
		t.Fatalf("NewSession(%d, %d): %v", height, width, err)
	}
	s.Start()
	return s
}

func restoreRows(t *testing.T, next game.Stone, rows ...string) *Session {
	t.Helper()
	s, err := Restore(game.Snapshot{
		Height:     len(rows),
		Width:      len(rows[0]),
		NextPlayer: next,
		Black:      game.Cursor{Row: 1, Col: 1},
		White:      game.Cursor{Row: 2, Col: 2},
		Rows:       rows,
	})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	return s
}

// checkLedger verifies the ledger against a flood fill of the board: every
// string of two or more stones carries one shared id, solitary stones carry
// NoGroup, and the ids in use are exactly 1..Live.
func checkLedger(t *testing.T, s *Session) {
	t.Helper()
	b, l := s.board, s.ledger
	seen := make([]bool, len(b.cells))
	used := make(map[GroupID]bool)

	for start := range b.cells {
		colour := b.cells[start]
		if seen[start] || !colour.IsStone() {
			continue
		}
		component := []int{start}
		seen[start] = true
		for i := 0; i < len(component); i++ {
			p := point{component[i] / b.width, component[i] % b.width}
			for _, n := range p.adjacent() {
				if b.At(n.row, n.col) != colour {
					continue
				}
				idx := b.index(n.row, n.col)
				if !seen[idx] {
					seen[idx] = true
					component = append(component, idx)
				}
			}
		}

		want := l.ids[start]
		if len(component) == 1 {
			if want != NoGroup {
				t.Fatalf("solitary stone at %d has id %d", start, want)
			}
			continue
		}
		if !want.Grouped() {
			t.Fatalf("string member at %d has id %d", start, want)
		}
		if used[want] {
			t.Fatalf("id %d shared by two separate strings", want)
		}
		used[want] = true
		for _, idx := range component {
			if l.ids[idx] != want {
				t.Fatalf("string split: square %d has id %d, want %d", idx, l.ids[idx], want)
			}
		}
	}

	if len(used) != l.Live() {
		t.Fatalf("%d strings on the board, ledger counts %d", len(used), l.Live())
	}
	for id := 1; id <= l.Live(); id++ {
		if !used[GroupID(id)] {
			t.Fatalf("id %d unused, ids are not dense (live %d)", id, l.Live())
		}
	}
}

func groupSize(s *Session, id GroupID) int {
	n := 0
	for _, g := range s.ledger.ids {
		if g == id {
			n++
		}
	}
	return n
}
