package engine

import (
	"fmt"

	"nogo/internal/domain/game"
	errs "nogo/internal/errors"
)

// Serialize captures the session in save-file form.
func (s *Session) Serialize() game.Snapshot {
	return game.Snapshot{
		Height:     s.board.height,
		Width:      s.board.width,
		NextPlayer: s.next,
		Black:      s.cursors[game.Black],
		White:      s.cursors[game.White],
		Rows:       s.board.Rows(),
	}
}

// Validate checks a snapshot without building anything from it.
func Validate(snap game.Snapshot) error {
	return validate(snap, true)
}

func validate(snap game.Snapshot, boundCounts bool) error {
	if !InSizeBounds(snap.Height, snap.Width) {
		return fmt.Errorf("%w: %w: %dx%d", errs.ErrMalformedSave, errs.ErrDimensionOutOfBounds, snap.Height, snap.Width)
	}
	if !snap.NextPlayer.IsStone() {
		return fmt.Errorf("%w: next player %q", errs.ErrMalformedSave, snap.NextPlayer)
	}
	maxMoves := snap.Height * snap.Width / 2
	for _, c := range []game.Cursor{snap.Black, snap.White} {
		if c.Row < 0 || c.Row >= snap.Height || c.Col < 0 || c.Col >= snap.Width {
			return fmt.Errorf("%w: next move (%d, %d) is off the board", errs.ErrMalformedSave, c.Row, c.Col)
		}
		if c.Count < 0 || (boundCounts && c.Count > maxMoves) {
			return fmt.Errorf("%w: move count %d outside [0,%d]", errs.ErrMalformedSave, c.Count, maxMoves)
		}
	}
	if len(snap.Rows) != snap.Height {
		return fmt.Errorf("%w: %d rows for height %d", errs.ErrMalformedSave, len(snap.Rows), snap.Height)
	}
	for r, row := range snap.Rows {
		if len(row) != snap.Width {
			return fmt.Errorf("%w: row %d has %d squares, want %d", errs.ErrMalformedSave, r, len(row), snap.Width)
		}
		for c := 0; c < len(row); c++ {
			if _, ok := game.ParseStone(row[c]); !ok {
				return fmt.Errorf("%w: row %d column %d holds %q", errs.ErrMalformedSave, r, c, row[c])
			}
		}
	}
	return nil
}

// Restore rebuilds a session from a snapshot. Strings are re-derived by
// incorporating every stone in row-major order with capture checks off, so
// a position holding dead stones is not decided until the first real move.
// The returned session still has to be started.
func Restore(snap game.Snapshot) (*Session, error) {
	return restore(snap, true)
}

// Resume is Restore for a snapshot taken mid-game by Serialize. The scripted
// player keeps counting past the move limit a save file allows, so counts
// are only required to be non-negative.
func Resume(snap game.Snapshot) (*Session, error) {
	return restore(snap, false)
}

func restore(snap game.Snapshot, boundCounts bool) (*Session, error) {
	if err := validate(snap, boundCounts); err != nil {
		return nil, err
	}

	s, err := NewSession(snap.Height, snap.Width)
	if err != nil {
		return nil, err
	}
	s.next = snap.NextPlayer
	s.cursors[game.Black] = snap.Black
	s.cursors[game.White] = snap.White

	for r, row := range snap.Rows {
		for c := 0; c < len(row); c++ {
			stone := game.Stone(row[c])
			if stone == game.Empty {
				continue
			}
			s.board.cells[s.board.index(r, c)] = stone
		}
	}
	for r := 0; r < snap.Height; r++ {
		for c := 0; c < snap.Width; c++ {
			if s.board.At(r, c).IsStone() {
				s.ledger.Incorporate(s.board, r, c)
			}
		}
	}
	return s, nil
}
