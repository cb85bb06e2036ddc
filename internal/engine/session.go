// Package engine implements the NoGo rules: stone placement, incremental
// string tracking and capture detection. A capture of any string ends the
// game.
package engine

import (
	"fmt"

	"nogo/internal/domain/game"
	errs "nogo/internal/errors"
)

// Session is one game. It is not safe for concurrent use.
type Session struct {
	board   *Board
	ledger  *Ledger
	next    game.Stone
	cursors map[game.Stone]game.Cursor
	started bool
	over    bool
	winner  game.Stone
}

// NewSession returns an empty board with Black to move. Captures are not
// checked until Start is called.
func NewSession(height, width int) (*Session, error) {
	board, err := NewBoard(height, width)
	if err != nil {
		return nil, err
	}
	return &Session{
		board:  board,
		ledger: NewLedger(height, width),
		next:   game.Black,
		cursors: map[game.Stone]game.Cursor{
			game.Black: {Row: 1, Col: 4 % width},
			game.White: {Row: 2, Col: 10 % width},
		},
	}, nil
}

// Start ends the setup phase; from now on every move is followed by a
// capture check.
func (s *Session) Start() {
	s.started = true
}

func (s *Session) Started() bool { return s.started }

func (s *Session) Height() int { return s.board.height }
func (s *Session) Width() int  { return s.board.width }

func (s *Session) CurrentPlayer() game.Stone {
	return s.next
}

func (s *Session) StoneAt(row, col int) game.Stone {
	return s.board.At(row, col)
}

func (s *Session) IsEmpty(row, col int) bool {
	return s.board.IsEmpty(row, col)
}

// HasEmpty reports whether any square is still free.
func (s *Session) HasEmpty() bool {
	return s.board.hasEmpty()
}

func (s *Session) IsTerminal() bool {
	return s.over
}

// Winner is game.OffBoard until the game is over.
func (s *Session) Winner() game.Stone {
	return s.winner
}

// Rows returns the board as save-file lines.
func (s *Session) Rows() []string {
	return s.board.Rows()
}

// GroupIDs returns the string id of every square.
func (s *Session) GroupIDs() [][]GroupID {
	return s.ledger.Grid()
}

// LiveGroups is the number of live string ids.
func (s *Session) LiveGroups() int {
	return s.ledger.Live()
}

// Cursor returns the scripted move state of colour.
func (s *Session) Cursor(colour game.Stone) game.Cursor {
	return s.cursors[colour]
}

func (s *Session) SetCursor(colour game.Stone, c game.Cursor) {
	s.cursors[colour] = c
}

// ApplyMove places the current player's stone at (row, col). A rejected move
// leaves the session untouched and returns an error wrapping
// errs.ErrInvalidMove, or errs.ErrGameOver once the game has ended.
func (s *Session) ApplyMove(row, col int) (game.MoveResult, error) {
	if s.over {
		return game.MoveResult{Status: game.MoveRejected}, fmt.Errorf("%w: %s has already won", errs.ErrGameOver, s.winner)
	}

	mover := s.next
	if err := s.board.Place(row, col, mover); err != nil {
		return game.MoveResult{Status: game.MoveRejected}, err
	}
	s.ledger.Incorporate(s.board, row, col)

	if v := s.checkCaptures(point{row, col}, mover); v.over {
		s.over = true
		s.winner = v.winner
		return game.MoveResult{Status: game.MoveGameOver, Winner: v.winner}, nil
	}

	s.next = mover.Opponent()
	return game.MoveResult{Status: game.MoveAccepted}, nil
}

// checkCaptures skips the board scan when the new stone touches no opposing
// stone, since nothing can have lost its last liberty.
func (s *Session) checkCaptures(p point, mover game.Stone) verdict {
	if !s.started || !s.board.touches(p, mover.Opponent()) {
		return verdict{}
	}
	return scanLiberties(s.board, s.ledger, mover)
}
