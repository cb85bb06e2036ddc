// Package movegen is the scripted computer player. It walks a fixed
// arithmetic sequence over the board, independent of the position.
package movegen

import (
	"fmt"

	"nogo/internal/domain/game"
	"nogo/internal/engine"
	errs "nogo/internal/errors"
)

// maxSteps bounds the search for an empty square reachable by the sequence.
const maxSteps = 1 << 22

const jumpModulus = 1000003

type script struct {
	row, col int
	factor   int
}

var scripts = map[game.Stone]script{
	game.Black: {row: 1, col: 4, factor: 29},
	game.White: {row: 2, col: 10, factor: 17},
}

// Candidate is a proposed move. Playable is false when the scripted square
// was already taken; the turn then passes without a stone being placed and
// the caller asks again.
type Candidate struct {
	Row, Col int
	Playable bool
}

// Source proposes the next move for the player to move.
type Source interface {
	NextCandidate(s *engine.Session) (Candidate, error)
}

// Scripted is the deterministic Source. The per-player cursor lives in the
// session so that it survives a save and load.
type Scripted struct{}

// NextCandidate returns the current player's cursor and advances it to the
// next empty square of the sequence.
func (Scripted) NextCandidate(s *engine.Session) (Candidate, error) {
	colour := s.CurrentPlayer()
	sc, ok := scripts[colour]
	if !ok {
		return Candidate{}, fmt.Errorf("%w: no script for %q", errs.ErrInternal, colour)
	}

	cur := s.Cursor(colour)
	cand := Candidate{Row: cur.Row, Col: cur.Col, Playable: s.IsEmpty(cur.Row, cur.Col)}

	if !s.HasEmpty() {
		return cand, errs.ErrBoardFull
	}
	for i := 0; ; i++ {
		if i == maxSteps {
			return cand, fmt.Errorf("%w: sequence for %s reaches no empty square", errs.ErrBoardFull, colour)
		}
		cur = step(cur, sc, s.Height(), s.Width())
		if s.IsEmpty(cur.Row, cur.Col) {
			break
		}
	}
	s.SetCursor(colour, cur)
	return cand, nil
}

// step advances a cursor by one move of the sequence.
func step(c game.Cursor, sc script, height, width int) game.Cursor {
	c.Count++
	switch c.Count % 5 {
	case 0:
		t := (sc.row*width + sc.col + c.Count/5*sc.factor) % jumpModulus
		c.Row = t / width
		c.Col = t % width
	case 1:
		c.Row++
		c.Col++
	case 2:
		c.Row += 2
		c.Col++
	case 3:
		c.Row++
	case 4:
		c.Col++
	}
	c.Row %= height
	c.Col %= width
	return c
}
