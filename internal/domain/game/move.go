package game

import "fmt"

// Stone is the content of a single board square. The byte values are the
// characters used by the save file and the console board.
type Stone byte

const (
	// OffBoard is returned for coordinates outside the board.
	OffBoard Stone = 0
	Empty    Stone = '.'
	// Black is player 1 and moves first.
	Black Stone = 'O'
	White Stone = 'X'
)

// ParseStone converts a save-file character to a Stone.
func ParseStone(c byte) (Stone, bool) {
	switch Stone(c) {
	case Empty, Black, White:
		return Stone(c), true
	}
	return OffBoard, false
}

// IsStone reports whether s is a player's stone.
func (s Stone) IsStone() bool {
	return s == Black || s == White
}

// Opponent returns the other player's colour. Non-stones map to themselves.
func (s Stone) Opponent() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	}
	return s
}

func (s Stone) String() string {
	if s == OffBoard {
		return ""
	}
	return string(rune(s))
}

func (s Stone) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stone) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = OffBoard
		return nil
	}
	parsed, ok := ParseStone(text[0])
	if !ok || len(text) != 1 {
		return fmt.Errorf("unknown stone %q", text)
	}
	*s = parsed
	return nil
}

// Move is a single placed stone.
type Move struct {
	Color Stone `json:"color" bson:"color"`
	Row   int   `json:"row" bson:"row"`
	Col   int   `json:"col" bson:"col"`
}

type MoveStatus string

const (
	MoveAccepted MoveStatus = "accepted"
	MoveRejected MoveStatus = "rejected"
	MoveGameOver MoveStatus = "game_over"
)

// MoveResult is the outcome of applying a move. Winner is set only for
// MoveGameOver.
type MoveResult struct {
	Status MoveStatus `json:"status"`
	Winner Stone      `json:"winner,omitempty"`
}
