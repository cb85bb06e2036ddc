package errors

import "errors"

var (
	ErrInvalidMove          = errors.New("invalid move")
	ErrMalformedSave        = errors.New("incorrect file contents")
	ErrDimensionOutOfBounds = errors.New("invalid board dimension")
	ErrInvalidPlayerType    = errors.New("invalid player type")
	ErrGameOver             = errors.New("game is over")
	ErrBoardFull            = errors.New("board has no empty square")
	ErrNotComputerTurn      = errors.New("side to move is not a computer player")
	ErrNotHumanTurn         = errors.New("side to move is not a human player")
	ErrGameNotFound         = errors.New("game not found")
	ErrInternal             = errors.New("internal error")
)
