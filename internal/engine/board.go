package engine

import (
	"fmt"

	"nogo/internal/domain/game"
	errs "nogo/internal/errors"
)

// point is a board coordinate.
type point struct {
	row, col int
}

// neighbours lists the four orthogonal offsets: right, left, down, up.
var neighbours = [4]point{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

func (p point) adjacent() [4]point {
	var out [4]point
	for i, d := range neighbours {
		out[i] = point{p.row + d.row, p.col + d.col}
	}
	return out
}

// Board is a fixed size grid of stones stored row-major.
type Board struct {
	height int
	width  int
	cells  []game.Stone
}

// InSizeBounds reports whether a height x width board may be created.
func InSizeBounds(height, width int) bool {
	return height >= game.MinSize && height <= game.MaxSize &&
		width >= game.MinSize && width <= game.MaxSize
}

// NewBoard returns an empty board.
func NewBoard(height, width int) (*Board, error) {
	if !InSizeBounds(height, width) {
		return nil, fmt.Errorf("%w: %dx%d, each side must be within [%d,%d]",
			errs.ErrDimensionOutOfBounds, height, width, game.MinSize, game.MaxSize)
	}
	cells := make([]game.Stone, height*width)
	for i := range cells {
		cells[i] = game.Empty
	}
	return &Board{height: height, width: width, cells: cells}, nil
}

func (b *Board) Height() int { return b.height }
func (b *Board) Width() int  { return b.width }

func (b *Board) onGrid(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

func (b *Board) index(row, col int) int {
	return row*b.width + col
}

// At returns the stone at (row, col), or game.OffBoard outside the grid.
func (b *Board) At(row, col int) game.Stone {
	if !b.onGrid(row, col) {
		return game.OffBoard
	}
	return b.cells[b.index(row, col)]
}

func (b *Board) IsEmpty(row, col int) bool {
	return b.At(row, col) == game.Empty
}

// Place puts colour on an empty square.
func (b *Board) Place(row, col int, colour game.Stone) error {
	if !b.onGrid(row, col) {
		return fmt.Errorf("%w: (%d, %d) is off the board", errs.ErrInvalidMove, row, col)
	}
	if !b.IsEmpty(row, col) {
		return fmt.Errorf("%w: (%d, %d) is occupied", errs.ErrInvalidMove, row, col)
	}
	b.cells[b.index(row, col)] = colour
	return nil
}

// hasLiberty reports whether any orthogonal neighbour is empty.
func (b *Board) hasLiberty(p point) bool {
	for _, n := range p.adjacent() {
		if b.IsEmpty(n.row, n.col) {
			return true
		}
	}
	return false
}

// touches reports whether any orthogonal neighbour holds colour.
func (b *Board) touches(p point, colour game.Stone) bool {
	for _, n := range p.adjacent() {
		if b.At(n.row, n.col) == colour {
			return true
		}
	}
	return false
}

// hasEmpty reports whether at least one square is still free.
func (b *Board) hasEmpty() bool {
	for _, s := range b.cells {
		if s == game.Empty {
			return true
		}
	}
	return false
}

// Row returns row r as save-file characters.
func (b *Board) Row(r int) string {
	start := b.index(r, 0)
	buf := make([]byte, b.width)
	for i, s := range b.cells[start : start+b.width] {
		buf[i] = byte(s)
	}
	return string(buf)
}

// Rows returns the whole board as save-file lines.
func (b *Board) Rows() []string {
	rows := make([]string, b.height)
	for r := range rows {
		rows[r] = b.Row(r)
	}
	return rows
}
