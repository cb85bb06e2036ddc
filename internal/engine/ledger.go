package engine

import "fmt"

// GroupID identifies the string a stone belongs to.
//
// NoGroup marks a solitary stone (or an empty square). Pending marks a
// solitary neighbour that is joining the string of the stone currently being
// incorporated; it never survives an Incorporate call. Positive values are
// live string ids and always form the dense range 1..Live().
type GroupID int32

const (
	NoGroup GroupID = 0
	Pending GroupID = -1
)

// Grouped reports whether id names a live string.
func (id GroupID) Grouped() bool {
	return id > 0
}

// Ledger holds a group id for every square of a board.
type Ledger struct {
	height int
	width  int
	ids    []GroupID
	live   int
}

func NewLedger(height, width int) *Ledger {
	return &Ledger{
		height: height,
		width:  width,
		ids:    make([]GroupID, height*width),
	}
}

// Live is the number of live string ids.
func (l *Ledger) Live() int {
	return l.live
}

// At returns the group id of (row, col), NoGroup outside the grid.
func (l *Ledger) At(row, col int) GroupID {
	if row < 0 || row >= l.height || col < 0 || col >= l.width {
		return NoGroup
	}
	return l.ids[row*l.width+col]
}

func (l *Ledger) set(p point, id GroupID) {
	l.ids[p.row*l.width+p.col] = id
}

// Grid returns a copy of the ids, one slice per row.
func (l *Ledger) Grid() [][]GroupID {
	grid := make([][]GroupID, l.height)
	for r := range grid {
		grid[r] = append([]GroupID(nil), l.ids[r*l.width:(r+1)*l.width]...)
	}
	return grid
}

// Incorporate links the stone at (row, col) with its same coloured
// neighbours. The smallest neighbouring id survives; solitary neighbours are
// folded into it; every other neighbouring id is merged away and the id space
// is compacted.
func (l *Ledger) Incorporate(b *Board, row, col int) {
	origin := point{row, col}
	colour := b.At(row, col)
	if !colour.IsStone() {
		panic(fmt.Sprintf("engine: incorporate on empty square (%d, %d)", row, col))
	}

	var found []GroupID
	addFound := func(id GroupID) {
		for _, f := range found {
			if f == id {
				return
			}
		}
		if len(found) == len(neighbours)+1 {
			panic("engine: more adjacent strings than neighbours")
		}
		found = append(found, id)
	}

	// A stone already linked by an earlier neighbour (restore replay) keeps
	// its own string in play.
	if own := l.At(row, col); own.Grouped() {
		addFound(own)
	}

	joining := false
	for _, n := range origin.adjacent() {
		if b.At(n.row, n.col) != colour {
			continue
		}
		switch id := l.At(n.row, n.col); {
		case id == NoGroup:
			l.set(n, Pending)
			joining = true
		case id.Grouped():
			addFound(id)
		}
	}

	if len(found) == 0 && !joining {
		return
	}

	var survivor GroupID
	if len(found) == 0 {
		l.live++
		survivor = GroupID(l.live)
	} else {
		survivor = found[0]
		for _, id := range found[1:] {
			if id < survivor {
				survivor = id
			}
		}
	}

	l.set(origin, survivor)
	for _, n := range origin.adjacent() {
		if l.At(n.row, n.col) == Pending {
			l.set(n, survivor)
		}
	}

	if len(found) < 2 {
		return
	}
	eliminated := make([]GroupID, 0, len(found)-1)
	for _, id := range found {
		if id != survivor {
			eliminated = append(eliminated, id)
		}
	}
	l.compact(survivor, eliminated)
}

// compact relabels eliminated ids to survivor and closes the gaps they leave,
// in a single pass over the grid.
func (l *Ledger) compact(survivor GroupID, eliminated []GroupID) {
	remap := compaction(l.live, survivor, eliminated)
	for i, id := range l.ids {
		if id.Grouped() {
			l.ids[i] = remap[id]
		}
	}
	l.live -= len(eliminated)
}

// compaction maps every id in 1..live to its id after the merge. Index 0 is
// unused.
func compaction(live int, survivor GroupID, eliminated []GroupID) []GroupID {
	gone := make([]bool, live+1)
	for _, id := range eliminated {
		gone[id] = true
	}
	remap := make([]GroupID, live+1)
	shift := 0
	for id := 1; id <= live; id++ {
		if gone[id] {
			shift++
			continue
		}
		remap[id] = GroupID(id - shift)
	}
	for _, id := range eliminated {
		remap[id] = remap[survivor]
	}
	return remap
}
