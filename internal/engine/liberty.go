package engine

import "nogo/internal/domain/game"

// verdict is the result of a liberty scan.
type verdict struct {
	over   bool
	winner game.Stone
}

// scanLiberties walks the board in row-major order looking for stones and
// strings without liberties. Any dead opposing material means mover wins and
// ends the scan at once. Dead material of mover's own colour only decides the
// game for the opponent once the whole board is known to hold no dead
// opposing material.
func scanLiberties(b *Board, l *Ledger, mover game.Stone) verdict {
	live := l.Live()
	captured := make([]bool, live+1)
	colours := make([]game.Stone, live+1)
	for id := 1; id <= live; id++ {
		captured[id] = true
	}

	selfCaptured := false
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			stone := b.At(row, col)
			if stone == game.Empty {
				continue
			}
			p := point{row, col}
			id := l.At(row, col)
			if !id.Grouped() {
				if b.hasLiberty(p) {
					continue
				}
				if stone != mover {
					return verdict{over: true, winner: mover}
				}
				selfCaptured = true
				continue
			}
			colours[id] = stone
			if b.hasLiberty(p) {
				captured[id] = false
			}
		}
	}

	for id := 1; id <= live; id++ {
		if !captured[id] {
			continue
		}
		if colours[id] != mover {
			return verdict{over: true, winner: mover}
		}
		selfCaptured = true
	}

	if selfCaptured {
		return verdict{over: true, winner: mover.Opponent()}
	}
	return verdict{}
}
