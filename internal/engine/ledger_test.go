package engine

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nogo/internal/domain/game"
)

func TestLedgerRowOfFour(t *testing.T) {
	s := newStarted(t, 4, 4)
	res := playAll(t, s,
		coord{0, 0}, coord{3, 0},
		coord{0, 1}, coord{3, 1},
		coord{0, 2}, coord{3, 2},
		coord{0, 3},
	)
	if res.Status != game.MoveAccepted {
		t.Fatalf("last move status = %s, want %s", res.Status, game.MoveAccepted)
	}

	id := s.ledger.At(0, 0)
	for col := 1; col < 4; col++ {
		if got := s.ledger.At(0, col); got != id {
			t.Errorf("(0, %d) id = %d, want %d", col, got, id)
		}
	}
	if got := groupSize(s, id); got != 4 {
		t.Errorf("black string size = %d, want 4", got)
	}
	checkLedger(t, s)
}

func TestLedgerLazyAllocation(t *testing.T) {
	s := newStarted(t, 5, 5)
	playAll(t, s, coord{2, 2}, coord{4, 4})
	if s.LiveGroups() != 0 {
		t.Fatalf("solitary stones allocated %d ids", s.LiveGroups())
	}
	if got := s.ledger.At(2, 2); got != NoGroup {
		t.Fatalf("solitary stone id = %d, want %d", got, NoGroup)
	}

	playAll(t, s, coord{2, 3})
	if s.LiveGroups() != 1 {
		t.Fatalf("live = %d, want 1", s.LiveGroups())
	}
	if a, b := s.ledger.At(2, 2), s.ledger.At(2, 3); a != 1 || b != 1 {
		t.Fatalf("ids = %d, %d, want 1, 1", a, b)
	}
	if got := s.ledger.At(4, 4); got != NoGroup {
		t.Errorf("untouched white stone id = %d, want %d", got, NoGroup)
	}
	checkLedger(t, s)
}

func TestLedgerSolitaryJoinsExistingString(t *testing.T) {
	s := restoreRows(t, game.Black,
		"OO.O.",
		".....",
		".....",
		".....",
	)
	s.Start()
	if s.LiveGroups() != 1 {
		t.Fatalf("live = %d, want 1", s.LiveGroups())
	}
	playAll(t, s, coord{0, 2})
	for col := 0; col < 4; col++ {
		if got := s.ledger.At(0, col); got != 1 {
			t.Errorf("(0, %d) id = %d, want 1", col, got)
		}
	}
	if s.LiveGroups() != 1 {
		t.Errorf("live = %d, want 1", s.LiveGroups())
	}
	checkLedger(t, s)
}

func TestLedgerMerge(t *testing.T) {
	s := restoreRows(t, game.Black,
		"OO.OO",
		"....O",
		".....",
		"XX...",
		"...XX",
	)
	s.Start()
	if s.LiveGroups() != 4 {
		t.Fatalf("live before merge = %d, want 4", s.LiveGroups())
	}
	left, right := s.ledger.At(0, 0), s.ledger.At(0, 3)
	m, n := groupSize(s, left), groupSize(s, right)

	playAll(t, s, coord{0, 2})

	if s.LiveGroups() != 3 {
		t.Fatalf("live after merge = %d, want 3", s.LiveGroups())
	}
	merged := s.ledger.At(0, 2)
	if merged != left {
		t.Errorf("surviving id = %d, want smallest %d", merged, left)
	}
	if got := groupSize(s, merged); got != m+n+1 {
		t.Errorf("merged size = %d, want %d", got, m+n+1)
	}

	want := [][]GroupID{
		{1, 1, 1, 1, 1},
		{0, 0, 0, 0, 1},
		{0, 0, 0, 0, 0},
		{2, 2, 0, 0, 0},
		{0, 0, 0, 3, 3},
	}
	if diff := cmp.Diff(want, s.GroupIDs()); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	checkLedger(t, s)
}

func TestLedgerThreeWayMerge(t *testing.T) {
	s := restoreRows(t, game.White,
		"X.X.",
		"X.XO",
		".X..",
		".X.O",
	)
	s.Start()
	if s.LiveGroups() != 3 {
		t.Fatalf("live before merge = %d, want 3", s.LiveGroups())
	}

	playAll(t, s, coord{1, 1})

	if s.LiveGroups() != 1 {
		t.Fatalf("live after merge = %d, want 1", s.LiveGroups())
	}
	if got := groupSize(s, 1); got != 7 {
		t.Errorf("merged size = %d, want 7", got)
	}
	checkLedger(t, s)
}

func TestCompaction(t *testing.T) {
	tests := []struct {
		name       string
		live       int
		survivor   GroupID
		eliminated []GroupID
		want       []GroupID
	}{
		{
			name:       "adjacent ids",
			live:       3,
			survivor:   1,
			eliminated: []GroupID{2},
			want:       []GroupID{0, 1, 1, 2},
		},
		{
			name:       "gaps above survivor",
			live:       6,
			survivor:   2,
			eliminated: []GroupID{4, 5},
			want:       []GroupID{0, 1, 2, 3, 2, 2, 4},
		},
		{
			name:       "last id",
			live:       4,
			survivor:   3,
			eliminated: []GroupID{4},
			want:       []GroupID{0, 1, 2, 3, 3},
		},
		{
			name:       "three eliminated",
			live:       5,
			survivor:   1,
			eliminated: []GroupID{2, 3, 5},
			want:       []GroupID{0, 1, 1, 1, 2, 1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := compaction(test.live, test.survivor, test.eliminated)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("compaction mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestLedgerRandomGames plays random legal moves with capture checks off and
// compares the ledger with a flood fill after every move.
func TestLedgerRandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		height, width := 4+rng.Intn(5), 4+rng.Intn(5)
		s, err := NewSession(height, width)
		if err != nil {
			t.Fatal(err)
		}
		for _, sq := range rng.Perm(height * width) {
			row, col := sq/width, sq%width
			if _, err := s.ApplyMove(row, col); err != nil {
				t.Fatalf("round %d: move (%d, %d): %v", round, row, col, err)
			}
			checkLedger(t, s)
		}
	}
}

func TestRestoreMatchesIncrementalLedger(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s, err := NewSession(9, 9)
	if err != nil {
		t.Fatal(err)
	}
	for _, sq := range rng.Perm(81)[:60] {
		if _, err := s.ApplyMove(sq/9, sq%9); err != nil {
			t.Fatal(err)
		}
	}

	restored, err := Restore(s.Serialize())
	if err != nil {
		t.Fatal(err)
	}
	checkLedger(t, restored)
	if restored.LiveGroups() != s.LiveGroups() {
		t.Errorf("restored live = %d, incremental live = %d", restored.LiveGroups(), s.LiveGroups())
	}
}
