package movegen

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nogo/internal/domain/game"
	"nogo/internal/engine"
	errs "nogo/internal/errors"
)

func TestStep(t *testing.T) {
	black := scripts[game.Black]
	cur := game.Cursor{Row: 1, Col: 4}
	want := []game.Cursor{
		{Row: 2, Col: 5, Count: 1},
		{Row: 4, Col: 6, Count: 2},
		{Row: 5, Col: 6, Count: 3},
		{Row: 5, Col: 7, Count: 4},
		{Row: 4, Col: 6, Count: 5},
		{Row: 5, Col: 7, Count: 6},
	}
	var got []game.Cursor
	for range want {
		cur = step(cur, black, 9, 9)
		got = append(got, cur)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("black sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestStepWraps(t *testing.T) {
	white := scripts[game.White]
	tests := []struct {
		name string
		from game.Cursor
		want game.Cursor
	}{
		{
			name: "diagonal off the corner",
			from: game.Cursor{Row: 3, Col: 3, Count: 0},
			want: game.Cursor{Row: 0, Col: 0, Count: 1},
		},
		{
			name: "two rows down past the edge",
			from: game.Cursor{Row: 3, Col: 1, Count: 1},
			want: game.Cursor{Row: 1, Col: 2, Count: 2},
		},
		{
			name: "jump uses the raw start column",
			from: game.Cursor{Row: 0, Col: 0, Count: 9},
			want: game.Cursor{Row: 1, Col: 0, Count: 10},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := step(test.from, white, 4, 4)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("step mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNextCandidate(t *testing.T) {
	s, err := engine.NewSession(9, 9)
	if err != nil {
		t.Fatal(err)
	}
	s.Start()
	var src Source = Scripted{}

	cand, err := src.NextCandidate(s)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Candidate{Row: 1, Col: 4, Playable: true}, cand); diff != "" {
		t.Fatalf("first candidate mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(game.Cursor{Row: 2, Col: 5, Count: 1}, s.Cursor(game.Black)); diff != "" {
		t.Errorf("black cursor mismatch (-want +got):\n%s", diff)
	}
	if _, err := s.ApplyMove(cand.Row, cand.Col); err != nil {
		t.Fatal(err)
	}

	cand, err = src.NextCandidate(s)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Candidate{Row: 2, Col: 1, Playable: true}, cand); diff != "" {
		t.Errorf("white candidate mismatch (-want +got):\n%s", diff)
	}
}

func TestNextCandidateSkipsOccupied(t *testing.T) {
	s, err := engine.NewSession(9, 9)
	if err != nil {
		t.Fatal(err)
	}
	s.Start()
	// Black takes the square white's sequence will reach after one step.
	if _, err := s.ApplyMove(3, 2); err != nil {
		t.Fatal(err)
	}

	cand, err := Scripted{}.NextCandidate(s)
	if err != nil {
		t.Fatal(err)
	}
	if !cand.Playable {
		t.Fatalf("white's first candidate (%d, %d) reported occupied", cand.Row, cand.Col)
	}
	// (2,1) -> (3,2) occupied -> (5,3).
	if diff := cmp.Diff(game.Cursor{Row: 5, Col: 3, Count: 2}, s.Cursor(game.White)); diff != "" {
		t.Errorf("white cursor mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.ApplyMove(5, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplyMove(0, 0); err != nil {
		t.Fatal(err)
	}
	cand, err = Scripted{}.NextCandidate(s)
	if err != nil {
		t.Fatal(err)
	}
	if cand.Playable {
		t.Errorf("candidate on occupied square (%d, %d) reported playable", cand.Row, cand.Col)
	}
}

func TestNextCandidateFullBoard(t *testing.T) {
	rows := []string{"OXOX", "XOXO", "OXOX", "XOXO"}
	s, err := engine.Restore(game.Snapshot{
		Height: 4, Width: 4, NextPlayer: game.Black,
		Black: game.Cursor{Row: 1, Col: 1}, White: game.Cursor{Row: 2, Col: 2},
		Rows: rows,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := (Scripted{}).NextCandidate(s); !errors.Is(err, errs.ErrBoardFull) {
		t.Errorf("error = %v, want %v", err, errs.ErrBoardFull)
	}
}
