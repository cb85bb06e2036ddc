package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runWith(args []string, input string) result {
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(input), &stdout, &stderr, zap.NewNop().Sugar())
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

const emptyBoard4 = "/----\\\n|....|\n|....|\n|....|\n|....|\n\\----/\n"

func TestArgumentErrors(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(malformed, []byte("4 4 0 1 1 0 2 2 0\n....\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no arguments", nil, exitUsage},
		{"too many arguments", []string{"h", "h", "4", "4", "4"}, exitUsage},
		{"height without width", []string{"h", "h", "4"}, exitUsage},
		{"bad player type", []string{"h", "x", "4", "4"}, exitPlayerType},
		{"long player type", []string{"hh", "c", "4", "4"}, exitPlayerType},
		{"board too small", []string{"h", "h", "3", "4"}, exitDimension},
		{"board too large", []string{"h", "c", "4", "1001"}, exitDimension},
		{"width not a number", []string{"c", "h", "4", "four"}, exitDimension},
		{"missing file", []string{"h", "h", filepath.Join(dir, "absent.txt")}, exitOpenFile},
		{"malformed file", []string{"h", "h", malformed}, exitFileContents},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := runWith(test.args, "")
			if got.code != test.want {
				t.Fatalf("exit = %d, want %d (stderr %q)", got.code, test.want, got.stderr)
			}
			if want := exitMessages[test.want] + "\n"; got.stderr != want {
				t.Errorf("stderr = %q, want %q", got.stderr, want)
			}
			if got.stdout != "" {
				t.Errorf("stdout = %q, want nothing", got.stdout)
			}
		})
	}
}

func TestEndOfInput(t *testing.T) {
	got := runWith([]string{"h", "h", "4", "4"}, "")
	if got.code != exitEndOfInput {
		t.Fatalf("exit = %d, want %d", got.code, exitEndOfInput)
	}
	if diff := cmp.Diff(emptyBoard4+"Player O> ", got.stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if got.stderr != "End of input from user\n" {
		t.Errorf("stderr = %q", got.stderr)
	}
}

func TestHumanGame(t *testing.T) {
	input := "\n0 1\n9 9\nnonsense\n0 0\n1 0\n"
	got := runWith([]string{"h", "h", "4", "4"}, input)
	if got.code != exitOK {
		t.Fatalf("exit = %d, want 0 (stderr %q)", got.code, got.stderr)
	}

	want := emptyBoard4 +
		"Player O> " +
		"Player O> " +
		"/----\\\n|.O..|\n|....|\n|....|\n|....|\n\\----/\n" +
		"Player X> " +
		"Player X> " +
		"Player X> " +
		"/----\\\n|XO..|\n|....|\n|....|\n|....|\n\\----/\n" +
		"Player O> " +
		"/----\\\n|XO..|\n|O...|\n|....|\n|....|\n\\----/\n" +
		"Player O wins\n"
	if diff := cmp.Diff(want, got.stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestComputerPlaysScript(t *testing.T) {
	got := runWith([]string{"c", "h", "4", "4"}, "")
	if got.code != exitEndOfInput {
		t.Fatalf("exit = %d, want %d", got.code, exitEndOfInput)
	}
	want := emptyBoard4 +
		"Player O: 1 0\n" +
		"/----\\\n|....|\n|O...|\n|....|\n|....|\n\\----/\n" +
		"Player X> "
	if diff := cmp.Diff(want, got.stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.txt")
	got := runWith([]string{"h", "h", "4", "4"}, "0 0\nw"+path+"\n")
	if got.code != exitEndOfInput {
		t.Fatalf("exit = %d, want %d", got.code, exitEndOfInput)
	}

	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("4 4 1 1 0 0 2 2 0\nO...\n....\n....\n....\n", string(saved)); diff != "" {
		t.Errorf("save file mismatch (-want +got):\n%s", diff)
	}

	got = runWith([]string{"h", "h", path}, "")
	want := "/----\\\n|O...|\n|....|\n|....|\n|....|\n\\----/\nPlayer X> "
	if diff := cmp.Diff(want, got.stdout); diff != "" {
		t.Errorf("loaded game stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestListGroupIDs(t *testing.T) {
	got := runWith([]string{"h", "h", "4", "4"}, "0 0\n3 3\n0 1\n~\n")
	want := "1, 1, 0, 0, \n0, 0, 0, 0, \n0, 0, 0, 0, \n0, 0, 0, 0, \n"
	if !strings.Contains(got.stdout, want) {
		t.Errorf("stdout %q does not list group ids %q", got.stdout, want)
	}
}

func TestLongLineIgnored(t *testing.T) {
	got := runWith([]string{"h", "h", "4", "4"}, "0 0"+strings.Repeat(" ", 80)+"\n")
	if got.code != exitEndOfInput {
		t.Fatalf("exit = %d, want %d", got.code, exitEndOfInput)
	}
	if diff := cmp.Diff(emptyBoard4+"Player O> Player O> ", got.stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}
