// Package savefile reads and writes the plain text game format:
//
//	height width nextIsX oRow oCol oCount xRow xCol xCount
//	<height lines of width characters from "XO.">
//
// Input is fully parsed and validated before a snapshot is returned.
package savefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"nogo/internal/domain/game"
	"nogo/internal/engine"
	errs "nogo/internal/errors"
)

const headerFields = 9

// Header is the typed first line of a save file.
type Header struct {
	Height  int
	Width   int
	NextIsX bool
	Black   game.Cursor
	White   game.Cursor
}

// ParseHeader tokenizes the first line of a save file.
func ParseHeader(line string) (Header, error) {
	fields := strings.Fields(line)
	if len(fields) != headerFields {
		return Header{}, fmt.Errorf("%w: header has %d fields, want %d", errs.ErrMalformedSave, len(fields), headerFields)
	}
	values := make([]int, headerFields)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Header{}, fmt.Errorf("%w: header field %d: %q is not a number", errs.ErrMalformedSave, i+1, f)
		}
		values[i] = v
	}

	var nextIsX bool
	switch values[2] {
	case 0:
	case 1:
		nextIsX = true
	default:
		return Header{}, fmt.Errorf("%w: next player flag %d", errs.ErrMalformedSave, values[2])
	}

	return Header{
		Height:  values[0],
		Width:   values[1],
		NextIsX: nextIsX,
		Black:   game.Cursor{Row: values[3], Col: values[4], Count: values[5]},
		White:   game.Cursor{Row: values[6], Col: values[7], Count: values[8]},
	}, nil
}

// String formats h as a header line without the newline.
func (h Header) String() string {
	next := 0
	if h.NextIsX {
		next = 1
	}
	return fmt.Sprintf("%d %d %d %d %d %d %d %d %d",
		h.Height, h.Width, next,
		h.Black.Row, h.Black.Col, h.Black.Count,
		h.White.Row, h.White.Col, h.White.Count)
}

// Read parses a save file into a validated snapshot.
func Read(r io.Reader) (game.Snapshot, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), game.MaxSize+64)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return game.Snapshot{}, fmt.Errorf("%w: %w", errs.ErrMalformedSave, err)
		}
		return game.Snapshot{}, fmt.Errorf("%w: empty file", errs.ErrMalformedSave)
	}
	header, err := ParseHeader(scanner.Text())
	if err != nil {
		return game.Snapshot{}, err
	}
	if !engine.InSizeBounds(header.Height, header.Width) {
		return game.Snapshot{}, fmt.Errorf("%w: %w: %dx%d", errs.ErrMalformedSave, errs.ErrDimensionOutOfBounds, header.Height, header.Width)
	}

	rows := make([]string, 0, header.Height)
	for len(rows) < header.Height && scanner.Scan() {
		rows = append(rows, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return game.Snapshot{}, fmt.Errorf("%w: %w", errs.ErrMalformedSave, err)
	}

	snap := game.Snapshot{
		Height:     header.Height,
		Width:      header.Width,
		NextPlayer: game.Black,
		Black:      header.Black,
		White:      header.White,
		Rows:       rows,
	}
	if header.NextIsX {
		snap.NextPlayer = game.White
	}
	if err := engine.Validate(snap); err != nil {
		return game.Snapshot{}, err
	}
	return snap, nil
}

// Write formats snap in save-file form.
func Write(w io.Writer, snap game.Snapshot) error {
	bw := bufio.NewWriter(w)
	header := Header{
		Height:  snap.Height,
		Width:   snap.Width,
		NextIsX: snap.NextPlayer == game.White,
		Black:   snap.Black,
		White:   snap.White,
	}
	if _, err := fmt.Fprintln(bw, header.String()); err != nil {
		return err
	}
	for _, row := range snap.Rows {
		if _, err := fmt.Fprintln(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Format returns snap as save-file text.
func Format(snap game.Snapshot) string {
	var sb strings.Builder
	_ = Write(&sb, snap)
	return sb.String()
}

// Load reads a save file from disk.
func Load(path string) (game.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return game.Snapshot{}, err
	}
	defer f.Close()
	return Read(f)
}

// Save writes snap to path, replacing any existing file.
func Save(path string, snap game.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
