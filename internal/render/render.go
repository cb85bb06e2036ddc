// Package render draws boards for people: framed text for the console and
// a PDF diagram.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"nogo/internal/engine"
)

// Board writes rows inside a frame:
//
//	/----\
//	|..O.|
//	\----/
func Board(w io.Writer, rows []string) error {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	edge := strings.Repeat("-", width)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "/%s\\\n", edge)
	for _, row := range rows {
		fmt.Fprintf(bw, "|%s|\n", row)
	}
	fmt.Fprintf(bw, "\\%s/\n", edge)
	return bw.Flush()
}

// GroupIDs writes the string id of every square, one board row per line.
func GroupIDs(w io.Writer, ids [][]engine.GroupID) error {
	bw := bufio.NewWriter(w)
	for _, row := range ids {
		for _, id := range row {
			fmt.Fprintf(bw, "%d, ", id)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
