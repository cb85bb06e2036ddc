// boardpdf renders a NoGo save file as a one page PDF diagram.
//
//	boardpdf savefile [output.pdf]
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"nogo/internal/render"
	"nogo/internal/savefile"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "boardpdf:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) != 1 && len(args) != 2 {
		return fmt.Errorf("usage: boardpdf savefile [output.pdf]")
	}
	input := args[0]
	output := strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
	if len(args) == 2 {
		output = args[1]
	}

	snap, err := savefile.Load(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := render.PDF(f, filepath.Base(input), snap); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "PDF created:", output)
	return nil
}
