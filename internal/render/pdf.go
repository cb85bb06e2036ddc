package render

import (
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"nogo/internal/domain/game"
)

const (
	pageMargin  = 15.0
	boardWidth  = 180.0
	boardHeight = 240.0
	titleHeight = 10.0
)

// PDF draws snap as a one page diagram: a grid with a disc on every stone,
// filled for O and hollow for X.
func PDF(w io.Writer, title string, snap game.Snapshot) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Courier", "", 10)
	pdf.Cell(boardWidth, titleHeight, title)
	pdf.Ln(titleHeight)
	pdf.Cell(boardWidth, titleHeight/2, fmt.Sprintf("%dx%d, %s to move", snap.Height, snap.Width, snap.NextPlayer))
	pdf.Ln(titleHeight)

	cell := math.Min(boardWidth/float64(snap.Width), boardHeight/float64(snap.Height))
	top := pdf.GetY()
	left := pageMargin

	pdf.SetLineWidth(math.Min(0.2, cell/10))
	pdf.SetDrawColor(0, 0, 0)
	for r := 0; r <= snap.Height; r++ {
		y := top + float64(r)*cell
		pdf.Line(left, y, left+float64(snap.Width)*cell, y)
	}
	for c := 0; c <= snap.Width; c++ {
		x := left + float64(c)*cell
		pdf.Line(x, top, x, top+float64(snap.Height)*cell)
	}

	radius := cell * 0.4
	for r, row := range snap.Rows {
		for c := 0; c < len(row); c++ {
			x := left + (float64(c)+0.5)*cell
			y := top + (float64(r)+0.5)*cell
			switch game.Stone(row[c]) {
			case game.Black:
				pdf.SetFillColor(0, 0, 0)
				pdf.Circle(x, y, radius, "FD")
			case game.White:
				pdf.SetFillColor(255, 255, 255)
				pdf.Circle(x, y, radius, "FD")
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
