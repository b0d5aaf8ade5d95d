package main

import (
	"math"

	"github.com/ha1tch/playcourt/pkg/viewport"
)

// cellSize is the virtual screen-pixel box one terminal cell stands for.
type cellSize struct {
	W, H int
}

// screenSize converts a cell count to virtual screen pixels.
func (c cellSize) screenSize(cols, rows int) (w, h float64) {
	return float64(cols * c.W), float64(rows * c.H)
}

// toScreen returns the top-left screen pixel of a cell.
func (c cellSize) toScreen(col, row int) (x, y float64) {
	return float64(col * c.W), float64(row * c.H)
}

// centre returns the screen pixel at the middle of a cell. Pointer events
// are reported there.
func (c cellSize) centre(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * float64(c.W), (float64(row) + 0.5) * float64(c.H)
}

// cellsFor returns how many cells cover n screen pixels along an axis of
// the given cell size, rounding up.
func cellsFor(n float64, cell int) int {
	return int(math.Ceil(n / float64(cell)))
}

// screenLayout places the panels and the canvas on the cell grid.
type screenLayout struct {
	PrimaryCols int // toolbox panel width

	CanvasCol, CanvasRow   int
	CanvasCols, CanvasRows int

	HelpVisible bool
	HelpCol     int
	HelpCols    int
}

// layoutFor lays out a cols x rows drawing area for a canvas of world size
// vw x vh fitted at fit.Scale.
func layoutFor(cols, rows int, cells cellSize, policy viewport.FitPolicy, fit viewport.FitResult, vw, vh float64) screenLayout {
	l := screenLayout{
		PrimaryCols: cellsFor(policy.PrimaryWidth, cells.W),
		CanvasCol:   cellsFor(policy.PrimaryWidth+policy.Gap, cells.W),
	}

	l.CanvasCols = int(math.Round(vw * fit.Scale / float64(cells.W)))
	l.CanvasRows = int(math.Round(vh * fit.Scale / float64(cells.H)))
	if avail := cols - l.CanvasCol; l.CanvasCols > avail {
		l.CanvasCols = max(avail, 0)
	}
	if l.CanvasRows > rows {
		l.CanvasRows = max(rows, 0)
	}

	if fit.SecondaryVisible {
		l.HelpCol = l.CanvasCol + l.CanvasCols + cellsFor(policy.Gap, cells.W)
		l.HelpCols = cols - l.HelpCol
		l.HelpVisible = l.HelpCols > 0
	}
	return l
}
