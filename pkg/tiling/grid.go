package tiling

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"
)

// Grid is the result of fitting pieces onto a page: a uniform scale and
// the integer cell layout it allows. CellOrigin positions are in page
// coordinates, y growing downward.
type Grid struct {
	Cols  int
	Rows  int
	Scale float64

	// PieceWidth and PieceHeight are the scaled maximum piece extents;
	// every cell reserves this box plus the label band below it.
	PieceWidth  float64
	PieceHeight float64
	LabelBand   float64

	OriginX float64
	OriginY float64
	StepX   float64
	StepY   float64
}

// PerPage returns the number of grid cells on one page.
func (g Grid) PerPage() int { return g.Cols * g.Rows }

// CellOrigin returns the top-left corner of cell i on its page. Cells are
// numbered row-major from zero.
func (g Grid) CellOrigin(i int) geom.Coord {
	col := i % g.Cols
	row := i / g.Cols
	return geom.Coord{
		X: g.OriginX + float64(col)*g.StepX,
		Y: g.OriginY + float64(row)*g.StepY,
	}
}

// FitGrid computes the largest uniform scale at which MinCols pieces of
// width maxW fit across the page and MinRows pieces of height maxH fit
// down it, label bands included. The actual column and row counts are then
// recomputed at that scale and may exceed the request.
func FitGrid(pc PageConfig, maxW, maxH float64) (Grid, error) {
	if maxW <= 0 || maxH <= 0 {
		return Grid{}, fmt.Errorf("piece extent must be positive, got %gx%g", maxW, maxH)
	}
	cols := max(pc.MinCols, 1)
	rows := max(pc.MinRows, 1)

	availW := pc.Width - 2*pc.Margin
	availH := pc.Height - 2*pc.Margin

	wScale := (availW - float64(cols-1)*pc.Padding) / (float64(cols) * maxW)
	hScale := (availH - float64(rows-1)*pc.Padding - float64(rows)*pc.LabelBand) / (float64(rows) * maxH)
	scale := min(wScale, hScale)
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return Grid{}, ErrPageTooSmall
	}

	g := Grid{
		Scale:       scale,
		PieceWidth:  maxW * scale,
		PieceHeight: maxH * scale,
		LabelBand:   pc.LabelBand,
		OriginX:     pc.Margin,
		OriginY:     pc.Margin,
	}
	g.StepX = g.PieceWidth + pc.Padding
	g.StepY = g.PieceHeight + pc.LabelBand + pc.Padding

	// The epsilon absorbs float error when a constraint is exactly
	// binding, so the requested counts are always reached.
	g.Cols = int((availW + pc.Padding + 1e-9) / g.StepX)
	g.Rows = int((availH + pc.Padding + 1e-9) / g.StepY)
	g.Cols = max(g.Cols, cols)
	g.Rows = max(g.Rows, rows)
	return g, nil
}
