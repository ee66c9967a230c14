// Package render draws isotope distributions and similarity matrices to
// image files. It consumes plain point sequences and matrices so the
// computation packages stay free of plotting dependencies.
package render

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-masskit/ms/envelope"
)

var (
	// ErrNoData indicates an empty distribution or matrix.
	ErrNoData = errors.New("render: nothing to plot")
	// ErrBadMatrix indicates a non-square matrix or a name list of the
	// wrong length.
	ErrBadMatrix = errors.New("render: matrix must be square and match names")
)

// SaveDistribution draws mass against probability as a stem plot and
// saves it to path. The image format follows the path extension.
func SaveDistribution(d envelope.Distribution, title, path string) error {
	if len(d) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "mass (Da)"
	p.Y.Label.Text = "probability"

	for _, pt := range d {
		stem, err := plotter.NewLine(plotter.XYs{
			{X: pt.Mass, Y: 0},
			{X: pt.Mass, Y: pt.Probability},
		})
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		p.Add(stem)
	}

	apex := make(plotter.XYs, len(d))
	for i, pt := range d {
		apex[i] = plotter.XY{X: pt.Mass, Y: pt.Probability}
	}
	scatter, err := plotter.NewScatter(apex)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)

	if err := p.Save(7*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// SaveMatrix draws a square similarity matrix as a heat map with one
// labelled row and column per name and saves it to path.
func SaveMatrix(m [][]float64, names []string, title, path string) error {
	if len(m) == 0 {
		return ErrNoData
	}
	if len(names) != len(m) {
		return ErrBadMatrix
	}
	for _, row := range m {
		if len(row) != len(m) {
			return ErrBadMatrix
		}
	}

	p := plot.New()
	p.Title.Text = title

	hm := plotter.NewHeatMap(matrixGrid(m), palette.Heat(12, 1))
	hm.Min = 0
	hm.Max = 1
	p.Add(hm)

	p.NominalX(names...)
	p.NominalY(names...)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// matrixGrid adapts a square matrix to the heat map's grid interface.
// Row 0 is drawn at the bottom.
type matrixGrid [][]float64

func (g matrixGrid) Dims() (c, r int)   { return len(g), len(g) }
func (g matrixGrid) Z(c, r int) float64 { return g[r][c] }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }
