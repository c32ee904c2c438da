// Package preview renders voxel grids as PNG heat maps and HTML value
// histograms.
package preview

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Faultbox/crystalz/pkg/voxel"
)

// ErrSliceOutOfRange is returned when a z index falls outside the grid.
var ErrSliceOutOfRange = errors.New("slice index out of range")

// Size is the edge length of rendered previews.
const Size = 6 * vg.Inch

const paletteSize = 32

// plane adapts one 2D field of a grid to plotter.GridXYZ. Columns are x
// samples, rows are y samples, both placed at cell centers.
type plane struct {
	n      int
	dx, dy float64
	z      func(c, r int) float64
}

func (p plane) Dims() (c, r int)   { return p.n, p.n }
func (p plane) Z(c, r int) float64 { return p.z(c, r) }
func (p plane) X(c int) float64    { return (float64(c) + 0.5) * p.dx }
func (p plane) Y(r int) float64    { return (float64(r) + 0.5) * p.dy }

func newPlane(g *voxel.Grid) plane {
	n := float64(g.N)
	return plane{n: g.N, dx: g.Extent[0] / n, dy: g.Extent[1] / n}
}

// SlicePNG renders z-slice k of g to path.
func SlicePNG(g *voxel.Grid, k int, path string) error {
	if k < 0 || k >= g.N {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrSliceOutOfRange, k, g.N)
	}
	rows := g.Slice(k)
	pl := newPlane(g)
	pl.z = func(c, r int) float64 { return rows[r][c] }

	z := (float64(k) + 0.5) * g.Extent[2] / float64(g.N)
	title := fmt.Sprintf("%s z[%d] = %.3g", g.Method, k, z)
	return render(pl, title, path)
}

// ProjectionPNG renders the sum of all z-slices of g to path.
func ProjectionPNG(g *voxel.Grid, path string) error {
	if g.N == 0 {
		return fmt.Errorf("%w: empty grid", ErrSliceOutOfRange)
	}
	sums := make([]float64, g.N*g.N)
	for k := 0; k < g.N; k++ {
		for j := 0; j < g.N; j++ {
			for i := 0; i < g.N; i++ {
				sums[j*g.N+i] += g.At(k, j, i)
			}
		}
	}
	pl := newPlane(g)
	pl.z = func(c, r int) float64 { return sums[r*g.N+c] }

	return render(pl, fmt.Sprintf("%s z-sum", g.Method), path)
}

func render(pl plane, title, path string) error {
	hm := plotter.NewHeatMap(pl, palette.Heat(paletteSize, 1))
	if hm.Max <= hm.Min {
		// Uniform field; widen the range so the palette mapping stays finite.
		hm.Max = hm.Min + 1
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(hm)

	if err := p.Save(Size, Size, path); err != nil {
		return fmt.Errorf("saving preview %s: %w", path, err)
	}
	return nil
}
