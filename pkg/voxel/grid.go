package voxel

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Grid is a dense N x N x N scalar field. Values are indexed [k][j][i] where
// i runs along x, j along y and k along z, matching the memory order that
// volumetric renderers expect. Do not reorder.
type Grid struct {
	N      int
	Extent [3]float64 // XMax, YMax, ZMax
	Method string
	Values []float64
}

// NewGrid allocates a zeroed grid.
func NewGrid(n int, extent [3]float64) *Grid {
	return &Grid{
		N:      n,
		Extent: extent,
		Values: make([]float64, n*n*n),
	}
}

// Index returns the flat offset of sample (k, j, i).
func (g *Grid) Index(k, j, i int) int {
	return (k*g.N+j)*g.N + i
}

// At returns the value at (k, j, i).
func (g *Grid) At(k, j, i int) float64 {
	return g.Values[g.Index(k, j, i)]
}

// Set stores v at (k, j, i).
func (g *Grid) Set(k, j, i int, v float64) {
	g.Values[g.Index(k, j, i)] = v
}

// Shape returns the array dimensions in index order.
func (g *Grid) Shape() [3]int {
	return [3]int{g.N, g.N, g.N}
}

// Slice returns a copy of the z-slice k as rows of y, columns of x.
func (g *Grid) Slice(k int) [][]float64 {
	rows := make([][]float64, g.N)
	for j := range rows {
		start := g.Index(k, j, 0)
		rows[j] = append([]float64(nil), g.Values[start:start+g.N]...)
	}
	return rows
}

// Stats summarizes a grid.
type Stats struct {
	Min, Max, Mean float64
	// Filled is the fraction of samples with a positive value.
	Filled float64
}

// Stats computes summary statistics over all samples.
func (g *Grid) Stats() Stats {
	if len(g.Values) == 0 {
		return Stats{}
	}
	var filled int
	for _, v := range g.Values {
		if v > 0 {
			filled++
		}
	}
	n := float64(len(g.Values))
	return Stats{
		Min:    floats.Min(g.Values),
		Max:    floats.Max(g.Values),
		Mean:   floats.Sum(g.Values) / n,
		Filled: float64(filled) / n,
	}
}

// Histogram is a binned distribution of grid values. Bin i covers
// [Edges[i], Edges[i+1]).
type Histogram struct {
	Edges  []float64
	Counts []float64
	// Integral is set when every value is a whole number; bins are then one
	// unit wide and start at the smallest value.
	Integral bool
}

// Histogram bins the grid values. Integral grids, such as overlap counts,
// get one bin per value; other grids get the requested number of equal-width
// bins spanning [min, max].
func (g *Grid) Histogram(bins int) Histogram {
	if len(g.Values) == 0 {
		return Histogram{}
	}
	x := append([]float64(nil), g.Values...)
	sort.Float64s(x)
	lo, hi := x[0], x[len(x)-1]

	h := Histogram{Integral: true}
	for _, v := range x {
		if v != math.Trunc(v) {
			h.Integral = false
			break
		}
	}

	if h.Integral {
		h.Edges = make([]float64, int(hi-lo)+2)
		floats.Span(h.Edges, lo, hi+1)
	} else {
		if bins < 1 {
			bins = 1
		}
		h.Edges = make([]float64, bins+1)
		floats.Span(h.Edges, lo, hi)
		// The last bin is half-open; nudge its edge so hi is counted.
		h.Edges[bins] = math.Nextafter(hi, math.Inf(1))
	}
	h.Counts = stat.Histogram(nil, h.Edges, x, nil)
	return h
}
