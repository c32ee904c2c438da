// Package voxel samples periodic crystal structures onto regular 3D grids.
package voxel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sampling errors.
var (
	ErrInvalidSpec   = errors.New("invalid sampling spec")
	ErrUnknownMethod = errors.New("unknown voxel method")
)

// MaxResolution bounds Spec.Resolution. A grid of that size already holds
// 2^30 samples; larger ones would overflow int on 32-bit platforms.
const MaxResolution = 1 << 10

// Spec describes an N x N x N grid over [0, XMax] x [0, YMax] x [0, ZMax].
// Samples sit at bin centers.
type Spec struct {
	Resolution       int
	XMax, YMax, ZMax float64

	// LegacyOffsets shifts the y and z samples by half an x bin instead of
	// half of their own bin, matching grids produced by earlier releases.
	LegacyOffsets bool
}

// Cube returns a spec with the same bound on every axis.
func Cube(resolution int, max float64) Spec {
	return Spec{Resolution: resolution, XMax: max, YMax: max, ZMax: max}
}

// Validate checks that the resolution and all bounds are positive.
func (s Spec) Validate() error {
	if err := checkResolution(s.Resolution); err != nil {
		return err
	}
	for _, b := range []struct {
		axis string
		max  float64
	}{{"x", s.XMax}, {"y", s.YMax}, {"z", s.ZMax}} {
		// Written as !(max > 0) so NaN is rejected too.
		if !(b.max > 0) || math.IsInf(b.max, 1) {
			return fmt.Errorf("%w: %s_max must be positive and finite, got %g", ErrInvalidSpec, b.axis, b.max)
		}
	}
	return nil
}

func checkResolution(n int) error {
	if n <= 0 || n > MaxResolution {
		return fmt.Errorf("%w: resolution must be in [1, %d], got %d", ErrInvalidSpec, MaxResolution, n)
	}
	return nil
}

// Extent returns the upper bounds of the sampled cube.
func (s Spec) Extent() [3]float64 {
	return [3]float64{s.XMax, s.YMax, s.ZMax}
}

// Axes returns the sample coordinates along x, y and z.
func (s Spec) Axes() (xs, ys, zs []float64) {
	n := s.Resolution
	xOff := s.XMax / float64(2*n)
	yOff := s.YMax / float64(2*n)
	zOff := s.ZMax / float64(2*n)
	if s.LegacyOffsets {
		yOff, zOff = xOff, xOff
	}
	return axis(n, s.XMax, xOff), axis(n, s.YMax, yOff), axis(n, s.ZMax, zOff)
}

// axis returns n bin-centered samples over [0, max). The last sample never
// reaches max.
func axis(n int, max, offset float64) []float64 {
	step := max / float64(n)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i) * step
	}
	floats.AddConst(offset, xs)
	return xs
}
