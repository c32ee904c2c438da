// Package math provides the small amount of linear algebra needed for
// crystal lattices: 3x3 matrices and component-wise vector helpers.
package math

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Floor returns the component-wise floor of v.
func Floor(v r3.Vec) r3.Vec {
	return r3.Vec{X: math.Floor(v.X), Y: math.Floor(v.Y), Z: math.Floor(v.Z)}
}

// Frac returns the fractional part of each component, in [0, 1).
// Uses a true floor so negative components wrap correctly.
// A component that rounds up to exactly 1 is folded back to 0.
func Frac(v r3.Vec) r3.Vec {
	f := r3.Sub(v, Floor(v))
	return r3.Vec{X: fold(f.X), Y: fold(f.Y), Z: fold(f.Z)}
}

func fold(f float64) float64 {
	if f >= 1 {
		return 0
	}
	return f
}

// Combine returns a*u + b*v + c*w.
func Combine(a float64, u r3.Vec, b float64, v r3.Vec, c float64, w r3.Vec) r3.Vec {
	return r3.Add(r3.Add(r3.Scale(a, u), r3.Scale(b, v)), r3.Scale(c, w))
}
