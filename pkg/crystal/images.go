package crystal

import (
	"gonum.org/v1/gonum/spatial/r3"

	cmath "github.com/Faultbox/crystalz/pkg/math"
)

// ImagesPerAtom is the number of periodic copies produced for each atom:
// the atom itself plus its 26 neighbours.
const ImagesPerAtom = 27

// Images is the set of atom spheres extended by one periodic image in every
// direction. Kinds are dropped; only geometry is kept.
type Images struct {
	Centers      []r3.Vec
	SquaredRadii []float64
}

// Len returns the number of spheres.
func (im Images) Len() int {
	return len(im.Centers)
}

// Expand translates every atom by k1*v1 + k2*v2 + k3*v3 for each
// k1, k2, k3 in {-1, 0, 1}. Offsets are iterated in lexicographic order with
// k1 outermost; atoms are iterated inside each offset.
//
// Atoms are assumed to be smaller than one cell: a sphere reaching further
// than its neighbouring images is silently undercounted.
func Expand(s Structure) Images {
	v1, v2, v3 := s.Vectors()
	n := ImagesPerAtom * len(s.atoms)
	im := Images{
		Centers:      make([]r3.Vec, 0, n),
		SquaredRadii: make([]float64, 0, n),
	}

	for k1 := -1; k1 <= 1; k1++ {
		for k2 := -1; k2 <= 1; k2++ {
			for k3 := -1; k3 <= 1; k3++ {
				shift := cmath.Combine(float64(k1), v1, float64(k2), v2, float64(k3), v3)
				for _, a := range s.atoms {
					im.Centers = append(im.Centers, r3.Add(a.Center, shift))
					im.SquaredRadii = append(im.SquaredRadii, a.Radius*a.Radius)
				}
			}
		}
	}
	return im
}
