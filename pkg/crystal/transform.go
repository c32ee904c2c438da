package crystal

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	cmath "github.com/Faultbox/crystalz/pkg/math"
)

// CellTransform converts points between Cartesian and fractional (lattice)
// coordinates and folds points back into the canonical unit cell.
type CellTransform struct {
	toCartesian  cmath.Mat3 // lattice^T
	toFractional cmath.Mat3 // inverse(lattice)^T
}

// NewCellTransform precomputes the transfer matrices for a lattice whose rows
// are the cell vectors.
func NewCellTransform(lattice cmath.Mat3) (CellTransform, error) {
	inv, err := lattice.Inverse()
	if err != nil {
		return CellTransform{}, fmt.Errorf("%w: %v", ErrSingularLattice, err)
	}
	return CellTransform{
		toCartesian:  lattice.Transpose(),
		toFractional: inv.Transpose(),
	}, nil
}

// Fractional returns p in lattice coordinates. Components may lie outside
// [0, 1).
func (t CellTransform) Fractional(p r3.Vec) r3.Vec {
	return t.toFractional.MulVec(p)
}

// Cartesian returns the Cartesian point for fractional coordinates f.
func (t CellTransform) Cartesian(f r3.Vec) r3.Vec {
	return t.toCartesian.MulVec(f)
}

// WrapFractional folds fractional coordinates into [0, 1).
func (t CellTransform) WrapFractional(f r3.Vec) r3.Vec {
	return cmath.Frac(f)
}

// Wrap maps a Cartesian point onto its periodic equivalent inside the
// canonical unit cell.
func (t CellTransform) Wrap(p r3.Vec) r3.Vec {
	return t.Cartesian(t.WrapFractional(t.Fractional(p)))
}
