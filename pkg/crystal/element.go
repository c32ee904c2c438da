// Package crystal models periodic atomic structures: atoms, lattices,
// periodic images and the coordinate transforms between Cartesian and
// fractional space.
package crystal

import (
	"errors"
	"fmt"
	"sort"
)

// Structure errors.
var (
	ErrUnknownElement  = errors.New("unknown element")
	ErrSingularLattice = errors.New("singular lattice")
)

// vdwRadii holds the van der Waals radii, in angstroms, of the elements found
// in the dataset. Values from the MDAnalysis topology tables.
var vdwRadii = map[string]float64{
	"Al": 1.84,
	"In": 1.93,
	"Ga": 1.87,
	"O":  1.52,
}

// Radius returns the van der Waals radius of an element.
func Radius(kind string) (float64, error) {
	r, ok := vdwRadii[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownElement, kind)
	}
	return r, nil
}

// Elements returns the known element symbols, sorted.
func Elements() []string {
	kinds := make([]string, 0, len(vdwRadii))
	for k := range vdwRadii {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
