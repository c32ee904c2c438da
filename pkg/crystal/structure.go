package crystal

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	cmath "github.com/Faultbox/crystalz/pkg/math"
)

// Atom is a sphere centered on an atom position.
type Atom struct {
	Kind   string
	Center r3.Vec
	Radius float64
}

// NewAtom returns an atom whose radius is looked up from its kind.
func NewAtom(kind string, center r3.Vec) (Atom, error) {
	r, err := Radius(kind)
	if err != nil {
		return Atom{}, err
	}
	return Atom{Kind: kind, Center: center, Radius: r}, nil
}

// Structure is a unit cell with its atoms. It is immutable once built.
type Structure struct {
	atoms     []Atom
	lattice   cmath.Mat3
	transform CellTransform
}

// NewStructure validates the atoms and the lattice and returns a structure.
// The lattice rows are the cell vectors v1, v2 and v3. Atom radii are always
// taken from the element table.
func NewStructure(atoms []Atom, lattice cmath.Mat3) (Structure, error) {
	owned := make([]Atom, len(atoms))
	for i, a := range atoms {
		r, err := Radius(a.Kind)
		if err != nil {
			return Structure{}, fmt.Errorf("atom %d: %w", i, err)
		}
		a.Radius = r
		owned[i] = a
	}

	tr, err := NewCellTransform(lattice)
	if err != nil {
		return Structure{}, err
	}

	return Structure{
		atoms:     owned,
		lattice:   lattice,
		transform: tr,
	}, nil
}

// Atoms returns a copy of the atoms.
func (s Structure) Atoms() []Atom {
	return append([]Atom(nil), s.atoms...)
}

// NumAtoms returns the number of atoms in the cell.
func (s Structure) NumAtoms() int {
	return len(s.atoms)
}

// Lattice returns the lattice matrix (rows are cell vectors).
func (s Structure) Lattice() cmath.Mat3 {
	return s.lattice
}

// Vectors returns the three cell vectors.
func (s Structure) Vectors() (v1, v2, v3 r3.Vec) {
	return s.lattice.Row(0), s.lattice.Row(1), s.lattice.Row(2)
}

// Transform returns the precomputed Cartesian/fractional transform.
func (s Structure) Transform() CellTransform {
	return s.transform
}

// Volume returns the cell volume.
func (s Structure) Volume() float64 {
	return math.Abs(s.lattice.Det())
}

// KindCounts returns the number of atoms per element.
func (s Structure) KindCounts() map[string]int {
	counts := make(map[string]int)
	for _, a := range s.atoms {
		counts[a.Kind]++
	}
	return counts
}

// Kinds returns the distinct elements present, sorted.
func (s Structure) Kinds() []string {
	counts := s.KindCounts()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
