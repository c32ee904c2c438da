package crystal

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	cmath "github.com/Faultbox/crystalz/pkg/math"
)

func unitCube() cmath.Mat3 {
	return cmath.Identity3()
}

func skewedLattice() cmath.Mat3 {
	return cmath.Mat3{{1, -2, 3}, {3, -5, 6}, {7, -7, 9}}
}

func mustAtom(t *testing.T, kind string, x, y, z float64) Atom {
	t.Helper()
	a, err := NewAtom(kind, r3.Vec{X: x, Y: y, Z: z})
	require.NoError(t, err)
	return a
}

func TestRadius(t *testing.T) {
	tests := []struct {
		kind string
		want float64
	}{
		{"Al", 1.84},
		{"In", 1.93},
		{"Ga", 1.87},
		{"O", 1.52},
	}
	for _, tt := range tests {
		r, err := Radius(tt.kind)
		require.NoError(t, err)
		assert.Equal(t, tt.want, r, tt.kind)
	}
}

func TestRadiusUnknownElement(t *testing.T) {
	for _, kind := range []string{"Zz", "", "o", "AL"} {
		_, err := Radius(kind)
		assert.ErrorIs(t, err, ErrUnknownElement, kind)
	}
}

func TestElements(t *testing.T) {
	assert.Equal(t, []string{"Al", "Ga", "In", "O"}, Elements())
}

func TestNewStructure(t *testing.T) {
	atoms := []Atom{
		mustAtom(t, "Al", 1.1, 1.2, 1.3),
		mustAtom(t, "O", 0.5, 0.5, 0.5),
		mustAtom(t, "O", 0.1, 0.2, 0.3),
	}
	s, err := NewStructure(atoms, skewedLattice())
	require.NoError(t, err)

	assert.Equal(t, 3, s.NumAtoms())
	assert.Equal(t, skewedLattice(), s.Lattice())
	assert.Equal(t, map[string]int{"Al": 1, "O": 2}, s.KindCounts())
	assert.Equal(t, []string{"Al", "O"}, s.Kinds())
	assert.InDelta(t, 9.0, s.Volume(), 1e-9)

	v1, v2, v3 := s.Vectors()
	assert.Equal(t, r3.Vec{X: 1, Y: -2, Z: 3}, v1)
	assert.Equal(t, r3.Vec{X: 3, Y: -5, Z: 6}, v2)
	assert.Equal(t, r3.Vec{X: 7, Y: -7, Z: 9}, v3)
}

func TestNewStructureRadiusFromTable(t *testing.T) {
	atoms := []Atom{{Kind: "Ga", Center: r3.Vec{}, Radius: 42}}
	s, err := NewStructure(atoms, unitCube())
	require.NoError(t, err)
	assert.Equal(t, 1.87, s.Atoms()[0].Radius)
	assert.Equal(t, 42.0, atoms[0].Radius, "input slice must not be modified")
}

func TestNewStructureIsImmutable(t *testing.T) {
	atoms := []Atom{mustAtom(t, "O", 0.5, 0.5, 0.5)}
	s, err := NewStructure(atoms, unitCube())
	require.NoError(t, err)

	atoms[0].Center = r3.Vec{X: 9}
	got := s.Atoms()
	got[0].Center = r3.Vec{X: 7}

	assert.Equal(t, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, s.Atoms()[0].Center)
}

func TestNewStructureEmpty(t *testing.T) {
	s, err := NewStructure(nil, unitCube())
	require.NoError(t, err)
	assert.Equal(t, 0, s.NumAtoms())
	assert.Equal(t, 0, Expand(s).Len())
}

func TestNewStructureUnknownElement(t *testing.T) {
	atoms := []Atom{{Kind: "O"}, {Kind: "Zz"}}
	_, err := NewStructure(atoms, unitCube())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownElement))
	assert.Contains(t, err.Error(), "atom 1")
}

func TestNewStructureSingularLattice(t *testing.T) {
	lattices := []cmath.Mat3{
		{},
		{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}},
		{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}},
	}
	for _, l := range lattices {
		_, err := NewStructure(nil, l)
		assert.ErrorIs(t, err, ErrSingularLattice)
	}
}

func TestExpand(t *testing.T) {
	lattice := cmath.Mat3{{1.1, 0, 0}, {0, 1.2, 0}, {0, 0, 1.3}}
	s, err := NewStructure([]Atom{
		{Kind: "O", Center: r3.Vec{}},
		{Kind: "Al", Center: r3.Vec{X: 0.1, Z: -0.2}},
	}, lattice)
	require.NoError(t, err)

	var wantCenters []r3.Vec
	var wantRadii []float64
	for k1 := -1.0; k1 <= 1; k1++ {
		for k2 := -1.0; k2 <= 1; k2++ {
			for k3 := -1.0; k3 <= 1; k3++ {
				for _, a := range s.Atoms() {
					wantCenters = append(wantCenters, r3.Vec{
						X: a.Center.X + 1.1*k1,
						Y: a.Center.Y + 1.2*k2,
						Z: a.Center.Z + 1.3*k3,
					})
					wantRadii = append(wantRadii, a.Radius*a.Radius)
				}
			}
		}
	}

	im := Expand(s)
	require.Equal(t, ImagesPerAtom*2, im.Len())
	require.Len(t, im.SquaredRadii, im.Len())
	for i := range wantCenters {
		assert.InDelta(t, wantCenters[i].X, im.Centers[i].X, 1e-12, "center %d", i)
		assert.InDelta(t, wantCenters[i].Y, im.Centers[i].Y, 1e-12, "center %d", i)
		assert.InDelta(t, wantCenters[i].Z, im.Centers[i].Z, 1e-12, "center %d", i)
		assert.InDelta(t, wantRadii[i], im.SquaredRadii[i], 1e-12, "radius %d", i)
	}
}

func TestExpandSkewed(t *testing.T) {
	s, err := NewStructure([]Atom{{Kind: "In", Center: r3.Vec{X: 1, Y: 1, Z: 1}}}, skewedLattice())
	require.NoError(t, err)

	im := Expand(s)
	require.Equal(t, ImagesPerAtom, im.Len())

	// The middle offset (0, 0, 0) is the original atom.
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, im.Centers[13])
	// (-1, -1, -1) comes first.
	assert.InDelta(t, 1-1-3-7, im.Centers[0].X, 1e-12)
	assert.InDelta(t, 1+2+5+7, im.Centers[0].Y, 1e-12)
	assert.InDelta(t, 1-3-6-9, im.Centers[0].Z, 1e-12)
	for _, r2 := range im.SquaredRadii {
		assert.InDelta(t, 1.93*1.93, r2, 1e-12)
	}
}

func TestCellTransformRoundTrip(t *testing.T) {
	tr, err := NewCellTransform(skewedLattice())
	require.NoError(t, err)

	// Lattice vectors map onto the unit fractional axes.
	assert.InDeltaSlice(t, []float64{1, 0, 0}, vec(tr.Fractional(r3.Vec{X: 1, Y: -2, Z: 3})), 1e-9)
	assert.InDeltaSlice(t, []float64{0, 1, 0}, vec(tr.Fractional(r3.Vec{X: 3, Y: -5, Z: 6})), 1e-9)
	assert.InDeltaSlice(t, []float64{0, 0, 1}, vec(tr.Fractional(r3.Vec{X: 7, Y: -7, Z: 9})), 1e-9)

	p := r3.Vec{X: 0.3, Y: -4.2, Z: 11}
	assert.InDeltaSlice(t, vec(p), vec(tr.Cartesian(tr.Fractional(p))), 1e-9)
}

func TestWrapNegativeCoordinates(t *testing.T) {
	tr, err := NewCellTransform(cmath.Mat3{{2, 0, 0}, {0, 4, 0}, {0, 0, 8}})
	require.NoError(t, err)

	got := tr.Wrap(r3.Vec{X: -0.5, Y: -1, Z: 17})
	assert.Equal(t, r3.Vec{X: 1.5, Y: 3, Z: 1}, got)

	f := tr.WrapFractional(r3.Vec{X: -0.25, Y: 2.5, Z: -3})
	assert.Equal(t, r3.Vec{X: 0.75, Y: 0.5, Z: 0}, f)
}

func TestWrapIdempotent(t *testing.T) {
	lattices := map[string]cmath.Mat3{
		"orthorhombic": {{2, 0, 0}, {0, 4, 0}, {0, 0, 8}},
		"skewed":       skewedLattice(),
		"hexagonal":    {{3, 0, 0}, {-1.5, 2.598076211353316, 0}, {0, 0, 5}},
	}
	rng := rand.New(rand.NewPCG(1, 2))

	for name, l := range lattices {
		t.Run(name, func(t *testing.T) {
			tr, err := NewCellTransform(l)
			require.NoError(t, err)

			for i := 0; i < 500; i++ {
				p := r3.Vec{
					X: (rng.Float64() - 0.5) * 40,
					Y: (rng.Float64() - 0.5) * 40,
					Z: (rng.Float64() - 0.5) * 40,
				}
				once := tr.Wrap(p)
				twice := tr.Wrap(once)
				assert.InDeltaSlice(t, vec(once), vec(twice), 1e-9, "point %v", p)

				f := tr.Fractional(once)
				for _, c := range vec(f) {
					assert.True(t, c > -1e-9 && c < 1+1e-9, "fractional %v outside the cell", f)
				}
			}
		})
	}
}

func vec(v r3.Vec) []float64 {
	return []float64{v.X, v.Y, v.Z}
}
