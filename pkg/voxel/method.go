package voxel

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/Faultbox/crystalz/pkg/crystal"
)

// Method names.
const (
	OverlapsMethod = "overlaps"
	DummyMethod    = "dummy"
)

// Method turns a structure into a voxel grid.
type Method interface {
	Name() string
	Compute(s crystal.Structure, spec Spec) (*Grid, error)
}

// Overlaps counts, for every voxel center, the atoms containing it.
type Overlaps struct {
	Workers int
}

// Name implements Method.
func (Overlaps) Name() string { return OverlapsMethod }

// Compute implements Method.
func (o Overlaps) Compute(s crystal.Structure, spec Spec) (*Grid, error) {
	sm := Sampler{Workers: o.Workers}
	return sm.Sample(s, spec)
}

// Dummy fills the grid with uniform noise in [0, 1). Only the resolution is
// used; the structure and bounds are ignored apart from being copied into
// the grid extent.
type Dummy struct{}

// Name implements Method.
func (Dummy) Name() string { return DummyMethod }

// Compute implements Method.
func (Dummy) Compute(_ crystal.Structure, spec Spec) (*Grid, error) {
	if err := checkResolution(spec.Resolution); err != nil {
		return nil, err
	}
	g := NewGrid(spec.Resolution, spec.Extent())
	g.Method = DummyMethod
	for i := range g.Values {
		g.Values[i] = rand.Float64()
	}
	return g, nil
}

var methods = map[string]Method{
	OverlapsMethod: Overlaps{},
	DummyMethod:    Dummy{},
}

// Methods returns the registered method names, sorted.
func Methods() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the method registered under name.
func Lookup(name string) (Method, error) {
	m, ok := methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownMethod, name, Methods())
	}
	return m, nil
}
