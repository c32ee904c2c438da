package voxel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/crystalz/pkg/crystal"
)

// Sampler computes occupancy grids. The zero value is ready to use.
type Sampler struct {
	// Workers bounds the number of z-slabs computed concurrently.
	// Zero or negative means runtime.GOMAXPROCS(0).
	Workers int
}

// Sample computes the occupancy grid of s with a default Sampler.
func Sample(s crystal.Structure, spec Spec) (*Grid, error) {
	var sm Sampler
	return sm.Sample(s, spec)
}

// Sample evaluates every grid point of spec: the point is wrapped into the
// unit cell and the atom spheres (with their periodic images) containing it
// are counted. The result does not depend on the number of workers.
func (sm *Sampler) Sample(s crystal.Structure, spec Spec) (*Grid, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	images := crystal.Expand(s)
	tr := s.Transform()
	xs, ys, zs := spec.Axes()
	n := spec.Resolution

	g := NewGrid(n, spec.Extent())
	g.Method = OverlapsMethod

	workers := sm.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	for k := 0; k < n; k++ {
		eg.Go(func() error {
			for j := 0; j < n; j++ {
				row := g.Values[g.Index(k, j, 0) : g.Index(k, j, 0)+n]
				for i := range row {
					m := r3.Vec{X: xs[i], Y: ys[j], Z: zs[k]}
					row[i] = float64(Occupancy(tr.Wrap(m), images))
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return g, nil
}
