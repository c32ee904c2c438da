package voxel

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/crystalz/pkg/crystal"
)

// Occupancy counts the spheres of images that contain p. A point exactly on
// a sphere surface is inside. Overlapping spheres are all counted.
//
// This is a linear scan over every image; a spatial index over the centers
// is the place to start if structures grow large.
func Occupancy(p r3.Vec, images crystal.Images) int {
	var n int
	for i, c := range images.Centers {
		if r3.Norm2(r3.Sub(p, c)) <= images.SquaredRadii[i] {
			n++
		}
	}
	return n
}
