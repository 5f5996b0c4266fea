// Package track implements the per-frame tracking pipeline: gesture
// classification, depth estimation, the player registry and hand-to-player
// assignment.
package track

import (
	"math"

	"github.com/vidalfer/SpaceMusic/internal/detector"
)

// distance2D calculates the Euclidean distance between two points in the
// image plane, ignoring z.
func distance2D(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// distance3D calculates the Euclidean distance between two 3D points.
func distance3D(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
