package track

import "github.com/vidalfer/SpaceMusic/internal/detector"

// Apparent hand sizes (in normalized frame units) mapped to the depth
// extremes. A hand measuring depthMaxSize or more fills the near plane.
const (
	depthMinSize = 0.10
	depthMaxSize = 0.40
)

// HandDepth estimates a normalized depth value from apparent hand size.
// A larger hand is closer to the camera and yields a smaller depth, so the
// result runs from 0 (near) to 1 (far). Returns 0.5 for an incomplete
// landmark set.
func HandDepth(landmarks []detector.Point3D) float64 {
	if len(landmarks) < detector.NumLandmarks {
		return 0.5
	}

	handLength := distance2D(landmarks[detector.Wrist], landmarks[detector.MiddleTip])
	palmWidth := distance2D(landmarks[detector.IndexMCP], landmarks[detector.PinkyMCP])

	// Palm width is the steadier signal; weight it up.
	combined := (palmWidth*2.5 + handLength*0.8) / 2

	normalized := (combined - depthMinSize) / (depthMaxSize - depthMinSize)
	if normalized < 0 {
		normalized = 0
	} else if normalized > 1 {
		normalized = 1
	}

	return 1 - normalized
}
