package track

import "github.com/vidalfer/SpaceMusic/internal/detector"

// Gesture thresholds, tuned against MediaPipe's normalized coordinates.
const (
	// pinchThreshold is the maximum 3D distance between thumb and index
	// fingertips for a pinch.
	pinchThreshold = 0.08

	// fistCurlSlack is how far above its PIP joint a fingertip may sit
	// and still count as curled.
	fistCurlSlack = 0.02

	// fistSpreadMax is the maximum 2D distance between index and pinky
	// fingertips for a fist.
	fistSpreadMax = 0.15
)

// IsPinch reports whether the landmarks form a pinch gesture: thumb and
// index fingertips within pinchThreshold of each other. An incomplete
// landmark set is never a pinch.
func IsPinch(landmarks []detector.Point3D) bool {
	if len(landmarks) < detector.NumLandmarks {
		return false
	}
	return distance3D(landmarks[detector.ThumbTip], landmarks[detector.IndexTip]) < pinchThreshold
}

// IsFist reports whether the landmarks form a fist gesture: at least three
// of the four fingers curled (fingertip at or below its PIP joint, y grows
// downward) with the fingertips compactly clustered. An incomplete
// landmark set is never a fist.
func IsFist(landmarks []detector.Point3D) bool {
	if len(landmarks) < detector.NumLandmarks {
		return false
	}

	fingers := [4][2]int{
		{detector.IndexTip, detector.IndexPIP},
		{detector.MiddleTip, detector.MiddlePIP},
		{detector.RingTip, detector.RingPIP},
		{detector.PinkyTip, detector.PinkyPIP},
	}

	curled := 0
	for _, f := range fingers {
		if landmarks[f[0]].Y > landmarks[f[1]].Y-fistCurlSlack {
			curled++
		}
	}

	spread := distance2D(landmarks[detector.IndexTip], landmarks[detector.PinkyTip])

	return curled >= 3 && spread < fistSpreadMax
}
