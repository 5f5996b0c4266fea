package track

import "github.com/vidalfer/SpaceMusic/internal/detector"

// Hand is one detected hand after gesture classification. Position is in
// display coordinates: mirrored horizontally and inverted vertically so it
// maps directly onto the selfie view the player sees, with z the estimated
// depth. Hands are built fresh every frame; there is no temporal smoothing.
type Hand struct {
	Position   detector.Point3D
	IsPinching bool
	IsFist     bool
	Landmarks  []detector.Point3D
}

// ProcessHand converts one raw landmark detection into a Hand. A pinching
// hand is anchored at the midpoint of thumb and index fingertips so the
// pinch point itself is what the player steers with; otherwise the palm
// center is used. Pure function of the landmarks.
func ProcessHand(lm detector.HandLandmarks) Hand {
	landmarks := lm.Points

	isFist := IsFist(landmarks)
	// A fist always wins over a pinch: curled fingers bring the thumb and
	// index tips together incidentally.
	isPinching := !isFist && IsPinch(landmarks)

	var anchor detector.Point3D
	if isPinching {
		thumb := landmarks[detector.ThumbTip]
		index := landmarks[detector.IndexTip]
		anchor = detector.Point3D{
			X: (thumb.X + index.X) / 2,
			Y: (thumb.Y + index.Y) / 2,
		}
	} else if len(landmarks) > detector.MiddleMCP {
		anchor = landmarks[detector.MiddleMCP]
	}

	return Hand{
		Position: detector.Point3D{
			X: 1 - anchor.X, // mirror for the selfie view
			Y: 1 - anchor.Y,
			Z: HandDepth(landmarks),
		},
		IsPinching: isPinching,
		IsFist:     isFist,
		Landmarks:  landmarks,
	}
}
