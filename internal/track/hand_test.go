package track

import (
	"math"
	"testing"

	"github.com/vidalfer/SpaceMusic/internal/detector"
)

func TestProcessHand_PalmPosition(t *testing.T) {
	palm := detector.OpenPalmLandmarks()
	hand := ProcessHand(palm)

	if hand.IsPinching || hand.IsFist {
		t.Fatalf("open palm classified as pinch=%v fist=%v", hand.IsPinching, hand.IsFist)
	}

	// Position anchors at the palm center, mirrored and inverted.
	center := palm.Points[detector.MiddleMCP]
	if got, want := hand.Position.X, 1-center.X; math.Abs(got-want) > 1e-9 {
		t.Errorf("Position.X = %v, want %v", got, want)
	}
	if got, want := hand.Position.Y, 1-center.Y; math.Abs(got-want) > 1e-9 {
		t.Errorf("Position.Y = %v, want %v", got, want)
	}
}

func TestProcessHand_PinchPosition(t *testing.T) {
	pinch := detector.PinchLandmarks()
	hand := ProcessHand(pinch)

	if !hand.IsPinching {
		t.Fatal("expected pinch")
	}

	// Position anchors at the thumb/index midpoint, mirrored and
	// inverted.
	thumb := pinch.Points[detector.ThumbTip]
	index := pinch.Points[detector.IndexTip]
	wantX := 1 - (thumb.X+index.X)/2
	wantY := 1 - (thumb.Y+index.Y)/2

	if math.Abs(hand.Position.X-wantX) > 1e-9 {
		t.Errorf("Position.X = %v, want %v", hand.Position.X, wantX)
	}
	if math.Abs(hand.Position.Y-wantY) > 1e-9 {
		t.Errorf("Position.Y = %v, want %v", hand.Position.Y, wantY)
	}
}

func TestProcessHand_DepthInPosition(t *testing.T) {
	hand := ProcessHand(detector.OpenPalmLandmarks())
	if hand.Position.Z < 0 || hand.Position.Z > 1 {
		t.Errorf("Position.Z = %v, want within [0,1]", hand.Position.Z)
	}

	partial := ProcessHand(detector.PartialLandmarks(5))
	if partial.Position.Z != 0.5 {
		t.Errorf("partial hand Position.Z = %v, want 0.5", partial.Position.Z)
	}
}
