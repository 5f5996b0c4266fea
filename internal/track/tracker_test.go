package track

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/vidalfer/SpaceMusic/internal/detector"
	"gocv.io/x/gocv"
)

func testFrame(t *testing.T) *gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { mat.Close() })
	return &mat
}

func TestTracker_DetectionDecimation(t *testing.T) {
	hands := detector.NewMockHandDetector()
	persons := detector.NewMockPersonDetector()
	persons.SetDetections([]detector.Detection{
		{TrackID: 1, BBox: image.Rect(100, 50, 400, 450), Confidence: 0.9},
	})

	tr := New(hands, persons, 4)
	frame := testFrame(t)

	// Person detection runs on every 3rd frame only.
	for i := 0; i < 2; i++ {
		if _, err := tr.ProcessFrame(frame); err != nil {
			t.Fatalf("ProcessFrame() error = %v", err)
		}
	}
	if persons.Calls() != 0 {
		t.Errorf("person detector called %d times after 2 frames, want 0", persons.Calls())
	}

	if _, err := tr.ProcessFrame(frame); err != nil {
		t.Fatalf("ProcessFrame() error = %v", err)
	}
	if persons.Calls() != 1 {
		t.Errorf("person detector called %d times after 3 frames, want 1", persons.Calls())
	}

	players := tr.Registry().Players()
	if len(players) != 1 || players[0].ID != "player_1" {
		t.Fatalf("unexpected registry state: %+v", players)
	}
}

func TestTracker_PersonDetectorErrorRetainsState(t *testing.T) {
	hands := detector.NewMockHandDetector()
	persons := detector.NewMockPersonDetector()
	persons.SetDetections([]detector.Detection{
		{TrackID: 1, BBox: image.Rect(0, 0, 640, 480), Confidence: 0.9},
	})

	tr := New(hands, persons, 4)
	frame := testFrame(t)

	for i := 0; i < 3; i++ {
		if _, err := tr.ProcessFrame(frame); err != nil {
			t.Fatalf("ProcessFrame() error = %v", err)
		}
	}
	if tr.Registry().Len() != 1 {
		t.Fatal("expected one tracked player")
	}

	// The next detection cycle fails: prior state must survive, and the
	// frame must not error out.
	persons.SetError(errors.New("model exploded"))
	for i := 0; i < 3; i++ {
		if _, err := tr.ProcessFrame(frame); err != nil {
			t.Fatalf("ProcessFrame() during detector failure error = %v", err)
		}
	}
	if tr.Registry().Len() != 1 {
		t.Error("registry state lost after person detector failure")
	}
}

func TestTracker_HandDetectorErrorAbortsFrame(t *testing.T) {
	hands := detector.NewMockHandDetector()
	hands.SetError(errors.New("no landmarks"))

	tr := New(hands, nil, 4)
	frame := testFrame(t)

	if _, err := tr.ProcessFrame(frame); err == nil {
		t.Error("expected an error from hand detection failure")
	}

	// Next frame is a fresh attempt.
	hands.SetError(nil)
	hands.SetHands([]detector.HandLandmarks{detector.OpenPalmLandmarks()})
	players, err := tr.ProcessFrame(frame)
	if err != nil {
		t.Fatalf("ProcessFrame() error = %v", err)
	}
	if len(players) != 1 {
		t.Errorf("got %d players, want 1", len(players))
	}
}

func TestTracker_HandCap(t *testing.T) {
	var detected []detector.HandLandmarks
	for i := 0; i < 10; i++ {
		detected = append(detected, detector.OpenPalmLandmarks())
	}
	hands := detector.NewMockHandDetector()
	hands.SetHands(detected)

	tr := New(hands, nil, 2)
	frame := testFrame(t)

	players, err := tr.ProcessFrame(frame)
	if err != nil {
		t.Fatalf("ProcessFrame() error = %v", err)
	}

	total := 0
	for _, p := range players {
		total += len(p.Hands)
	}
	if total > 4 {
		t.Errorf("processed %d hands, want at most maxPlayers*2 = 4", total)
	}
}

func TestTracker_AssignmentAfterDetection(t *testing.T) {
	hands := detector.NewMockHandDetector()
	hands.SetHands([]detector.HandLandmarks{detector.PinchLandmarks()})

	persons := detector.NewMockPersonDetector()
	persons.SetDetections([]detector.Detection{
		{TrackID: 5, BBox: image.Rect(0, 0, 640, 480), Confidence: 0.95},
	})

	tr := New(hands, persons, 4)
	frame := testFrame(t)

	var players []PlayerState
	var err error
	for i := 0; i < 3; i++ {
		players, err = tr.ProcessFrame(frame)
		if err != nil {
			t.Fatalf("ProcessFrame() error = %v", err)
		}
	}

	// Before the first detection cycle the fallback owns the hand; after
	// it, the tracked player should, via its full-frame bounding box.
	var tracked *PlayerState
	for i := range players {
		if players[i].ID == "player_5" {
			tracked = &players[i]
		}
	}
	if tracked == nil {
		t.Fatalf("player_5 missing from output: %+v", players)
	}
	if len(tracked.Hands) != 1 {
		t.Fatalf("player_5 has %d hands, want 1", len(tracked.Hands))
	}
	if !tracked.Hands[0].IsPinching {
		t.Error("expected the pinch to survive into the output")
	}
}

func TestTracker_ExpiryDuringDetectionCycle(t *testing.T) {
	hands := detector.NewMockHandDetector()
	persons := detector.NewMockPersonDetector()
	persons.SetDetections([]detector.Detection{
		{TrackID: 1, BBox: image.Rect(0, 0, 640, 480), Confidence: 0.9},
	})

	tr := New(hands, persons, 4)
	frame := testFrame(t)

	current := time.Now()
	tr.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		if _, err := tr.ProcessFrame(frame); err != nil {
			t.Fatalf("ProcessFrame() error = %v", err)
		}
	}
	if tr.Registry().Len() != 1 {
		t.Fatal("expected one tracked player")
	}

	// The player disappears and the clock moves past the timeout; the
	// next detection cycle removes it.
	persons.SetDetections(nil)
	current = current.Add(PlayerTimeout + time.Second)
	for i := 0; i < 3; i++ {
		if _, err := tr.ProcessFrame(frame); err != nil {
			t.Fatalf("ProcessFrame() error = %v", err)
		}
	}
	if tr.Registry().Len() != 0 {
		t.Errorf("Len() = %d, want 0 after expiry", tr.Registry().Len())
	}
}
