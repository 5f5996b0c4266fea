package detector

import (
	"errors"
	"testing"
)

func TestFixturesAreComplete(t *testing.T) {
	fixtures := map[string]HandLandmarks{
		"pinch":     PinchLandmarks(),
		"fist":      FistLandmarks(),
		"open palm": OpenPalmLandmarks(),
	}

	for name, lm := range fixtures {
		if len(lm.Points) != NumLandmarks {
			t.Errorf("%s fixture has %d points, want %d", name, len(lm.Points), NumLandmarks)
		}
		for i, p := range lm.Points {
			if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
				t.Errorf("%s fixture point %d out of range: %+v", name, i, p)
			}
		}
	}
}

func TestPartialLandmarks(t *testing.T) {
	lm := PartialLandmarks(10)
	if len(lm.Points) != 10 {
		t.Errorf("got %d points, want 10", len(lm.Points))
	}

	// Never more than a full hand.
	lm = PartialLandmarks(50)
	if len(lm.Points) != NumLandmarks {
		t.Errorf("got %d points, want %d", len(lm.Points), NumLandmarks)
	}
}

func TestMockHandDetector(t *testing.T) {
	m := NewMockHandDetector()

	hands, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 0 {
		t.Errorf("got %d hands, want 0", len(hands))
	}

	m.SetHands([]HandLandmarks{OpenPalmLandmarks()})
	hands, err = m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Errorf("got %d hands, want 1", len(hands))
	}

	wantErr := errors.New("boom")
	m.SetError(wantErr)
	if _, err := m.Detect(nil); err != wantErr {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}
