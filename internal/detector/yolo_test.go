package detector

import (
	"image"
	"testing"
)

func TestBoxIoU(t *testing.T) {
	a := image.Rect(0, 0, 100, 100)

	if got := boxIoU(a, a); got != 1.0 {
		t.Errorf("IoU of identical boxes = %v, want 1.0", got)
	}
	if got := boxIoU(a, image.Rect(200, 200, 300, 300)); got != 0.0 {
		t.Errorf("IoU of disjoint boxes = %v, want 0.0", got)
	}

	// Half overlap: intersection 50x100, union 150x100.
	b := image.Rect(50, 0, 150, 100)
	got := boxIoU(a, b)
	want := 1.0 / 3.0
	if got < want-1e-9 || got > want+1e-9 {
		t.Errorf("IoU = %v, want %v", got, want)
	}
}

func TestSuppress(t *testing.T) {
	d := &YOLOPersonDetector{minConf: 0.5, nmsThreshold: 0.45}

	boxes := []image.Rectangle{
		image.Rect(0, 0, 100, 100),
		image.Rect(5, 5, 105, 105),     // overlaps the first heavily
		image.Rect(300, 300, 400, 400), // separate
	}
	scores := []float32{0.9, 0.8, 0.7}

	keptBoxes, confidences := d.suppress(boxes, scores)

	if len(keptBoxes) != 2 {
		t.Fatalf("kept %d boxes, want 2", len(keptBoxes))
	}
	if float32(confidences[0]) != 0.9 {
		t.Errorf("highest-scoring box not kept first: %v", confidences)
	}

	if kept, _ := d.suppress(nil, nil); kept != nil {
		t.Errorf("suppress(nil) = %v, want nil", kept)
	}
}

func TestAssignTrackIDs_Stability(t *testing.T) {
	d := &YOLOPersonDetector{nextID: 1}

	first := d.assignTrackIDs([]image.Rectangle{image.Rect(100, 100, 300, 400)}, []float64{0.9})
	if len(first) != 1 || first[0].TrackID != 1 {
		t.Fatalf("first detection = %+v, want track 1", first)
	}

	// A slightly shifted box keeps the same ID.
	second := d.assignTrackIDs([]image.Rectangle{image.Rect(110, 105, 310, 405)}, []float64{0.85})
	if second[0].TrackID != 1 {
		t.Errorf("shifted detection got track %d, want 1", second[0].TrackID)
	}

	// A far-away box gets a new ID.
	third := d.assignTrackIDs([]image.Rectangle{
		image.Rect(110, 105, 310, 405),
		image.Rect(500, 100, 620, 400),
	}, []float64{0.85, 0.8})
	if third[0].TrackID != 1 {
		t.Errorf("existing detection got track %d, want 1", third[0].TrackID)
	}
	if third[1].TrackID != 2 {
		t.Errorf("new detection got track %d, want 2", third[1].TrackID)
	}
}

func TestAssignTrackIDs_RetiresStaleTracks(t *testing.T) {
	d := &YOLOPersonDetector{nextID: 1}

	d.assignTrackIDs([]image.Rectangle{image.Rect(100, 100, 300, 400)}, []float64{0.9})

	// The person disappears for longer than the miss tolerance.
	for i := 0; i <= maxTrackMisses; i++ {
		d.assignTrackIDs(nil, nil)
	}

	// Reappearing in the same spot is a new person now.
	again := d.assignTrackIDs([]image.Rectangle{image.Rect(100, 100, 300, 400)}, []float64{0.9})
	if again[0].TrackID != 2 {
		t.Errorf("reappeared detection got track %d, want 2", again[0].TrackID)
	}
}
