package track

import (
	"image"
	"testing"
	"time"

	"github.com/vidalfer/SpaceMusic/internal/detector"
)

// handAt builds a Hand whose display position mirrors the given raw frame
// coordinates.
func handAt(rawX, rawY float64) Hand {
	return Hand{Position: detector.Point3D{X: 1 - rawX, Y: 1 - rawY, Z: 0.5}}
}

func TestAssignHands_InsideBBox(t *testing.T) {
	r := NewRegistry()
	now := time.Now()
	// Player covering the left half of a 640x480 frame.
	p := r.Upsert(1, image.Rect(0, 0, 320, 480), 0.9, now)

	hands := []Hand{
		handAt(0.25, 0.5), // inside
		handAt(0.9, 0.5),  // outside, beyond the margin
	}

	AssignHands(r.Players(), hands, 640, 480)

	if len(p.Hands) != 1 {
		t.Fatalf("assigned %d hands, want 1", len(p.Hands))
	}
	if p.Hands[0].Position != hands[0].Position {
		t.Error("wrong hand assigned")
	}
}

func TestAssignHands_MarginExpansion(t *testing.T) {
	r := NewRegistry()
	now := time.Now()
	p := r.Upsert(1, image.Rect(0, 0, 320, 480), 0.9, now)

	// Just outside the box but within the 0.1 margin.
	AssignHands(r.Players(), []Hand{handAt(0.58, 0.5)}, 640, 480)

	if len(p.Hands) != 1 {
		t.Errorf("assigned %d hands, want 1 (margin should include it)", len(p.Hands))
	}
}

func TestAssignHands_FullFrameBBoxAlwaysMatches(t *testing.T) {
	r := NewRegistry()
	now := time.Now()
	p := r.Upsert(1, image.Rect(0, 0, 640, 480), 0.9, now)

	positions := [][2]float64{{0, 0}, {1, 1}, {0.01, 0.99}, {0.5, 0.5}, {1, 0}}
	for _, pos := range positions {
		AssignHands(r.Players(), []Hand{handAt(pos[0], pos[1])}, 640, 480)
		if len(p.Hands) != 1 {
			t.Errorf("hand at (%v,%v) not assigned to full-frame player", pos[0], pos[1])
		}
	}
}

func TestAssignHands_RebuildsHandList(t *testing.T) {
	r := NewRegistry()
	now := time.Now()
	p := r.Upsert(1, image.Rect(0, 0, 640, 480), 0.9, now)

	AssignHands(r.Players(), []Hand{handAt(0.5, 0.5), handAt(0.2, 0.2)}, 640, 480)
	if len(p.Hands) != 2 {
		t.Fatalf("assigned %d hands, want 2", len(p.Hands))
	}

	// Next frame with one hand: the list is rebuilt, not appended.
	AssignHands(r.Players(), []Hand{handAt(0.5, 0.5)}, 640, 480)
	if len(p.Hands) != 1 {
		t.Errorf("assigned %d hands after rebuild, want 1", len(p.Hands))
	}
}

func TestAssignHands_OverlappingPlayersShareHand(t *testing.T) {
	r := NewRegistry()
	now := time.Now()
	p1 := r.Upsert(1, image.Rect(0, 0, 400, 480), 0.9, now)
	p2 := r.Upsert(2, image.Rect(240, 0, 640, 480), 0.9, now)

	// A hand in the overlap region lands in both players' lists.
	AssignHands(r.Players(), []Hand{handAt(0.5, 0.5)}, 640, 480)

	if len(p1.Hands) != 1 {
		t.Errorf("player 1 got %d hands, want 1", len(p1.Hands))
	}
	if len(p2.Hands) != 1 {
		t.Errorf("player 2 got %d hands, want 1", len(p2.Hands))
	}
}

func TestAssignFallback_PairsHands(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	hands := []Hand{handAt(0.2, 0.5), handAt(0.4, 0.5), handAt(0.8, 0.5)}
	r.assignFallback(hands, 4, 640, 480, now)

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	p0 := r.Get("player_0")
	if p0 == nil || len(p0.Hands) != 2 {
		t.Fatalf("player_0 missing or wrong hand count")
	}
	p1 := r.Get("player_1")
	if p1 == nil || len(p1.Hands) != 1 {
		t.Fatalf("player_1 missing or wrong hand count")
	}

	// Synthetic players span the whole frame.
	if p0.BBox != image.Rect(0, 0, 640, 480) {
		t.Errorf("player_0 bbox = %v, want full frame", p0.BBox)
	}
	if p0.Color != PlayerColors[0] || p1.Color != PlayerColors[1] {
		t.Errorf("fallback colors = %q, %q", p0.Color, p1.Color)
	}
}

func TestAssignFallback_CapsHands(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	hands := make([]Hand, 6)
	for i := range hands {
		hands[i] = handAt(0.5, 0.5)
	}

	// maxPlayers=2 allows at most 4 hands, hence 2 synthetic players.
	r.assignFallback(hands, 2, 640, 480, now)

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	total := 0
	for _, p := range r.Players() {
		total += len(p.Hands)
	}
	if total != 4 {
		t.Errorf("total hands = %d, want 4", total)
	}
}
