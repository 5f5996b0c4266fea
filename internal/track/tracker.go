package track

import (
	"fmt"
	"log"
	"time"

	"github.com/vidalfer/SpaceMusic/internal/detector"
	"gocv.io/x/gocv"
)

// DefaultMaxPlayers bounds how many players a session tracks; up to two
// hands per player are processed each frame.
const DefaultMaxPlayers = 4

// detectInterval is the person-detection decimation: the detector runs on
// every detectInterval-th frame and player boxes persist across the
// frames in between. Hand detection runs on every frame.
const detectInterval = 3

// HandState is the exported per-hand result. Landmarks themselves are not
// exported.
type HandState struct {
	Position   detector.Point3D `json:"position"`
	IsPinching bool             `json:"isPinching"`
	IsFist     bool             `json:"isFist"`
}

// PlayerState is the exported per-player result for one frame.
type PlayerState struct {
	ID    string      `json:"id"`
	Color string      `json:"color"`
	Hands []HandState `json:"hands"`
}

// Tracker runs the per-frame pipeline for one session: person detection
// and registry maintenance every detectInterval frames, hand detection and
// assignment every frame. The detector handles are shared across sessions
// and serialize access internally; the Tracker itself must only be used
// from a single goroutine.
type Tracker struct {
	hands      detector.HandDetector
	persons    detector.PersonDetector // nil when person tracking is unavailable
	registry   *Registry
	maxPlayers int
	frameCount int
	now        func() time.Time
}

// New creates a Tracker over the given detector handles. persons may be
// nil, in which case the fallback assignment is always used.
func New(hands detector.HandDetector, persons detector.PersonDetector, maxPlayers int) *Tracker {
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}
	return &Tracker{
		hands:      hands,
		persons:    persons,
		registry:   NewRegistry(),
		maxPlayers: maxPlayers,
		now:        time.Now,
	}
}

// Registry returns the session's player registry.
func (t *Tracker) Registry() *Registry {
	return t.registry
}

// ProcessFrame runs one frame through the pipeline and returns the player
// states in insertion order. A person-detection failure is logged and the
// previous registry state is retained; a hand-detection failure aborts the
// frame and is returned to the caller (the next frame is a fresh attempt).
func (t *Tracker) ProcessFrame(frame *gocv.Mat) ([]PlayerState, error) {
	t.frameCount++
	now := t.now()

	size := frame.Size()
	frameH, frameW := size[0], size[1]
	if frameW == 0 || frameH == 0 {
		return nil, fmt.Errorf("empty frame")
	}

	// Stage 1: person detection and registry maintenance, decimated.
	if t.persons != nil && t.frameCount%detectInterval == 0 {
		detections, err := t.persons.Track(frame)
		if err != nil {
			// Keep the previous player state for this cycle.
			log.Printf("person tracking error: %v", err)
		} else {
			for _, d := range detections {
				t.registry.Upsert(d.TrackID, d.BBox, d.Confidence, now)
			}
			t.registry.Expire(now, PlayerTimeout)
		}
	}

	// Stage 2: hand detection, every frame.
	raw, err := t.hands.Detect(frame)
	if err != nil {
		return nil, fmt.Errorf("hand detection: %w", err)
	}
	if limit := t.maxPlayers * 2; len(raw) > limit {
		raw = raw[:limit]
	}

	hands := make([]Hand, len(raw))
	for i := range raw {
		hands[i] = ProcessHand(raw[i])
	}

	// Stage 3: assignment, or the synthetic-player fallback when nobody
	// is being tracked yet.
	if t.registry.Len() > 0 {
		AssignHands(t.registry.Players(), hands, frameW, frameH)
	} else {
		t.registry.assignFallback(hands, t.maxPlayers, frameW, frameH, now)
	}

	return t.snapshot(), nil
}

// snapshot converts the registry into the exported output shape.
func (t *Tracker) snapshot() []PlayerState {
	players := t.registry.Players()
	out := make([]PlayerState, 0, len(players))

	for _, p := range players {
		state := PlayerState{
			ID:    p.ID,
			Color: p.Color,
			Hands: make([]HandState, 0, len(p.Hands)),
		}
		for _, h := range p.Hands {
			state.Hands = append(state.Hands, HandState{
				Position:   h.Position,
				IsPinching: h.IsPinching,
				IsFist:     h.IsFist,
			})
		}
		out = append(out, state)
	}

	return out
}
