package track

import (
	"fmt"
	"image"
	"time"
)

// assignMargin expands each player's normalized bounding box on all sides
// before testing hand containment, so hands reaching just outside the
// detected body box still count.
const assignMargin = 0.1

// AssignHands rebuilds every player's hand list from the hands detected
// this frame. A hand belongs to a player when its un-mirrored position
// falls inside the player's bounding box (normalized by the frame size and
// expanded by assignMargin). Overlapping players may claim the same hand;
// each player decides inclusion independently.
func AssignHands(players []*Player, hands []Hand, frameW, frameH int) {
	for _, p := range players {
		p.Hands = p.Hands[:0]

		px1 := float64(p.BBox.Min.X) / float64(frameW)
		py1 := float64(p.BBox.Min.Y) / float64(frameH)
		px2 := float64(p.BBox.Max.X) / float64(frameW)
		py2 := float64(p.BBox.Max.Y) / float64(frameH)

		for _, h := range hands {
			// Hand positions are mirrored for display; undo that to
			// compare against raw frame coordinates.
			hx := 1 - h.Position.X
			hy := 1 - h.Position.Y

			if px1-assignMargin <= hx && hx <= px2+assignMargin &&
				py1-assignMargin <= hy && hy <= py2+assignMargin {
				p.Hands = append(p.Hands, h)
			}
		}
	}
}

// assignFallback handles the no-tracked-players case: without person
// detections, hands pair up into synthetic players (hands 0 and 1 belong
// to player_0, hands 2 and 3 to player_1, and so on) spanning the whole
// frame. Synthetic players persist in the registry once created.
func (r *Registry) assignFallback(hands []Hand, maxPlayers, frameW, frameH int, now time.Time) {
	if len(hands) > maxPlayers*2 {
		hands = hands[:maxPlayers*2]
	}

	// Hand lists are rebuilt from scratch every frame.
	for _, p := range r.players {
		p.Hands = p.Hands[:0]
	}

	for i, h := range hands {
		id := fmt.Sprintf("player_%d", i/2)

		p := r.players[id]
		if p == nil {
			color := PlayerColors[(i/2)%len(PlayerColors)]
			p = r.add(id, color, image.Rect(0, 0, frameW, frameH), 0, now)
		}

		p.Hands = append(p.Hands, h)
	}
}
