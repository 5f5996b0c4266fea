package track

import (
	"fmt"
	"image"
	"time"
)

// PlayerColors is the fixed palette assigned to players in round-robin
// order at creation time.
var PlayerColors = []string{
	"#ff6b35", // orange
	"#00aaff", // blue
	"#00ff88", // green
	"#ff00aa", // pink
	"#ffaa00", // yellow
	"#aa00ff", // purple
}

// PlayerTimeout is how long a player may go unseen by the person detector
// before being removed from the registry.
const PlayerTimeout = 2 * time.Second

// Player is one tracked person. The bounding box and confidence are
// refreshed on every detection cycle; the hand list is rebuilt from
// scratch on every frame. Players are owned exclusively by their Registry.
type Player struct {
	ID         string
	Color      string
	BBox       image.Rectangle // pixel coordinates
	Confidence float64
	LastSeen   time.Time
	Hands      []Hand
}

// Registry tracks the active players of one session, keyed by the ID the
// person detector assigned. Iteration order is insertion order, so output
// stays deterministic. Not safe for concurrent use; a session mutates its
// registry from a single goroutine.
type Registry struct {
	players map[string]*Player
	order   []string

	// OnJoin and OnLeave, when set, are invoked as players enter and
	// leave the registry.
	OnJoin  func(p *Player)
	OnLeave func(p *Player)
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		players: make(map[string]*Player),
	}
}

// Upsert creates or refreshes the player for the given track ID. A new
// player receives the next round-robin color; an existing one has its
// bounding box, confidence and last-seen time updated in place.
func (r *Registry) Upsert(trackID int, bbox image.Rectangle, confidence float64, now time.Time) *Player {
	id := fmt.Sprintf("player_%d", trackID)

	if p, ok := r.players[id]; ok {
		p.BBox = bbox
		p.Confidence = confidence
		p.LastSeen = now
		return p
	}

	// Color index is the registry size at creation time, so colors can
	// repeat once players have come and gone.
	color := PlayerColors[len(r.players)%len(PlayerColors)]
	return r.add(id, color, bbox, confidence, now)
}

// add inserts a new player with an explicit color.
func (r *Registry) add(id, color string, bbox image.Rectangle, confidence float64, now time.Time) *Player {
	p := &Player{
		ID:         id,
		Color:      color,
		BBox:       bbox,
		Confidence: confidence,
		LastSeen:   now,
	}
	r.players[id] = p
	r.order = append(r.order, id)
	if r.OnJoin != nil {
		r.OnJoin(p)
	}
	return p
}

// Expire removes every player unseen for longer than timeout.
func (r *Registry) Expire(now time.Time, timeout time.Duration) {
	kept := r.order[:0]
	for _, id := range r.order {
		p := r.players[id]
		if now.Sub(p.LastSeen) > timeout {
			delete(r.players, id)
			if r.OnLeave != nil {
				r.OnLeave(p)
			}
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
}

// Get returns the player with the given ID, or nil.
func (r *Registry) Get(id string) *Player {
	return r.players[id]
}

// Len returns the number of active players.
func (r *Registry) Len() int {
	return len(r.players)
}

// Players returns the active players in insertion order. The returned
// players remain owned by the registry.
func (r *Registry) Players() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}
