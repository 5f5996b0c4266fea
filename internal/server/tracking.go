package server

import (
	"encoding/base64"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/vidalfer/SpaceMusic/internal/detector"
	"github.com/vidalfer/SpaceMusic/internal/store"
	"github.com/vidalfer/SpaceMusic/internal/track"
	"gocv.io/x/gocv"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Local frontend connections only
	},
}

// TrackingConfig holds the dependencies of the tracking WebSocket.
type TrackingConfig struct {
	Hands      detector.HandDetector
	Persons    detector.PersonDetector
	MaxPlayers int
	Store      *store.Store

	// Enabled, when set, gates frame processing (the tray toggle).
	Enabled func() bool

	// OnPlayerCount, when set, receives the total player count across
	// all live tracking sessions whenever it changes.
	OnPlayerCount func(total int)
}

// TrackingHandler runs one tracking session per WebSocket connection.
// Frames are processed synchronously in receipt order; the shared detector
// handles serialize access internally.
type TrackingHandler struct {
	config  TrackingConfig
	players int64
}

// NewTrackingHandler creates a TrackingHandler with the given
// configuration.
func NewTrackingHandler(config TrackingConfig) *TrackingHandler {
	if config.MaxPlayers <= 0 {
		config.MaxPlayers = track.DefaultMaxPlayers
	}
	return &TrackingHandler{config: config}
}

// ServeHTTP handles WebSocket upgrade requests and runs the session loop.
func (h *TrackingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("tracking: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	if h.config.Hands == nil {
		conn.WriteJSON(errorMessage{
			Type:  msgError,
			Error: "Person tracking not available: detection models not loaded",
		})
		return
	}

	tracker := track.New(h.config.Hands, h.config.Persons, h.config.MaxPlayers)
	registry := tracker.Registry()

	// Record the session when a store is wired up.
	var sessionID string
	if h.config.Store != nil {
		if session, err := h.config.Store.Sessions().Start(store.SessionTracking); err != nil {
			log.Printf("tracking: start session: %v", err)
		} else {
			sessionID = session.ID
			defer func() {
				if err := h.config.Store.Sessions().End(sessionID); err != nil {
					log.Printf("tracking: end session: %v", err)
				}
			}()
		}
	}

	registry.OnJoin = func(p *track.Player) {
		log.Printf("tracking: new player %s (%s)", p.ID, p.Color)
		h.addPlayers(1)
		if sessionID != "" {
			if err := h.config.Store.Sessions().AddEvent(sessionID, "join", p.ID); err != nil {
				log.Printf("tracking: record join: %v", err)
			}
		}
	}
	registry.OnLeave = func(p *track.Player) {
		log.Printf("tracking: player left %s", p.ID)
		h.addPlayers(-1)
		if sessionID != "" {
			if err := h.config.Store.Sessions().AddEvent(sessionID, "leave", p.ID); err != nil {
				log.Printf("tracking: record leave: %v", err)
			}
		}
	}
	// A disconnect takes this session's players with it.
	defer func() { h.addPlayers(-registry.Len()) }()

	log.Printf("tracking: client connected: %s", conn.RemoteAddr())
	defer log.Printf("tracking: client disconnected: %s", conn.RemoteAddr())

	conn.WriteJSON(infoMessage{
		Type:    msgInfo,
		Message: "Multiplayer tracking ready. Send frames to begin.",
	})

	for {
		var req trackingRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if err := req.validate(); err != nil {
			conn.WriteJSON(errorMessage{Type: msgError, Error: err.Error()})
			continue
		}

		switch req.Type {
		case msgPing:
			conn.WriteJSON(pongMessage{Type: msgPong})

		case msgFrame:
			if h.config.Enabled != nil && !h.config.Enabled() {
				conn.WriteJSON(errorMessage{Type: msgError, Error: "Tracking is disabled"})
				continue
			}
			players, ok, err := h.processFrame(tracker, req.Data)
			if err != nil {
				conn.WriteJSON(errorMessage{Type: msgError, Error: err.Error()})
				continue
			}
			if !ok {
				// Undecodable payload: skip the frame silently.
				continue
			}
			conn.WriteJSON(playersMessage{Type: msgPlayers, Players: players})
		}
	}
}

// addPlayers adjusts the cross-session player total and reports it.
func (h *TrackingHandler) addPlayers(delta int) {
	if delta == 0 {
		return
	}
	total := atomic.AddInt64(&h.players, int64(delta))
	if h.config.OnPlayerCount != nil {
		h.config.OnPlayerCount(int(total))
	}
}

// processFrame decodes one base64 JPEG payload and runs it through the
// tracker. Returns ok=false when the payload does not decode to an image.
func (h *TrackingHandler) processFrame(tracker *track.Tracker, data string) ([]track.PlayerState, bool, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, false, nil
	}

	frame, err := gocv.IMDecode(raw, gocv.IMReadColor)
	if err != nil || frame.Empty() {
		if err == nil {
			frame.Close()
		}
		return nil, false, nil
	}
	defer frame.Close()

	players, err := tracker.ProcessFrame(&frame)
	if err != nil {
		return nil, true, err
	}
	if players == nil {
		players = []track.PlayerState{}
	}
	return players, true, nil
}
