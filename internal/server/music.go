package server

import (
	"encoding/base64"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/vidalfer/SpaceMusic/internal/music"
	"github.com/vidalfer/SpaceMusic/internal/store"
)

// MusicHandler runs one generative-music session per WebSocket
// connection.
type MusicHandler struct {
	newEngine func() music.Engine
	store     *store.Store
}

// NewMusicHandler creates a MusicHandler. newEngine is invoked once per
// connection; the engine is closed when the connection ends.
func NewMusicHandler(newEngine func() music.Engine, st *store.Store) *MusicHandler {
	return &MusicHandler{newEngine: newEngine, store: st}
}

// musicConn wraps a WebSocket connection with a write lock, since both
// the session loop and the audio forwarder write to it.
type musicConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *musicConn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// ServeHTTP handles WebSocket upgrade requests and runs the session loop.
func (h *MusicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("music: websocket upgrade error: %v", err)
		return
	}
	defer raw.Close()

	conn := &musicConn{conn: raw}

	engine := h.newEngine()
	defer engine.Close()

	if h.store != nil {
		if session, err := h.store.Sessions().Start(store.SessionMusic); err != nil {
			log.Printf("music: start session: %v", err)
		} else {
			defer func() {
				if err := h.store.Sessions().End(session.ID); err != nil {
					log.Printf("music: end session: %v", err)
				}
			}()
		}
	}

	log.Printf("music: client connected: %s", raw.RemoteAddr())
	defer log.Printf("music: client disconnected: %s", raw.RemoteAddr())

	conn.writeJSON(infoMessage{
		Type:    msgInfo,
		Message: "Music session created successfully",
	})

	// Forward audio chunks until the engine closes its channel.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for chunk := range engine.Audio() {
			msg := audioMessage{
				Type: msgAudio,
				Data: base64.StdEncoding.EncodeToString(chunk),
			}
			if err := conn.writeJSON(msg); err != nil {
				return
			}
		}
	}()
	defer func() {
		engine.Close()
		<-done
	}()

	for {
		var req musicRequest
		if err := conn.conn.ReadJSON(&req); err != nil {
			return
		}
		if err := req.validate(); err != nil {
			conn.writeJSON(errorMessage{Type: msgError, Error: err.Error()})
			continue
		}

		var opErr error
		switch req.Type {
		case msgSetPrompts:
			opErr = engine.SetPrompts(req.Prompts)
		case msgSetConfig:
			opErr = engine.SetConfig(*req.Config)
		case msgPlay:
			opErr = engine.Play()
		case msgPause:
			opErr = engine.Pause()
		case msgStop:
			opErr = engine.Stop()
		}

		if opErr != nil {
			conn.writeJSON(errorMessage{Type: msgError, Error: opErr.Error()})
		}
	}
}
