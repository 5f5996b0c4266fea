package server

import (
	"fmt"

	"github.com/vidalfer/SpaceMusic/internal/music"
	"github.com/vidalfer/SpaceMusic/internal/track"
)

// Inbound message types.
const (
	msgFrame      = "frame"
	msgPing       = "ping"
	msgSetPrompts = "set_prompts"
	msgSetConfig  = "set_config"
	msgPlay       = "play"
	msgPause      = "pause"
	msgStop       = "stop"
)

// Outbound message types.
const (
	msgPlayers = "players"
	msgPong    = "pong"
	msgInfo    = "info"
	msgError   = "error"
	msgAudio   = "audio"
)

// trackingRequest is an inbound message on the tracking socket.
type trackingRequest struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"` // base64 JPEG for "frame"
}

// validate rejects unknown or malformed tracking messages at the
// boundary.
func (m *trackingRequest) validate() error {
	switch m.Type {
	case msgFrame:
		if m.Data == "" {
			return fmt.Errorf("frame message without data")
		}
		return nil
	case msgPing:
		return nil
	default:
		return fmt.Errorf("unknown message type %q", m.Type)
	}
}

// musicRequest is an inbound message on the music socket.
type musicRequest struct {
	Type    string                  `json:"type"`
	Prompts []music.WeightedPrompt  `json:"prompts,omitempty"`
	Config  *music.GenerationConfig `json:"config,omitempty"`
}

// validate rejects unknown or malformed music messages at the boundary.
func (m *musicRequest) validate() error {
	switch m.Type {
	case msgSetPrompts:
		if len(m.Prompts) == 0 {
			return fmt.Errorf("set_prompts message without prompts")
		}
		return nil
	case msgSetConfig:
		if m.Config == nil {
			return fmt.Errorf("set_config message without config")
		}
		return nil
	case msgPlay, msgPause, msgStop:
		return nil
	default:
		return fmt.Errorf("unknown message type %q", m.Type)
	}
}

// Outbound message shapes.

type playersMessage struct {
	Type    string              `json:"type"`
	Players []track.PlayerState `json:"players"`
}

type pongMessage struct {
	Type string `json:"type"`
}

type infoMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type audioMessage struct {
	Type string `json:"type"`
	Data string `json:"data"` // base64 PCM
}
