// Package server provides the HTTP and WebSocket server for SpaceMusic.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vidalfer/SpaceMusic/internal/detector"
	"github.com/vidalfer/SpaceMusic/internal/music"
	"github.com/vidalfer/SpaceMusic/internal/store"
	"github.com/vidalfer/SpaceMusic/internal/track"
)

// Config holds the server configuration.
type Config struct {
	StaticDir  string
	Store      *store.Store
	Hands      detector.HandDetector
	Persons    detector.PersonDetector
	MaxPlayers int

	// TrackingEnabled, when set, gates frame processing (wired to the
	// tray toggle).
	TrackingEnabled func() bool

	// OnPlayerCount, when set, receives the total player count across
	// all tracking sessions (wired to the tray's player line).
	OnPlayerCount func(total int)

	// GenAIAvailable reports whether a cloud music backend is
	// configured; false means sessions run on the local synth.
	GenAIAvailable bool

	// NewEngine creates the music engine backing one /ws/music
	// connection. Defaults to the local synth engine.
	NewEngine func() music.Engine
}

// Server represents the SpaceMusic HTTP server.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	if config.MaxPlayers <= 0 {
		config.MaxPlayers = track.DefaultMaxPlayers
	}
	if config.NewEngine == nil {
		config.NewEngine = func() music.Engine { return music.NewSynthEngine() }
	}

	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/tracking/status", s.handleTrackingStatus)
	s.mux.HandleFunc("/api/evolve-track", s.handleEvolveTrack)

	if s.config.Store != nil {
		s.mux.HandleFunc("/api/samples", s.handleSamples)
	}

	s.mux.Handle("/ws/tracking", NewTrackingHandler(TrackingConfig{
		Hands:         s.config.Hands,
		Persons:       s.config.Persons,
		MaxPlayers:    s.config.MaxPlayers,
		Store:         s.config.Store,
		Enabled:       s.config.TrackingEnabled,
		OnPlayerCount: s.config.OnPlayerCount,
	}))
	s.mux.Handle("/ws/music", NewMusicHandler(s.config.NewEngine, s.config.Store))

	// Serve static files if StaticDir is configured; otherwise the root
	// answers with service metadata.
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	} else {
		s.mux.HandleFunc("/", s.handleRoot)
	}
}

// handleRoot reports service metadata at the root path.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, map[string]interface{}{
		"name":            "SpaceMusic API",
		"version":         "1.0.0",
		"status":          "running",
		"genai_available": s.config.GenAIAvailable,
	})
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	})
}

// handleTrackingStatus reports whether the detection models are loaded.
func (s *Server) handleTrackingStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	available := s.config.Hands != nil
	message := "Multiplayer tracking ready"
	if !available {
		message = "Hand detection model not loaded"
	} else if s.config.Persons == nil {
		message = "Person tracking unavailable; running hand-only fallback"
	}

	writeJSON(w, map[string]interface{}{
		"available": available,
		"message":   message,
	})
}

// handleSamples serves the sample-loop catalog.
func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	samples, err := s.config.Store.Samples().List()
	if err != nil {
		http.Error(w, "Failed to list samples", http.StatusInternalServerError)
		return
	}

	type sampleResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		URL  string `json:"url"`
	}

	out := make([]sampleResponse, 0, len(samples))
	for _, sample := range samples {
		out = append(out, sampleResponse{ID: sample.ID, Name: sample.Name, URL: sample.URL})
	}

	writeJSON(w, map[string]interface{}{"samples": out})
}

// evolveTrackRequest mirrors the original evolve-track API shape.
type evolveTrackRequest struct {
	BasePrompt string  `json:"base_prompt"`
	ModifierX  float64 `json:"modifier_x"`
	ModifierY  float64 `json:"modifier_y"`
	BPM        int     `json:"bpm"`
}

type evolveTrackResponse struct {
	Success    bool   `json:"success"`
	PromptUsed string `json:"prompt_used"`
	Message    string `json:"message"`
}

// handleEvolveTrack builds an enhanced prompt from a base prompt and hand
// position modifiers.
func (s *Server) handleEvolveTrack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req evolveTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.BasePrompt == "" {
		http.Error(w, "base_prompt is required", http.StatusBadRequest)
		return
	}

	prompt := music.BuildPrompt(req.BasePrompt, req.ModifierX, req.ModifierY)

	writeJSON(w, evolveTrackResponse{
		Success:    true,
		PromptUsed: prompt,
		Message:    "Prompt generated successfully",
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// writeJSON encodes v as the JSON response body.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
