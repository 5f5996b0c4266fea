package music

import (
	"encoding/binary"
	"math"
	"sync"
	"time"
)

// Synth output format: mono 16-bit PCM.
const (
	synthSampleRate = 24000
	synthChunkMs    = 100
)

// SynthEngine is a local Engine implementation that renders simple pulsed
// sine tones from the current config. It stands in for the cloud API when
// no API key is configured, and exercises the full streaming protocol in
// tests.
type SynthEngine struct {
	mu      sync.Mutex
	cfg     GenerationConfig
	prompts []WeightedPrompt
	playing bool
	closed  bool
	phase   float64
	beatPos float64
	audio   chan []byte
	stopCh  chan struct{}
}

// NewSynthEngine creates a SynthEngine with default config.
func NewSynthEngine() *SynthEngine {
	return &SynthEngine{
		cfg:   DefaultGenerationConfig(),
		audio: make(chan []byte, 8),
	}
}

// SetPrompts stores the prompt blend. The synth only reacts to prompt
// count (denser blends raise the tone), which is enough for the frontend
// to hear state changes.
func (e *SynthEngine) SetPrompts(prompts []WeightedPrompt) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	e.prompts = prompts
	return nil
}

// SetConfig replaces the generation config.
func (e *SynthEngine) SetConfig(cfg GenerationConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	if cfg.BPM <= 0 {
		cfg.BPM = DefaultBPM
	}
	e.cfg = cfg
	return nil
}

// Play starts audio generation. Playing again while already playing is a
// no-op.
func (e *SynthEngine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	if e.playing {
		return nil
	}
	e.playing = true
	e.stopCh = make(chan struct{})
	go e.run(e.stopCh)
	return nil
}

// Pause suspends audio generation, keeping the session state.
func (e *SynthEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	e.stopLocked()
	return nil
}

// Stop ends playback and rewinds the synth state.
func (e *SynthEngine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	e.stopLocked()
	e.phase = 0
	e.beatPos = 0
	return nil
}

// Audio returns the PCM chunk channel. Closed by Close.
func (e *SynthEngine) Audio() <-chan []byte {
	return e.audio
}

// Close ends the session. Safe to call more than once.
func (e *SynthEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.stopLocked()
	e.closed = true
	close(e.audio)
	return nil
}

func (e *SynthEngine) stopLocked() {
	if e.playing {
		close(e.stopCh)
		e.stopCh = nil
		e.playing = false
	}
}

// run emits one PCM chunk per tick until stopped.
func (e *SynthEngine) run(stop chan struct{}) {
	ticker := time.NewTicker(synthChunkMs * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !e.emitChunk() {
				return
			}
		}
	}
}

// emitChunk renders and sends one chunk while holding the lock. The send
// must happen under the same lock as the closed check: Close closes the
// audio channel under this lock, and sending on a closed channel panics.
func (e *SynthEngine) emitChunk() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.playing {
		return false
	}

	select {
	case e.audio <- e.renderChunk():
	default:
		// Slow consumer; drop the chunk rather than stall.
	}
	return true
}

// renderChunk synthesizes synthChunkMs of audio from the current config:
// brightness picks the tone, density its loudness, BPM the pulse. Called
// with the lock held.
func (e *SynthEngine) renderChunk() []byte {
	samples := synthSampleRate * synthChunkMs / 1000
	buf := make([]byte, samples*2)

	freq := 110.0 * math.Pow(2, e.cfg.Brightness*3) // 110Hz..880Hz
	amp := 0.2 + 0.6*e.cfg.Density
	beatLen := float64(synthSampleRate) * 60 / float64(e.cfg.BPM)

	for i := 0; i < samples; i++ {
		// Per-beat decay envelope.
		env := math.Exp(-3 * e.beatPos / beatLen)
		v := math.Sin(e.phase) * amp * env

		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(v*math.MaxInt16)))

		e.phase += 2 * math.Pi * freq / synthSampleRate
		if e.phase > 2*math.Pi {
			e.phase -= 2 * math.Pi
		}
		e.beatPos++
		if e.beatPos >= beatLen {
			e.beatPos = 0
		}
	}

	return buf
}
