package music

import "errors"

// ErrEngineClosed is returned by operations on an engine whose session has
// ended.
var ErrEngineClosed = errors.New("music engine closed")

// Generation defaults matching the Lyria RealTime API.
const (
	DefaultBPM         = 120
	DefaultTemperature = 1.0
	DefaultDensity     = 0.5
	DefaultBrightness  = 0.5
	DefaultGuidance    = 4.0
)

// WeightedPrompt is one style prompt with its blend weight.
type WeightedPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

// GenerationConfig holds the tunable parameters of a music session.
type GenerationConfig struct {
	BPM         int     `json:"bpm"`
	Temperature float64 `json:"temperature"`
	Density     float64 `json:"density"`
	Brightness  float64 `json:"brightness"`
	Guidance    float64 `json:"guidance"`
	Scale       string  `json:"scale"`
}

// DefaultGenerationConfig returns a GenerationConfig with the API's
// default values.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		BPM:         DefaultBPM,
		Temperature: DefaultTemperature,
		Density:     DefaultDensity,
		Brightness:  DefaultBrightness,
		Guidance:    DefaultGuidance,
		Scale:       "SCALE_UNSPECIFIED",
	}
}

// Engine is one generative-music session. An Engine is created per
// connection and closed when the connection ends. Audio delivers raw
// 16-bit little-endian PCM chunks while playing; the channel is closed by
// Close.
type Engine interface {
	SetPrompts(prompts []WeightedPrompt) error
	SetConfig(cfg GenerationConfig) error
	Play() error
	Pause() error
	Stop() error
	Audio() <-chan []byte
	Close() error
}
