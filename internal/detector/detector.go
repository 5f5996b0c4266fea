package detector

import "gocv.io/x/gocv"

// HandDetector defines the interface for hand landmark detection
// implementations. Implementations serialize access internally so a
// single instance may be shared by multiple tracking sessions.
type HandDetector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect.
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
// MaxHands defaults to 8: two hands for each of four players.
func DefaultConfig() Config {
	return Config{
		MaxHands:        8,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
