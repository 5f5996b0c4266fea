package detector

import (
	"image"

	"gocv.io/x/gocv"
)

// Detection is one tracked person in a frame. TrackID is stable across
// frames while the person remains continuously observed.
type Detection struct {
	TrackID    int
	BBox       image.Rectangle // pixel coordinates in the source frame
	Confidence float64
}

// PersonDetector defines the interface for person detection and tracking
// implementations. Like HandDetector, implementations serialize access
// internally so a single instance may be shared by multiple sessions.
type PersonDetector interface {
	// Track analyzes a video frame and returns the people currently
	// visible, each with a stable track ID. Returns an empty slice if
	// nobody is detected.
	Track(frame *gocv.Mat) ([]Detection, error)

	// Close releases any resources held by the detector.
	Close() error
}
