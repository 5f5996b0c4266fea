package detector

import (
	"gocv.io/x/gocv"
)

// MockHandDetector is a test implementation of the HandDetector interface.
// It allows tests to control the detection results.
type MockHandDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockHandDetector creates a new MockHandDetector instance.
func NewMockHandDetector() *MockHandDetector {
	return &MockHandDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockHandDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockHandDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockHandDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockHandDetector) Close() error {
	return nil
}

// MockPersonDetector is a test implementation of the PersonDetector
// interface.
type MockPersonDetector struct {
	detections []Detection
	err        error
	calls      int
}

// NewMockPersonDetector creates a new MockPersonDetector instance.
func NewMockPersonDetector() *MockPersonDetector {
	return &MockPersonDetector{}
}

// SetDetections sets the detections that will be returned by Track.
func (m *MockPersonDetector) SetDetections(detections []Detection) {
	m.detections = detections
}

// SetError sets the error that will be returned by Track.
func (m *MockPersonDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Track has been invoked.
func (m *MockPersonDetector) Calls() int {
	return m.calls
}

// Track returns the pre-configured detections or error.
func (m *MockPersonDetector) Track(frame *gocv.Mat) ([]Detection, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.detections, nil
}

// Close is a no-op for the mock detector.
func (m *MockPersonDetector) Close() error {
	return nil
}

// PinchLandmarks returns a preset HandLandmarks representing a pinch:
// thumb and index fingertips touching, remaining fingers extended upward.
func PinchLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	// Thumb reaching toward the index fingertip
	lm.Points[ThumbCMC] = Point3D{X: 0.44, Y: 0.74}
	lm.Points[ThumbMCP] = Point3D{X: 0.42, Y: 0.66}
	lm.Points[ThumbIP] = Point3D{X: 0.44, Y: 0.58}
	lm.Points[ThumbTip] = Point3D{X: 0.47, Y: 0.52}

	// Index finger bent down to meet the thumb
	lm.Points[IndexMCP] = Point3D{X: 0.46, Y: 0.60}
	lm.Points[IndexPIP] = Point3D{X: 0.46, Y: 0.55}
	lm.Points[IndexDIP] = Point3D{X: 0.47, Y: 0.52}
	lm.Points[IndexTip] = Point3D{X: 0.48, Y: 0.50}

	// Remaining fingers extended (tips well above their PIPs)
	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.60}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.50}
	lm.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.42}
	lm.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.35}

	lm.Points[RingMCP] = Point3D{X: 0.54, Y: 0.61}
	lm.Points[RingPIP] = Point3D{X: 0.55, Y: 0.52}
	lm.Points[RingDIP] = Point3D{X: 0.55, Y: 0.44}
	lm.Points[RingTip] = Point3D{X: 0.55, Y: 0.37}

	lm.Points[PinkyMCP] = Point3D{X: 0.58, Y: 0.62}
	lm.Points[PinkyPIP] = Point3D{X: 0.59, Y: 0.55}
	lm.Points[PinkyDIP] = Point3D{X: 0.60, Y: 0.47}
	lm.Points[PinkyTip] = Point3D{X: 0.60, Y: 0.40}

	return lm
}

// FistLandmarks returns a preset HandLandmarks representing a closed fist:
// all fingertips curled below their PIP joints and clustered together.
// The thumb tip also rests against the index tip, so a fist fixture is
// useful for verifying that fist takes precedence over pinch.
func FistLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.93,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	lm.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.75}
	lm.Points[ThumbMCP] = Point3D{X: 0.43, Y: 0.70}
	lm.Points[ThumbIP] = Point3D{X: 0.44, Y: 0.67}
	lm.Points[ThumbTip] = Point3D{X: 0.45, Y: 0.64}

	lm.Points[IndexMCP] = Point3D{X: 0.46, Y: 0.62}
	lm.Points[IndexPIP] = Point3D{X: 0.46, Y: 0.58}
	lm.Points[IndexDIP] = Point3D{X: 0.46, Y: 0.62}
	lm.Points[IndexTip] = Point3D{X: 0.47, Y: 0.66}

	lm.Points[MiddleMCP] = Point3D{X: 0.49, Y: 0.61}
	lm.Points[MiddlePIP] = Point3D{X: 0.49, Y: 0.57}
	lm.Points[MiddleDIP] = Point3D{X: 0.49, Y: 0.62}
	lm.Points[MiddleTip] = Point3D{X: 0.49, Y: 0.67}

	lm.Points[RingMCP] = Point3D{X: 0.52, Y: 0.62}
	lm.Points[RingPIP] = Point3D{X: 0.52, Y: 0.58}
	lm.Points[RingDIP] = Point3D{X: 0.52, Y: 0.63}
	lm.Points[RingTip] = Point3D{X: 0.51, Y: 0.67}

	lm.Points[PinkyMCP] = Point3D{X: 0.55, Y: 0.63}
	lm.Points[PinkyPIP] = Point3D{X: 0.55, Y: 0.60}
	lm.Points[PinkyDIP] = Point3D{X: 0.54, Y: 0.64}
	lm.Points[PinkyTip] = Point3D{X: 0.53, Y: 0.66}

	return lm
}

// OpenPalmLandmarks returns a preset HandLandmarks representing an open
// palm with fingers spread: no pinch, no fist.
func OpenPalmLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.97,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	lm.Points[ThumbCMC] = Point3D{X: 0.42, Y: 0.74}
	lm.Points[ThumbMCP] = Point3D{X: 0.37, Y: 0.68}
	lm.Points[ThumbIP] = Point3D{X: 0.33, Y: 0.61}
	lm.Points[ThumbTip] = Point3D{X: 0.30, Y: 0.55}

	lm.Points[IndexMCP] = Point3D{X: 0.44, Y: 0.60}
	lm.Points[IndexPIP] = Point3D{X: 0.42, Y: 0.51}
	lm.Points[IndexDIP] = Point3D{X: 0.41, Y: 0.43}
	lm.Points[IndexTip] = Point3D{X: 0.40, Y: 0.35}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.59}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.49}
	lm.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40}
	lm.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.32}

	lm.Points[RingMCP] = Point3D{X: 0.56, Y: 0.60}
	lm.Points[RingPIP] = Point3D{X: 0.58, Y: 0.51}
	lm.Points[RingDIP] = Point3D{X: 0.59, Y: 0.43}
	lm.Points[RingTip] = Point3D{X: 0.60, Y: 0.36}

	lm.Points[PinkyMCP] = Point3D{X: 0.61, Y: 0.62}
	lm.Points[PinkyPIP] = Point3D{X: 0.64, Y: 0.55}
	lm.Points[PinkyDIP] = Point3D{X: 0.66, Y: 0.47}
	lm.Points[PinkyTip] = Point3D{X: 0.68, Y: 0.40}

	return lm
}

// PartialLandmarks returns a HandLandmarks with fewer than NumLandmarks
// points, as a detector may produce for a hand leaving the frame.
func PartialLandmarks(n int) HandLandmarks {
	if n > NumLandmarks {
		n = NumLandmarks
	}
	lm := HandLandmarks{
		Points:     make([]Point3D, n),
		Handedness: "Right",
		Score:      0.40,
	}
	for i := 0; i < n; i++ {
		lm.Points[i] = Point3D{X: 0.5, Y: 0.5}
	}
	return lm
}
