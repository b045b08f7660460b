package detector

import (
	"context"
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrDetectorUnavailable is returned when the pose detection backend cannot be found.
var ErrDetectorUnavailable = errors.New("pose detector unavailable")

// Detector defines the interface for body pose detection implementations.
type Detector interface {
	// Detect analyzes an image and returns the detected pose landmarks.
	// Returns a nil set if no body is detected.
	Detect(ctx context.Context, frame *gocv.Mat) (*LandmarkSet, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for pose detection.
type Config struct {
	// ModelComplexity selects the pose model (0, 1 or 2).
	ModelComplexity int `json:"model_complexity"`

	// SmoothLandmarks enables landmark filtering across frames.
	SmoothLandmarks bool `json:"smooth_landmarks"`

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64 `json:"min_detection_confidence"`

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64 `json:"min_tracking_confidence"`

	// ScriptPath overrides the location of mediapipe_pose_service.py.
	ScriptPath string `json:"script_path,omitempty"`

	// PythonPath overrides the interpreter used to run the script.
	PythonPath string `json:"python_path,omitempty"`

	// IdleTimeoutSec stops the subprocess after this many idle seconds.
	IdleTimeoutSec int `json:"idle_timeout_sec"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		ModelComplexity: 1,
		SmoothLandmarks: true,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
		IdleTimeoutSec:  30,
	}
}

// UnavailableDetector stands in when no pose backend could be started.
// Every Detect fails with an error wrapping ErrDetectorUnavailable.
type UnavailableDetector struct {
	cause error
}

// NewUnavailableDetector returns a detector that always fails with cause.
func NewUnavailableDetector(cause error) *UnavailableDetector {
	return &UnavailableDetector{cause: cause}
}

// Detect always fails.
func (u *UnavailableDetector) Detect(ctx context.Context, frame *gocv.Mat) (*LandmarkSet, error) {
	switch {
	case u.cause == nil:
		return nil, ErrDetectorUnavailable
	case errors.Is(u.cause, ErrDetectorUnavailable):
		return nil, u.cause
	default:
		return nil, fmt.Errorf("%w: %v", ErrDetectorUnavailable, u.cause)
	}
}

// Close does nothing.
func (u *UnavailableDetector) Close() error {
	return nil
}
