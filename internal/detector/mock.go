package detector

import (
	"context"
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	set   *LandmarkSet
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetLandmarks sets the landmark set that will be returned by Detect.
// A nil set simulates an image with no body in it.
func (m *MockDetector) SetLandmarks(set *LandmarkSet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set = set
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured landmarks or error.
func (m *MockDetector) Detect(ctx context.Context, frame *gocv.Mat) (*LandmarkSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.set, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// ShootingFormLandmarks returns a preset LandmarkSet of a front-facing
// player at the top of a jump shot with the left arm as the shooting arm.
// Every check in the posture analyzer passes for this pose.
func ShootingFormLandmarks() *LandmarkSet {
	s := &LandmarkSet{}

	// Head, looking up at the rim
	s.Set(Nose, Landmark{X: 0.50, Y: 0.30, Visibility: 0.99})
	s.Set(LeftEyeInner, Landmark{X: 0.49, Y: 0.28, Visibility: 0.99})
	s.Set(LeftEye, Landmark{X: 0.48, Y: 0.28, Visibility: 0.99})
	s.Set(LeftEyeOuter, Landmark{X: 0.47, Y: 0.28, Visibility: 0.99})
	s.Set(RightEyeInner, Landmark{X: 0.51, Y: 0.28, Visibility: 0.99})
	s.Set(RightEye, Landmark{X: 0.52, Y: 0.28, Visibility: 0.99})
	s.Set(RightEyeOuter, Landmark{X: 0.53, Y: 0.28, Visibility: 0.99})
	s.Set(LeftEar, Landmark{X: 0.46, Y: 0.29, Visibility: 0.95})
	s.Set(RightEar, Landmark{X: 0.54, Y: 0.29, Visibility: 0.95})
	s.Set(MouthLeft, Landmark{X: 0.49, Y: 0.33, Visibility: 0.99})
	s.Set(MouthRight, Landmark{X: 0.51, Y: 0.33, Visibility: 0.99})

	// Torso level
	s.Set(LeftShoulder, Landmark{X: 0.42, Y: 0.40, Visibility: 0.99})
	s.Set(RightShoulder, Landmark{X: 0.58, Y: 0.40, Visibility: 0.99})

	// Left arm cocked: upper arm level across the chest, forearm vertical,
	// 90 degrees at the elbow
	s.Set(LeftElbow, Landmark{X: 0.52, Y: 0.40, Visibility: 0.98})
	s.Set(LeftWrist, Landmark{X: 0.52, Y: 0.25, Visibility: 0.97})
	s.Set(LeftPinky, Landmark{X: 0.51, Y: 0.22, Visibility: 0.90})
	s.Set(LeftIndex, Landmark{X: 0.53, Y: 0.21, Visibility: 0.90})
	s.Set(LeftThumb, Landmark{X: 0.54, Y: 0.23, Visibility: 0.90})

	// Guide arm resting lower
	s.Set(RightElbow, Landmark{X: 0.62, Y: 0.55, Visibility: 0.98})
	s.Set(RightWrist, Landmark{X: 0.60, Y: 0.65, Visibility: 0.97})
	s.Set(RightPinky, Landmark{X: 0.60, Y: 0.68, Visibility: 0.90})
	s.Set(RightIndex, Landmark{X: 0.59, Y: 0.68, Visibility: 0.90})
	s.Set(RightThumb, Landmark{X: 0.59, Y: 0.66, Visibility: 0.90})

	// Hips and legs
	s.Set(LeftHip, Landmark{X: 0.45, Y: 0.62, Visibility: 0.99})
	s.Set(RightHip, Landmark{X: 0.55, Y: 0.62, Visibility: 0.99})
	s.Set(LeftKnee, Landmark{X: 0.43, Y: 0.76, Visibility: 0.98})
	s.Set(RightKnee, Landmark{X: 0.57, Y: 0.76, Visibility: 0.98})
	s.Set(LeftAnkle, Landmark{X: 0.42, Y: 0.90, Visibility: 0.97})
	s.Set(RightAnkle, Landmark{X: 0.58, Y: 0.90, Visibility: 0.97})
	s.Set(LeftHeel, Landmark{X: 0.41, Y: 0.92, Visibility: 0.95})
	s.Set(RightHeel, Landmark{X: 0.59, Y: 0.92, Visibility: 0.95})
	s.Set(LeftFootIndex, Landmark{X: 0.40, Y: 0.95, Visibility: 0.95})
	s.Set(RightFootIndex, Landmark{X: 0.60, Y: 0.95, Visibility: 0.95})

	return s
}

// SlouchedLandmarks returns a preset LandmarkSet of a player with both hands
// at the waist, feet together and the head dropped. Most checks fail.
func SlouchedLandmarks() *LandmarkSet {
	s := ShootingFormLandmarks()

	s.Set(Nose, Landmark{X: 0.50, Y: 0.45, Visibility: 0.99})
	s.Set(LeftEye, Landmark{X: 0.48, Y: 0.40, Visibility: 0.99})
	s.Set(RightEye, Landmark{X: 0.52, Y: 0.47, Visibility: 0.99})

	s.Set(LeftElbow, Landmark{X: 0.40, Y: 0.58, Visibility: 0.98})
	s.Set(LeftWrist, Landmark{X: 0.42, Y: 0.70, Visibility: 0.97})
	s.Set(RightElbow, Landmark{X: 0.60, Y: 0.58, Visibility: 0.98})
	s.Set(RightWrist, Landmark{X: 0.58, Y: 0.72, Visibility: 0.97})

	s.Set(LeftFootIndex, Landmark{X: 0.48, Y: 0.95, Visibility: 0.95})
	s.Set(RightFootIndex, Landmark{X: 0.52, Y: 0.95, Visibility: 0.95})

	return s
}
