// Package detector provides body pose detection interfaces and types for posture analysis.
package detector

// Pose landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Landmark is a detected body keypoint. X and Y are normalized to [0,1]
// with the origin at the top-left corner of the image, Y growing downward.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// LandmarkSet holds the 33 pose landmarks of one detected body.
// A nil entry means the detector did not report that point.
type LandmarkSet struct {
	Points [NumLandmarks]*Landmark `json:"points"`
}

// NewLandmarkSet builds a set from a slice of optional points. Entries past
// NumLandmarks are ignored.
func NewLandmarkSet(points []*Landmark) *LandmarkSet {
	s := &LandmarkSet{}
	for i := 0; i < NumLandmarks && i < len(points); i++ {
		if points[i] == nil {
			continue
		}
		lm := *points[i]
		s.Points[i] = &lm
	}
	return s
}

// Get returns the landmark at index i and whether it is present.
// Out of range indices and nil sets report absent.
func (s *LandmarkSet) Get(i int) (Landmark, bool) {
	if s == nil || i < 0 || i >= NumLandmarks || s.Points[i] == nil {
		return Landmark{}, false
	}
	return *s.Points[i], true
}

// Set stores a copy of lm at index i.
func (s *LandmarkSet) Set(i int, lm Landmark) {
	if i < 0 || i >= NumLandmarks {
		return
	}
	s.Points[i] = &lm
}

// Clear marks index i as not detected.
func (s *LandmarkSet) Clear(i int) {
	if i < 0 || i >= NumLandmarks {
		return
	}
	s.Points[i] = nil
}

// Count returns the number of present landmarks.
func (s *LandmarkSet) Count() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, p := range s.Points {
		if p != nil {
			n++
		}
	}
	return n
}

// FilterVisibility returns a copy of the set in which landmarks with a
// visibility below minVisibility are dropped. A threshold <= 0 keeps every
// point.
func (s *LandmarkSet) FilterVisibility(minVisibility float64) *LandmarkSet {
	if s == nil {
		return nil
	}
	out := &LandmarkSet{}
	for i, p := range s.Points {
		if p == nil {
			continue
		}
		if minVisibility > 0 && p.Visibility < minVisibility {
			continue
		}
		lm := *p
		out.Points[i] = &lm
	}
	return out
}
