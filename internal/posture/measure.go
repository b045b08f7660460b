package posture

import "github.com/ayusman/hoopform/internal/detector"

// Measurements are the raw joint figures behind a report. Fields are nil
// when the landmarks they depend on were not detected.
type Measurements struct {
	LeftElbowAngle  *float64 `json:"left_elbow_angle,omitempty"`
	RightElbowAngle *float64 `json:"right_elbow_angle,omitempty"`
	LeftKneeAngle   *float64 `json:"left_knee_angle,omitempty"`
	RightKneeAngle  *float64 `json:"right_knee_angle,omitempty"`
	FootDistance    *float64 `json:"foot_distance,omitempty"`
	ShootingSide    Side     `json:"shooting_side,omitempty"`
}

// Measure computes joint angles, foot spacing and the shooting side.
func (a *Analyzer) Measure(set *detector.LandmarkSet) Measurements {
	var m Measurements
	if set == nil {
		return m
	}
	if a.thresholds.MinVisibility > 0 {
		set = set.FilterVisibility(a.thresholds.MinVisibility)
	}

	if v, ok := elbowAngle(set, SideLeft); ok {
		m.LeftElbowAngle = &v
	}
	if v, ok := elbowAngle(set, SideRight); ok {
		m.RightElbowAngle = &v
	}
	if v, ok := jointAngle(set, detector.LeftHip, detector.LeftKnee, detector.LeftAnkle); ok {
		m.LeftKneeAngle = &v
	}
	if v, ok := jointAngle(set, detector.RightHip, detector.RightKnee, detector.RightAnkle); ok {
		m.RightKneeAngle = &v
	}
	if feet, ok := landmarks(set, detector.LeftFootIndex, detector.RightFootIndex); ok {
		d := HorizontalGap(feet[0], feet[1])
		m.FootDistance = &d
	}
	if wrists, ok := landmarks(set, detector.LeftWrist, detector.RightWrist); ok {
		m.ShootingSide = SelectShootingSide(wrists[0], wrists[1], a.thresholds)
	}

	return m
}

func jointAngle(set *detector.LandmarkSet, a, b, c int) (float64, bool) {
	pts, ok := landmarks(set, a, b, c)
	if !ok {
		return 0, false
	}
	return AngleBetween(pts[0], pts[1], pts[2]), true
}
