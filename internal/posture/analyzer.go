// Package posture grades a basketball shooting stance from detected pose
// landmarks.
//
// The Analyzer runs a fixed list of independent checks over a LandmarkSet:
//
//	feet       0.1 < |x_l - x_r| < 0.3           (>= 0.3 too wide, <= 0.1 too close)
//	knees      |y_l - y_r| < 0.05
//	hips       |y_l - y_r| < 0.05
//	shoulders  |y_l - y_r| < 0.05
//	arm        a wrist above its elbow, lifted more than 0.1
//	elbow      80 < shoulder-elbow-wrist angle < 120 on the shooting side
//	wrist      0.4 < x < 0.6 on the shooting side
//	head       |y_leftEye - y_rightEye| < 0.05, nose y < 0.4
//
// Every limit lives in Thresholds. Each measurement produces exactly one
// positive finding, or one negative finding plus a tip. Checks whose
// landmarks are missing contribute nothing.
package posture

import "github.com/ayusman/hoopform/internal/detector"

// Analyzer applies the posture checks with a fixed set of thresholds.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	thresholds Thresholds
}

// New creates an Analyzer with the given thresholds.
func New(t Thresholds) *Analyzer {
	return &Analyzer{thresholds: t}
}

// Thresholds returns the limits the analyzer grades against.
func (a *Analyzer) Thresholds() Thresholds {
	return a.thresholds
}

// Analyze grades the landmark set. A nil set means the detector found no
// body and yields NoDetectionReport without running any check.
func (a *Analyzer) Analyze(set *detector.LandmarkSet) *Report {
	if set == nil {
		return NoDetectionReport()
	}

	if a.thresholds.MinVisibility > 0 {
		set = set.FilterVisibility(a.thresholds.MinVisibility)
	}

	r := NewReport()
	for _, c := range checks {
		c.run(set, a.thresholds, r)
	}
	return r
}

// CheckNames lists the checks in the order Analyze runs them.
func CheckNames() []string {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.name
	}
	return names
}

// Analyze grades set with DefaultThresholds.
func Analyze(set *detector.LandmarkSet) *Report {
	return New(DefaultThresholds()).Analyze(set)
}
