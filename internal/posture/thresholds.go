package posture

import (
	"errors"
	"fmt"
)

// ErrInvalidThresholds is returned by Thresholds.Validate.
var ErrInvalidThresholds = errors.New("invalid posture thresholds")

// Thresholds holds every numeric limit used by the posture checks.
// Distances are in normalized image units, angles in degrees.
type Thresholds struct {
	// FeetMin and FeetMax bound the horizontal foot spacing of a stable stance.
	FeetMin float64 `json:"feet_min"`
	FeetMax float64 `json:"feet_max"`

	// LevelGap is the largest vertical gap between paired joints
	// (knees, hips, shoulders, eyes) that still counts as level.
	LevelGap float64 `json:"level_gap"`

	// ArmLift is how far the shooting wrist must sit above its elbow.
	ArmLift float64 `json:"arm_lift"`

	// ElbowMin and ElbowMax bound the optimal elbow angle.
	ElbowMin float64 `json:"elbow_min"`
	ElbowMax float64 `json:"elbow_max"`

	// WristMinX and WristMaxX bound the centered shooting wrist.
	WristMinX float64 `json:"wrist_min_x"`
	WristMaxX float64 `json:"wrist_max_x"`

	// HeadMaxY is the lowest the nose may sit in the frame.
	HeadMaxY float64 `json:"head_max_y"`

	// MinVisibility drops landmarks the detector is unsure about.
	// Zero keeps every reported point.
	MinVisibility float64 `json:"min_visibility"`

	// Epsilon absorbs float64 rounding when a measurement lands on a limit.
	Epsilon float64 `json:"epsilon"`

	// TieBreak picks the shooting side when both wrists are at the same
	// height. SideTied skips the side-dependent checks instead.
	TieBreak Side `json:"tie_break"`
}

// DefaultThresholds returns the standard coaching limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FeetMin:   0.1,
		FeetMax:   0.3,
		LevelGap:  0.05,
		ArmLift:   0.1,
		ElbowMin:  80,
		ElbowMax:  120,
		WristMinX: 0.4,
		WristMaxX: 0.6,
		HeadMaxY:  0.4,
		Epsilon:   1e-9,
		TieBreak:  SideLeft,
	}
}

// Validate checks the limits are ordered and in range.
func (t Thresholds) Validate() error {
	switch {
	case t.FeetMin < 0 || t.FeetMin >= t.FeetMax:
		return fmt.Errorf("%w: feet_min must be >= 0 and below feet_max", ErrInvalidThresholds)
	case t.LevelGap <= 0:
		return fmt.Errorf("%w: level_gap must be positive", ErrInvalidThresholds)
	case t.ArmLift < 0:
		return fmt.Errorf("%w: arm_lift must not be negative", ErrInvalidThresholds)
	case t.ElbowMin < 0 || t.ElbowMin >= t.ElbowMax || t.ElbowMax > 180:
		return fmt.Errorf("%w: elbow range must satisfy 0 <= elbow_min < elbow_max <= 180", ErrInvalidThresholds)
	case t.WristMinX < 0 || t.WristMinX >= t.WristMaxX || t.WristMaxX > 1:
		return fmt.Errorf("%w: wrist range must satisfy 0 <= wrist_min_x < wrist_max_x <= 1", ErrInvalidThresholds)
	case t.HeadMaxY <= 0 || t.HeadMaxY > 1:
		return fmt.Errorf("%w: head_max_y must be in (0, 1]", ErrInvalidThresholds)
	case t.MinVisibility < 0 || t.MinVisibility > 1:
		return fmt.Errorf("%w: min_visibility must be in [0, 1]", ErrInvalidThresholds)
	case t.Epsilon < 0:
		return fmt.Errorf("%w: epsilon must not be negative", ErrInvalidThresholds)
	}

	switch t.TieBreak {
	case SideLeft, SideRight, SideTied:
	default:
		return fmt.Errorf("%w: tie_break must be left, right or tied", ErrInvalidThresholds)
	}
	return nil
}

// below reports a < b by more than the rounding tolerance.
func (t Thresholds) below(a, b float64) bool {
	return a < b-t.Epsilon
}

// above reports a > b by more than the rounding tolerance.
func (t Thresholds) above(a, b float64) bool {
	return a > b+t.Epsilon
}

// within reports lo < v < hi, both bounds exclusive.
func (t Thresholds) within(v, lo, hi float64) bool {
	return t.above(v, lo) && t.below(v, hi)
}
