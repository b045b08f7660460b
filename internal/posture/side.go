package posture

import "github.com/ayusman/hoopform/internal/detector"

// Side identifies an arm.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	// SideTied means neither wrist is higher than the other.
	SideTied Side = "tied"
)

// sideIndices maps a side to its shoulder, elbow and wrist landmarks.
var sideIndices = map[Side][3]int{
	SideLeft:  {detector.LeftShoulder, detector.LeftElbow, detector.LeftWrist},
	SideRight: {detector.RightShoulder, detector.RightElbow, detector.RightWrist},
}

// SelectShootingSide returns the side whose wrist is higher in the frame
// (smaller y). When the wrists are level the result is tieBreak, which may
// itself be SideTied.
func SelectShootingSide(leftWrist, rightWrist detector.Landmark, t Thresholds) Side {
	switch {
	case t.below(leftWrist.Y, rightWrist.Y):
		return SideLeft
	case t.below(rightWrist.Y, leftWrist.Y):
		return SideRight
	default:
		return t.TieBreak
	}
}

// shootingSide looks up both wrists and resolves the shooting side.
// ok is false when a wrist is missing or the tie is left unresolved.
func shootingSide(set *detector.LandmarkSet, t Thresholds) (Side, bool) {
	wrists, ok := landmarks(set, detector.LeftWrist, detector.RightWrist)
	if !ok {
		return "", false
	}
	side := SelectShootingSide(wrists[0], wrists[1], t)
	if side != SideLeft && side != SideRight {
		return side, false
	}
	return side, true
}
