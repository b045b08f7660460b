package posture

import "github.com/ayusman/hoopform/internal/detector"

// A check inspects one aspect of the stance and appends its findings to r.
// Checks append nothing when a landmark they need is missing.
type check struct {
	name string
	run  func(set *detector.LandmarkSet, t Thresholds, r *Report)
}

// checks run in display order.
var checks = []check{
	{"feet", checkFeet},
	{"knees", checkKnees},
	{"hips", checkHips},
	{"shoulders", checkShoulders},
	{"arm", checkArm},
	{"elbow", checkElbow},
	{"wrist", checkWrist},
	{"head", checkHead},
}

// checkFeet grades the horizontal spacing between the feet.
func checkFeet(set *detector.LandmarkSet, t Thresholds, r *Report) {
	feet, ok := landmarks(set, detector.LeftFootIndex, detector.RightFootIndex)
	if !ok {
		return
	}

	d := HorizontalGap(feet[0], feet[1])
	switch {
	case t.within(d, t.FeetMin, t.FeetMax):
		r.pass(MsgFeetStable)
	case !t.below(d, t.FeetMax):
		r.fail(MsgFeetTooWide, TipFeetTooWide)
	default:
		r.fail(MsgFeetTooClose, TipFeetTooClose)
	}
}

// level grades a pair of joints that should sit at the same height.
func level(set *detector.LandmarkSet, t Thresholds, r *Report, left, right int, ok, bad, tip string) {
	pair, present := landmarks(set, left, right)
	if !present {
		return
	}
	if t.below(VerticalGap(pair[0], pair[1]), t.LevelGap) {
		r.pass(ok)
		return
	}
	r.fail(bad, tip)
}

func checkKnees(set *detector.LandmarkSet, t Thresholds, r *Report) {
	level(set, t, r, detector.LeftKnee, detector.RightKnee,
		MsgKneesAligned, MsgKneesMisaligned, TipKneesMisaligned)
}

func checkHips(set *detector.LandmarkSet, t Thresholds, r *Report) {
	level(set, t, r, detector.LeftHip, detector.RightHip,
		MsgHipsLevel, MsgHipsUneven, TipHipsUneven)
}

func checkShoulders(set *detector.LandmarkSet, t Thresholds, r *Report) {
	level(set, t, r, detector.LeftShoulder, detector.RightShoulder,
		MsgShouldersAligned, MsgShouldersMisaligned, TipShouldersMisaligned)
}

// checkArm looks for a raised arm (wrist above its elbow) and, when one is
// found, whether it is lifted high enough. The left arm wins when both are up.
func checkArm(set *detector.LandmarkSet, t Thresholds, r *Report) {
	pts, ok := landmarks(set, detector.LeftWrist, detector.RightWrist, detector.LeftElbow, detector.RightElbow)
	if !ok {
		return
	}
	leftWrist, rightWrist, leftElbow, rightElbow := pts[0], pts[1], pts[2], pts[3]

	leftRaised := t.below(leftWrist.Y, leftElbow.Y)
	rightRaised := t.below(rightWrist.Y, rightElbow.Y)

	if !leftRaised && !rightRaised {
		r.fail(MsgNoArmRaised, TipNoArmRaised)
		return
	}

	r.pass(MsgArmInPosition)

	wrist, elbow := rightWrist, rightElbow
	if leftRaised {
		wrist, elbow = leftWrist, leftElbow
	}

	if t.above(elbow.Y-wrist.Y, t.ArmLift) {
		r.pass(MsgArmWellRaised)
	} else {
		r.fail(MsgArmNotRaised, TipArmNotRaised)
	}
}

// checkElbow grades the elbow angle of the shooting arm. All six arm
// landmarks are required even though only one side is graded.
func checkElbow(set *detector.LandmarkSet, t Thresholds, r *Report) {
	if _, ok := landmarks(set,
		detector.LeftShoulder, detector.LeftElbow, detector.LeftWrist,
		detector.RightShoulder, detector.RightElbow, detector.RightWrist); !ok {
		return
	}

	side, ok := shootingSide(set, t)
	if !ok {
		return
	}

	theta, _ := elbowAngle(set, side)
	switch {
	case t.within(theta, t.ElbowMin, t.ElbowMax):
		r.pass(MsgElbowOptimal)
	case !t.above(theta, t.ElbowMin):
		r.fail(MsgElbowTooClosed, TipElbowTooClosed)
	default:
		r.fail(MsgElbowTooOpen, TipElbowTooOpen)
	}
}

// checkWrist grades how centered the shooting wrist is horizontally.
func checkWrist(set *detector.LandmarkSet, t Thresholds, r *Report) {
	side, ok := shootingSide(set, t)
	if !ok {
		return
	}

	wrist, _ := set.Get(sideIndices[side][2])
	if t.within(wrist.X, t.WristMinX, t.WristMaxX) {
		r.pass(MsgWristCentered)
		return
	}
	r.fail(MsgWristOffCenter, TipWristOffCenter)
}

// checkHead grades head tilt (eye heights) and head height (nose position)
// independently.
func checkHead(set *detector.LandmarkSet, t Thresholds, r *Report) {
	pts, ok := landmarks(set, detector.Nose, detector.LeftEye, detector.RightEye)
	if !ok {
		return
	}
	nose, leftEye, rightEye := pts[0], pts[1], pts[2]

	if t.below(VerticalGap(leftEye, rightEye), t.LevelGap) {
		r.pass(MsgHeadAligned)
	} else {
		r.fail(MsgHeadTilted, TipHeadTilted)
	}

	if t.below(nose.Y, t.HeadMaxY) {
		r.pass(MsgHeadOptimal)
	} else {
		r.fail(MsgHeadTooLow, TipHeadTooLow)
	}
}

// elbowAngle is the shoulder-elbow-wrist angle of one arm.
func elbowAngle(set *detector.LandmarkSet, side Side) (float64, bool) {
	idx, ok := sideIndices[side]
	if !ok {
		return 0, false
	}
	pts, ok := landmarks(set, idx[0], idx[1], idx[2])
	if !ok {
		return 0, false
	}
	return AngleBetween(pts[0], pts[1], pts[2]), true
}
