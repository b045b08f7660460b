package posture

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/ayusman/hoopform/internal/detector"
)

// setWith builds a landmark set holding only the given points.
func setWith(points map[int]detector.Landmark) *detector.LandmarkSet {
	s := &detector.LandmarkSet{}
	for i, lm := range points {
		s.Set(i, lm)
	}
	return s
}

func runCheck(fn func(*detector.LandmarkSet, Thresholds, *Report), set *detector.LandmarkSet) *Report {
	r := NewReport()
	fn(set, DefaultThresholds(), r)
	return r
}

func assertReport(t *testing.T, got *Report, positive, negative, tips []string) {
	t.Helper()
	if positive == nil {
		positive = []string{}
	}
	if negative == nil {
		negative = []string{}
	}
	if tips == nil {
		tips = []string{}
	}
	if !reflect.DeepEqual(got.Positive, positive) {
		t.Errorf("positive = %q, want %q", got.Positive, positive)
	}
	if !reflect.DeepEqual(got.Negative, negative) {
		t.Errorf("negative = %q, want %q", got.Negative, negative)
	}
	if !reflect.DeepEqual(got.Tips, tips) {
		t.Errorf("tips = %q, want %q", got.Tips, tips)
	}
}

func TestChecks_MissingLandmarks(t *testing.T) {
	full := detector.ShootingFormLandmarks()

	tests := []struct {
		name    string
		fn      func(*detector.LandmarkSet, Thresholds, *Report)
		missing []int
	}{
		{"feet without left foot", checkFeet, []int{detector.LeftFootIndex}},
		{"feet without right foot", checkFeet, []int{detector.RightFootIndex}},
		{"knees", checkKnees, []int{detector.RightKnee}},
		{"hips", checkHips, []int{detector.LeftHip}},
		{"shoulders", checkShoulders, []int{detector.RightShoulder}},
		{"arm without elbow", checkArm, []int{detector.RightElbow}},
		{"arm without wrist", checkArm, []int{detector.LeftWrist}},
		{"elbow without shoulder", checkElbow, []int{detector.LeftShoulder}},
		{"elbow without off-side shoulder", checkElbow, []int{detector.RightShoulder}},
		{"wrist", checkWrist, []int{detector.RightWrist}},
		{"head without nose", checkHead, []int{detector.Nose}},
		{"head without eye", checkHead, []int{detector.LeftEye}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := detector.NewLandmarkSet(full.Points[:])
			for _, idx := range tt.missing {
				set.Clear(idx)
			}
			assertReport(t, runCheck(tt.fn, set), nil, nil, nil)
		})
	}

	t.Run("empty set", func(t *testing.T) {
		for _, c := range checks {
			r := runCheck(c.run, &detector.LandmarkSet{})
			if len(r.Positive)+len(r.Negative)+len(r.Tips) != 0 {
				t.Errorf("%s appended findings on an empty set: %+v", c.name, r)
			}
		}
	})
}

func feetAt(left, right float64) *detector.LandmarkSet {
	return setWith(map[int]detector.Landmark{
		detector.LeftFootIndex:  pt(left, 0.95),
		detector.RightFootIndex: pt(right, 0.95),
	})
}

func TestCheckFeet(t *testing.T) {
	tests := []struct {
		name        string
		left, right float64
		positive    []string
		negative    []string
		tips        []string
	}{
		{"balanced", 0.4, 0.6, []string{MsgFeetStable}, nil, nil},
		{"balanced mirrored", 0.6, 0.4, []string{MsgFeetStable}, nil, nil},
		{"too wide", 0.3, 0.65, nil, []string{MsgFeetTooWide}, []string{TipFeetTooWide}},
		{"too close", 0.48, 0.53, nil, []string{MsgFeetTooClose}, []string{TipFeetTooClose}},
		{"lower bound is too close", 0.45, 0.55, nil, []string{MsgFeetTooClose}, []string{TipFeetTooClose}},
		{"upper bound is too wide", 0.4, 0.7, nil, []string{MsgFeetTooWide}, []string{TipFeetTooWide}},
		{"same spot", 0.5, 0.5, nil, []string{MsgFeetTooClose}, []string{TipFeetTooClose}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertReport(t, runCheck(checkFeet, feetAt(tt.left, tt.right)), tt.positive, tt.negative, tt.tips)
		})
	}
}

func TestLevelChecks(t *testing.T) {
	pairs := []struct {
		name        string
		fn          func(*detector.LandmarkSet, Thresholds, *Report)
		left, right int
		ok, bad     string
		tip         string
	}{
		{"knees", checkKnees, detector.LeftKnee, detector.RightKnee, MsgKneesAligned, MsgKneesMisaligned, TipKneesMisaligned},
		{"hips", checkHips, detector.LeftHip, detector.RightHip, MsgHipsLevel, MsgHipsUneven, TipHipsUneven},
		{"shoulders", checkShoulders, detector.LeftShoulder, detector.RightShoulder, MsgShouldersAligned, MsgShouldersMisaligned, TipShouldersMisaligned},
	}

	gaps := []struct {
		name string
		y    float64
		pass bool
	}{
		{"level", 0.5, true},
		{"gap 0.04", 0.54, true},
		{"gap 0.05 boundary", 0.55, false},
		{"gap 0.06", 0.56, false},
		{"gap 0.04 other side", 0.46, true},
		{"gap 0.05 boundary other side", 0.45, false},
	}

	for _, p := range pairs {
		for _, g := range gaps {
			t.Run(p.name+"/"+g.name, func(t *testing.T) {
				set := setWith(map[int]detector.Landmark{
					p.left:  pt(0.4, 0.5),
					p.right: pt(0.6, g.y),
				})
				r := runCheck(p.fn, set)
				if g.pass {
					assertReport(t, r, []string{p.ok}, nil, nil)
				} else {
					assertReport(t, r, nil, []string{p.bad}, []string{p.tip})
				}
			})
		}
	}
}

func armSet(leftWristY, leftElbowY, rightWristY, rightElbowY float64) *detector.LandmarkSet {
	return setWith(map[int]detector.Landmark{
		detector.LeftWrist:  pt(0.45, leftWristY),
		detector.LeftElbow:  pt(0.40, leftElbowY),
		detector.RightWrist: pt(0.55, rightWristY),
		detector.RightElbow: pt(0.60, rightElbowY),
	})
}

func TestCheckArm(t *testing.T) {
	tests := []struct {
		name     string
		set      *detector.LandmarkSet
		positive []string
		negative []string
		tips     []string
	}{
		{
			name:     "left arm well raised",
			set:      armSet(0.2, 0.4, 0.7, 0.5),
			positive: []string{MsgArmInPosition, MsgArmWellRaised},
		},
		{
			name:     "right arm well raised",
			set:      armSet(0.7, 0.5, 0.15, 0.4),
			positive: []string{MsgArmInPosition, MsgArmWellRaised},
		},
		{
			name:     "left arm barely raised",
			set:      armSet(0.35, 0.4, 0.7, 0.5),
			positive: []string{MsgArmInPosition},
			negative: []string{MsgArmNotRaised},
			tips:     []string{TipArmNotRaised},
		},
		{
			name:     "lift of exactly 0.1 is not enough",
			set:      armSet(0.3, 0.4, 0.7, 0.5),
			positive: []string{MsgArmInPosition},
			negative: []string{MsgArmNotRaised},
			tips:     []string{TipArmNotRaised},
		},
		{
			name:     "both raised, left wins even when right is higher",
			set:      armSet(0.35, 0.4, 0.1, 0.4),
			positive: []string{MsgArmInPosition},
			negative: []string{MsgArmNotRaised},
			tips:     []string{TipArmNotRaised},
		},
		{
			name:     "no arm raised",
			set:      armSet(0.7, 0.5, 0.7, 0.5),
			negative: []string{MsgNoArmRaised},
			tips:     []string{TipNoArmRaised},
		},
		{
			name:     "wrist level with elbow is not raised",
			set:      armSet(0.5, 0.5, 0.6, 0.5),
			negative: []string{MsgNoArmRaised},
			tips:     []string{TipNoArmRaised},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertReport(t, runCheck(checkArm, tt.set), tt.positive, tt.negative, tt.tips)
		})
	}
}

// elbowSet places the left arm so that the shoulder-elbow-wrist angle is
// theta degrees, with the right wrist hanging low so the left is the
// shooting side.
func elbowSet(theta float64) *detector.LandmarkSet {
	rad := theta * math.Pi / 180
	elbow := pt(0.5, 0.5)
	return setWith(map[int]detector.Landmark{
		detector.LeftShoulder:  pt(0.5, 0.7),
		detector.LeftElbow:     elbow,
		detector.LeftWrist:     pt(elbow.X+0.2*math.Sin(rad), elbow.Y+0.2*math.Cos(rad)),
		detector.RightShoulder: pt(0.7, 0.4),
		detector.RightElbow:    pt(0.75, 0.6),
		detector.RightWrist:    pt(0.75, 0.95),
	})
}

func TestElbowSet_Angle(t *testing.T) {
	for _, theta := range []float64{70, 80, 100, 120, 130} {
		set := elbowSet(theta)
		got, ok := elbowAngle(set, SideLeft)
		if !ok || math.Abs(got-theta) > epsilon {
			t.Errorf("elbowSet(%v) measures %f", theta, got)
		}
	}
}

func TestCheckElbow(t *testing.T) {
	tests := []struct {
		theta    float64
		positive []string
		negative []string
		tips     []string
	}{
		{100, []string{MsgElbowOptimal}, nil, nil},
		{81, []string{MsgElbowOptimal}, nil, nil},
		{119, []string{MsgElbowOptimal}, nil, nil},
		{70, nil, []string{MsgElbowTooClosed}, []string{TipElbowTooClosed}},
		{80, nil, []string{MsgElbowTooClosed}, []string{TipElbowTooClosed}},
		{120, nil, []string{MsgElbowTooOpen}, []string{TipElbowTooOpen}},
		{130, nil, []string{MsgElbowTooOpen}, []string{TipElbowTooOpen}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v degrees", tt.theta), func(t *testing.T) {
			r := runCheck(checkElbow, elbowSet(tt.theta))
			assertReport(t, r, tt.positive, tt.negative, tt.tips)
		})
	}
}

func TestCheckElbow_RightSide(t *testing.T) {
	// Right wrist higher: the right arm (straight, 180 degrees) is graded.
	set := setWith(map[int]detector.Landmark{
		detector.LeftShoulder:  pt(0.4, 0.4),
		detector.LeftElbow:     pt(0.35, 0.6),
		detector.LeftWrist:     pt(0.35, 0.8),
		detector.RightShoulder: pt(0.6, 0.4),
		detector.RightElbow:    pt(0.6, 0.25),
		detector.RightWrist:    pt(0.6, 0.1),
	})
	assertReport(t, runCheck(checkElbow, set), nil, []string{MsgElbowTooOpen}, []string{TipElbowTooOpen})
}

func wristSet(leftX, leftY, rightX, rightY float64) *detector.LandmarkSet {
	return setWith(map[int]detector.Landmark{
		detector.LeftWrist:  pt(leftX, leftY),
		detector.RightWrist: pt(rightX, rightY),
	})
}

func TestCheckWrist(t *testing.T) {
	tests := []struct {
		name     string
		set      *detector.LandmarkSet
		positive []string
		negative []string
		tips     []string
	}{
		{"left centered", wristSet(0.5, 0.2, 0.9, 0.6), []string{MsgWristCentered}, nil, nil},
		{"right centered", wristSet(0.1, 0.6, 0.55, 0.2), []string{MsgWristCentered}, nil, nil},
		{"left off-center", wristSet(0.3, 0.2, 0.5, 0.6), nil, []string{MsgWristOffCenter}, []string{TipWristOffCenter}},
		{"right off-center", wristSet(0.5, 0.6, 0.7, 0.2), nil, []string{MsgWristOffCenter}, []string{TipWristOffCenter}},
		{"bound 0.4 excluded", wristSet(0.4, 0.2, 0.5, 0.6), nil, []string{MsgWristOffCenter}, []string{TipWristOffCenter}},
		{"bound 0.6 excluded", wristSet(0.6, 0.2, 0.5, 0.6), nil, []string{MsgWristOffCenter}, []string{TipWristOffCenter}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertReport(t, runCheck(checkWrist, tt.set), tt.positive, tt.negative, tt.tips)
		})
	}
}

func TestShootingSide_Ties(t *testing.T) {
	// Wrists level: the left one is centered, the right one is not.
	tied := wristSet(0.5, 0.3, 0.8, 0.3)

	t.Run("default tie break grades the left wrist", func(t *testing.T) {
		assertReport(t, runCheck(checkWrist, tied), []string{MsgWristCentered}, nil, nil)
	})

	t.Run("right tie break grades the right wrist", func(t *testing.T) {
		th := DefaultThresholds()
		th.TieBreak = SideRight
		r := NewReport()
		checkWrist(tied, th, r)
		assertReport(t, r, nil, []string{MsgWristOffCenter}, []string{TipWristOffCenter})
	})

	t.Run("unresolved tie skips side checks", func(t *testing.T) {
		th := DefaultThresholds()
		th.TieBreak = SideTied

		set := elbowSet(100)
		wrist, _ := set.Get(detector.LeftWrist)
		right, _ := set.Get(detector.RightWrist)
		right.Y = wrist.Y
		set.Set(detector.RightWrist, right)

		for _, fn := range []func(*detector.LandmarkSet, Thresholds, *Report){checkElbow, checkWrist} {
			r := NewReport()
			fn(set, th, r)
			assertReport(t, r, nil, nil, nil)
		}
	})
}

func TestSelectShootingSide(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name        string
		left, right float64
		tieBreak    Side
		want        Side
	}{
		{"left higher", 0.2, 0.5, SideLeft, SideLeft},
		{"right higher", 0.5, 0.2, SideLeft, SideRight},
		{"tie to left", 0.3, 0.3, SideLeft, SideLeft},
		{"tie to right", 0.3, 0.3, SideRight, SideRight},
		{"tie unresolved", 0.3, 0.3, SideTied, SideTied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th.TieBreak = tt.tieBreak
			if got := SelectShootingSide(pt(0.4, tt.left), pt(0.6, tt.right), th); got != tt.want {
				t.Errorf("SelectShootingSide() = %q, want %q", got, tt.want)
			}
		})
	}
}

func headSet(noseY, leftEyeY, rightEyeY float64) *detector.LandmarkSet {
	return setWith(map[int]detector.Landmark{
		detector.Nose:     pt(0.5, noseY),
		detector.LeftEye:  pt(0.48, leftEyeY),
		detector.RightEye: pt(0.52, rightEyeY),
	})
}

func TestCheckHead(t *testing.T) {
	tests := []struct {
		name     string
		set      *detector.LandmarkSet
		positive []string
		negative []string
		tips     []string
	}{
		{"aligned and high", headSet(0.3, 0.28, 0.28), []string{MsgHeadAligned, MsgHeadOptimal}, nil, nil},
		{"tilted and high", headSet(0.3, 0.25, 0.31), []string{MsgHeadOptimal}, []string{MsgHeadTilted}, []string{TipHeadTilted}},
		{"aligned and low", headSet(0.5, 0.48, 0.49), []string{MsgHeadAligned}, []string{MsgHeadTooLow}, []string{TipHeadTooLow}},
		{"tilted and low", headSet(0.6, 0.5, 0.58), nil, []string{MsgHeadTilted, MsgHeadTooLow}, []string{TipHeadTilted, TipHeadTooLow}},
		{"nose on the limit is low", headSet(0.4, 0.38, 0.38), []string{MsgHeadAligned}, []string{MsgHeadTooLow}, []string{TipHeadTooLow}},
		{"eye gap 0.04", headSet(0.3, 0.24, 0.28), []string{MsgHeadAligned, MsgHeadOptimal}, nil, nil},
		{"eye gap 0.06", headSet(0.3, 0.22, 0.28), []string{MsgHeadOptimal}, []string{MsgHeadTilted}, []string{TipHeadTilted}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertReport(t, runCheck(checkHead, tt.set), tt.positive, tt.negative, tt.tips)
		})
	}
}
