package posture

// Feedback shown to the player.
const (
	MsgNoPosture      = "No posture detected"
	MsgAnalysisFailed = "Error while analyzing the image"
	TipAnalysisFailed = "Please try again with another image"

	MsgFeetStable   = "Stable, balanced foot stance"
	MsgFeetTooWide  = "Feet are too wide apart"
	TipFeetTooWide  = "Keep your feet shoulder-width apart for better balance"
	MsgFeetTooClose = "Feet are too close together"
	TipFeetTooClose = "Spread your feet slightly for more stability"

	MsgKneesAligned    = "Knees are correctly aligned"
	MsgKneesMisaligned = "Knees are misaligned"
	TipKneesMisaligned = "Make sure your knees are at the same height"

	MsgHipsLevel  = "Hips are balanced"
	MsgHipsUneven = "Hips are unbalanced"
	TipHipsUneven = "Keep your hips level"

	MsgShouldersAligned    = "Shoulders are well aligned"
	MsgShouldersMisaligned = "Shoulders are misaligned"
	TipShouldersMisaligned = "Keep your shoulders level and relaxed"

	MsgArmInPosition = "Shooting arm in position"
	MsgArmWellRaised = "Shooting arm well raised"
	MsgArmNotRaised  = "Shooting arm is not raised enough"
	TipArmNotRaised  = "Raise your shooting arm higher above your head"
	MsgNoArmRaised   = "No arm is in shooting position"
	TipNoArmRaised   = "Lift your shooting arm above your head"

	MsgElbowOptimal   = "Optimal elbow angle for shooting"
	MsgElbowTooClosed = "Elbow angle is too closed"
	TipElbowTooClosed = "Open your elbow more for a better shooting arc"
	MsgElbowTooOpen   = "Elbow angle is too open"
	TipElbowTooOpen   = "Close your elbow slightly for more control"

	MsgWristCentered  = "Wrist is centered"
	MsgWristOffCenter = "Wrist is off-center"
	TipWristOffCenter = "Center your wrist in line with your body"

	MsgHeadAligned = "Head is well aligned"
	MsgHeadTilted  = "Head is tilted"
	TipHeadTilted  = "Keep your head straight and look at the basket"
	MsgHeadOptimal = "Head in optimal position"
	MsgHeadTooLow  = "Head is too low"
	TipHeadTooLow  = "Raise your chin slightly"
)
