package posture

import "math"

// Report is the outcome of one posture analysis. Each list keeps the order
// in which the checks appended to it.
type Report struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
	Tips     []string `json:"tips"`
}

// NewReport returns an empty report whose lists encode as [] rather than null.
func NewReport() *Report {
	return &Report{
		Positive: make([]string, 0),
		Negative: make([]string, 0),
		Tips:     make([]string, 0),
	}
}

// NoDetectionReport is returned when the detector found no body in the image.
func NoDetectionReport() *Report {
	r := NewReport()
	r.Negative = append(r.Negative, MsgNoPosture)
	return r
}

// FailureReport is returned when the detector itself failed.
func FailureReport() *Report {
	r := NewReport()
	r.fail(MsgAnalysisFailed, TipAnalysisFailed)
	return r
}

func (r *Report) pass(msg string) {
	r.Positive = append(r.Positive, msg)
}

func (r *Report) fail(msg, tip string) {
	r.Negative = append(r.Negative, msg)
	if tip != "" {
		r.Tips = append(r.Tips, tip)
	}
}

// Accuracy is the share of positive findings among all findings, as a whole
// percentage. A report with no findings scores 0.
func (r *Report) Accuracy() int {
	total := len(r.Positive) + len(r.Negative)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(len(r.Positive)) / float64(total) * 100))
}
