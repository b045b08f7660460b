// Package stats keeps the running shot statistics shown next to each
// analysis.
package stats

import (
	"math"
	"sync"
	"time"

	"github.com/ayusman/hoopform/internal/posture"
)

// DefaultSuccessThreshold is the accuracy a shot must exceed to count as
// successful.
const DefaultSuccessThreshold = 70

// Snapshot is a point-in-time copy of the tracker's counters.
type Snapshot struct {
	TotalShots      int `json:"total_shots"`
	SuccessfulShots int `json:"successful_shots"`
	// LastAccuracy is the accuracy of the most recent report.
	LastAccuracy int `json:"last_accuracy"`
	// SuccessRate is SuccessfulShots / TotalShots as a whole percentage.
	SuccessRate int `json:"success_rate"`
	// Progression is the change in SuccessRate caused by the last shot.
	Progression int `json:"progression"`
	// AnalysisTime is the duration of the last analysis in seconds,
	// rounded to a tenth.
	AnalysisTime float64 `json:"analysis_time"`
}

// Tracker accumulates shot statistics. It is safe for concurrent use.
type Tracker struct {
	threshold int

	mu          sync.Mutex
	snap        Snapshot
	subscribers []func(Snapshot)

	// notifyMu is taken before mu is released so subscribers see
	// snapshots in the order they were produced.
	notifyMu sync.Mutex
}

// NewTracker creates a tracker that counts a shot as successful when its
// accuracy is strictly above threshold. A threshold outside [0, 100] falls
// back to DefaultSuccessThreshold.
func NewTracker(threshold int) *Tracker {
	if threshold < 0 || threshold > 100 {
		threshold = DefaultSuccessThreshold
	}
	return &Tracker{threshold: threshold}
}

// Threshold returns the success threshold.
func (t *Tracker) Threshold() int {
	return t.threshold
}

// Record adds one analyzed shot graded by r.
func (t *Tracker) Record(r *posture.Report, elapsed time.Duration) Snapshot {
	acc := 0
	if r != nil {
		acc = r.Accuracy()
	}
	return t.RecordAccuracy(acc, elapsed)
}

// RecordAccuracy adds one shot with the given accuracy percentage.
func (t *Tracker) RecordAccuracy(accuracy int, elapsed time.Duration) Snapshot {
	t.mu.Lock()
	t.snap.TotalShots++
	if accuracy > t.threshold {
		t.snap.SuccessfulShots++
	}
	t.snap.LastAccuracy = accuracy
	t.snap.AnalysisTime = math.Round(elapsed.Seconds()*10) / 10

	rate := percent(t.snap.SuccessfulShots, t.snap.TotalShots)
	t.snap.Progression = rate - t.snap.SuccessRate
	t.snap.SuccessRate = rate

	snap := t.snap
	t.publish(snap)
	return snap
}

// Snapshot returns the current counters.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}

// Reset zeroes every counter and notifies subscribers.
func (t *Tracker) Reset() Snapshot {
	t.mu.Lock()
	t.snap = Snapshot{}
	t.publish(Snapshot{})
	return Snapshot{}
}

// Subscribe registers fn to be called with a snapshot after every update.
// fn runs on the updating goroutine, outside the state lock, so it may call
// Snapshot but must not Record or Reset.
func (t *Tracker) Subscribe(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers[:len(t.subscribers):len(t.subscribers)], fn)
}

// publish delivers snap to subscribers. It must be called with mu held
// and releases it.
func (t *Tracker) publish(snap Snapshot) {
	subs := t.subscribers
	t.notifyMu.Lock()
	t.mu.Unlock()
	defer t.notifyMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
