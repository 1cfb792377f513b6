// Package stats records lifetime progression statistics. The recorder is
// the statistics collector the mutating components report into: every
// method is fire-and-forget, never returns an error, and tolerates a nil
// receiver so callers can leave it unwired.
package stats

import "github.com/louisbranch/clickforge/internal/progression/snapshot"

// Recorder accumulates lifetime counters and extrema.
type Recorder struct {
	data snapshot.Statistics
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordClick counts one click and tracks the highest single payout.
func (r *Recorder) RecordClick(earned float64, critical bool) {
	if r == nil {
		return
	}
	r.data.TotalClicks++
	if critical {
		r.data.TotalCriticalHits++
	}
	if earned > r.data.HighestClickDamage {
		r.data.HighestClickDamage = earned
	}
}

// RecordMoneyEarned accumulates earned currency.
func (r *Recorder) RecordMoneyEarned(amount float64) {
	if r == nil || amount <= 0 {
		return
	}
	r.data.TotalMoneyEarned += amount
}

// RecordMoneySpent accumulates spent currency.
func (r *Recorder) RecordMoneySpent(amount float64) {
	if r == nil || amount <= 0 {
		return
	}
	r.data.TotalMoneySpent += amount
}

// RecordMaterialsUsed accumulates consumed material counts.
func (r *Recorder) RecordMaterialsUsed(amount int) {
	if r == nil || amount <= 0 {
		return
	}
	r.data.TotalMaterialsUsed += amount
}

// RecordUpgradePurchased counts one purchase and tracks the highest level
// reached by any upgrade.
func (r *Recorder) RecordUpgradePurchased(newLevel int) {
	if r == nil {
		return
	}
	r.data.TotalUpgradesPurchased++
	if newLevel > r.data.HighestUpgradeLevel {
		r.data.HighestUpgradeLevel = newLevel
	}
}

// RecordPlayTime accumulates elapsed play time.
func (r *Recorder) RecordPlayTime(seconds float64) {
	if r == nil || seconds <= 0 {
		return
	}
	r.data.TotalPlayTimeSeconds += seconds
}

// ObserveBalance tracks the highest balance ever held.
func (r *Recorder) ObserveBalance(balance float64) {
	if r == nil {
		return
	}
	if balance > r.data.HighestMoneyHeld {
		r.data.HighestMoneyHeld = balance
	}
}

// Snapshot returns a copy of the accumulated statistics.
func (r *Recorder) Snapshot() snapshot.Statistics {
	if r == nil {
		return snapshot.Statistics{}
	}
	return r.data
}

// Restore overwrites the accumulated statistics from a loaded snapshot.
func (r *Recorder) Restore(data snapshot.Statistics) {
	if r == nil {
		return
	}
	r.data = data
}
