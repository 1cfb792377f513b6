// Package charge implements the skill-point accumulator and the fever
// state machine it feeds. Clicks inject charge while idle; when the gauge
// fills, fever starts, a global reward multiplier applies, and a timer
// ends fever after a fixed duration, draining the gauge back to zero.
package charge

import (
	"time"

	"github.com/louisbranch/clickforge/internal/clock"
	"github.com/louisbranch/clickforge/internal/progression/event"
	"github.com/louisbranch/clickforge/internal/scheduler"
)

// Defaults for the gauge configuration.
const (
	DefaultMaxCharge           = 100.0
	DefaultBaseChargeAmount    = 5.0
	DefaultBaseFeverMultiplier = 3.0
	DefaultFeverDuration       = 10 * time.Second
)

// Config tunes the gauge. Zero fields fall back to the defaults.
type Config struct {
	MaxCharge           float64
	BaseChargeAmount    float64
	BaseFeverMultiplier float64
	FeverDuration       time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxCharge <= 0 {
		c.MaxCharge = DefaultMaxCharge
	}
	if c.BaseChargeAmount <= 0 {
		c.BaseChargeAmount = DefaultBaseChargeAmount
	}
	if c.BaseFeverMultiplier <= 0 {
		c.BaseFeverMultiplier = DefaultBaseFeverMultiplier
	}
	if c.FeverDuration <= 0 {
		c.FeverDuration = DefaultFeverDuration
	}
	return c
}

// Gauge is the SP accumulator. It has two states: idle (charge in
// [0, max), accepting injections) and active (fever running, injections
// ignored, charge pinned until the end transition resets it to zero).
type Gauge struct {
	cfg Config

	current         float64
	chargeBonus     float64
	feverPowerBonus float64

	active    bool
	startedAt time.Time
	endToken  scheduler.Token

	clk   clock.Clock
	sched *scheduler.Scheduler

	// SPChanged is published with the new charge after every change.
	SPChanged event.Feed[float64]
	// FeverStarted is published on the idle to active transition.
	FeverStarted event.Signal
	// FeverEnded is published exactly once per fever on the active to
	// idle transition.
	FeverEnded event.Signal
}

// NewGauge creates an idle, empty gauge.
func NewGauge(cfg Config, clk clock.Clock, sched *scheduler.Scheduler) *Gauge {
	return &Gauge{cfg: cfg.withDefaults(), clk: clk, sched: sched}
}

// AddCharge injects charge while idle, clamped to the maximum. Charge
// injection during fever is intentionally ignored: fever is a reward
// state, not a chargeable one. Reaching the maximum starts fever.
func (g *Gauge) AddCharge(amount float64) {
	if g.active || amount <= 0 {
		return
	}
	g.current += amount
	if g.current > g.cfg.MaxCharge {
		g.current = g.cfg.MaxCharge
	}
	g.SPChanged.Publish(g.current)

	if g.current >= g.cfg.MaxCharge {
		g.startFever()
	}
}

// Charge injects the default per-click amount, bonuses included.
func (g *Gauge) Charge() {
	g.AddCharge(g.FinalChargeAmount())
}

func (g *Gauge) startFever() {
	if g.active {
		return
	}
	g.active = true
	g.startedAt = g.clk.Now()
	g.FeverStarted.Publish()
	g.endToken = g.sched.Schedule(g.startedAt.Add(g.cfg.FeverDuration), func(time.Time) {
		g.endFever()
	})
}

// endFever is idempotent; the active guard keeps a forced end and the
// natural timer from double-firing the ended notification.
func (g *Gauge) endFever() {
	if !g.active {
		return
	}
	g.active = false
	g.endToken = scheduler.NoToken
	g.current = 0
	g.SPChanged.Publish(g.current)
	g.FeverEnded.Publish()
}

// ForceEndFever cancels the pending scheduled end and ends fever
// immediately. A no-op while idle.
func (g *Gauge) ForceEndFever() {
	g.sched.Cancel(g.endToken)
	g.endFever()
}

// Reset forces fever to end and zeroes the charge and both bonuses.
func (g *Gauge) Reset() {
	g.ForceEndFever()
	g.current = 0
	g.chargeBonus = 0
	g.feverPowerBonus = 0
	g.SPChanged.Publish(g.current)
}

// CurrentCharge returns the accumulated charge.
func (g *Gauge) CurrentCharge() float64 {
	return g.current
}

// MaxCharge returns the configured capacity.
func (g *Gauge) MaxCharge() float64 {
	return g.cfg.MaxCharge
}

// FillRate returns the fill fraction in [0, 1].
func (g *Gauge) FillRate() float64 {
	return g.current / g.cfg.MaxCharge
}

// IsActive reports whether fever is running.
func (g *Gauge) IsActive() bool {
	return g.active
}

// FeverDuration returns the configured fever length.
func (g *Gauge) FeverDuration() time.Duration {
	return g.cfg.FeverDuration
}

// FinalChargeAmount returns the per-click injection, bonuses included.
func (g *Gauge) FinalChargeAmount() float64 {
	return g.cfg.BaseChargeAmount + g.chargeBonus
}

// FinalFeverMultiplier returns the fever payout multiplier, bonuses
// included.
func (g *Gauge) FinalFeverMultiplier() float64 {
	return g.cfg.BaseFeverMultiplier + g.feverPowerBonus
}

// AddChargeBonus raises the per-click injection. Bonuses persist across
// fever cycles until Reset.
func (g *Gauge) AddChargeBonus(amount float64) {
	g.chargeBonus += amount
}

// AddFeverPowerBonus raises the fever multiplier. Bonuses persist across
// fever cycles until Reset.
func (g *Gauge) AddFeverPowerBonus(amount float64) {
	g.feverPowerBonus += amount
}

// SetBonuses overwrites both bonuses. Used by the load path.
func (g *Gauge) SetBonuses(chargeBonus, feverPowerBonus float64) {
	g.chargeBonus = chargeBonus
	g.feverPowerBonus = feverPowerBonus
}

// RemainingTime returns how much fever is left, zero while idle.
func (g *Gauge) RemainingTime() time.Duration {
	if !g.active {
		return 0
	}
	remaining := g.cfg.FeverDuration - g.clk.Now().Sub(g.startedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
