// Package income produces passive earnings on a fixed tick and projects
// offline earnings across session gaps.
package income

import (
	"time"

	"github.com/louisbranch/clickforge/internal/clock"
	"github.com/louisbranch/clickforge/internal/progression/event"
	"github.com/louisbranch/clickforge/internal/scheduler"
)

// DefaultTickInterval is the income evaluation period.
const DefaultTickInterval = time.Second

// DefaultOfflineEfficiency scales offline earnings relative to active play.
const DefaultOfflineEfficiency = 0.5

// Parameters are the composable bonus terms of the income formula.
type Parameters struct {
	BaseIncome       float64
	FlatBonus        float64
	PercentBonus     float64 // fractional, 0.25 = +25%
	GlobalMultiplier float64
}

// Calculate evaluates the income formula:
//
//	(base + flat) * (1 + percent) * global
//
// Exposed for previews; the engine caches the same result.
func Calculate(p Parameters) float64 {
	return (p.BaseIncome + p.FlatBonus) * (1.0 + p.PercentBonus) * p.GlobalMultiplier
}

// Engine is a two-state (stopped, running) periodic tick producer. On each
// tick while running it publishes the tick amount on Generated; the
// subscriber applies the credit. The engine never mutates a wallet itself.
type Engine struct {
	params       Parameters
	finalPerTick float64
	tickInterval time.Duration

	running   bool
	tickToken scheduler.Token

	clk   clock.Clock
	sched *scheduler.Scheduler

	// Generated is published once per tick with the tick amount, only
	// when the amount is positive.
	Generated event.Feed[float64]
}

// NewEngine creates a stopped engine with zero income and a global
// multiplier of 1. A non-positive tickInterval falls back to the default.
func NewEngine(clk clock.Clock, sched *scheduler.Scheduler, tickInterval time.Duration) *Engine {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	e := &Engine{
		params:       Parameters{GlobalMultiplier: 1.0},
		tickInterval: tickInterval,
		clk:          clk,
		sched:        sched,
	}
	e.Recalculate()
	return e
}

// StartIncome begins ticking. Re-entrant while running: a no-op.
func (e *Engine) StartIncome() {
	if e.running {
		return
	}
	e.running = true
	first := e.clk.Now().Add(e.tickInterval)
	e.tickToken = e.sched.ScheduleRepeating(first, e.tickInterval, e.tick)
}

// StopIncome cancels the tick. A no-op when already stopped; the
// cancelled tick never fires afterwards.
func (e *Engine) StopIncome() {
	if !e.running {
		return
	}
	e.running = false
	e.sched.Cancel(e.tickToken)
	e.tickToken = scheduler.NoToken
}

// Pause is an alias for StopIncome.
func (e *Engine) Pause() {
	e.StopIncome()
}

// Resume is an alias for StartIncome.
func (e *Engine) Resume() {
	e.StartIncome()
}

// Running reports whether the engine is ticking.
func (e *Engine) Running() bool {
	return e.running
}

func (e *Engine) tick(time.Time) {
	if e.finalPerTick <= 0 {
		return
	}
	e.Generated.Publish(e.finalPerTick)
}

// SetParameters replaces every term and recalculates.
func (e *Engine) SetParameters(baseIncome, flatBonus, percentBonus, globalMultiplier float64) {
	e.params = Parameters{
		BaseIncome:       baseIncome,
		FlatBonus:        flatBonus,
		PercentBonus:     percentBonus,
		GlobalMultiplier: globalMultiplier,
	}
	e.Recalculate()
}

// AddFlatBonus adds to the flat term and recalculates.
func (e *Engine) AddFlatBonus(amount float64) {
	e.params.FlatBonus += amount
	e.Recalculate()
}

// AddPercentBonus adds to the fractional percent term and recalculates.
func (e *Engine) AddPercentBonus(amount float64) {
	e.params.PercentBonus += amount
	e.Recalculate()
}

// SetGlobalMultiplier replaces the global multiplier and recalculates.
func (e *Engine) SetGlobalMultiplier(multiplier float64) {
	e.params.GlobalMultiplier = multiplier
	e.Recalculate()
}

// Recalculate refreshes the cached per-tick amount. Every setter calls it
// synchronously, so the cache is never stale between a setter returning
// and the next read.
func (e *Engine) Recalculate() {
	e.finalPerTick = Calculate(e.params)
}

// Parameters returns the current bonus terms.
func (e *Engine) Parameters() Parameters {
	return e.params
}

// FinalIncomePerTick returns the cached per-tick amount.
func (e *Engine) FinalIncomePerTick() float64 {
	return e.finalPerTick
}

// IncomePerSecond returns the per-second rate, for display.
func (e *Engine) IncomePerSecond() float64 {
	return e.finalPerTick / e.tickInterval.Seconds()
}

// TickInterval returns the tick period.
func (e *Engine) TickInterval() time.Duration {
	return e.tickInterval
}

// CalculateOfflineEarnings projects the lump credit for offlineSeconds of
// absence at the given efficiency. A pure projection, independent of the
// running state; intended to be applied once at session start.
func (e *Engine) CalculateOfflineEarnings(offlineSeconds, efficiency float64) float64 {
	if offlineSeconds <= 0 {
		return 0
	}
	ticks := offlineSeconds / e.tickInterval.Seconds()
	return e.finalPerTick * ticks * efficiency
}
