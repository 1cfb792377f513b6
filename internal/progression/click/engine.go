// Package click computes the reward for a single player click: a critical
// roll, an independent bonus-slot roll, and the resulting payout.
package click

import "math/rand"

// Calculate performs one click calculation.
//
// # Determinism
//
// Calculate is deterministic with respect to the provided rng. Two
// independent Bernoulli trials are drawn in a fixed order: critical first
// (p = CriticalChance), then bonus slot (p = SlotTriggerChance), each
// comparing a uniform [0, 1) sample with `<`.
//
// # Payout
//
// The applied multiplier is CriticalMultiplier on a critical hit and 1.0
// otherwise. EarnedAmount is BaseClickValue times the applied multiplier.
//
// Calculate has no side effects and no error conditions; malformed inputs
// are the caller's contract violation, not a runtime fault.
func Calculate(rng *rand.Rand, ctx StatsContext) Result {
	isCritical := rng.Float64() < ctx.CriticalChance
	triggeredSlot := rng.Float64() < ctx.SlotTriggerChance

	multiplier := 1.0
	if isCritical {
		multiplier = ctx.CriticalMultiplier
	}

	return Result{
		EarnedAmount:      ctx.BaseClickValue * multiplier,
		WasCritical:       isCritical,
		TriggeredSlot:     triggeredSlot,
		AppliedMultiplier: multiplier,
	}
}

// RollCritical draws a single critical trial, for previews.
func RollCritical(rng *rand.Rand, chance float64) bool {
	return rng.Float64() < chance
}

// ExpectedValue returns the long-run average payout of one click. It uses
// the exact formulas Calculate uses, so preview and actual never diverge.
func ExpectedValue(ctx StatsContext) float64 {
	normal := ctx.BaseClickValue * (1.0 - ctx.CriticalChance)
	critical := ctx.BaseClickValue * ctx.CriticalMultiplier * ctx.CriticalChance
	return normal + critical
}

// MaxDamage returns the payout of a critical click.
func MaxDamage(ctx StatsContext) float64 {
	return ctx.BaseClickValue * ctx.CriticalMultiplier
}

// MinDamage returns the payout of a non-critical click.
func MinDamage(ctx StatsContext) float64 {
	return ctx.BaseClickValue
}
