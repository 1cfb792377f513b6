package click

// StatsContext bundles the inputs for a single click calculation. It is a
// plain value constructed fresh by the caller for each click and carries
// no identity.
//
// The caller is responsible for pre-clamping probabilities to [0, 1] and
// for folding any active fever multiplier into BaseClickValue before
// constructing the context; Calculate applies the values as given and
// performs no validation.
type StatsContext struct {
	// BaseClickValue is the final per-click amount, upgrades and any
	// active fever multiplier already applied.
	BaseClickValue float64
	// CriticalChance is the probability of a critical hit in [0, 1].
	CriticalChance float64
	// CriticalMultiplier is the payout multiplier on a critical hit (>= 1).
	CriticalMultiplier float64
	// FeverMultiplier is the fever payout multiplier in effect when the
	// context was built. Informational for downstream consumers; Calculate
	// does not read it.
	FeverMultiplier float64
	// SPChargeAmount is the skill-point charge injected per click.
	// Informational for downstream consumers; Calculate does not read it.
	SPChargeAmount float64
	// SlotTriggerChance is the probability of a bonus-slot trigger in [0, 1].
	SlotTriggerChance float64
}

// Result holds the outcome of one click calculation.
type Result struct {
	// EarnedAmount is the final amount awarded for the click.
	EarnedAmount float64
	// WasCritical reports whether the critical trial succeeded.
	WasCritical bool
	// TriggeredSlot reports whether the independent bonus-slot trial
	// succeeded.
	TriggeredSlot bool
	// AppliedMultiplier is the multiplier applied to BaseClickValue.
	AppliedMultiplier float64
}
