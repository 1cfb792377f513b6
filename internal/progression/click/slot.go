package click

import "math/rand"

// Slot multiplier tiers. A slot trigger rolls a payout multiplier from a
// cumulative rarity table: a uniform sample selects the tier, then the
// multiplier is drawn uniformly from the tier's half-open range.
const (
	slotTier1Threshold = 0.50
	slotTier2Threshold = 0.80
	slotTier3Threshold = 0.95
	slotTier4Threshold = 0.99

	slotTier1Min, slotTier1Max = 2, 11
	slotTier2Min, slotTier2Max = 11, 51
	slotTier3Min, slotTier3Max = 51, 101
	slotTier4Min, slotTier4Max = 101, 1000
	slotTier5Min, slotTier5Max = 1000, 10000
)

// RollSlotMultiplier draws a bonus-slot payout multiplier from the rarity
// table. The result is always in [2, 10000).
func RollSlotMultiplier(rng *rand.Rand) int {
	roll := rng.Float64()
	switch {
	case roll < slotTier1Threshold:
		return slotTier1Min + rng.Intn(slotTier1Max-slotTier1Min)
	case roll < slotTier2Threshold:
		return slotTier2Min + rng.Intn(slotTier2Max-slotTier2Min)
	case roll < slotTier3Threshold:
		return slotTier3Min + rng.Intn(slotTier3Max-slotTier3Min)
	case roll < slotTier4Threshold:
		return slotTier4Min + rng.Intn(slotTier4Max-slotTier4Min)
	default:
		return slotTier5Min + rng.Intn(slotTier5Max-slotTier5Min)
	}
}

// SlotTier classifies a slot multiplier into its rarity tier, 1 (common)
// through 5 (jackpot). Multipliers below the table return 0.
func SlotTier(multiplier int) int {
	switch {
	case multiplier >= slotTier5Min:
		return 5
	case multiplier >= slotTier4Min:
		return 4
	case multiplier >= slotTier3Min:
		return 3
	case multiplier >= slotTier2Min:
		return 2
	case multiplier >= slotTier1Min:
		return 1
	default:
		return 0
	}
}
