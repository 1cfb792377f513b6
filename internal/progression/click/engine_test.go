package click

import (
	"math"
	"math/rand"
	"testing"
)

func TestCalculate_NeverCriticalAtZeroChance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ctx := StatsContext{
		BaseClickValue:     10,
		CriticalChance:     0,
		CriticalMultiplier: 2,
	}

	for i := 0; i < 1000; i++ {
		result := Calculate(rng, ctx)
		if result.WasCritical {
			t.Fatal("WasCritical = true with CriticalChance = 0")
		}
		if result.AppliedMultiplier != 1.0 {
			t.Fatalf("AppliedMultiplier = %v, want 1.0", result.AppliedMultiplier)
		}
		if result.EarnedAmount != 10 {
			t.Fatalf("EarnedAmount = %v, want 10", result.EarnedAmount)
		}
	}
}

func TestCalculate_AlwaysCriticalAtFullChance(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	ctx := StatsContext{
		BaseClickValue:     10,
		CriticalChance:     1,
		CriticalMultiplier: 2.5,
	}

	for i := 0; i < 1000; i++ {
		result := Calculate(rng, ctx)
		if !result.WasCritical {
			t.Fatal("WasCritical = false with CriticalChance = 1")
		}
		if result.EarnedAmount != 25 {
			t.Fatalf("EarnedAmount = %v, want 25", result.EarnedAmount)
		}
	}
}

func TestCalculate_Determinism(t *testing.T) {
	ctx := StatsContext{
		BaseClickValue:     7,
		CriticalChance:     0.3,
		CriticalMultiplier: 3,
		SlotTriggerChance:  0.1,
	}

	first := Calculate(rand.New(rand.NewSource(99)), ctx)
	second := Calculate(rand.New(rand.NewSource(99)), ctx)
	if first != second {
		t.Fatalf("same seed produced different results: %+v vs %+v", first, second)
	}
}

func TestCalculate_SlotTriggerIndependentOfCritical(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ctx := StatsContext{
		BaseClickValue:     1,
		CriticalChance:     0,
		CriticalMultiplier: 2,
		SlotTriggerChance:  1,
	}

	result := Calculate(rng, ctx)
	if !result.TriggeredSlot {
		t.Fatal("TriggeredSlot = false with SlotTriggerChance = 1")
	}
	if result.WasCritical {
		t.Fatal("WasCritical = true with CriticalChance = 0")
	}
}

func TestExpectedValue_MatchesLongRunAverage(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	ctx := StatsContext{
		BaseClickValue:     10,
		CriticalChance:     0.25,
		CriticalMultiplier: 4,
	}

	const trials = 200000
	sum := 0.0
	for i := 0; i < trials; i++ {
		sum += Calculate(rng, ctx).EarnedAmount
	}
	average := sum / trials

	want := ExpectedValue(ctx)
	if math.Abs(average-want)/want > 0.01 {
		t.Fatalf("long-run average = %v, expected value = %v (tolerance 1%%)", average, want)
	}
}

func TestDamageBounds(t *testing.T) {
	ctx := StatsContext{
		BaseClickValue:     12,
		CriticalChance:     0.5,
		CriticalMultiplier: 3,
	}

	if got := MaxDamage(ctx); got != 36 {
		t.Fatalf("MaxDamage() = %v, want 36", got)
	}
	if got := MinDamage(ctx); got != 12 {
		t.Fatalf("MinDamage() = %v, want 12", got)
	}

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 1000; i++ {
		earned := Calculate(rng, ctx).EarnedAmount
		if earned != 12 && earned != 36 {
			t.Fatalf("EarnedAmount = %v, want MinDamage or MaxDamage", earned)
		}
	}
}

func TestRollSlotMultiplier_StaysInTable(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	seen := map[int]bool{}
	for i := 0; i < 100000; i++ {
		m := RollSlotMultiplier(rng)
		if m < 2 || m >= 10000 {
			t.Fatalf("RollSlotMultiplier() = %d, out of [2, 10000)", m)
		}
		seen[SlotTier(m)] = true
	}
	for tier := 1; tier <= 4; tier++ {
		if !seen[tier] {
			t.Fatalf("tier %d never rolled in 100000 trials", tier)
		}
	}
}

func TestSlotTier(t *testing.T) {
	tests := []struct {
		multiplier int
		want       int
	}{
		{1, 0},
		{2, 1},
		{10, 1},
		{11, 2},
		{50, 2},
		{51, 3},
		{100, 3},
		{101, 4},
		{999, 4},
		{1000, 5},
		{9999, 5},
	}
	for _, tt := range tests {
		if got := SlotTier(tt.multiplier); got != tt.want {
			t.Errorf("SlotTier(%d) = %d, want %d", tt.multiplier, got, tt.want)
		}
	}
}
