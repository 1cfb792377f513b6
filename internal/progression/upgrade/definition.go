package upgrade

import (
	"math"

	"github.com/louisbranch/clickforge/internal/progression/inventory"
	"github.com/louisbranch/clickforge/internal/progression/wallet"
)

// EffectKind names the parameter an upgrade level improves.
type EffectKind string

const (
	EffectClickFlat      EffectKind = "click_flat"
	EffectClickPercent   EffectKind = "click_percent"
	EffectIncomeFlat     EffectKind = "income_flat"
	EffectIncomePercent  EffectKind = "income_percent"
	EffectCriticalChance EffectKind = "critical_chance"
	EffectCriticalPower  EffectKind = "critical_power"
	EffectSPCharge       EffectKind = "sp_charge"
	EffectFeverPower     EffectKind = "fever_power"
)

// Definition is a read-only upgrade description from the external
// catalog. The ledger stores only levels; everything else is looked up
// from the definition on every evaluation.
type Definition struct {
	ID   string
	Name string

	Effect      EffectKind
	EffectValue float64

	// MaxLevel caps the level; zero means unbounded.
	MaxLevel int

	Currency       wallet.Currency
	BaseCost       float64
	CostMultiplier float64

	// Materials are consumed on every purchase, all-or-nothing.
	Materials []inventory.ItemCost

	// PrerequisiteID gates this upgrade behind another reaching
	// PrerequisiteLevel. Empty means no linked prerequisite.
	PrerequisiteID    string
	PrerequisiteLevel int

	// UnlockItemID gates this upgrade behind possession of an item.
	// Empty means no unlock gating.
	UnlockItemID string
}

// CostAtLevel returns the purchase price at the given current level:
// base cost times the multiplier raised to the level.
func (d Definition) CostAtLevel(currentLevel int) float64 {
	return d.BaseCost * math.Pow(d.CostMultiplier, float64(currentLevel))
}

// TotalEffectAtLevel returns the cumulative effect at the given level.
func (d Definition) TotalEffectAtLevel(level int) float64 {
	return d.EffectValue * float64(level)
}

// IsMaxLevel reports whether currentLevel has reached the cap. Unbounded
// definitions never max out.
func (d Definition) IsMaxLevel(currentLevel int) bool {
	return d.MaxLevel > 0 && currentLevel >= d.MaxLevel
}
