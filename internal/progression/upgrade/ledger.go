// Package upgrade tracks per-upgrade levels and runs the purchase
// pipeline: prerequisite evaluation, affordability checks, and the
// spend-and-apply step.
package upgrade

import (
	"github.com/louisbranch/clickforge/internal/progression/event"
	"github.com/louisbranch/clickforge/internal/progression/inventory"
	"github.com/louisbranch/clickforge/internal/progression/wallet"
)

// State classifies an upgrade for display.
type State int

const (
	// StateLocked means the prerequisite is unmet.
	StateLocked State = iota
	// StateCanUnlockButNotAfford means the prerequisite is met but the
	// cost is not.
	StateCanUnlockButNotAfford
	// StateReadyToUpgrade means the upgrade is purchasable now.
	StateReadyToUpgrade
	// StateMaxLevel means the level cap is reached.
	StateMaxLevel
)

// Wallet is the external currency ledger the purchase pipeline spends
// from. The engine never owns balances.
type Wallet interface {
	CanAfford(amount float64, currency wallet.Currency) bool
	Spend(amount float64, currency wallet.Currency) bool
}

// LevelChange is published whenever an upgrade level changes.
type LevelChange struct {
	UpgradeID string
	Level     int
}

// Purchase is published after a successful purchase.
type Purchase struct {
	Definition Definition
	NewLevel   int
}

// DefaultPurchaseSafetyLimit bounds TryPurchaseMax iterations.
const DefaultPurchaseSafetyLimit = 100

// Ledger maps upgrade ids to levels. Levels are non-negative and only
// grow outside of an explicit Reset or load.
type Ledger struct {
	levels map[string]int

	wallet    Wallet
	inventory *inventory.Inventory

	// LevelChanged is published after every level mutation.
	LevelChanged event.Feed[LevelChange]
	// Purchased is published after every successful purchase.
	Purchased event.Feed[Purchase]

	purchased    func(newLevel int)
	highestLevel func(level int)
}

// NewLedger creates an empty ledger spending from w and consuming
// materials from inv.
func NewLedger(w Wallet, inv *inventory.Inventory) *Ledger {
	return &Ledger{
		levels:    make(map[string]int),
		wallet:    w,
		inventory: inv,
	}
}

// SetStatsFuncs registers the statistics callbacks fired on purchase and
// on level changes. Fire-and-forget; errors have no way back in.
func (l *Ledger) SetStatsFuncs(purchased func(newLevel int), highestLevel func(level int)) {
	l.purchased = purchased
	l.highestLevel = highestLevel
}

// GetLevel returns the current level for id, zero when absent.
func (l *Ledger) GetLevel(id string) int {
	if id == "" {
		return 0
	}
	return l.levels[id]
}

// SetLevel overwrites the level for id, clamped to zero, and notifies.
// Used by the load path.
func (l *Ledger) SetLevel(id string, level int) {
	if id == "" {
		return
	}
	if level < 0 {
		level = 0
	}
	l.levels[id] = level
	l.LevelChanged.Publish(LevelChange{UpgradeID: id, Level: level})
	if l.highestLevel != nil {
		l.highestLevel(level)
	}
}

// MeetsPrerequisite reports whether the definition's unlock item is held
// and its linked prerequisite upgrade has reached the required level.
func (l *Ledger) MeetsPrerequisite(def Definition) bool {
	if def.ID == "" {
		return false
	}
	if !l.inventory.HasUnlockItem(def.UnlockItemID) {
		return false
	}
	if def.PrerequisiteID != "" && l.GetLevel(def.PrerequisiteID) < def.PrerequisiteLevel {
		return false
	}
	return true
}

// CanPurchase reports whether a purchase would succeed right now: below
// the level cap, prerequisites met, currency affordable at the current
// level's cost, and materials sufficient.
func (l *Ledger) CanPurchase(def Definition) bool {
	if def.ID == "" {
		return false
	}
	currentLevel := l.GetLevel(def.ID)
	if def.IsMaxLevel(currentLevel) {
		return false
	}
	if !l.MeetsPrerequisite(def) {
		return false
	}
	if !l.wallet.CanAfford(def.CostAtLevel(currentLevel), def.Currency) {
		return false
	}
	if !l.inventory.HasAllMaterials(def.Materials) {
		return false
	}
	return true
}

// GetState classifies the upgrade, evaluated in precedence order: max
// level, then locked, then ready, then unaffordable.
func (l *Ledger) GetState(def Definition) State {
	if def.ID == "" {
		return StateLocked
	}
	if def.IsMaxLevel(l.GetLevel(def.ID)) {
		return StateMaxLevel
	}
	if !l.MeetsPrerequisite(def) {
		return StateLocked
	}
	if l.CanPurchase(def) {
		return StateReadyToUpgrade
	}
	return StateCanUnlockButNotAfford
}

// TryPurchase attempts one purchase. It re-validates CanPurchase first as
// a defense against stale caller state, then spends the currency,
// consumes the materials, increments the level, and notifies.
//
// There is no rollback path: every precondition (level cap, prerequisite,
// materials) is confirmed before the currency spend, so ordering is the
// only atomicity guarantee needed.
func (l *Ledger) TryPurchase(def Definition) bool {
	if !l.CanPurchase(def) {
		return false
	}

	currentLevel := l.GetLevel(def.ID)
	if !l.wallet.Spend(def.CostAtLevel(currentLevel), def.Currency) {
		return false
	}
	l.inventory.UseAllMaterials(def.Materials)
	l.SetLevel(def.ID, currentLevel+1)

	newLevel := l.GetLevel(def.ID)
	l.Purchased.Publish(Purchase{Definition: def, NewLevel: newLevel})
	if l.purchased != nil {
		l.purchased(newLevel)
	}
	return true
}

// TryPurchaseMultiple loops single purchases up to maxCount, stopping at
// the first failure. Each iteration re-reads the incremented level, so
// successive purchases are never priced off a stale level. It returns the
// count actually completed.
func (l *Ledger) TryPurchaseMultiple(def Definition, maxCount int) int {
	purchased := 0
	for i := 0; i < maxCount; i++ {
		if !l.TryPurchase(def) {
			break
		}
		purchased++
	}
	return purchased
}

// TryPurchaseMax buys as many levels as possible, bounded by safetyLimit
// (the default limit when non-positive).
func (l *Ledger) TryPurchaseMax(def Definition, safetyLimit int) int {
	if safetyLimit <= 0 {
		safetyLimit = DefaultPurchaseSafetyLimit
	}
	return l.TryPurchaseMultiple(def, safetyLimit)
}

// PurchasableCount returns how many of the given definitions are
// purchasable right now, for badge display.
func (l *Ledger) PurchasableCount(defs []Definition) int {
	count := 0
	for _, def := range defs {
		if l.CanPurchase(def) {
			count++
		}
	}
	return count
}

// UpgradeIDs returns the ids of every tracked level entry.
func (l *Ledger) UpgradeIDs() []string {
	ids := make([]string, 0, len(l.levels))
	for id := range l.levels {
		ids = append(ids, id)
	}
	return ids
}

// Reset clears every level, notifying zero for each.
func (l *Ledger) Reset() {
	ids := l.UpgradeIDs()
	l.levels = make(map[string]int)
	for _, id := range ids {
		l.LevelChanged.Publish(LevelChange{UpgradeID: id, Level: 0})
	}
}
