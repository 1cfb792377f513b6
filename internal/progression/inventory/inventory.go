// Package inventory tracks item and material counts and gates purchases
// that consume them.
package inventory

import "github.com/louisbranch/clickforge/internal/progression/event"

// ItemCost describes a purchase requirement: an item id and the amount
// consumed. It is a descriptor, not stored state.
type ItemCost struct {
	ItemID string
	Amount int
}

// Change is published whenever an item count changes.
type Change struct {
	ItemID string
	Count  int
}

// Inventory maps item ids to non-negative counts. Absent ids read as
// count zero; entries are created lazily on first Add and removed only by
// Clear. The zero value is not usable; use New.
type Inventory struct {
	counts map[string]int

	// Changed is published after every count mutation.
	Changed event.Feed[Change]

	materialsUsed func(amount int)
}

// New creates an empty inventory.
func New() *Inventory {
	return &Inventory{counts: make(map[string]int)}
}

// SetMaterialsUsedFunc registers the statistics callback invoked when
// materials are consumed. Fire-and-forget; errors have no way back in.
func (inv *Inventory) SetMaterialsUsedFunc(fn func(amount int)) {
	inv.materialsUsed = fn
}

// GetCount returns the count for id, zero for unknown or empty ids.
func (inv *Inventory) GetCount(id string) int {
	if id == "" {
		return 0
	}
	return inv.counts[id]
}

// Add increments id by amount and notifies. Empty ids and non-positive
// amounts are absorbed as no-ops.
func (inv *Inventory) Add(id string, amount int) {
	if id == "" || amount <= 0 {
		return
	}
	count := inv.counts[id] + amount
	inv.counts[id] = count
	inv.Changed.Publish(Change{ItemID: id, Count: count})
}

// Use consumes amount of id. It reports false and leaves state untouched
// when the count is insufficient; on success it decrements, notifies, and
// reports the consumed amount to the statistics callback.
func (inv *Inventory) Use(id string, amount int) bool {
	if amount <= 0 {
		return false
	}
	if !inv.Has(id, amount) {
		return false
	}
	count := inv.counts[id] - amount
	inv.counts[id] = count
	inv.Changed.Publish(Change{ItemID: id, Count: count})
	if inv.materialsUsed != nil {
		inv.materialsUsed(amount)
	}
	return true
}

// Has reports whether at least amount of id is held.
func (inv *Inventory) Has(id string, amount int) bool {
	return inv.GetCount(id) >= amount
}

// HasAllMaterials reports whether every cost in the list is satisfiable.
// Empty lists and empty item ids are satisfied.
func (inv *Inventory) HasAllMaterials(costs []ItemCost) bool {
	for _, cost := range costs {
		if cost.ItemID == "" {
			continue
		}
		if !inv.Has(cost.ItemID, cost.Amount) {
			return false
		}
	}
	return true
}

// UseAllMaterials consumes every cost in the list, all-or-nothing: it
// re-verifies HasAllMaterials first and mutates nothing when any single
// item is insufficient.
func (inv *Inventory) UseAllMaterials(costs []ItemCost) bool {
	if !inv.HasAllMaterials(costs) {
		return false
	}
	for _, cost := range costs {
		if cost.ItemID == "" {
			continue
		}
		inv.Use(cost.ItemID, cost.Amount)
	}
	return true
}

// HasUnlockItem reports whether the unlock item is held. An empty id
// means no unlock gating and is automatically satisfied.
func (inv *Inventory) HasUnlockItem(id string) bool {
	if id == "" {
		return true
	}
	return inv.Has(id, 1)
}

// SetCount overwrites the count for id, clamped to zero. Used by the load
// path.
func (inv *Inventory) SetCount(id string, count int) {
	if id == "" {
		return
	}
	if count < 0 {
		count = 0
	}
	inv.counts[id] = count
	inv.Changed.Publish(Change{ItemID: id, Count: count})
}

// ItemIDs returns the ids of all tracked entries, including zero counts.
func (inv *Inventory) ItemIDs() []string {
	ids := make([]string, 0, len(inv.counts))
	for id := range inv.counts {
		ids = append(ids, id)
	}
	return ids
}

// UniqueItemCount returns the number of ids with a positive count.
func (inv *Inventory) UniqueItemCount() int {
	count := 0
	for _, c := range inv.counts {
		if c > 0 {
			count++
		}
	}
	return count
}

// Clear removes every entry, notifying a zero count for each.
func (inv *Inventory) Clear() {
	ids := inv.ItemIDs()
	inv.counts = make(map[string]int)
	for _, id := range ids {
		inv.Changed.Publish(Change{ItemID: id, Count: 0})
	}
}
