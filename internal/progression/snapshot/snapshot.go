// Package snapshot defines the serializable progression state used for
// save/load round-trips. A snapshot is created at save time and consumed
// at load time; live state stays in the progression components.
//
// Associative state is serialized as ordered lists of (id, value) pairs
// rather than maps, decoupling the in-memory lookup structures from the
// persisted layout.
package snapshot

import "sort"

// UpgradeLevel is one persisted (upgrade id, level) pair.
type UpgradeLevel struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// ItemStack is one persisted (item id, count) pair.
type ItemStack struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// Statistics is the flat lifetime statistics record.
type Statistics struct {
	TotalClicks            int64   `json:"total_clicks"`
	TotalUpgradesPurchased int     `json:"total_upgrades_purchased"`
	TotalMoneyEarned       float64 `json:"total_money_earned"`
	TotalMoneySpent        float64 `json:"total_money_spent"`
	TotalCriticalHits      int     `json:"total_critical_hits"`
	TotalMaterialsUsed     int     `json:"total_materials_used"`
	TotalPlayTimeSeconds   float64 `json:"total_play_time_seconds"`

	HighestClickDamage  float64 `json:"highest_click_damage"`
	HighestMoneyHeld    float64 `json:"highest_money_held"`
	HighestUpgradeLevel int     `json:"highest_upgrade_level"`
}

// Balance is one persisted (currency, amount) pair.
type Balance struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// Snapshot aggregates the complete serializable progression state.
type Snapshot struct {
	Upgrades          []UpgradeLevel `json:"upgrades"`
	Inventory         []ItemStack    `json:"inventory"`
	Balances          []Balance      `json:"balances"`
	Statistics        Statistics     `json:"statistics"`
	TriggeredEventIDs []string       `json:"triggered_event_ids"`
	UnlockedMenus     []string       `json:"unlocked_menus"`
}

// UpgradeLevelOf returns the persisted level for id, zero when absent.
func (s *Snapshot) UpgradeLevelOf(id string) int {
	for _, u := range s.Upgrades {
		if u.ID == id {
			return u.Level
		}
	}
	return 0
}

// SetUpgradeLevel records the level for id, replacing an existing pair.
func (s *Snapshot) SetUpgradeLevel(id string, level int) {
	for i := range s.Upgrades {
		if s.Upgrades[i].ID == id {
			s.Upgrades[i].Level = level
			return
		}
	}
	s.Upgrades = append(s.Upgrades, UpgradeLevel{ID: id, Level: level})
}

// ItemCountOf returns the persisted count for id, zero when absent.
func (s *Snapshot) ItemCountOf(id string) int {
	for _, it := range s.Inventory {
		if it.ID == id {
			return it.Count
		}
	}
	return 0
}

// SetItemCount records the count for id, replacing an existing pair.
func (s *Snapshot) SetItemCount(id string, count int) {
	for i := range s.Inventory {
		if s.Inventory[i].ID == id {
			s.Inventory[i].Count = count
			return
		}
	}
	s.Inventory = append(s.Inventory, ItemStack{ID: id, Count: count})
}

// BalanceOf returns the persisted amount for currency, zero when absent.
func (s *Snapshot) BalanceOf(currency string) float64 {
	for _, b := range s.Balances {
		if b.Currency == currency {
			return b.Amount
		}
	}
	return 0
}

// SetBalance records the amount for currency, replacing an existing pair.
func (s *Snapshot) SetBalance(currency string, amount float64) {
	for i := range s.Balances {
		if s.Balances[i].Currency == currency {
			s.Balances[i].Amount = amount
			return
		}
	}
	s.Balances = append(s.Balances, Balance{Currency: currency, Amount: amount})
}

// Normalize sorts every list by id so two snapshots with the same logical
// content compare and serialize identically.
func (s *Snapshot) Normalize() {
	sort.Slice(s.Upgrades, func(i, j int) bool { return s.Upgrades[i].ID < s.Upgrades[j].ID })
	sort.Slice(s.Inventory, func(i, j int) bool { return s.Inventory[i].ID < s.Inventory[j].ID })
	sort.Slice(s.Balances, func(i, j int) bool { return s.Balances[i].Currency < s.Balances[j].Currency })
	sort.Strings(s.TriggeredEventIDs)
	sort.Strings(s.UnlockedMenus)
}
