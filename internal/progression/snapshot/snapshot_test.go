package snapshot

import (
	"encoding/json"
	"reflect"
	"testing"
)

func sample() Snapshot {
	return Snapshot{
		Upgrades: []UpgradeLevel{
			{ID: "click_power", Level: 12},
			{ID: "auto_income", Level: 3},
		},
		Inventory: []ItemStack{
			{ID: "ore", Count: 42},
			{ID: "chip", Count: 1},
		},
		Balances: []Balance{
			{Currency: "coins", Amount: 1234.5},
			{Currency: "tokens", Amount: 2},
		},
		Statistics: Statistics{
			TotalClicks:         9001,
			TotalMoneyEarned:    55555.5,
			TotalCriticalHits:   120,
			HighestClickDamage:  480,
			HighestUpgradeLevel: 12,
		},
		TriggeredEventIDs: []string{"first_click", "rich_100k"},
		UnlockedMenus:     []string{"shop", "stats"},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	original := sample()
	original.Normalize()

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var loaded Snapshot
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	loaded.Normalize()

	resaved, err := json.Marshal(loaded)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if string(data) != string(resaved) {
		t.Fatalf("round-trip changed content:\n first: %s\nsecond: %s", data, resaved)
	}
	if !reflect.DeepEqual(original, loaded) {
		t.Fatalf("round-trip changed values:\n%+v\n%+v", original, loaded)
	}
}

func TestNormalize_OrderIndependence(t *testing.T) {
	a := sample()
	b := sample()
	// Reverse list order in b.
	b.Upgrades[0], b.Upgrades[1] = b.Upgrades[1], b.Upgrades[0]
	b.Inventory[0], b.Inventory[1] = b.Inventory[1], b.Inventory[0]
	b.TriggeredEventIDs[0], b.TriggeredEventIDs[1] = b.TriggeredEventIDs[1], b.TriggeredEventIDs[0]

	a.Normalize()
	b.Normalize()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("normalized snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestPairAccessors(t *testing.T) {
	var s Snapshot

	if got := s.UpgradeLevelOf("missing"); got != 0 {
		t.Fatalf("UpgradeLevelOf(missing) = %d, want 0", got)
	}
	s.SetUpgradeLevel("click_power", 2)
	s.SetUpgradeLevel("click_power", 5)
	if got := s.UpgradeLevelOf("click_power"); got != 5 {
		t.Fatalf("UpgradeLevelOf() = %d, want 5", got)
	}
	if len(s.Upgrades) != 1 {
		t.Fatalf("duplicate pair created: %v", s.Upgrades)
	}

	s.SetItemCount("ore", 7)
	if got := s.ItemCountOf("ore"); got != 7 {
		t.Fatalf("ItemCountOf() = %d, want 7", got)
	}

	s.SetBalance("coins", 10)
	s.SetBalance("coins", 25)
	if got := s.BalanceOf("coins"); got != 25 {
		t.Fatalf("BalanceOf() = %v, want 25", got)
	}
}
