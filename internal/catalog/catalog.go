// Package catalog loads the read-only game content definitions: items,
// upgrades, and one-time progression events. Content lives in YAML files
// so balance changes never require a rebuild; the engine only ever reads
// the parsed definitions.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/clickforge/internal/progression/inventory"
	"github.com/louisbranch/clickforge/internal/progression/upgrade"
	"github.com/louisbranch/clickforge/internal/progression/wallet"
)

// Trigger names the statistic a progression event watches.
type Trigger string

const (
	// TriggerTotalClicks fires on lifetime click count.
	TriggerTotalClicks Trigger = "total_clicks"
	// TriggerTotalEarned fires on lifetime money earned.
	TriggerTotalEarned Trigger = "total_earned"
	// TriggerUpgradesPurchased fires on lifetime purchase count.
	TriggerUpgradesPurchased Trigger = "upgrades_purchased"
)

// Item is a catalog item definition; inventory entries key off its id.
type Item struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Event is a one-time progression event: when the watched statistic
// reaches the threshold, the event fires once and optionally unlocks a
// menu.
type Event struct {
	ID         string  `yaml:"id"`
	Trigger    Trigger `yaml:"trigger"`
	Threshold  float64 `yaml:"threshold"`
	UnlockMenu string  `yaml:"unlock_menu"`
}

type upgradeSpec struct {
	ID                string  `yaml:"id"`
	Name              string  `yaml:"name"`
	Effect            string  `yaml:"effect"`
	EffectValue       float64 `yaml:"effect_value"`
	MaxLevel          int     `yaml:"max_level"`
	Currency          string  `yaml:"currency"`
	BaseCost          float64 `yaml:"base_cost"`
	CostMultiplier    float64 `yaml:"cost_multiplier"`
	SortOrder         int     `yaml:"sort_order"`
	PrerequisiteID    string  `yaml:"prerequisite_id"`
	PrerequisiteLevel int     `yaml:"prerequisite_level"`
	UnlockItemID      string  `yaml:"unlock_item_id"`
	Materials         []struct {
		ItemID string `yaml:"item_id"`
		Amount int    `yaml:"amount"`
	} `yaml:"materials"`
}

type file struct {
	Items    []Item        `yaml:"items"`
	Upgrades []upgradeSpec `yaml:"upgrades"`
	Events   []Event       `yaml:"events"`
}

// Catalog holds the parsed, validated definitions.
type Catalog struct {
	items        map[string]Item
	upgrades     map[string]upgrade.Definition
	upgradeOrder []string
	events       []Event
}

// Load reads and parses a catalog YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse parses catalog YAML and validates cross-references.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		items:    make(map[string]Item, len(f.Items)),
		upgrades: make(map[string]upgrade.Definition, len(f.Upgrades)),
		events:   f.Events,
	}

	for _, item := range f.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("item with empty id")
		}
		if _, dup := c.items[item.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %q", item.ID)
		}
		c.items[item.ID] = item
	}

	specs := make([]upgradeSpec, len(f.Upgrades))
	copy(specs, f.Upgrades)
	sort.SliceStable(specs, func(i, j int) bool {
		if specs[i].SortOrder != specs[j].SortOrder {
			return specs[i].SortOrder < specs[j].SortOrder
		}
		return specs[i].ID < specs[j].ID
	})

	for _, spec := range specs {
		def, err := buildDefinition(spec)
		if err != nil {
			return nil, err
		}
		if _, dup := c.upgrades[def.ID]; dup {
			return nil, fmt.Errorf("duplicate upgrade id %q", def.ID)
		}
		c.upgrades[def.ID] = def
		c.upgradeOrder = append(c.upgradeOrder, def.ID)
	}

	if err := c.validateReferences(); err != nil {
		return nil, err
	}
	return c, nil
}

func buildDefinition(spec upgradeSpec) (upgrade.Definition, error) {
	if spec.ID == "" {
		return upgrade.Definition{}, fmt.Errorf("upgrade with empty id")
	}
	effect, err := parseEffect(spec.Effect)
	if err != nil {
		return upgrade.Definition{}, fmt.Errorf("upgrade %q: %w", spec.ID, err)
	}
	currency, err := parseCurrency(spec.Currency)
	if err != nil {
		return upgrade.Definition{}, fmt.Errorf("upgrade %q: %w", spec.ID, err)
	}
	if spec.BaseCost < 0 {
		return upgrade.Definition{}, fmt.Errorf("upgrade %q: negative base cost", spec.ID)
	}
	if spec.CostMultiplier <= 0 {
		return upgrade.Definition{}, fmt.Errorf("upgrade %q: cost multiplier must be positive", spec.ID)
	}
	if spec.MaxLevel < 0 {
		return upgrade.Definition{}, fmt.Errorf("upgrade %q: negative max level", spec.ID)
	}
	if spec.PrerequisiteID == spec.ID {
		return upgrade.Definition{}, fmt.Errorf("upgrade %q: self-referencing prerequisite", spec.ID)
	}

	def := upgrade.Definition{
		ID:                spec.ID,
		Name:              spec.Name,
		Effect:            effect,
		EffectValue:       spec.EffectValue,
		MaxLevel:          spec.MaxLevel,
		Currency:          currency,
		BaseCost:          spec.BaseCost,
		CostMultiplier:    spec.CostMultiplier,
		PrerequisiteID:    spec.PrerequisiteID,
		PrerequisiteLevel: spec.PrerequisiteLevel,
		UnlockItemID:      spec.UnlockItemID,
	}
	for _, m := range spec.Materials {
		if m.ItemID == "" || m.Amount <= 0 {
			return upgrade.Definition{}, fmt.Errorf("upgrade %q: invalid material cost", spec.ID)
		}
		def.Materials = append(def.Materials, inventory.ItemCost{ItemID: m.ItemID, Amount: m.Amount})
	}
	return def, nil
}

func parseEffect(s string) (upgrade.EffectKind, error) {
	switch kind := upgrade.EffectKind(s); kind {
	case upgrade.EffectClickFlat, upgrade.EffectClickPercent,
		upgrade.EffectIncomeFlat, upgrade.EffectIncomePercent,
		upgrade.EffectCriticalChance, upgrade.EffectCriticalPower,
		upgrade.EffectSPCharge, upgrade.EffectFeverPower:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown effect %q", s)
	}
}

func parseCurrency(s string) (wallet.Currency, error) {
	switch currency := wallet.Currency(s); currency {
	case "":
		return wallet.CurrencyCoins, nil
	case wallet.CurrencyCoins, wallet.CurrencyTokens:
		return currency, nil
	default:
		return "", fmt.Errorf("unknown currency %q", s)
	}
}

func (c *Catalog) validateReferences() error {
	for _, id := range c.upgradeOrder {
		def := c.upgrades[id]
		if def.PrerequisiteID != "" {
			if _, ok := c.upgrades[def.PrerequisiteID]; !ok {
				return fmt.Errorf("upgrade %q: unknown prerequisite %q", id, def.PrerequisiteID)
			}
		}
		if def.UnlockItemID != "" {
			if _, ok := c.items[def.UnlockItemID]; !ok {
				return fmt.Errorf("upgrade %q: unknown unlock item %q", id, def.UnlockItemID)
			}
		}
		for _, m := range def.Materials {
			if _, ok := c.items[m.ItemID]; !ok {
				return fmt.Errorf("upgrade %q: unknown material item %q", id, m.ItemID)
			}
		}
	}
	for _, evt := range c.events {
		if evt.ID == "" {
			return fmt.Errorf("event with empty id")
		}
		switch evt.Trigger {
		case TriggerTotalClicks, TriggerTotalEarned, TriggerUpgradesPurchased:
		default:
			return fmt.Errorf("event %q: unknown trigger %q", evt.ID, evt.Trigger)
		}
	}
	return nil
}

// Upgrade looks up a definition by id.
func (c *Catalog) Upgrade(id string) (upgrade.Definition, bool) {
	def, ok := c.upgrades[id]
	return def, ok
}

// Upgrades returns every definition in sort order.
func (c *Catalog) Upgrades() []upgrade.Definition {
	defs := make([]upgrade.Definition, 0, len(c.upgradeOrder))
	for _, id := range c.upgradeOrder {
		defs = append(defs, c.upgrades[id])
	}
	return defs
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Events returns the progression event definitions.
func (c *Catalog) Events() []Event {
	return c.events
}
