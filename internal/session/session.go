// Package session wires the progression components into one running
// game: it owns a single instance of each component, routes their
// notifications, recomputes derived click and income parameters when
// upgrades land, and drives save/load through the snapshot store.
//
// All mutation happens on one cooperative scheduling context. Timer-driven
// transitions (income ticks, fever expiry, auto-save) go through the
// polled scheduler; the host loop calls Advance once per iteration.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/louisbranch/clickforge/internal/catalog"
	"github.com/louisbranch/clickforge/internal/clock"
	"github.com/louisbranch/clickforge/internal/progression/charge"
	"github.com/louisbranch/clickforge/internal/progression/click"
	"github.com/louisbranch/clickforge/internal/progression/event"
	"github.com/louisbranch/clickforge/internal/progression/income"
	"github.com/louisbranch/clickforge/internal/progression/inventory"
	"github.com/louisbranch/clickforge/internal/progression/snapshot"
	"github.com/louisbranch/clickforge/internal/progression/stats"
	"github.com/louisbranch/clickforge/internal/progression/upgrade"
	"github.com/louisbranch/clickforge/internal/progression/wallet"
	"github.com/louisbranch/clickforge/internal/scheduler"
	"github.com/louisbranch/clickforge/internal/storage"
)

// Config tunes a session. Zero fields fall back to DefaultConfig values
// where a zero makes no sense.
type Config struct {
	ClickBase              float64
	BaseCriticalChance     float64
	BaseCriticalMultiplier float64
	SlotTriggerChance      float64

	BaseIncome        float64
	TickInterval      time.Duration
	OfflineEfficiency float64

	Charge charge.Config

	StartingCoins    float64
	AutoSaveInterval time.Duration
	SaveSlot         string
}

// DefaultConfig returns the stock game tuning.
func DefaultConfig() Config {
	return Config{
		ClickBase:              10,
		BaseCriticalChance:     0.05,
		BaseCriticalMultiplier: 2.0,
		SlotTriggerChance:      0.001,
		TickInterval:           income.DefaultTickInterval,
		OfflineEfficiency:      income.DefaultOfflineEfficiency,
		StartingCoins:          1000,
		AutoSaveInterval:       30 * time.Second,
		SaveSlot:               "default",
	}
}

// Session is the orchestrator. It is not safe for concurrent use; the
// host guarantees a single mutating context.
type Session struct {
	cfg Config

	clk   clock.Clock
	sched *scheduler.Scheduler
	rng   *rand.Rand

	cat   *catalog.Catalog
	store storage.SnapshotStore

	wallet    *wallet.Wallet
	inventory *inventory.Inventory
	ledger    *upgrade.Ledger
	income    *income.Engine
	gauge     *charge.Gauge
	stats     *stats.Recorder

	// Upgrade-granted bonuses feeding the click formula.
	clickFlatBonus    float64
	clickPercentBonus float64
	critChanceBonus   float64
	critPowerBonus    float64
	globalMultiplier  float64

	// Derived click parameters, recomputed on every bonus mutation.
	finalClickValue     float64
	finalCritChance     float64
	finalCritMultiplier float64

	triggeredEvents map[string]bool
	eventOrder      []string
	unlockedMenus   map[string]bool
	menuOrder       []string

	// StatsRecalculated is published after every derived-parameter
	// recomputation.
	StatsRecalculated event.Signal
	// SlotTriggered is published with the rolled slot multiplier when a
	// click's bonus-slot trial succeeds.
	SlotTriggered event.Feed[int]
	// EventTriggered is published when a one-time progression event fires.
	EventTriggered event.Feed[catalog.Event]

	autoSaveToken scheduler.Token
	playTimeToken scheduler.Token
	started       bool
}

// New assembles a session. The store may be nil for an ephemeral game.
func New(cfg Config, clk clock.Clock, rng *rand.Rand, cat *catalog.Catalog, store storage.SnapshotStore) (*Session, error) {
	if clk == nil {
		return nil, errors.New("clock is required")
	}
	if rng == nil {
		return nil, errors.New("rng is required")
	}
	if cat == nil {
		return nil, errors.New("catalog is required")
	}

	sched := scheduler.New()
	s := &Session{
		cfg:              cfg,
		clk:              clk,
		sched:            sched,
		rng:              rng,
		cat:              cat,
		store:            store,
		wallet:           wallet.New(cfg.StartingCoins),
		inventory:        inventory.New(),
		stats:            stats.NewRecorder(),
		globalMultiplier: 1.0,
		triggeredEvents:  make(map[string]bool),
		unlockedMenus:    make(map[string]bool),
	}
	s.ledger = upgrade.NewLedger(s.wallet, s.inventory)
	s.income = income.NewEngine(clk, sched, cfg.TickInterval)
	s.income.SetParameters(cfg.BaseIncome, 0, 0, 1)
	s.gauge = charge.NewGauge(cfg.Charge, clk, sched)

	s.bind()
	s.RecalculateStats()
	return s, nil
}

// bind routes component notifications: income credits the wallet, the
// statistics recorder observes every mutation path, and purchases apply
// their effect.
func (s *Session) bind() {
	s.income.Generated.Subscribe(func(amount float64) {
		s.wallet.Add(amount, wallet.CurrencyCoins)
	})
	s.wallet.SetStatsFuncs(
		func(amount float64) {
			s.stats.RecordMoneyEarned(amount)
			s.checkEvents()
		},
		s.stats.RecordMoneySpent,
	)
	s.wallet.Changed.Subscribe(func(c wallet.BalanceChange) {
		if c.Currency == wallet.CurrencyCoins {
			s.stats.ObserveBalance(c.Balance)
		}
	})
	s.inventory.SetMaterialsUsedFunc(s.stats.RecordMaterialsUsed)
	s.ledger.SetStatsFuncs(
		func(newLevel int) {
			s.stats.RecordUpgradePurchased(newLevel)
			s.checkEvents()
		},
		nil,
	)
	s.ledger.Purchased.Subscribe(func(p upgrade.Purchase) {
		s.applyEffect(p.Definition, p.Definition.EffectValue)
		s.RecalculateStats()
	})
}

// Click performs one player click: charge is injected first, then the
// click is calculated with fever folded into the base value, and the
// payout is credited.
func (s *Session) Click() click.Result {
	s.gauge.Charge()

	base := s.finalClickValue
	if s.gauge.IsActive() {
		base *= s.gauge.FinalFeverMultiplier()
	}
	ctx := click.StatsContext{
		BaseClickValue:     base,
		CriticalChance:     s.finalCritChance,
		CriticalMultiplier: s.finalCritMultiplier,
		FeverMultiplier:    s.gauge.FinalFeverMultiplier(),
		SPChargeAmount:     s.gauge.FinalChargeAmount(),
		SlotTriggerChance:  s.cfg.SlotTriggerChance,
	}

	result := click.Calculate(s.rng, ctx)
	s.wallet.Add(result.EarnedAmount, wallet.CurrencyCoins)
	s.stats.RecordClick(result.EarnedAmount, result.WasCritical)
	if result.TriggeredSlot {
		s.SlotTriggered.Publish(click.RollSlotMultiplier(s.rng))
	}
	s.checkEvents()
	return result
}

// ClickContext returns the context the next click would be calculated
// with, for previews.
func (s *Session) ClickContext() click.StatsContext {
	base := s.finalClickValue
	if s.gauge.IsActive() {
		base *= s.gauge.FinalFeverMultiplier()
	}
	return click.StatsContext{
		BaseClickValue:     base,
		CriticalChance:     s.finalCritChance,
		CriticalMultiplier: s.finalCritMultiplier,
		FeverMultiplier:    s.gauge.FinalFeverMultiplier(),
		SPChargeAmount:     s.gauge.FinalChargeAmount(),
		SlotTriggerChance:  s.cfg.SlotTriggerChance,
	}
}

func (s *Session) applyEffect(def upgrade.Definition, value float64) {
	switch def.Effect {
	case upgrade.EffectClickFlat:
		s.clickFlatBonus += value
	case upgrade.EffectClickPercent:
		s.clickPercentBonus += value
	case upgrade.EffectIncomeFlat:
		s.income.AddFlatBonus(value)
	case upgrade.EffectIncomePercent:
		s.income.AddPercentBonus(value)
	case upgrade.EffectCriticalChance:
		s.critChanceBonus += value
	case upgrade.EffectCriticalPower:
		s.critPowerBonus += value
	case upgrade.EffectSPCharge:
		s.gauge.AddChargeBonus(value)
	case upgrade.EffectFeverPower:
		s.gauge.AddFeverPowerBonus(value)
	}
}

// RecalculateStats refreshes the derived click parameters from the base
// tuning and the accumulated bonuses.
func (s *Session) RecalculateStats() {
	s.finalClickValue = (s.cfg.ClickBase + s.clickFlatBonus) * (1 + s.clickPercentBonus) * s.globalMultiplier
	chance := s.cfg.BaseCriticalChance + s.critChanceBonus
	if chance < 0 {
		chance = 0
	}
	if chance > 1 {
		chance = 1
	}
	s.finalCritChance = chance
	s.finalCritMultiplier = s.cfg.BaseCriticalMultiplier + s.critPowerBonus
	s.StatsRecalculated.Publish()
}

// SetGlobalMultiplier sets the click-side global multiplier and
// recalculates.
func (s *Session) SetGlobalMultiplier(multiplier float64) {
	s.globalMultiplier = multiplier
	s.RecalculateStats()
}

// rebuildBonuses recomputes every upgrade-granted bonus from the ledger
// levels and the catalog. Used by the load path, where effects were not
// applied purchase by purchase.
func (s *Session) rebuildBonuses() {
	s.clickFlatBonus = 0
	s.clickPercentBonus = 0
	s.critChanceBonus = 0
	s.critPowerBonus = 0
	s.gauge.SetBonuses(0, 0)

	incomeFlat, incomePercent := 0.0, 0.0
	for _, def := range s.cat.Upgrades() {
		level := s.ledger.GetLevel(def.ID)
		if level == 0 {
			continue
		}
		total := def.TotalEffectAtLevel(level)
		switch def.Effect {
		case upgrade.EffectIncomeFlat:
			incomeFlat += total
		case upgrade.EffectIncomePercent:
			incomePercent += total
		default:
			s.applyEffect(def, total)
		}
	}
	s.income.SetParameters(s.cfg.BaseIncome, incomeFlat, incomePercent, 1)
	s.RecalculateStats()
}

// PurchaseUpgrade buys one level of the catalog upgrade with the given
// id. Unknown ids report false.
func (s *Session) PurchaseUpgrade(id string) bool {
	def, ok := s.cat.Upgrade(id)
	if !ok {
		return false
	}
	return s.ledger.TryPurchase(def)
}

// PurchaseUpgradeMultiple buys up to maxCount levels, returning the
// count completed.
func (s *Session) PurchaseUpgradeMultiple(id string, maxCount int) int {
	def, ok := s.cat.Upgrade(id)
	if !ok {
		return 0
	}
	return s.ledger.TryPurchaseMultiple(def, maxCount)
}

// PurchaseUpgradeMax buys as many levels as possible.
func (s *Session) PurchaseUpgradeMax(id string) int {
	def, ok := s.cat.Upgrade(id)
	if !ok {
		return 0
	}
	return s.ledger.TryPurchaseMax(def, upgrade.DefaultPurchaseSafetyLimit)
}

// UpgradeState classifies a catalog upgrade for display.
func (s *Session) UpgradeState(id string) upgrade.State {
	def, ok := s.cat.Upgrade(id)
	if !ok {
		return upgrade.StateLocked
	}
	return s.ledger.GetState(def)
}

// checkEvents fires every untriggered progression event whose watched
// statistic has reached its threshold.
func (s *Session) checkEvents() {
	data := s.stats.Snapshot()
	for _, evt := range s.cat.Events() {
		if s.triggeredEvents[evt.ID] {
			continue
		}
		var value float64
		switch evt.Trigger {
		case catalog.TriggerTotalClicks:
			value = float64(data.TotalClicks)
		case catalog.TriggerTotalEarned:
			value = data.TotalMoneyEarned
		case catalog.TriggerUpgradesPurchased:
			value = float64(data.TotalUpgradesPurchased)
		default:
			continue
		}
		if value < evt.Threshold {
			continue
		}
		s.triggeredEvents[evt.ID] = true
		s.eventOrder = append(s.eventOrder, evt.ID)
		if evt.UnlockMenu != "" && !s.unlockedMenus[evt.UnlockMenu] {
			s.unlockedMenus[evt.UnlockMenu] = true
			s.menuOrder = append(s.menuOrder, evt.UnlockMenu)
		}
		s.EventTriggered.Publish(evt)
	}
}

// Start loads the saved game when a store is configured, applies offline
// earnings for the gap since the last save, and begins income ticking,
// play-time tracking, and auto-save. Re-entrant: a no-op once started.
// It returns the offline earnings credited.
func (s *Session) Start(ctx context.Context) (float64, error) {
	if s.started {
		return 0, nil
	}

	offlineCredit := 0.0
	if s.store != nil {
		saved, err := s.store.Load(ctx, s.cfg.SaveSlot)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// Fresh game.
		case err != nil:
			return 0, fmt.Errorf("load save: %w", err)
		default:
			s.Restore(saved.Snapshot)
			gap := s.clk.Now().Sub(saved.SavedAt).Seconds()
			offlineCredit = s.income.CalculateOfflineEarnings(gap, s.cfg.OfflineEfficiency)
			if offlineCredit > 0 {
				s.wallet.Add(offlineCredit, wallet.CurrencyCoins)
			}
		}
	}

	s.started = true
	s.income.StartIncome()

	now := s.clk.Now()
	s.playTimeToken = s.sched.ScheduleRepeating(now.Add(time.Second), time.Second, func(time.Time) {
		s.stats.RecordPlayTime(1)
	})
	if s.store != nil && s.cfg.AutoSaveInterval > 0 {
		s.autoSaveToken = s.sched.ScheduleRepeating(now.Add(s.cfg.AutoSaveInterval), s.cfg.AutoSaveInterval, func(time.Time) {
			// Auto-save is best-effort; a failed write never interrupts play.
			_ = s.Save(context.Background())
		})
	}
	return offlineCredit, nil
}

// Stop pauses income, cancels the session timers, and writes a final
// save when a store is configured.
func (s *Session) Stop(ctx context.Context) error {
	if !s.started {
		return nil
	}
	s.started = false
	s.income.Pause()
	s.sched.Cancel(s.playTimeToken)
	s.sched.Cancel(s.autoSaveToken)
	if s.store == nil {
		return nil
	}
	return s.Save(ctx)
}

// Advance drives the scheduler to now, firing due ticks and timers.
func (s *Session) Advance(now time.Time) {
	s.sched.Advance(now)
}

// Snapshot captures the complete progression state.
func (s *Session) Snapshot() snapshot.Snapshot {
	var snap snapshot.Snapshot
	for _, id := range s.ledger.UpgradeIDs() {
		snap.SetUpgradeLevel(id, s.ledger.GetLevel(id))
	}
	for _, id := range s.inventory.ItemIDs() {
		snap.SetItemCount(id, s.inventory.GetCount(id))
	}
	snap.SetBalance(string(wallet.CurrencyCoins), s.wallet.Balance(wallet.CurrencyCoins))
	snap.SetBalance(string(wallet.CurrencyTokens), s.wallet.Balance(wallet.CurrencyTokens))
	snap.Statistics = s.stats.Snapshot()
	snap.TriggeredEventIDs = append([]string(nil), s.eventOrder...)
	snap.UnlockedMenus = append([]string(nil), s.menuOrder...)
	snap.Normalize()
	return snap
}

// Restore overwrites live state from a snapshot and rebuilds every
// derived parameter.
func (s *Session) Restore(snap snapshot.Snapshot) {
	for _, u := range snap.Upgrades {
		s.ledger.SetLevel(u.ID, u.Level)
	}
	for _, it := range snap.Inventory {
		s.inventory.SetCount(it.ID, it.Count)
	}
	for _, b := range snap.Balances {
		s.wallet.SetBalance(b.Amount, wallet.Currency(b.Currency))
	}
	s.stats.Restore(snap.Statistics)

	s.triggeredEvents = make(map[string]bool, len(snap.TriggeredEventIDs))
	s.eventOrder = append([]string(nil), snap.TriggeredEventIDs...)
	for _, id := range snap.TriggeredEventIDs {
		s.triggeredEvents[id] = true
	}
	s.unlockedMenus = make(map[string]bool, len(snap.UnlockedMenus))
	s.menuOrder = append([]string(nil), snap.UnlockedMenus...)
	for _, id := range snap.UnlockedMenus {
		s.unlockedMenus[id] = true
	}

	s.rebuildBonuses()
}

// Save writes the current state to the configured store.
func (s *Session) Save(ctx context.Context) error {
	if s.store == nil {
		return errors.New("no store configured")
	}
	return s.store.Save(ctx, s.cfg.SaveSlot, s.Snapshot(), s.clk.Now())
}

// UnlockedMenus returns the unlocked menu ids in unlock order.
func (s *Session) UnlockedMenus() []string {
	return append([]string(nil), s.menuOrder...)
}

// TriggeredEventIDs returns the fired one-time event ids in fire order.
func (s *Session) TriggeredEventIDs() []string {
	return append([]string(nil), s.eventOrder...)
}

// Accessors for the owned components. References are handed out
// explicitly; there is no ambient global lookup.

func (s *Session) Wallet() *wallet.Wallet          { return s.wallet }
func (s *Session) Inventory() *inventory.Inventory { return s.inventory }
func (s *Session) Ledger() *upgrade.Ledger         { return s.ledger }
func (s *Session) Income() *income.Engine          { return s.income }
func (s *Session) Gauge() *charge.Gauge            { return s.gauge }
func (s *Session) Stats() *stats.Recorder          { return s.stats }
