// Package wallet holds per-currency balances and answers affordability
// checks for the purchase pipeline.
package wallet

import "github.com/louisbranch/clickforge/internal/progression/event"

// Currency identifies a spendable currency.
type Currency string

const (
	// CurrencyCoins is the main currency, earned by clicks and income.
	CurrencyCoins Currency = "coins"
	// CurrencyTokens is the premium currency.
	CurrencyTokens Currency = "tokens"
)

// BalanceChange is published whenever a balance changes.
type BalanceChange struct {
	Currency Currency
	Balance  float64
}

// Wallet tracks non-negative balances per currency. The zero value is not
// usable; use New.
type Wallet struct {
	balances map[Currency]float64

	// Changed is published after every balance mutation.
	Changed event.Feed[BalanceChange]

	earned func(amount float64)
	spent  func(amount float64)
}

// New creates a wallet with the given starting coin balance.
func New(startingCoins float64) *Wallet {
	w := &Wallet{balances: make(map[Currency]float64)}
	if startingCoins > 0 {
		w.balances[CurrencyCoins] = startingCoins
	}
	return w
}

// SetStatsFuncs registers the statistics callbacks for earned and spent
// amounts. Fire-and-forget; errors have no way back in.
func (w *Wallet) SetStatsFuncs(earned, spent func(amount float64)) {
	w.earned = earned
	w.spent = spent
}

// Balance returns the current balance for the currency.
func (w *Wallet) Balance(currency Currency) float64 {
	return w.balances[currency]
}

// Add credits amount to the currency and notifies. Non-positive amounts
// are absorbed as no-ops.
func (w *Wallet) Add(amount float64, currency Currency) {
	if amount <= 0 {
		return
	}
	w.balances[currency] += amount
	w.Changed.Publish(BalanceChange{Currency: currency, Balance: w.balances[currency]})
	if w.earned != nil {
		w.earned(amount)
	}
}

// CanAfford reports whether the currency balance covers amount.
func (w *Wallet) CanAfford(amount float64, currency Currency) bool {
	return w.balances[currency] >= amount
}

// Spend debits amount from the currency. It reports false and mutates
// nothing when the balance is insufficient. Balances never go negative.
func (w *Wallet) Spend(amount float64, currency Currency) bool {
	if !w.CanAfford(amount, currency) {
		return false
	}
	balance := w.balances[currency] - amount
	if balance < 0 {
		balance = 0
	}
	w.balances[currency] = balance
	w.Changed.Publish(BalanceChange{Currency: currency, Balance: balance})
	if w.spent != nil {
		w.spent(amount)
	}
	return true
}

// SetBalance overwrites the balance for the currency, clamped to zero.
// Used by the load path.
func (w *Wallet) SetBalance(amount float64, currency Currency) {
	if amount < 0 {
		amount = 0
	}
	w.balances[currency] = amount
	w.Changed.Publish(BalanceChange{Currency: currency, Balance: amount})
}
