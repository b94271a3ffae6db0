package core

import (
	"github.com/shopspring/decimal"
)

// Ledger maps a denom to the amount held. A missing entry is an implicit
// zero; no entry is ever negative.
type Ledger map[string]decimal.Decimal

// NewLedger new empty ledger
func NewLedger() Ledger {
	return make(Ledger)
}

// Get returns the balance of denom, zero if absent.
func (l Ledger) Get(denom string) decimal.Decimal {
	if v, ok := l[denom]; ok {
		return v
	}

	return decimal.Zero
}

// Credit adds amount to the entry for denom, creating it if absent.
func (l Ledger) Credit(denom string, amount decimal.Decimal) {
	l[denom] = l.Get(denom).Add(amount)
}

// Debit subtracts amount from the entry for denom. It is a checked
// subtraction: if amount exceeds the current balance the ledger is left
// untouched and an OverflowError is returned.
func (l Ledger) Debit(denom string, amount decimal.Decimal) error {
	balance := l.Get(denom)
	if amount.GreaterThan(balance) {
		return NewSubOverflowError(balance, amount)
	}

	l[denom] = balance.Sub(amount)
	return nil
}

// Clone returns a copy that shares no state with l.
func (l Ledger) Clone() Ledger {
	c := make(Ledger, len(l))
	for denom, amount := range l {
		c[denom] = amount
	}

	return c
}

// Compact drops zero entries. Absence and zero are equivalent.
func (l Ledger) Compact() Ledger {
	c := make(Ledger, len(l))
	for denom, amount := range l {
		if amount.IsPositive() {
			c[denom] = amount
		}
	}

	return c
}
