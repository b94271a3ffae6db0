package views

import (
	"credit/core"
)

// Account account position view
type Account struct {
	AccountID   string      `json:"account_id"`
	Owner       string      `json:"owner"`
	Collaterals core.Ledger `json:"collaterals"`
	Debts       core.Ledger `json:"debts"`
}
