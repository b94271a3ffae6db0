package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// BatchRequest an ordered action list submitted for one account. Funds are
// the coins attached by the caller; they must match the batch's deposits.
type BatchRequest struct {
	AccountID string   `json:"account_id"`
	User      string   `json:"user"`
	Actions   []Action `json:"actions"`
	Funds     []Coin   `json:"funds,omitempty"`
}

// BatchResult the committed state after a successful batch.
type BatchResult struct {
	TraceID     string `json:"trace_id"`
	Collaterals Ledger `json:"collaterals"`
	Debts       Ledger `json:"debts"`
}

// Executor runs action batches. A batch either commits in full or fails
// with the first offending action's error and no visible mutation.
type Executor interface {
	Execute(ctx context.Context, req *BatchRequest) (*BatchResult, error)
	Estimate(ctx context.Context, coinIn Coin, denomOut string) (decimal.Decimal, error)
}
