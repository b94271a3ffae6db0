package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Swapper executes token exchanges on an external venue. Estimate is a pure
// preview; Execute is the state-changing call and fails if the venue cannot
// deliver at least minOut.
type Swapper interface {
	Estimate(ctx context.Context, coinIn Coin, denomOut string) (decimal.Decimal, error)
	Execute(ctx context.Context, coinIn Coin, denomOut string, minOut decimal.Decimal) (decimal.Decimal, error)
}
