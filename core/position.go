package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const (
	// PositionSideCollateral deposited funds
	PositionSideCollateral = "collateral"
	// PositionSideDebt borrowed funds
	PositionSideDebt = "debt"
)

// Position one ledger entry of an account, collateral or debt side.
type Position struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AccountID string          `sql:"size:36;unique_index:account_denom_idx" json:"account_id"`
	Side      string          `sql:"size:16;unique_index:account_denom_idx" json:"side"`
	Denom     string          `sql:"size:64;unique_index:account_denom_idx" json:"denom"`
	Amount    decimal.Decimal `sql:"type:decimal(32,8)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PositionStore position store interface
type PositionStore interface {
	FindByAccount(ctx context.Context, accountID string) ([]*Position, error)
	Save(ctx context.Context, tx *db.DB, position *Position) error
}

// LedgersOf folds position rows into a collateral ledger and a debt ledger.
func LedgersOf(positions []*Position) (collaterals, debts Ledger) {
	collaterals, debts = NewLedger(), NewLedger()
	for _, p := range positions {
		switch p.Side {
		case PositionSideDebt:
			debts.Credit(p.Denom, p.Amount)
		default:
			collaterals.Credit(p.Denom, p.Amount)
		}
	}

	return
}
