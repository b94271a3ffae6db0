package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const (
	// TransferStatusPending waiting for payout
	TransferStatusPending = "pending"
	// TransferStatusHandled paid out
	TransferStatusHandled = "handled"
)

// Transfer a queued payout to an account owner, produced by a withdraw
// action and dispatched asynchronously by the cashier worker.
type Transfer struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index:trace_idx" json:"trace_id"`
	AccountID string          `sql:"size:36;index:account_idx" json:"account_id"`
	Opponent  string          `sql:"size:64" json:"opponent"`
	Denom     string          `sql:"size:64" json:"denom"`
	Amount    decimal.Decimal `sql:"type:decimal(32,8)" json:"amount"`
	Memo      string          `sql:"size:140" json:"memo"`
	Status    string          `sql:"size:16;index:status_idx;default:'pending'" json:"status"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TransferStore transfer store interface
type TransferStore interface {
	Create(ctx context.Context, tx *db.DB, transfers []*Transfer) error
	ListPending(ctx context.Context, limit int) ([]*Transfer, error)
	Handled(ctx context.Context, traceID string) error
}

// PayoutService moves withdrawn funds to their owner. How funds physically
// move is the custodian's concern.
type PayoutService interface {
	Pay(ctx context.Context, transfer *Transfer) error
}
