package core

import (
	"context"
	"time"
)

// Account 信用账户
type Account struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AccountID string    `sql:"size:36;unique_index:account_idx" json:"account_id"`
	Owner     string    `sql:"size:64;index:owner_idx" json:"owner"`
	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// AccountStore account store interface
type AccountStore interface {
	Create(ctx context.Context, account *Account) error
	Find(ctx context.Context, accountID string) (*Account, error)
	FindByOwner(ctx context.Context, owner string) ([]*Account, error)
}
