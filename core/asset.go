package core

import (
	"context"
	"time"
)

// Asset a denom known to the protocol. Only whitelisted assets may be the
// target of a swap or the denom of a borrow.
type Asset struct {
	ID          uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Denom       string    `sql:"size:64;unique_index:denom_idx" json:"denom"`
	Symbol      string    `sql:"size:20" json:"symbol"`
	Whitelisted bool      `sql:"default:false" json:"whitelisted"`
	Version     int64     `sql:"default:0" json:"version"`
	CreatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// AssetStore asset store interface. Find reports a missing denom via the
// bool instead of an error.
type AssetStore interface {
	Save(ctx context.Context, asset *Asset) error
	Find(ctx context.Context, denom string) (*Asset, bool, error)
	All(ctx context.Context) ([]*Asset, error)
}
