package core

import (
	"context"
	"time"

	"github.com/fox-one/msgpack"
	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// Batch a committed action batch. Only successful batches are recorded;
// aborted ones leave no row.
type Batch struct {
	ID        uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string         `sql:"size:36;unique_index:trace_idx" json:"trace_id"`
	AccountID string         `sql:"size:36;index:account_idx" json:"account_id"`
	User      string         `sql:"size:64" json:"user"`
	Actions   []byte         `sql:"type:mediumblob" json:"-"`
	Denoms    pq.StringArray `sql:"type:varchar(1024)" json:"denoms,omitempty"`
	Extra     types.JSONText `sql:"type:varchar(2048)" json:"extra,omitempty"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// SetActions encodes the action list onto the record.
func (b *Batch) SetActions(actions []Action) error {
	bs, err := msgpack.Marshal(actions)
	if err != nil {
		return err
	}

	b.Actions = bs
	return nil
}

// UnmarshalActions decodes the recorded action list.
func (b *Batch) UnmarshalActions() ([]Action, error) {
	var actions []Action
	if err := msgpack.Unmarshal(b.Actions, &actions); err != nil {
		return nil, err
	}

	return actions, nil
}

// BatchStore batch store interface
type BatchStore interface {
	Create(ctx context.Context, tx *db.DB, batch *Batch) error
	FindByTraceID(ctx context.Context, traceID string) (*Batch, error)
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*Batch, error)
}
