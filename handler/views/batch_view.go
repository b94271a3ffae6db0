package views

import (
	"time"

	"credit/core"
)

// Batch committed batch view
type Batch struct {
	TraceID   string        `json:"trace_id"`
	AccountID string        `json:"account_id"`
	User      string        `json:"user"`
	Actions   []core.Action `json:"actions,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// BatchFromModel batch view from model
func BatchFromModel(b *core.Batch) Batch {
	view := Batch{
		TraceID:   b.TraceID,
		AccountID: b.AccountID,
		User:      b.User,
		CreatedAt: b.CreatedAt,
	}

	if actions, err := b.UnmarshalActions(); err == nil {
		view.Actions = actions
	}

	return view
}
