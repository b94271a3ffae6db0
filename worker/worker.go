package worker

import (
	"context"
	"time"
)

// Worker runs a long lived loop until ctx is done.
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker drives a poll function on a tick, backing off when the poll
// reports an error (including the idle "EOF" case).
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick run tick
func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	dur := time.Millisecond

	if w.Delay == 0 {
		w.Delay = 100 * time.Millisecond
	}
	if w.ErrDelay == 0 {
		w.ErrDelay = 500 * time.Millisecond
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := onTick(ctx); err == nil {
				dur = w.Delay
			} else {
				dur = w.ErrDelay
			}
		}
	}
}
