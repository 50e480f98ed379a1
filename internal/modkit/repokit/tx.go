package repokit

import (
	"context"
	"fmt"
	"time"

	perr "marketbrowse/internal/platform/errors"
)

// BeginHook runs at the start of a transaction with the tx bound Queryer
type BeginHook func(ctx context.Context, q Queryer) error

// LockTimeout bounds how long statements in the tx wait on row locks
func LockTimeout(d time.Duration) BeginHook {
	stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.Milliseconds())
	return func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, stmt)
		return err
	}
}

// Wrap decorates a TxRunner with begin hooks and retries of transient failures
// attempts below 2 disables retries
func Wrap(inner TxRunner, attempts int, hooks ...BeginHook) TxRunner {
	return wrapped{TxRunner: inner, attempts: max(attempts, 1), hooks: hooks}
}

type wrapped struct {
	TxRunner
	attempts int
	hooks    []BeginHook
}

// Tx runs hooks then fn in one tx, re-running the whole tx when it fails with
// a serialization failure, deadlock or lock timeout
func (w wrapped) Tx(ctx context.Context, fn func(q Queryer) error) error {
	var err error
	for range w.attempts {
		err = w.TxRunner.Tx(ctx, func(q Queryer) error {
			for _, hk := range w.hooks {
				if err := hk(ctx, q); err != nil {
					return err
				}
			}
			return fn(q)
		})
		if !perr.IsRetryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}
