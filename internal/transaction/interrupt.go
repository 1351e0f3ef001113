package transaction

import (
	"context"

	"github.com/roach88/runledger/internal/runpath"
)

// interruptTransaction sends C-c to running sessions. Queuing the same
// path twice is allowed: signalling twice is harmless.
type interruptTransaction struct {
	queue[runpath.Path]
	db   Database
	proc ProcessControl
}

func newInterruptTransaction(db Database, proc ProcessControl) *interruptTransaction {
	t := &interruptTransaction{db: db, proc: proc}
	t.queue.key = func(p runpath.Path) runpath.Path { return p }
	return t
}

func (t *interruptTransaction) kind() Kind { return KindInterrupt }

func (t *interruptTransaction) validate(ctx context.Context) error {
	for _, p := range t.items {
		exists, err := t.db.Exists(ctx, p.String())
		if err != nil {
			return err
		}
		if !exists {
			return validationErrorf(KindInterrupt, p, "no such run")
		}
	}
	return nil
}

func (t *interruptTransaction) execute(ctx context.Context) error {
	return executeAll(ctx, t.items, t.executeOne)
}

func (t *interruptTransaction) executeOne(ctx context.Context, p runpath.Path) error {
	if err := t.proc.SendInterrupt(ctx, p); err != nil {
		return executionError(KindInterrupt, p, err)
	}
	return nil
}
