package transaction

import (
	"context"

	"github.com/roach88/runledger/internal/runpath"
)

// moveTransaction relocates runs: database rename, directory move, and
// either a session rename or kill depending on the record's flag.
//
// It holds a read-only view of the removal queue so a destination that
// another operation in the same transaction is removing is caught as a
// conflict during validation, not discovered during execution.
type moveTransaction struct {
	queue[Move]
	db       Database
	fs       FileSystem
	proc     ProcessControl
	removals *removalTransaction
}

func newMoveTransaction(db Database, fs FileSystem, proc ProcessControl, removals *removalTransaction) *moveTransaction {
	t := &moveTransaction{db: db, fs: fs, proc: proc, removals: removals}
	t.queue.key = func(m Move) runpath.Path { return m.Src }
	return t
}

func (t *moveTransaction) kind() Kind { return KindMove }

func (t *moveTransaction) validate(ctx context.Context) error {
	seenSrc := make(map[runpath.Path]bool, len(t.items))
	seenDest := make(map[runpath.Path]bool, len(t.items))
	for _, m := range t.items {
		if m.Src == m.Dest {
			return validationErrorf(KindMove, m.Src, "source equals destination")
		}
		if seenSrc[m.Src] {
			return validationErrorf(KindMove, m.Src, "moved twice")
		}
		seenSrc[m.Src] = true
		if seenDest[m.Dest] {
			return validationErrorf(KindMove, m.Dest, "two moves target the same destination")
		}
		seenDest[m.Dest] = true

		exists, err := t.db.Exists(ctx, m.Src.String())
		if err != nil {
			return err
		}
		if !exists {
			return validationErrorf(KindMove, m.Src, "no such run")
		}

		destTaken, err := t.db.Exists(ctx, m.Dest.String())
		if err != nil {
			return err
		}
		if destTaken {
			return validationErrorf(KindMove, m.Dest, "destination already exists")
		}
		if t.removals.queued(m.Dest) {
			return validationErrorf(KindMove, m.Dest, "destination is queued for removal in this transaction")
		}
	}
	return nil
}

func (t *moveTransaction) execute(ctx context.Context) error {
	return executeAll(ctx, t.items, t.executeOne)
}

func (t *moveTransaction) executeOne(ctx context.Context, m Move) error {
	if err := t.db.UpdatePath(ctx, m.Src.String(), m.Dest.String()); err != nil {
		return executionError(KindMove, m.Src, err)
	}
	if err := t.fs.MoveRunDirs(m.Src, m.Dest); err != nil {
		return executionError(KindMove, m.Src, err)
	}
	if m.KillTmux {
		if err := t.proc.KillSession(ctx, m.Src); err != nil {
			return executionError(KindMove, m.Src, err)
		}
		return nil
	}
	if err := t.proc.RenameSession(ctx, m.Src, m.Dest); err != nil {
		return executionError(KindMove, m.Src, err)
	}
	return nil
}
