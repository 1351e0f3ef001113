package transaction

import (
	"context"

	"github.com/roach88/runledger/internal/runpath"
)

// removalTransaction deletes runs: tmux session first (stop anything
// still writing), then run directories, then the database row.
type removalTransaction struct {
	queue[runpath.Path]
	db   Database
	fs   FileSystem
	proc ProcessControl
}

func newRemovalTransaction(db Database, fs FileSystem, proc ProcessControl) *removalTransaction {
	t := &removalTransaction{db: db, fs: fs, proc: proc}
	t.queue.key = func(p runpath.Path) runpath.Path { return p }
	return t
}

func (t *removalTransaction) kind() Kind { return KindRemoval }

// queued reports whether p is pending removal. Used by the move
// sub-transaction's cross-kind destination check.
func (t *removalTransaction) queued(p runpath.Path) bool {
	for _, item := range t.items {
		if item == p {
			return true
		}
	}
	return false
}

func (t *removalTransaction) validate(ctx context.Context) error {
	seen := make(map[runpath.Path]bool, len(t.items))
	for _, p := range t.items {
		if seen[p] {
			return validationErrorf(KindRemoval, p, "queued twice")
		}
		seen[p] = true

		exists, err := t.db.Exists(ctx, p.String())
		if err != nil {
			return err
		}
		if !exists {
			return validationErrorf(KindRemoval, p, "no such run")
		}
	}
	return nil
}

func (t *removalTransaction) execute(ctx context.Context) error {
	return executeAll(ctx, t.items, t.executeOne)
}

func (t *removalTransaction) executeOne(ctx context.Context, p runpath.Path) error {
	if err := t.proc.KillSession(ctx, p); err != nil {
		return executionError(KindRemoval, p, err)
	}
	if err := t.fs.RemoveRunDirs(p); err != nil {
		return executionError(KindRemoval, p, err)
	}
	if err := t.db.DeleteRun(ctx, p.String()); err != nil {
		return executionError(KindRemoval, p, err)
	}
	return nil
}
