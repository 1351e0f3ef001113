package transaction

import (
	"context"

	"github.com/roach88/runledger/internal/runpath"
	"github.com/roach88/runledger/internal/store"
)

// newRunTransaction creates runs: database row, run directories, and a
// detached tmux session executing the run's command.
type newRunTransaction struct {
	queue[RunEntry]
	db   Database
	fs   FileSystem
	proc ProcessControl
}

func newNewRunTransaction(db Database, fs FileSystem, proc ProcessControl) *newRunTransaction {
	t := &newRunTransaction{db: db, fs: fs, proc: proc}
	t.queue.key = func(e RunEntry) runpath.Path { return e.Path }
	return t
}

func (t *newRunTransaction) kind() Kind { return KindNewRun }

func (t *newRunTransaction) validate(ctx context.Context) error {
	seen := make(map[runpath.Path]bool, len(t.items))
	for _, e := range t.items {
		if seen[e.Path] {
			return validationErrorf(KindNewRun, e.Path, "queued twice")
		}
		seen[e.Path] = true

		exists, err := t.db.Exists(ctx, e.Path.String())
		if err != nil {
			return err
		}
		if exists {
			return validationErrorf(KindNewRun, e.Path, "run already exists")
		}
	}
	return nil
}

func (t *newRunTransaction) execute(ctx context.Context) error {
	return executeAll(ctx, t.items, t.executeOne)
}

func (t *newRunTransaction) executeOne(ctx context.Context, e RunEntry) error {
	err := t.db.InsertRun(ctx, store.Run{
		Path:         e.Path.String(),
		FullCommand:  e.FullCommand,
		Commit:       e.Commit,
		CreatedAt:    e.CreatedAt,
		Description:  e.Description,
		InputCommand: e.InputCommand,
	})
	if err != nil {
		return executionError(KindNewRun, e.Path, err)
	}
	if err := t.fs.CreateRunDirs(e.Path); err != nil {
		return executionError(KindNewRun, e.Path, err)
	}
	if err := t.proc.NewSession(ctx, e.Path, e.FullCommand); err != nil {
		return executionError(KindNewRun, e.Path, err)
	}
	return nil
}
