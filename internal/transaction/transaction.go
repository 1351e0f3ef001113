package transaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/runledger/internal/runpath"
)

// Deps wires the coordinator to its collaborators. Begin opens the
// database session the scope owns; the other fields are shared across
// all sub-transactions.
type Deps struct {
	Begin func(ctx context.Context) (Session, error)
	FS    FileSystem
	Proc  ProcessControl

	// Log defaults to slog.Default.
	Log *slog.Logger
}

// Transaction collects pending operations and commits them at scope
// exit. Single-use: obtain one through With, never reuse it.
type Transaction struct {
	token string
	log   *slog.Logger

	descriptionChange *descriptionChangeTransaction
	interrupt         *interruptTransaction
	removal           *removalTransaction
	move              *moveTransaction
	newRun            *newRunTransaction

	// subs holds the sub-transactions in the fixed execution order:
	// description-change, interrupt, removal, move, new-run.
	subs []subTransaction
}

func newTransaction(sess Session, deps Deps, log *slog.Logger) *Transaction {
	t := &Transaction{
		token: uuid.Must(uuid.NewV7()).String(),
		log:   log,
	}
	t.descriptionChange = newDescriptionChangeTransaction(sess)
	t.interrupt = newInterruptTransaction(sess, deps.Proc)
	t.removal = newRemovalTransaction(sess, deps.FS, deps.Proc)
	t.move = newMoveTransaction(sess, deps.FS, deps.Proc, t.removal)
	t.newRun = newNewRunTransaction(sess, deps.FS, deps.Proc)
	t.subs = []subTransaction{
		t.descriptionChange,
		t.interrupt,
		t.removal,
		t.move,
		t.newRun,
	}
	return t
}

// With runs fn inside a transaction scope: open the database session,
// let fn queue operations, then sort, validate, and execute them, and
// finalize the session exactly once on every exit path. An error from
// fn or from any phase rolls the session back and propagates; commit
// errors surface only when nothing else already failed.
func With(ctx context.Context, deps Deps, fn func(*Transaction) error) (err error) {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	sess, err := deps.Begin(ctx)
	if err != nil {
		return err
	}
	tx := newTransaction(sess, deps, log)
	log.Debug("transaction opened", "token", tx.token)

	defer func() {
		if cerr := sess.Close(err); cerr != nil && err == nil {
			err = cerr
		}
		log.Debug("transaction closed", "token", tx.token, "error", err != nil)
	}()

	if err = fn(tx); err != nil {
		return err
	}
	err = tx.commit(ctx)
	return err
}

// AddRun queues creation of a new run.
func (t *Transaction) AddRun(e RunEntry) {
	t.newRun.add(e)
}

// Move queues relocation of the run at src to dest. killTmux terminates
// the run's session as part of the move.
func (t *Transaction) Move(src, dest runpath.Path, killTmux bool) {
	t.move.add(Move{Src: src, Dest: dest, KillTmux: killTmux})
}

// Remove queues deletion of the run at path.
func (t *Transaction) Remove(path runpath.Path) {
	t.removal.add(path)
}

// Interrupt queues sending C-c to the run at path.
func (t *Transaction) Interrupt(path runpath.Path) {
	t.interrupt.add(path)
}

// ChangeDescription queues a description edit. fullCommand and
// oldDescription are what the caller read; validation rejects the edit
// if the persisted entry no longer matches.
func (t *Transaction) ChangeDescription(path runpath.Path, fullCommand, oldDescription, newDescription string) {
	t.descriptionChange.add(DescriptionChange{
		Path:           path,
		FullCommand:    fullCommand,
		OldDescription: oldDescription,
		NewDescription: newDescription,
	})
}

// commit runs the three-phase protocol. Each phase completes for every
// non-empty sub-transaction before the next phase starts, so no side
// effect happens anywhere until validation has passed everywhere.
// Empty queues are skipped in every phase.
func (t *Transaction) commit(ctx context.Context) error {
	type phase struct {
		name string
		run  func(subTransaction) error
	}
	phases := []phase{
		{"sort", func(st subTransaction) error { st.sortQueue(); return nil }},
		{"validate", func(st subTransaction) error { return st.validate(ctx) }},
		{"execute", func(st subTransaction) error { return st.execute(ctx) }},
	}

	for _, ph := range phases {
		for _, st := range t.subs {
			if st.pending() == 0 {
				continue
			}
			t.log.Debug("transaction phase",
				"token", t.token, "phase", ph.name, "kind", st.kind(), "records", st.pending())
			if err := ph.run(st); err != nil {
				return err
			}
		}
	}
	return nil
}
