package store

import (
	"context"
	"fmt"
)

// Session brackets one write transaction. It is single-use: Begin opens
// it, Close finalizes it exactly once. Reads through a Session see the
// session's own uncommitted writes, which the transaction coordinator's
// validate phase relies on.
type Session struct {
	tx   txLike
	done bool
}

// txLike is the slice of *sql.Tx the session uses. Narrowed to an
// interface so Close semantics are testable without a database.
type txLike interface {
	querier
	Commit() error
	Rollback() error
}

// Close finalizes the session: commit when cause is nil, rollback
// otherwise. Idempotent - second and later calls are no-ops, so the
// defer-on-every-exit-path pattern cannot double-finalize.
//
// On the rollback path the returned error stays nil; the cause that
// triggered the rollback is what the caller propagates.
func (s *Session) Close(cause error) error {
	if s.done {
		return nil
	}
	s.done = true

	if cause != nil {
		// Best effort - the original error matters more than rollback
		// hiccups on an already-doomed transaction.
		_ = s.tx.Rollback()
		return nil
	}
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// InsertRun inserts a new run row. The path must not already exist;
// the transaction coordinator's validate phase guarantees that, so a
// constraint violation here is a real error, not an idempotent no-op.
func (s *Session) InsertRun(ctx context.Context, r Run) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO runs
		(path, full_command, commit_hash, created_at, description, input_command)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		r.Path,
		r.FullCommand,
		r.Commit,
		encodeTime(r.CreatedAt),
		r.Description,
		r.InputCommand,
	)
	if err != nil {
		return fmt.Errorf("insert run %q: %w", r.Path, err)
	}
	return nil
}

// DeleteRun removes the run row at path.
func (s *Session) DeleteRun(ctx context.Context, path string) error {
	res, err := s.tx.ExecContext(ctx, `DELETE FROM runs WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("delete run %q: %w", path, err)
	}
	return expectOneRow(res, "delete run", path)
}

// UpdateDescription replaces the description of the run at path.
func (s *Session) UpdateDescription(ctx context.Context, path, description string) error {
	res, err := s.tx.ExecContext(ctx, `
		UPDATE runs SET description = ? WHERE path = ?
	`, description, path)
	if err != nil {
		return fmt.Errorf("update description %q: %w", path, err)
	}
	return expectOneRow(res, "update description", path)
}

// UpdatePath renames the run at src to dest.
func (s *Session) UpdatePath(ctx context.Context, src, dest string) error {
	res, err := s.tx.ExecContext(ctx, `
		UPDATE runs SET path = ? WHERE path = ?
	`, dest, src)
	if err != nil {
		return fmt.Errorf("update path %q -> %q: %w", src, dest, err)
	}
	return expectOneRow(res, "update path", src)
}

// Entry returns the run at path as seen inside the session.
func (s *Session) Entry(ctx context.Context, path string) (Run, bool, error) {
	return entry(ctx, s.tx, path)
}

// Exists reports whether a run exists at path as seen inside the session.
func (s *Session) Exists(ctx context.Context, path string) (bool, error) {
	return exists(ctx, s.tx, path)
}

// DescendantsOf returns all runs strictly below prefix as seen inside
// the session.
func (s *Session) DescendantsOf(ctx context.Context, prefix string) ([]Run, error) {
	return descendantsOf(ctx, s.tx, prefix)
}

func expectOneRow(res interface{ RowsAffected() (int64, error) }, op, path string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %q: rows affected: %w", op, path, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: no such run", op, path)
	}
	return nil
}
