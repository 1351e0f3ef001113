package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run is one row of the runs table.
type Run struct {
	Path         string
	FullCommand  string
	Commit       string
	CreatedAt    time.Time
	Description  string
	InputCommand string
}

// timeLayout is fixed-width RFC 3339 with nanoseconds so that stored UTC
// timestamps order chronologically under string comparison.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse created_at %q: %w", s, err)
	}
	return t, nil
}

// querier abstracts *sql.DB and *sql.Tx so the same read queries serve
// both the Store (CLI listings) and the Session (validation reads that
// must see the session's own writes).
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const runColumns = "path, full_command, commit_hash, created_at, description, input_command"

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var r Run
	var createdAt string
	if err := row.Scan(&r.Path, &r.FullCommand, &r.Commit, &createdAt, &r.Description, &r.InputCommand); err != nil {
		return Run{}, err
	}
	t, err := decodeTime(createdAt)
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt = t
	return r, nil
}

// entry returns the run at path, with found=false when no row exists.
func entry(ctx context.Context, q querier, path string) (Run, bool, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE path = ?
	`, path)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("query run %q: %w", path, err)
	}
	return r, true, nil
}

// exists reports whether a run row exists at path.
func exists(ctx context.Context, q querier, path string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM runs WHERE path = ?
	`, path).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check run %q: %w", path, err)
	}
	return count > 0, nil
}

// descendantsOf returns all runs strictly below prefix, ordered by path.
// The ORDER BY is lexical; callers wanting natural order re-sort.
func descendantsOf(ctx context.Context, q querier, prefix string) ([]Run, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE path LIKE ? ESCAPE '\'
		ORDER BY path ASC
	`, escapeLike(prefix)+"/%")
	if err != nil {
		return nil, fmt.Errorf("query descendants of %q: %w", prefix, err)
	}
	defer rows.Close()

	return collectRuns(rows)
}

// list returns every run, or with a non-empty prefix the run at that path
// plus all runs below it, ordered by path.
func list(ctx context.Context, q querier, prefix string) ([]Run, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if prefix == "" {
		rows, err = q.QueryContext(ctx, `
			SELECT `+runColumns+`
			FROM runs
			ORDER BY path ASC
		`)
	} else {
		rows, err = q.QueryContext(ctx, `
			SELECT `+runColumns+`
			FROM runs
			WHERE path = ? OR path LIKE ? ESCAPE '\'
			ORDER BY path ASC
		`, prefix, escapeLike(prefix)+"/%")
	}
	if err != nil {
		return nil, fmt.Errorf("list runs %q: %w", prefix, err)
	}
	defer rows.Close()

	return collectRuns(rows)
}

func collectRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	// Return empty slice instead of nil
	if runs == nil {
		runs = []Run{}
	}
	return runs, nil
}

// escapeLike escapes LIKE metacharacters so a path prefix matches literally.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// Entry returns the run at path. found is false when no run exists.
func (s *Store) Entry(ctx context.Context, path string) (Run, bool, error) {
	return entry(ctx, s.db, path)
}

// Exists reports whether a run exists at path.
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	return exists(ctx, s.db, path)
}

// DescendantsOf returns all runs strictly below prefix.
func (s *Store) DescendantsOf(ctx context.Context, prefix string) ([]Run, error) {
	return descendantsOf(ctx, s.db, prefix)
}

// List returns all runs, optionally restricted to prefix and its subtree.
func (s *Store) List(ctx context.Context, prefix string) ([]Run, error) {
	return list(ctx, s.db, prefix)
}
