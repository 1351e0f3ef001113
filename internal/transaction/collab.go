package transaction

import (
	"context"

	"github.com/roach88/runledger/internal/runpath"
	"github.com/roach88/runledger/internal/store"
)

// Database is the persistence surface the sub-transactions use: one
// write call per operation kind plus the read-only lookups validation
// needs. *store.Session implements it.
type Database interface {
	InsertRun(ctx context.Context, r store.Run) error
	DeleteRun(ctx context.Context, path string) error
	UpdateDescription(ctx context.Context, path, description string) error
	UpdatePath(ctx context.Context, src, dest string) error

	Entry(ctx context.Context, path string) (store.Run, bool, error)
	Exists(ctx context.Context, path string) (bool, error)
	DescendantsOf(ctx context.Context, prefix string) ([]store.Run, error)
}

// Session is a Database with the scoped finalize bracket: Close commits
// on a nil cause and rolls back otherwise, exactly once.
type Session interface {
	Database
	Close(cause error) error
}

// FileSystem mirrors structural changes onto run directories.
type FileSystem interface {
	CreateRunDirs(p runpath.Path) error
	MoveRunDirs(src, dest runpath.Path) error
	RemoveRunDirs(p runpath.Path) error
}

// ProcessControl manages the tmux session tied to a run.
type ProcessControl interface {
	NewSession(ctx context.Context, p runpath.Path, command string) error
	SendInterrupt(ctx context.Context, p runpath.Path) error
	KillSession(ctx context.Context, p runpath.Path) error
	RenameSession(ctx context.Context, src, dest runpath.Path) error
}
