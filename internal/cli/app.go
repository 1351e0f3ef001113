package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/runledger/internal/config"
	"github.com/roach88/runledger/internal/fsys"
	"github.com/roach88/runledger/internal/shell"
	"github.com/roach88/runledger/internal/store"
	"github.com/roach88/runledger/internal/tmux"
	"github.com/roach88/runledger/internal/transaction"
	"github.com/roach88/runledger/internal/ui"
)

// app bundles the collaborators every command needs: config, store,
// filesystem, tmux, shell runner, UI, clock.
type app struct {
	cfg    config.Config
	store  *store.Store
	fs     *fsys.FileSystem
	proc   *tmux.Client
	runner shell.Runner
	ui     *ui.UI
	now    func() time.Time
	out    io.Writer
}

// openApp loads configuration and opens the store. Callers must Close.
func openApp(opts *RootOptions, cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	// Flags override file values, in one direction only: a flag can
	// force quiet/yes on but not back off.
	quiet := cfg.Quiet || opts.Quiet
	assumeYes := cfg.AssumeYes || opts.AssumeYes

	if dir := filepath.Dir(cfg.Database); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to create database directory", err)
		}
	}
	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	runner := opts.Runner
	if runner == nil {
		runner = shell.ExecRunner{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = cmd.InOrStdin()
	}
	out := cmd.OutOrStdout()

	return &app{
		cfg:    cfg,
		store:  st,
		fs:     fsys.New(cfg.Root, cfg.DirNames),
		proc:   tmux.NewClient(runner),
		runner: runner,
		ui:     ui.NewWithStreams(quiet, assumeYes, stdin, out),
		now:    now,
		out:    out,
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// transact runs fn inside one transaction scope against the app's
// collaborators.
func (a *app) transact(ctx context.Context, fn func(*transaction.Transaction) error) error {
	return transaction.With(ctx, transaction.Deps{
		Begin: func(ctx context.Context) (transaction.Session, error) {
			return a.store.Begin(ctx)
		},
		FS:   a.fs,
		Proc: a.proc,
	}, fn)
}
