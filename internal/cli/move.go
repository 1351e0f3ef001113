package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/runledger/internal/runpath"
	"github.com/roach88/runledger/internal/transaction"
)

// MoveOptions holds flags for the mv command.
type MoveOptions struct {
	*RootOptions
	KillTmux bool
}

// NewMoveCommand creates the mv command.
func NewMoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MoveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "mv <src> <dest>",
		Short: "Move or rename a run (or a whole subtree)",
		Long: `Move the run at <src> to <dest>. When <src> is a prefix holding several
runs, every run below it moves to the corresponding path below <dest>.
The database row, the run directories, and the tmux session all follow;
--kill-tmux terminates the session instead of renaming it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(opts, cmd, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&opts.KillTmux, "kill-tmux", false, "kill the run's tmux session instead of renaming it")

	return cmd
}

func runMove(opts *MoveOptions, cmd *cobra.Command, rawSrc, rawDest string) error {
	src, err := runpath.Parse(rawSrc)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid source path", err)
	}
	dest, err := runpath.Parse(rawDest)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid destination path", err)
	}

	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	// A prefix move expands to one Move per contained run before
	// queuing; validation re-checks everything inside the scope.
	moves, err := expandMoves(a, cmd, src, dest)
	if err != nil {
		return err
	}

	err = a.transact(ctx, func(tx *transaction.Transaction) error {
		for _, m := range moves {
			tx.Move(m.Src, m.Dest, opts.KillTmux)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, m := range moves {
		a.ui.Print("moved %s -> %s", m.Src, m.Dest)
	}
	return nil
}

func expandMoves(a *app, cmd *cobra.Command, src, dest runpath.Path) ([]transaction.Move, error) {
	ctx := cmd.Context()

	var moves []transaction.Move

	exists, err := a.store.Exists(ctx, src.String())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to look up source", err)
	}
	if exists {
		moves = append(moves, transaction.Move{Src: src, Dest: dest})
	}

	descendants, err := a.store.DescendantsOf(ctx, src.String())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to look up source subtree", err)
	}
	for _, r := range descendants {
		p := runpath.Path(r.Path)
		rebased, err := p.Rebase(src, dest)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to rebase path", err)
		}
		moves = append(moves, transaction.Move{Src: p, Dest: rebased})
	}

	if len(moves) == 0 {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("no runs at or below %q", src))
	}
	return moves, nil
}
