package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/runledger/internal/runpath"
	"github.com/roach88/runledger/internal/transaction"
)

// RemoveOptions holds flags for the rm command.
type RemoveOptions struct {
	*RootOptions
	Recursive bool
}

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RemoveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Remove a run: database row, directories, tmux session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(opts, cmd, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "also remove every run below <path>")

	return cmd
}

func runRemove(opts *RemoveOptions, cmd *cobra.Command, rawPath string) error {
	path, err := runpath.Parse(rawPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid run path", err)
	}

	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	var targets []runpath.Path
	exists, err := a.store.Exists(ctx, path.String())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to look up run", err)
	}
	if exists {
		targets = append(targets, path)
	}
	if opts.Recursive {
		descendants, err := a.store.DescendantsOf(ctx, path.String())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to look up subtree", err)
		}
		for _, r := range descendants {
			targets = append(targets, runpath.Path(r.Path))
		}
	}
	if len(targets) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no runs at or below %q", path))
	}

	question := fmt.Sprintf("remove %d run(s) under %q? This deletes their directories and kills their tmux sessions.", len(targets), path)
	ok, err := a.ui.Confirm(question)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read confirmation", err)
	}
	if !ok {
		a.ui.Print("aborted")
		return nil
	}

	err = a.transact(ctx, func(tx *transaction.Transaction) error {
		for _, p := range targets {
			tx.Remove(p)
		}
		return nil
	})
	if err != nil {
		return err
	}

	a.ui.Print("removed %d run(s)", len(targets))
	return nil
}
