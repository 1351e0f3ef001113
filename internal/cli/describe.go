package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/runledger/internal/runpath"
	"github.com/roach88/runledger/internal/transaction"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <path> <description...>",
		Short: "Replace a run's description",
		Long: `Replace the description of the run at <path>. The edit carries the
description as currently stored; if another invocation changes it
between this read and the commit, the edit is rejected instead of
silently overwriting.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(rootOpts, cmd, args[0], strings.Join(args[1:], " "))
		},
	}
}

func runDescribe(opts *RootOptions, cmd *cobra.Command, rawPath, newDescription string) error {
	path, err := runpath.Parse(rawPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid run path", err)
	}

	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	entry, found, err := a.store.Entry(ctx, path.String())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to look up run", err)
	}
	if !found {
		return NewExitError(ExitCommandError, fmt.Sprintf("no run at %q", path))
	}

	err = a.transact(ctx, func(tx *transaction.Transaction) error {
		tx.ChangeDescription(path, entry.FullCommand, entry.Description, newDescription)
		return nil
	})
	if err != nil {
		return err
	}

	a.ui.Print("described %s", path)
	return nil
}
