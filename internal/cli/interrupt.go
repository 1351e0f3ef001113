package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/runledger/internal/runpath"
	"github.com/roach88/runledger/internal/transaction"
)

// NewInterruptCommand creates the interrupt command.
func NewInterruptCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "interrupt <path>",
		Short: "Send C-c to the run's tmux session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterrupt(rootOpts, cmd, args[0])
		},
	}
}

func runInterrupt(opts *RootOptions, cmd *cobra.Command, rawPath string) error {
	path, err := runpath.Parse(rawPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid run path", err)
	}

	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	err = a.transact(cmd.Context(), func(tx *transaction.Transaction) error {
		tx.Interrupt(path)
		return nil
	})
	if err != nil {
		return err
	}

	a.ui.Print("interrupted %s", path)
	return nil
}
