package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/runledger/internal/runpath"
	"github.com/roach88/runledger/internal/shell"
	"github.com/roach88/runledger/internal/transaction"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions
	Description string
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new <path> <command...>",
		Short: "Create a run and start its command in tmux",
		Long: `Create a run: record its command and the current git commit in the
database, create its directories, and start the command in a detached
tmux session named after the run path.

Example:
  runledger new exp/lr-sweep/1 python train.py --lr 0.1
  runledger new exp/2 --description "bigger model" -- python train.py`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(opts, cmd, args[0], strings.Join(args[1:], " "))
		},
	}

	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "run description (prompted for when omitted)")

	return cmd
}

func runNew(opts *NewOptions, cmd *cobra.Command, rawPath, command string) error {
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

	commit, err := shell.GitCommit(ctx, a.runner)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve git commit (runs must start inside a git repository)", err)
	}

	fullCommand := command
	if a.cfg.CommandPrefix != "" {
		fullCommand = a.cfg.CommandPrefix + " " + command
	}

	description := opts.Description
	if description == "" {
		description, err = a.ui.Prompt("description")
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read description", err)
		}
	}

	err = a.transact(ctx, func(tx *transaction.Transaction) error {
		tx.AddRun(transaction.RunEntry{
			Path:         path,
			FullCommand:  fullCommand,
			Commit:       commit,
			CreatedAt:    a.now(),
			Description:  description,
			InputCommand: command,
		})
		return nil
	})
	if err != nil {
		return err
	}

	a.ui.Print("created run %s", path)
	return nil
}
