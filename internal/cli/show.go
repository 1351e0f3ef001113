package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/runledger/internal/runpath"
	"github.com/roach88/runledger/internal/tmux"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: "Show one run's full record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd, args[0])
		},
	}
}

// runDetail is the JSON shape of a shown run.
type runDetail struct {
	Path         string `json:"path"`
	FullCommand  string `json:"full_command"`
	InputCommand string `json:"input_command"`
	Commit       string `json:"commit"`
	CreatedAt    string `json:"created_at"`
	Description  string `json:"description"`
	TmuxSession  string `json:"tmux_session"`
}

func runShow(opts *RootOptions, cmd *cobra.Command, rawPath string) error {
	path, err := runpath.Parse(rawPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid run path", err)
	}

	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	entry, found, err := a.store.Entry(cmd.Context(), path.String())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to look up run", err)
	}
	if !found {
		return NewExitError(ExitCommandError, fmt.Sprintf("no run at %q", path))
	}

	detail := runDetail{
		Path:         entry.Path,
		FullCommand:  entry.FullCommand,
		InputCommand: entry.InputCommand,
		Commit:       entry.Commit,
		CreatedAt:    entry.CreatedAt.UTC().Format(time.RFC3339),
		Description:  entry.Description,
		TmuxSession:  tmux.SessionName(path),
	}

	if opts.Format == "json" {
		return writeJSON(a.out, detail)
	}

	fmt.Fprintf(a.out, "path:         %s\n", detail.Path)
	fmt.Fprintf(a.out, "command:      %s\n", detail.FullCommand)
	fmt.Fprintf(a.out, "input:        %s\n", detail.InputCommand)
	fmt.Fprintf(a.out, "commit:       %s\n", detail.Commit)
	fmt.Fprintf(a.out, "created:      %s\n", detail.CreatedAt)
	fmt.Fprintf(a.out, "description:  %s\n", detail.Description)
	fmt.Fprintf(a.out, "tmux session: %s\n", detail.TmuxSession)
	return nil
}
