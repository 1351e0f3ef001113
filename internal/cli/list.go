package cli

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/runledger/internal/runpath"
	"github.com/roach88/runledger/internal/store"
)

// NewListCommand creates the ls command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [prefix]",
		Short: "List runs in natural path order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			return runList(rootOpts, cmd, prefix)
		},
	}
}

// runListItem is the JSON shape of one listed run.
type runListItem struct {
	Path        string `json:"path"`
	CreatedAt   string `json:"created_at"`
	Commit      string `json:"commit"`
	Description string `json:"description"`
	Command     string `json:"command"`
}

func runList(opts *RootOptions, cmd *cobra.Command, rawPrefix string) error {
	prefix := ""
	if rawPrefix != "" {
		p, err := runpath.Parse(rawPrefix)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid prefix", err)
		}
		prefix = p.String()
	}

	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	runs, err := a.store.List(cmd.Context(), prefix)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	// The store orders lexically; listing shows natural order, so
	// exp/2 appears before exp/10.
	slices.SortStableFunc(runs, func(x, y store.Run) int {
		return runpath.Compare(runpath.Path(x.Path), runpath.Path(y.Path))
	})

	if opts.Format == "json" {
		items := make([]runListItem, 0, len(runs))
		for _, r := range runs {
			items = append(items, runListItem{
				Path:        r.Path,
				CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
				Commit:      r.Commit,
				Description: r.Description,
				Command:     r.FullCommand,
			})
		}
		return writeJSON(a.out, items)
	}

	return renderRunTable(a.out, runs)
}

func renderRunTable(w io.Writer, runs []store.Run) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tCREATED\tCOMMIT\tDESCRIPTION")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Path,
			r.CreatedAt.UTC().Format("2006-01-02 15:04"),
			shortCommit(r.Commit),
			r.Description,
		)
	}
	return tw.Flush()
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
