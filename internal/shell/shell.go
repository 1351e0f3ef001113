// Package shell runs external commands behind a narrow interface so the
// tmux and source-control collaborators stay testable without spawning
// processes.
package shell

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes one external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// Run executes the command and returns combined stdout/stderr. On a
// non-zero exit the output is folded into the error so callers see what
// the tool printed.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(out))
		if trimmed != "" {
			return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, trimmed)
		}
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}

// GitCommit returns the commit hash of HEAD in the current repository.
func GitCommit(ctx context.Context, r Runner) (string, error) {
	out, err := r.Run(ctx, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolve git commit: %w", err)
	}
	return strings.TrimSpace(out), nil
}
