// Package tmux controls the external tmux session tied to a run.
//
// Each run may own one detached session named after its path. The client
// shells out to the tmux binary through shell.Runner, so tests swap in a
// recording fake instead of spawning tmux.
package tmux

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/runledger/internal/runpath"
	"github.com/roach88/runledger/internal/shell"
)

// Client drives tmux for run sessions.
type Client struct {
	runner shell.Runner
}

// NewClient creates a Client using the given runner.
func NewClient(r shell.Runner) *Client {
	return &Client{runner: r}
}

// SessionName derives the tmux session name for a run path. tmux rejects
// '.' and ':' in session names, so they are replaced.
func SessionName(p runpath.Path) string {
	name := strings.ReplaceAll(p.String(), ".", ",")
	return strings.ReplaceAll(name, ":", ";")
}

// NewSession starts a detached session for the run and types the command
// into it. The two-step new-session/send-keys sequence keeps the session
// alive after the command finishes, so its output stays inspectable.
func (c *Client) NewSession(ctx context.Context, p runpath.Path, command string) error {
	name := SessionName(p)
	if _, err := c.runner.Run(ctx, "tmux", "new-session", "-d", "-s", name); err != nil {
		return fmt.Errorf("new tmux session %q: %w", name, err)
	}
	if _, err := c.runner.Run(ctx, "tmux", "send-keys", "-t", name, command, "Enter"); err != nil {
		return fmt.Errorf("start command in session %q: %w", name, err)
	}
	return nil
}

// SendInterrupt sends C-c to the run's session.
func (c *Client) SendInterrupt(ctx context.Context, p runpath.Path) error {
	name := SessionName(p)
	if _, err := c.runner.Run(ctx, "tmux", "send-keys", "-t", name, "C-c"); err != nil {
		return fmt.Errorf("interrupt session %q: %w", name, err)
	}
	return nil
}

// KillSession terminates the run's session. A session that is already
// gone is not an error: tmux sessions die with their commands, so kill
// must be tolerant during removal.
func (c *Client) KillSession(ctx context.Context, p runpath.Path) error {
	name := SessionName(p)
	if _, err := c.runner.Run(ctx, "tmux", "kill-session", "-t", name); err != nil {
		if strings.Contains(err.Error(), "can't find session") ||
			strings.Contains(err.Error(), "no server running") {
			return nil
		}
		return fmt.Errorf("kill session %q: %w", name, err)
	}
	return nil
}

// RenameSession renames the session when its run moves.
func (c *Client) RenameSession(ctx context.Context, src, dest runpath.Path) error {
	from, to := SessionName(src), SessionName(dest)
	if _, err := c.runner.Run(ctx, "tmux", "rename-session", "-t", from, to); err != nil {
		if strings.Contains(err.Error(), "can't find session") ||
			strings.Contains(err.Error(), "no server running") {
			return nil
		}
		return fmt.Errorf("rename session %q -> %q: %w", from, to, err)
	}
	return nil
}
