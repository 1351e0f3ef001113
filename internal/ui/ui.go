// Package ui handles user-facing output and prompts for the CLI.
//
// Two switches shape its behavior: quiet suppresses informational
// output, assume-yes answers every confirmation without prompting.
// Diagnostic logging goes through slog and is configured by the CLI
// root, not here.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// UI prints messages and asks questions.
type UI struct {
	quiet     bool
	assumeYes bool
	in        *bufio.Reader
	out       io.Writer
}

// New creates a UI on stdin/stdout.
func New(quiet, assumeYes bool) *UI {
	return NewWithStreams(quiet, assumeYes, os.Stdin, os.Stdout)
}

// NewWithStreams creates a UI on explicit streams, for tests and for
// commands that redirect output.
func NewWithStreams(quiet, assumeYes bool, in io.Reader, out io.Writer) *UI {
	return &UI{quiet: quiet, assumeYes: assumeYes, in: bufio.NewReader(in), out: out}
}

// Print writes an informational line unless quiet is set.
func (u *UI) Print(format string, args ...any) {
	if u.quiet {
		return
	}
	fmt.Fprintf(u.out, format+"\n", args...)
}

// Confirm asks a yes/no question. assume-yes answers true without
// prompting. An empty answer means no.
func (u *UI) Confirm(question string) (bool, error) {
	if u.assumeYes {
		return true, nil
	}
	fmt.Fprintf(u.out, "%s [y/N] ", question)
	line, err := u.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// Prompt asks for a free-form line. assume-yes returns the empty string
// without prompting, keeping scripted invocations non-interactive.
func (u *UI) Prompt(label string) (string, error) {
	if u.assumeYes {
		return "", nil
	}
	fmt.Fprintf(u.out, "%s: ", label)
	line, err := u.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read prompt: %w", err)
	}
	return strings.TrimSpace(line), nil
}
