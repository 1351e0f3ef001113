// Package runpath defines the hierarchical path that identifies a run.
//
// A run path looks like a relative slash-separated path ("exp/sweep/1").
// It is the primary key correlating a run's database row, its on-disk
// directories, and its tmux session. Paths are compared with a natural
// ordering: digit runs compare numerically, so "run-2" sorts before
// "run-10".
package runpath

import (
	"fmt"
	"strings"
)

// Path identifies one run. The zero value is invalid; construct with Parse.
type Path string

// Parse validates raw as a run path.
//
// Rules: non-empty, no leading/trailing/double slashes, and no "." or ".."
// components (paths are resolved under a configured root and must not
// escape it).
func Parse(raw string) (Path, error) {
	if raw == "" {
		return "", fmt.Errorf("run path is empty")
	}
	if strings.HasPrefix(raw, "/") || strings.HasSuffix(raw, "/") {
		return "", fmt.Errorf("run path %q must not start or end with '/'", raw)
	}
	for _, part := range strings.Split(raw, "/") {
		switch part {
		case "":
			return "", fmt.Errorf("run path %q contains an empty component", raw)
		case ".", "..":
			return "", fmt.Errorf("run path %q contains %q", raw, part)
		}
	}
	return Path(raw), nil
}

func (p Path) String() string { return string(p) }

// Parent returns the path one level up, or "" for a top-level path.
func (p Path) Parent() Path {
	i := strings.LastIndexByte(string(p), '/')
	if i < 0 {
		return ""
	}
	return p[:i]
}

// Base returns the final path component.
func (p Path) Base() string {
	i := strings.LastIndexByte(string(p), '/')
	return string(p[i+1:])
}

// Join appends a component to the path.
func (p Path) Join(part string) Path {
	if p == "" {
		return Path(part)
	}
	return Path(string(p) + "/" + part)
}

// IsAncestorOf reports whether other lives strictly below p.
func (p Path) IsAncestorOf(other Path) bool {
	return strings.HasPrefix(string(other), string(p)+"/")
}

// Rebase rewrites a path below oldBase to the corresponding path below
// newBase. p must equal oldBase or be a descendant of it.
func (p Path) Rebase(oldBase, newBase Path) (Path, error) {
	if p == oldBase {
		return newBase, nil
	}
	if !oldBase.IsAncestorOf(p) {
		return "", fmt.Errorf("path %q is not under %q", p, oldBase)
	}
	return Path(string(newBase) + strings.TrimPrefix(string(p), string(oldBase))), nil
}
