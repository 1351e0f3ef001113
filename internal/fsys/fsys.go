// Package fsys mirrors the run hierarchy onto the local filesystem.
//
// Each run owns one directory per configured dir-name:
// <root>/<dir-name>/<run-path>. Structural operations (create, move,
// remove) apply to every dir-name; remove additionally prunes parent
// directories left empty so abandoned subtrees do not accumulate.
package fsys

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/roach88/runledger/internal/runpath"
)

// FileSystem resolves run paths to on-disk locations under a root.
type FileSystem struct {
	root     string
	dirNames []string
}

// New creates a FileSystem rooted at root. With no dir-names, runs own
// no directories and all operations are no-ops.
func New(root string, dirNames []string) *FileSystem {
	return &FileSystem{root: root, dirNames: dirNames}
}

// RunDirs returns the directories owned by the run at p, one per
// configured dir-name.
func (f *FileSystem) RunDirs(p runpath.Path) []string {
	dirs := make([]string, 0, len(f.dirNames))
	for _, name := range f.dirNames {
		dirs = append(dirs, filepath.Join(f.root, name, filepath.FromSlash(p.String())))
	}
	return dirs
}

// CreateRunDirs creates every directory owned by the run at p.
func (f *FileSystem) CreateRunDirs(p runpath.Path) error {
	for _, dir := range f.RunDirs(p) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create run dir: %w", err)
		}
	}
	return nil
}

// MoveRunDirs relocates every directory owned by src to dest. A source
// directory that never existed (the run was created before a dir-name
// was configured) is skipped rather than treated as an error.
func (f *FileSystem) MoveRunDirs(src, dest runpath.Path) error {
	srcDirs := f.RunDirs(src)
	destDirs := f.RunDirs(dest)
	for i := range srcDirs {
		if _, err := os.Stat(srcDirs[i]); os.IsNotExist(err) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(destDirs[i]), 0o755); err != nil {
			return fmt.Errorf("move run dir: %w", err)
		}
		if err := os.Rename(srcDirs[i], destDirs[i]); err != nil {
			return fmt.Errorf("move run dir: %w", err)
		}
		f.pruneEmptyParents(filepath.Dir(srcDirs[i]))
	}
	return nil
}

// RemoveRunDirs deletes every directory owned by the run at p, then
// prunes parents left empty.
func (f *FileSystem) RemoveRunDirs(p runpath.Path) error {
	for _, dir := range f.RunDirs(p) {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("remove run dir: %w", err)
		}
		f.pruneEmptyParents(filepath.Dir(dir))
	}
	return nil
}

// pruneEmptyParents removes empty directories walking up from dir,
// stopping at the per-dir-name roots. Best effort: a parent that is not
// empty, or any error, ends the walk.
func (f *FileSystem) pruneEmptyParents(dir string) {
	stop := make(map[string]bool, len(f.dirNames))
	for _, name := range f.dirNames {
		stop[filepath.Clean(filepath.Join(f.root, name))] = true
	}
	stop[filepath.Clean(f.root)] = true

	for dir != "" && !stop[filepath.Clean(dir)] {
		if !isEmptyDir(dir) {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

func isEmptyDir(dir string) bool {
	d, err := os.Open(dir)
	if err != nil {
		return false
	}
	defer d.Close()
	_, err = d.Readdirnames(1)
	return err == io.EOF
}
