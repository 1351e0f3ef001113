package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/runledger/internal/store"
)

// scriptRunner stands in for git and tmux in CLI tests: it records
// every argv and answers git rev-parse with a canned commit.
type scriptRunner struct {
	calls  [][]string
	commit string
}

func (r *scriptRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	if name == "git" {
		return r.commit + "\n", nil
	}
	return "", nil
}

func (r *scriptRunner) saw(argv string) bool {
	for _, call := range r.calls {
		if strings.Join(call, " ") == argv {
			return true
		}
	}
	return false
}

// testEnv is a throwaway config + database rooted in a temp dir.
type testEnv struct {
	dir     string
	cfgPath string
	dbPath  string
	runner  *scriptRunner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:     dir,
		cfgPath: filepath.Join(dir, "runledger.yaml"),
		dbPath:  filepath.Join(dir, "runs.db"),
		runner:  &scriptRunner{commit: "0123456789abcdef0123456789abcdef01234567"},
	}
	cfg := fmt.Sprintf("root: %q\ndatabase: %q\ndir_names: [work]\n",
		filepath.Join(dir, "runs"), env.dbPath)
	require.NoError(t, os.WriteFile(env.cfgPath, []byte(cfg), 0o644))
	return env
}

// execute runs the CLI with stubbed runner and clock against the env.
func (e *testEnv) execute(t *testing.T, now func() time.Time, args ...string) (string, error) {
	t.Helper()
	opts := &RootOptions{
		Runner: e.runner,
		Now:    now,
		Stdin:  strings.NewReader(""),
	}
	cmd := NewRootCommandWithOptions(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", e.cfgPath))
	err := cmd.Execute()
	return out.String(), err
}

// seed inserts runs directly through the store, bypassing the CLI.
func (e *testEnv) seed(t *testing.T, runs ...store.Run) {
	t.Helper()
	st, err := store.Open(e.dbPath)
	require.NoError(t, err)
	defer st.Close()

	sess, err := st.Begin(context.Background())
	require.NoError(t, err)
	for _, r := range runs {
		require.NoError(t, sess.InsertRun(context.Background(), r))
	}
	require.NoError(t, sess.Close(nil))
}

// entry reads one run back out of the database.
func (e *testEnv) entry(t *testing.T, path string) (store.Run, bool) {
	t.Helper()
	st, err := store.Open(e.dbPath)
	require.NoError(t, err)
	defer st.Close()

	r, found, err := st.Entry(context.Background(), path)
	require.NoError(t, err)
	return r, found
}

func (e *testEnv) workDir(path string) string {
	return filepath.Join(e.dir, "runs", "work", filepath.FromSlash(path))
}

func timeUTC(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func seededRun(path string, created time.Time, description string) store.Run {
	return store.Run{
		Path:         path,
		FullCommand:  "python train.py",
		Commit:       "0123456789abcdef0123456789abcdef01234567",
		CreatedAt:    created,
		Description:  description,
		InputCommand: "python train.py",
	}
}
