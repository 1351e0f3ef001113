package cli

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemove_DeletesRowDirsAndSession(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, seededRun("exp/1", time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC), "baseline"))
	require.NoError(t, os.MkdirAll(env.workDir("exp/1"), 0o755))

	out, err := env.execute(t, nil, "rm", "exp/1", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 1 run(s)")

	_, found := env.entry(t, "exp/1")
	assert.False(t, found)

	if _, statErr := os.Stat(env.workDir("exp/1")); !os.IsNotExist(statErr) {
		t.Errorf("work dir still present after rm, stat err = %v", statErr)
	}
	assert.True(t, env.runner.saw("tmux kill-session -t exp/1"))
}

func TestRemove_RecursiveSubtree(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t,
		seededRun("exp/1", time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC), "baseline"),
		seededRun("exp/2", time.Date(2026, 3, 14, 9, 27, 0, 0, time.UTC), "lr sweep"),
		seededRun("other/1", time.Date(2026, 3, 14, 9, 28, 0, 0, time.UTC), "unrelated"),
	)

	_, err := env.execute(t, nil, "rm", "exp", "-r", "-y")
	require.NoError(t, err)

	_, found := env.entry(t, "exp/1")
	assert.False(t, found)
	_, found = env.entry(t, "exp/2")
	assert.False(t, found)
	_, found = env.entry(t, "other/1")
	assert.True(t, found)
}

func TestRemove_DeclinedConfirmationKeepsRun(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, seededRun("exp/1", time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC), "baseline"))

	// Stdin is empty, so the confirmation prompt reads EOF and declines.
	out, err := env.execute(t, nil, "rm", "exp/1")
	require.NoError(t, err)
	assert.Contains(t, out, "aborted")

	_, found := env.entry(t, "exp/1")
	assert.True(t, found)
	assert.False(t, env.runner.saw("tmux kill-session -t exp/1"))
}

func TestRemove_MissingRun(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, nil, "rm", "nope/1", "-y")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
