package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_InvalidFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, nil, "ls", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRoot_ShowCommand(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, seededRun("exp/1.5", timeUTC(2026, 3, 14, 9, 26), "baseline"))

	out, err := env.execute(t, nil, "show", "exp/1.5")
	require.NoError(t, err)

	assert.Contains(t, out, "path:         exp/1.5")
	assert.Contains(t, out, "command:      python train.py")
	// '.' is illegal in tmux session names and gets replaced.
	assert.Contains(t, out, "tmux session: exp/1,5")
}

func TestRoot_ShowMissingRun(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, nil, "show", "nope/1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad args")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "wrapped", errors.New("inner"))))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}
