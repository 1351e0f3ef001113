package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root: /data/runs
database: /data/runs/meta.db
dir_names: [work, tensorboard]
command_prefix: "source .venv/bin/activate &&"
assume_yes: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/runs", cfg.Root)
	assert.Equal(t, "/data/runs/meta.db", cfg.Database)
	assert.Equal(t, []string{"work", "tensorboard"}, cfg.DirNames)
	assert.Equal(t, "source .venv/bin/activate &&", cfg.CommandPrefix)
	assert.True(t, cfg.AssumeYes)
	assert.False(t, cfg.Quiet)
}

func TestLoad_DatabaseDefaultsUnderRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: /data/runs\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data/runs", "runs.db"), cfg.Database)
}

func TestLoad_EmptyRootRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`root: ""`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
