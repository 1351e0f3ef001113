// Package config loads runledger's configuration file.
//
// Configuration lives in .runledger.yaml in the working directory (or a
// path given with --config). Every field has a default, the file is
// optional, and command-line flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no --config
// flag is given.
const DefaultFileName = ".runledger.yaml"

// Config holds the tool's settings.
type Config struct {
	// Root is the directory under which run directories are created.
	Root string `yaml:"root"`
	// Database is the SQLite file holding run metadata.
	Database string `yaml:"database"`
	// DirNames lists the per-run directory kinds mirrored under Root
	// (e.g. "work", "tensorboard"). Empty means runs own no directories.
	DirNames []string `yaml:"dir_names"`
	// CommandPrefix is prepended to every new run's command, typically
	// environment activation.
	CommandPrefix string `yaml:"command_prefix"`
	// Quiet suppresses informational output.
	Quiet bool `yaml:"quiet"`
	// AssumeYes answers every confirmation prompt with yes.
	AssumeYes bool `yaml:"assume_yes"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Root:     ".runledger",
		Database: filepath.Join(".runledger", "runs.db"),
	}
}

// Load reads the configuration at path. An empty path means the default
// file name in the working directory; a missing default file yields
// Default() without error, while an explicitly named file must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.Root == "" {
		return Config{}, fmt.Errorf("config %q: root must not be empty", path)
	}
	if cfg.Database == "" {
		cfg.Database = filepath.Join(cfg.Root, "runs.db")
	}
	return cfg, nil
}
