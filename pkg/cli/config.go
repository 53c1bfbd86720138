// Package cli implements the manifestlint commands: one-shot validation,
// watch mode and the MCP server front end.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	"github.com/plugdev/manifestlint/pkg/constants"
)

// Config controls workspace-level behavior. Values come from the optional
// .manifestlint.yml in the workspace, overridden by MANIFESTLINT_*
// environment variables.
type Config struct {
	// Markers are the filenames that must all exist for project recognition
	Markers []string `yaml:"markers" env:"MANIFESTLINT_MARKERS"`
	// SchemaDir optionally replaces the embedded schema documents
	SchemaDir string `yaml:"schema_dir" env:"MANIFESTLINT_SCHEMA_DIR"`
	// MaxConcurrency bounds parallel per-file validation
	MaxConcurrency int `yaml:"max_concurrency" env:"MANIFESTLINT_MAX_CONCURRENCY"`
}

// LoadConfig reads the config file from dir if present, then applies
// environment overrides
func LoadConfig(dir string) (Config, error) {
	var cfg Config

	path := filepath.Join(dir, constants.ConfigFileName)
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var env Config
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("failed to read environment config: %w", err)
	}
	if len(env.Markers) > 0 {
		cfg.Markers = env.Markers
	}
	if env.SchemaDir != "" {
		cfg.SchemaDir = env.SchemaDir
	}
	if env.MaxConcurrency > 0 {
		cfg.MaxConcurrency = env.MaxConcurrency
	}

	return cfg, nil
}

// Concurrency returns the configured concurrency or the default
func (c Config) Concurrency() int {
	if c.MaxConcurrency > 0 {
		return c.MaxConcurrency
	}
	return constants.DefaultMaxConcurrency
}
