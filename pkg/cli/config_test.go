package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/plugdev/manifestlint/pkg/constants"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if len(cfg.Markers) != 0 || cfg.SchemaDir != "" || cfg.MaxConcurrency != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
	if cfg.Concurrency() != constants.DefaultMaxConcurrency {
		t.Errorf("Concurrency() = %d, want default %d", cfg.Concurrency(), constants.DefaultMaxConcurrency)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "markers:\n  - manifest.yaml\n  - app.py\nmax_concurrency: 8\n"
	if err := os.WriteFile(filepath.Join(dir, constants.ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Markers, []string{"manifest.yaml", "app.py"}) {
		t.Errorf("Markers = %v", cfg.Markers)
	}
	if cfg.MaxConcurrency != 8 {
		t.Errorf("MaxConcurrency = %d, want 8", cfg.MaxConcurrency)
	}
	if cfg.Concurrency() != 8 {
		t.Errorf("Concurrency() = %d, want 8", cfg.Concurrency())
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := "schema_dir: /from/file\nmax_concurrency: 2\n"
	if err := os.WriteFile(filepath.Join(dir, constants.ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MANIFESTLINT_SCHEMA_DIR", "/from/env")
	t.Setenv("MANIFESTLINT_MAX_CONCURRENCY", "16")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.SchemaDir != "/from/env" {
		t.Errorf("SchemaDir = %q, want env override", cfg.SchemaDir)
	}
	if cfg.MaxConcurrency != 16 {
		t.Errorf("MaxConcurrency = %d, want 16", cfg.MaxConcurrency)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, constants.ConfigFileName), []byte("markers: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("LoadConfig() succeeded on malformed YAML")
	}
}
