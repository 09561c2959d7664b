package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Output.PDF != "The-Swift-Programming-Language.pdf" {
		t.Errorf("Output.PDF = %q", cfg.Output.PDF)
	}
	if cfg.Output.Combined != "book-combined.md" {
		t.Errorf("Output.Combined = %q", cfg.Output.Combined)
	}
	if cfg.Build.Workers != 0 {
		t.Errorf("Build.Workers = %d, want 0 (automatic)", cfg.Build.Workers)
	}
}

func TestLoadConfigFromPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "book.yaml")
	writeConfig(t, path, `
pandoc:
  path: /opt/pandoc/bin/pandoc
book:
  rootFile: TSPL.docc/Root.md
output:
  pdf: swift-book.pdf
build:
  workers: 4
  versionSuffix: beta 1
  chapters:
    - TheBasics
    - Closures
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Pandoc.Path != "/opt/pandoc/bin/pandoc" {
		t.Errorf("Pandoc.Path = %q", cfg.Pandoc.Path)
	}
	if cfg.Book.RootFile != "TSPL.docc/Root.md" {
		t.Errorf("Book.RootFile = %q", cfg.Book.RootFile)
	}
	if cfg.Output.PDF != "swift-book.pdf" {
		t.Errorf("Output.PDF = %q", cfg.Output.PDF)
	}
	// Defaults survive when the file doesn't mention a field.
	if cfg.Output.Combined != "book-combined.md" {
		t.Errorf("Output.Combined = %q, want default", cfg.Output.Combined)
	}
	if cfg.Build.Workers != 4 {
		t.Errorf("Build.Workers = %d", cfg.Build.Workers)
	}
	if len(cfg.Build.Chapters) != 2 || cfg.Build.Chapters[0] != "TheBasics" {
		t.Errorf("Build.Chapters = %v", cfg.Build.Chapters)
	}
}

func TestLoadConfigEmptyName(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Fatalf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
	}
}

func TestLoadConfigMissingPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigMissingName(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig("no-such-config-name"); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "book.yaml")
	writeConfig(t, path, "bogus: true\n")

	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigParse", err)
	}
}

func TestLoadConfigByNameInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, "book.yml"), "build:\n  workers: 2\n")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("book")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Build.Workers != 2 {
		t.Errorf("Build.Workers = %d, want 2", cfg.Build.Workers)
	}
}
