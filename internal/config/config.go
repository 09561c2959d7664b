// Package config loads CLI configuration files for book2pdf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-book2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds all configuration for book conversion.
type Config struct {
	Pandoc PandocConfig `yaml:"pandoc"`
	Book   BookConfig   `yaml:"book"`
	Output OutputConfig `yaml:"output"`
	Build  BuildConfig  `yaml:"build"`
}

// PandocConfig locates the external renderer.
type PandocConfig struct {
	Path string `yaml:"path"` // pandoc executable (empty = $PATH lookup)
}

// BookConfig overrides the book tree layout.
type BookConfig struct {
	RootFile  string `yaml:"rootFile"`  // root document, relative to the book dir
	AssetsDir string `yaml:"assetsDir"` // image assets, relative to the book dir
}

// OutputConfig defines output destinations.
type OutputConfig struct {
	PDF      string `yaml:"pdf"`
	EPUB     string `yaml:"epub"`
	Combined string `yaml:"combined"` // combined markdown artifact
}

// BuildConfig tunes the combination pipeline.
type BuildConfig struct {
	Workers       int      `yaml:"workers"`       // 0 = automatic
	VersionSuffix string   `yaml:"versionSuffix"` // spliced into the title's version fragment
	Chapters      []string `yaml:"chapters"`      // restrict inclusion to these stems
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			PDF:      "The-Swift-Programming-Language.pdf",
			EPUB:     "The-Swift-Programming-Language.epub",
			Combined: "book-combined.md",
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found (no silent
// fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard
// locations: current directory first, then the user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "book2pdf", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists reports whether path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
