// Package config provides hierarchical configuration management for
// gitchangelog using koanf. Configuration is loaded with priority:
// environment variables > project config (.gitchangelog.yml) > user config
// (~/.config/gitchangelog/config.yml) > defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the gitchangelog CLI tool configuration.
// It is resolved once at startup and passed by value to the renderer;
// nothing mutates it afterwards.
type Configuration struct {
	// RepositoryURL is the base URL used to build commit links
	// (e.g., "https://github.com/owner/repo"). When empty, the URL is
	// auto-detected from the "origin" remote.
	// Can be set via GITCHANGELOG_REPOSITORY_URL env var.
	RepositoryURL string `koanf:"repository_url"`

	// OutputPath is the markdown file written by the generate command.
	// The file is fully overwritten on each run.
	OutputPath string `koanf:"output_path"`

	// MetadataFile is the project metadata file the current version is read
	// from. Expected to contain a top-level "version" JSON field.
	MetadataFile string `koanf:"metadata_file"`

	// DefaultVersion labels the unreleased bucket when the metadata file
	// is missing or unreadable.
	DefaultVersion string `koanf:"default_version"`

	// Title is the H1 heading of the generated document.
	Title string `koanf:"title"`

	// MaxCommits caps how many commits are read from history (0 = all).
	MaxCommits int `koanf:"max_commits"`

	// IncludeContributors toggles the per-bucket contributors section.
	IncludeContributors bool `koanf:"include_contributors"`

	// WatchDebounce is the quiet period after a repository change before
	// the watch command regenerates (duration string, e.g. "500ms").
	WatchDebounce string `koanf:"watch_debounce"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .gitchangelog.yml)
	ProjectConfigPath string
	// WarningWriter receives configuration warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses configuration warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
//
// Config paths:
//   - User config: ~/.config/gitchangelog/config.yml (XDG compliant)
//   - Project config: .gitchangelog.yml
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads the project-level YAML config if it exists.
// Supports a custom path override (for testing).
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		path = customPath
	}
	if !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading project config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("GITCHANGELOG_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.OutputPath = expandHomePath(cfg.OutputPath)
	cfg.MetadataFile = expandHomePath(cfg.MetadataFile)
	cfg.RepositoryURL = strings.TrimSuffix(cfg.RepositoryURL, "/")

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: GITCHANGELOG_OUTPUT_PATH -> output_path
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "GITCHANGELOG_"))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
