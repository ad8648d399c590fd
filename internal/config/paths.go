package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/gitchangelog/config.yml
// - macOS: ~/Library/Application Support/gitchangelog/config.yml
// - Windows: %APPDATA%\gitchangelog\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "gitchangelog", "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "gitchangelog"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .gitchangelog.yml relative to the current directory.
func ProjectConfigPath() string {
	return ".gitchangelog.yml"
}
