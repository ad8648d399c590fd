package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ValidateConfigValues checks that resolved configuration values are usable
// before generation starts. Validation failures abort early with a clear
// message rather than surfacing as confusing downstream errors.
func ValidateConfigValues(cfg *Configuration) error {
	if cfg.OutputPath == "" {
		return fmt.Errorf("output_path cannot be empty")
	}

	if cfg.DefaultVersion == "" {
		return fmt.Errorf("default_version cannot be empty")
	}

	if cfg.MaxCommits < 0 {
		return fmt.Errorf("max_commits must be >= 0, got %d", cfg.MaxCommits)
	}

	if cfg.RepositoryURL != "" {
		if err := validateRepositoryURL(cfg.RepositoryURL); err != nil {
			return err
		}
	}

	if cfg.WatchDebounce != "" {
		if _, err := time.ParseDuration(cfg.WatchDebounce); err != nil {
			return fmt.Errorf("watch_debounce %q is not a valid duration (e.g., '500ms', '2s')", cfg.WatchDebounce)
		}
	}

	return nil
}

// validateRepositoryURL accepts only absolute http(s) URLs since the value
// is interpolated into markdown commit links.
func validateRepositoryURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("repository_url %q is not a valid URL: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("repository_url %q must use http or https (got %q)", raw, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("repository_url %q is missing a host", raw)
	}
	return nil
}

// DebounceDuration returns the parsed watch debounce, falling back to 500ms.
// Load validates the string, so the fallback only applies to zero values
// constructed in tests.
func (c *Configuration) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.WatchDebounce))
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}
