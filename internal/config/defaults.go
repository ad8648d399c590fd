package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# gitchangelog Configuration
# Values here override user config; environment variables (GITCHANGELOG_*)
# override everything.

# Repository settings
repository_url: ""                    # Commit link base (empty = detect from origin remote)
metadata_file: package.json           # File the current version is read from
default_version: 1.0.0                # Fallback when metadata is unreadable

# Output settings
output_path: CHANGELOG.md             # Generated markdown file (fully overwritten)
title: Changelog                      # H1 heading of the document
include_contributors: true            # Per-version contributors section

# History settings
max_commits: 0                        # Cap on commits read from history (0 = all)

# Watch settings
watch_debounce: 500ms                 # Quiet period before regenerating on change
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		// repository_url: Base URL for commit links. Left empty so the
		// origin remote is consulted at generation time.
		"repository_url": "",
		// output_path: The generated document. Overwritten wholesale on
		// each run; there is no incremental merging with prior content.
		"output_path": "CHANGELOG.md",
		// metadata_file: Where the unreleased bucket's version label comes
		// from. A top-level "version" field is expected.
		"metadata_file":   "package.json",
		"default_version": "1.0.0",
		"title":           "Changelog",
		// include_contributors: distinct author names in first-seen order.
		"include_contributors": true,
		"max_commits":          0,
		"watch_debounce":       "500ms",
	}
}
