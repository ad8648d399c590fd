package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/gitchangelog/internal/config"
)

func TestRelevantGitEvent(t *testing.T) {
	tests := map[string]struct {
		event fsnotify.Event
		want  bool
	}{
		"HEAD write": {
			event: fsnotify.Event{Name: "/repo/.git/HEAD", Op: fsnotify.Write},
			want:  true,
		},
		"packed-refs create": {
			event: fsnotify.Event{Name: "/repo/.git/packed-refs", Op: fsnotify.Create},
			want:  true,
		},
		"ORIG_HEAD rename": {
			event: fsnotify.Event{Name: "/repo/.git/ORIG_HEAD", Op: fsnotify.Rename},
			want:  true,
		},
		"branch tip update": {
			event: fsnotify.Event{Name: "/repo/.git/refs/heads/main", Op: fsnotify.Write},
			want:  true,
		},
		"index lock churn": {
			event: fsnotify.Event{Name: "/repo/.git/index.lock", Op: fsnotify.Create},
			want:  false,
		},
		"HEAD lock churn": {
			event: fsnotify.Event{Name: "/repo/.git/HEAD.lock", Op: fsnotify.Create},
			want:  false,
		},
		"HEAD chmod": {
			event: fsnotify.Event{Name: "/repo/.git/HEAD", Op: fsnotify.Chmod},
			want:  false,
		},
		"unrelated git file": {
			event: fsnotify.Event{Name: "/repo/.git/config", Op: fsnotify.Write},
			want:  false,
		},
		"FETCH_HEAD write": {
			event: fsnotify.Event{Name: "/repo/.git/FETCH_HEAD", Op: fsnotify.Write},
			want:  false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevantGitEvent(tt.event))
		})
	}
}

// A burst of repository events inside one debounce window must coalesce
// into a single regeneration.
func TestWatchLoop_DebounceCoalescesBursts(t *testing.T) {
	dir := setupRepo(t, "feat: add thing", "fix: correct thing")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"),
		[]byte(`{"version":"1.0.0"}`), 0o644))

	cfg := &config.Configuration{
		OutputPath:          "watch-out.md",
		MetadataFile:        "package.json",
		DefaultVersion:      "1.0.0",
		Title:               "Changelog",
		IncludeContributors: true,
		WatchDebounce:       "100ms",
	}

	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	// Hand-built watcher: watchLoop only reads the channels, so no
	// filesystem registration is needed.
	watcher := &fsnotify.Watcher{
		Events: make(chan fsnotify.Event),
		Errors: make(chan error),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchLoop(ctx, cfg, cmd, watcher) }()

	head := filepath.Join(dir, ".git", "HEAD")
	for i := 0; i < 3; i++ {
		watcher.Events <- fsnotify.Event{Name: head, Op: fsnotify.Write}
		time.Sleep(10 * time.Millisecond)
	}
	// Lock churn in the same window must not extend the quiet period.
	watcher.Events <- fsnotify.Event{Name: head + ".lock", Op: fsnotify.Create}

	// Wait out the debounce plus slack for the regeneration itself.
	time.Sleep(600 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, 1, strings.Count(stdout.String(), "Regenerated"))
	assert.FileExists(t, filepath.Join(dir, "watch-out.md"))

	content, err := os.ReadFile(filepath.Join(dir, "watch-out.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "## [1.0.0] - Unreleased")
}
