package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/gitchangelog/internal/changelog"
	"github.com/ariel-frischer/gitchangelog/internal/config"
	"github.com/ariel-frischer/gitchangelog/internal/errors"
	"github.com/ariel-frischer/gitchangelog/internal/gitlog"
	"github.com/ariel-frischer/gitchangelog/internal/output"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the changelog whenever HEAD moves",
	Long: `Watch the repository and regenerate the changelog whenever the commit
history changes (new commits, checkouts, ref updates). Change bursts are
debounced by the watch_debounce config value before regenerating.

Runs until interrupted with Ctrl+C.`,
	Args:         noArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gitDir, err := gitlog.GitDir("")
	if err != nil {
		return errors.WrapWithMessage(err, errors.Repository, "locating repository",
			"Run gitchangelog inside a git repository")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "creating fsnotify watcher")
	}
	defer watcher.Close()

	// HEAD and packed-refs change on checkout and gc; refs/heads entries
	// change on commit. Watching both directories covers all three.
	if err := watcher.Add(gitDir); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "watching "+gitDir)
	}
	headsDir := filepath.Join(gitDir, "refs", "heads")
	if _, statErr := os.Stat(headsDir); statErr == nil {
		if err := watcher.Add(headsDir); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "watching "+headsDir)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initial generation before waiting for changes.
	if err := regenerate(ctx, cfg, cmd); err != nil {
		return err
	}
	output.PrintStep(cmd.ErrOrStderr(), fmt.Sprintf("Watching %s (Ctrl+C to stop)", gitDir))

	return watchLoop(ctx, cfg, cmd, watcher)
}

// watchLoop debounces repository events and regenerates after each quiet
// period. Write failures stay fatal, matching the generate command.
func watchLoop(ctx context.Context, cfg *config.Configuration, cmd *cobra.Command, watcher *fsnotify.Watcher) error {
	debounce := cfg.DebounceDuration()
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantGitEvent(event) {
				continue
			}
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(debounce)
			pending = true
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			output.PrintWarning(cmd.ErrOrStderr(), "watch error: %v", err)
		case <-timer.C:
			pending = false
			if err := regenerate(ctx, cfg, cmd); err != nil {
				return err
			}
		}
	}
}

// relevantGitEvent filters out events that cannot indicate a history
// change, such as lock-file churn from concurrent git commands.
func relevantGitEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if filepath.Ext(name) == ".lock" {
		return false
	}
	switch name {
	case "HEAD", "packed-refs", "ORIG_HEAD":
		return true
	}
	// Anything under refs/heads is a branch tip update.
	return filepath.Base(filepath.Dir(event.Name)) == "heads"
}

// regenerate runs one full generation pass and writes the output file.
func regenerate(ctx context.Context, cfg *config.Configuration, cmd *cobra.Command) error {
	result := buildDocument(ctx, cfg, cmd.ErrOrStderr())

	content, err := changelog.RenderMarkdownString(result.doc)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "rendering changelog")
	}

	if err := os.WriteFile(cfg.OutputPath, []byte(content), 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "writing changelog",
			"Check that the output directory exists and is writable")
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Regenerated %s (%d commits)", cfg.OutputPath, len(result.bucket.Commits)))
	return nil
}
