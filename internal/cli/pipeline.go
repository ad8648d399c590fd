package cli

import (
	"context"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ariel-frischer/gitchangelog/internal/changelog"
	"github.com/ariel-frischer/gitchangelog/internal/config"
	"github.com/ariel-frischer/gitchangelog/internal/errors"
	"github.com/ariel-frischer/gitchangelog/internal/gitlog"
	"github.com/ariel-frischer/gitchangelog/internal/output"
)

// buildResult is the outcome of one classification pass over the repository.
type buildResult struct {
	doc       *changelog.Document
	bucket    changelog.Bucket
	latestTag string
}

// loadConfig resolves the layered configuration, honoring the --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configPathFlag)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration",
			"Check .gitchangelog.yml for syntax errors",
			"Run 'gitchangelog config init' to write a fresh template")
	}
	return cfg, nil
}

// buildDocument runs the fetch and classify stages: commit history, latest
// tag, and remote URL are independent repository reads, so they run
// concurrently under an errgroup.
//
// Failures degrade rather than abort: an unreadable history produces an
// empty document with a warning, a missing metadata version falls back to
// the configured default, and tag/remote lookups fail silently to empty
// values. Only the final output write (in the callers) is fatal.
func buildDocument(ctx context.Context, cfg *config.Configuration, warnW io.Writer) *buildResult {
	var (
		raw       []gitlog.Commit
		queryErr  error
		latestTag string
		remoteURL string
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, queryErr = gitlog.Commits("", cfg.MaxCommits)
		return nil
	})
	g.Go(func() error {
		latestTag, _ = gitlog.LatestTag("")
		return nil
	})
	if cfg.RepositoryURL == "" {
		g.Go(func() error {
			remoteURL, _ = gitlog.RemoteURL("")
			return nil
		})
	}
	// Goroutines report through the captured vars, never the group error.
	_ = g.Wait()

	if queryErr != nil {
		output.PrintWarning(warnW, "reading commit history failed: %v (generating empty changelog)", queryErr)
		raw = nil
	}

	version := cfg.DefaultVersion
	if v, err := changelog.VersionFromMetadata(cfg.MetadataFile); err != nil {
		output.PrintWarning(warnW, "%v (falling back to version %s)", err, cfg.DefaultVersion)
	} else {
		version = v
	}

	repoURL := cfg.RepositoryURL
	if repoURL == "" {
		repoURL = remoteURL
	}

	commits := changelog.ClassifyAll(raw)
	buckets := changelog.Group(commits, version, time.Now())

	doc := &changelog.Document{
		Title:               cfg.Title,
		RepositoryURL:       repoURL,
		IncludeContributors: cfg.IncludeContributors,
		Buckets:             buckets,
	}

	return &buildResult{
		doc:       doc,
		bucket:    buckets[0],
		latestTag: latestTag,
	}
}
