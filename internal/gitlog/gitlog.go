// Package gitlog provides read-only git repository access for gitchangelog:
// commit history traversal, latest-tag resolution, and remote URL detection.
// It uses the go-git library so no git CLI installation is required.
package gitlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Commit is a single history entry as read from the repository.
// Subject is the first line of the commit message; Body is the remainder
// with surrounding whitespace trimmed.
type Commit struct {
	Hash    string
	Author  string
	Email   string
	When    time.Time
	Subject string
	Body    string
}

// ShortHash returns the abbreviated commit hash used in rendered links.
func (c Commit) ShortHash() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// openRepo opens a git repository at the specified path or current working
// directory. It uses go-git's PlainOpenWithOptions with DetectDotGit enabled
// to traverse up the directory tree to find the repository root.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[gitlog] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return repo, nil
}

// RepositoryRoot returns the absolute path of the repository's worktree root.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[gitlog] RepositoryRoot: %s", root)
	return root, nil
}

// GitDir returns the repository's .git directory. Used by the watch command
// to observe HEAD and ref updates.
func GitDir(path string) (string, error) {
	root, err := RepositoryRoot(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ".git"), nil
}

// Commits returns the linear commit history starting at HEAD, newest first.
// Merge commits (more than one parent) are excluded. A max of 0 means no cap.
func Commits(path string, max int) ([]Commit, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if c.NumParents() > 1 {
			return nil
		}
		commits = append(commits, fromObject(c))
		if max > 0 && len(commits) >= max {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commits: %w", err)
	}

	logDebug("[gitlog] Commits: read %d commits", len(commits))
	return commits, nil
}

// fromObject converts a go-git commit object into a Commit, splitting the
// message into subject and body.
func fromObject(c *object.Commit) Commit {
	subject, body := splitMessage(c.Message)
	return Commit{
		Hash:    c.Hash.String(),
		Author:  c.Author.Name,
		Email:   c.Author.Email,
		When:    c.Author.When,
		Subject: subject,
		Body:    body,
	}
}

// splitMessage separates a raw commit message into its subject line and body.
func splitMessage(message string) (subject, body string) {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	subject, body, _ = strings.Cut(message, "\n")
	return strings.TrimSpace(subject), strings.TrimSpace(body)
}

// LatestTag returns the short name of the tag whose commit has the most
// recent committer time, or empty string if the repository has no tags.
// Both lightweight and annotated tags are handled.
func LatestTag(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	tagIter, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}

	var latest string
	var latestTime time.Time

	err = tagIter.ForEach(func(ref *plumbing.Reference) error {
		commit, err := resolveTagCommit(repo, ref)
		if err != nil {
			// Tags pointing at non-commit objects (trees, blobs) are skipped.
			logDebug("[gitlog] skipping tag %s: %v", ref.Name().Short(), err)
			return nil
		}
		if latest == "" || commit.Committer.When.After(latestTime) {
			latest = ref.Name().Short()
			latestTime = commit.Committer.When
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("iterating tags: %w", err)
	}

	logDebug("[gitlog] LatestTag: %q", latest)
	return latest, nil
}

// resolveTagCommit dereferences a tag ref to its target commit.
// Annotated tags require an extra hop through the tag object.
func resolveTagCommit(repo *git.Repository, ref *plumbing.Reference) (*object.Commit, error) {
	if tag, err := repo.TagObject(ref.Hash()); err == nil {
		return tag.Commit()
	}
	return repo.CommitObject(ref.Hash())
}
