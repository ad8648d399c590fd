package gitlog

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates an empty repository in a temp directory.
func initRepo(t *testing.T) (*git.Repository, *git.Worktree, string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	return repo, worktree, dir
}

// addCommit writes a file and commits it with the given message and time.
func addCommit(t *testing.T, worktree *git.Worktree, dir, message string, when time.Time) plumbing.Hash {
	t.Helper()

	name := fmt.Sprintf("file-%d.txt", when.UnixNano())
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(message), 0o644))
	_, err := worktree.Add(name)
	require.NoError(t, err)

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@test.com",
			When:  when,
		},
	})
	require.NoError(t, err)
	return hash
}

func TestCommits_NewestFirst(t *testing.T) {
	_, worktree, dir := initRepo(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	addCommit(t, worktree, dir, "feat: first", base)
	addCommit(t, worktree, dir, "fix: second", base.Add(time.Hour))
	addCommit(t, worktree, dir, "docs: third", base.Add(2*time.Hour))

	commits, err := Commits(dir, 0)
	require.NoError(t, err)
	require.Len(t, commits, 3)

	assert.Equal(t, "docs: third", commits[0].Subject)
	assert.Equal(t, "fix: second", commits[1].Subject)
	assert.Equal(t, "feat: first", commits[2].Subject)
	assert.Equal(t, "Test Author", commits[0].Author)
	assert.Equal(t, "test@test.com", commits[0].Email)
}

func TestCommits_SubjectBodySplit(t *testing.T) {
	_, worktree, dir := initRepo(t)

	message := "feat(api): new pagination\n\nBREAKING CHANGE: page tokens replace offsets\n"
	addCommit(t, worktree, dir, message, time.Now())

	commits, err := Commits(dir, 0)
	require.NoError(t, err)
	require.Len(t, commits, 1)

	assert.Equal(t, "feat(api): new pagination", commits[0].Subject)
	assert.Equal(t, "BREAKING CHANGE: page tokens replace offsets", commits[0].Body)
}

func TestCommits_ExcludesMerges(t *testing.T) {
	repo, worktree, dir := initRepo(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	first := addCommit(t, worktree, dir, "feat: first", base)
	second := addCommit(t, worktree, dir, "fix: second", base.Add(time.Hour))

	// Craft a two-parent commit to stand in for a branch merge.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "merged.txt"), []byte("merged"), 0o644))
	_, err := worktree.Add("merged.txt")
	require.NoError(t, err)
	_, err = worktree.Commit("Merge branch 'feature'", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@test.com",
			When:  base.Add(2 * time.Hour),
		},
		Parents: []plumbing.Hash{second, first},
	})
	require.NoError(t, err)
	_ = repo

	commits, err := Commits(dir, 0)
	require.NoError(t, err)

	subjects := make([]string, len(commits))
	for i, c := range commits {
		subjects[i] = c.Subject
	}
	assert.NotContains(t, subjects, "Merge branch 'feature'")
	assert.Contains(t, subjects, "feat: first")
	assert.Contains(t, subjects, "fix: second")
}

func TestCommits_MaxCap(t *testing.T) {
	_, worktree, dir := initRepo(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		addCommit(t, worktree, dir, fmt.Sprintf("chore: commit %d", i), base.Add(time.Duration(i)*time.Hour))
	}

	commits, err := Commits(dir, 2)
	require.NoError(t, err)
	assert.Len(t, commits, 2)
	assert.Equal(t, "chore: commit 4", commits[0].Subject)
}

func TestCommits_EmptyRepository(t *testing.T) {
	_, _, dir := initRepo(t)

	_, err := Commits(dir, 0)
	assert.Error(t, err)
}

func TestCommits_NotARepository(t *testing.T) {
	_, err := Commits(t.TempDir(), 0)
	assert.Error(t, err)
}

func TestLatestTag(t *testing.T) {
	repo, worktree, dir := initRepo(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	older := addCommit(t, worktree, dir, "feat: first", base)
	newer := addCommit(t, worktree, dir, "fix: second", base.Add(time.Hour))

	_, err := repo.CreateTag("v0.1.0", older, nil)
	require.NoError(t, err)
	_, err = repo.CreateTag("v0.2.0", newer, &git.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  "Test Author",
			Email: "test@test.com",
			When:  base.Add(time.Hour),
		},
		Message: "release v0.2.0",
	})
	require.NoError(t, err)

	tag, err := LatestTag(dir)
	require.NoError(t, err)
	assert.Equal(t, "v0.2.0", tag)
}

func TestLatestTag_NoTags(t *testing.T) {
	_, worktree, dir := initRepo(t)
	addCommit(t, worktree, dir, "feat: first", time.Now())

	tag, err := LatestTag(dir)
	require.NoError(t, err)
	assert.Empty(t, tag)
}

func TestShortHash(t *testing.T) {
	c := Commit{Hash: "abcdef1234567890"}
	assert.Equal(t, "abcdef1", c.ShortHash())

	c = Commit{Hash: "abc"}
	assert.Equal(t, "abc", c.ShortHash())
}

func TestSplitMessage(t *testing.T) {
	tests := map[string]struct {
		message     string
		wantSubject string
		wantBody    string
	}{
		"subject only": {
			message:     "fix: thing\n",
			wantSubject: "fix: thing",
		},
		"subject and body": {
			message:     "fix: thing\n\nlonger explanation\nover two lines\n",
			wantSubject: "fix: thing",
			wantBody:    "longer explanation\nover two lines",
		},
		"windows line endings": {
			message:     "fix: thing\r\n\r\nbody\r\n",
			wantSubject: "fix: thing",
			wantBody:    "body",
		},
		"empty message": {
			message: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			subject, body := splitMessage(tt.message)
			assert.Equal(t, tt.wantSubject, subject)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestGitDir(t *testing.T) {
	_, worktree, dir := initRepo(t)
	addCommit(t, worktree, dir, "feat: first", time.Now())

	gitDir, err := GitDir(dir)
	require.NoError(t, err)
	assert.Equal(t, ".git", filepath.Base(gitDir))
	assert.DirExists(t, gitDir)
}
