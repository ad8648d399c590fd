package changelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/gitchangelog/internal/gitlog"
)

func TestClassifyAll(t *testing.T) {
	raw := []gitlog.Commit{
		{
			Hash:    "abc",
			Author:  "Alice",
			Subject: "fix(auth): correct token expiry",
			Body:    "",
		},
		{
			Hash:    "def",
			Author:  "Bob",
			Subject: "random commit message",
			Body:    "BREAKING CHANGE: behavior differs",
		},
	}

	commits := ClassifyAll(raw)
	require.Len(t, commits, 2)

	assert.Equal(t, TypeFix, commits[0].Type)
	assert.Equal(t, "auth", commits[0].Scope)
	assert.Equal(t, "correct token expiry", commits[0].Description)
	assert.False(t, commits[0].Breaking)

	assert.Equal(t, TypeOther, commits[1].Type)
	assert.Equal(t, "random commit message", commits[1].Description)
	assert.True(t, commits[1].Breaking)
}

// The grouper always produces exactly one unreleased bucket containing
// every commit, in order.
func TestGroup_SingleUnreleasedBucket(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	commits := []Commit{
		{Hash: "a", Type: TypeFix},
		{Hash: "b", Type: TypeFeature},
		{Hash: "c", Type: TypeOther},
	}

	buckets := Group(commits, "2.1.0", now)
	require.Len(t, buckets, 1)

	b := buckets[0]
	assert.Equal(t, "2.1.0", b.Version)
	assert.True(t, b.Unreleased)
	assert.Equal(t, now, b.Date)
	assert.Len(t, b.Commits, 3)
	assert.Equal(t, "a", b.Commits[0].Hash)
}

func TestGroup_EmptyCommitList(t *testing.T) {
	buckets := Group(nil, "1.0.0", time.Now())
	require.Len(t, buckets, 1)
	assert.Empty(t, buckets[0].Commits)
	assert.True(t, buckets[0].Unreleased)
}

func TestVersionFromMetadata(t *testing.T) {
	t.Run("valid package.json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "package.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"demo","version":"3.2.1"}`), 0o644))

		version, err := VersionFromMetadata(path)
		require.NoError(t, err)
		assert.Equal(t, "3.2.1", version)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := VersionFromMetadata(filepath.Join(t.TempDir(), "package.json"))
		assert.Error(t, err)
	})

	t.Run("no version field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "package.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"demo"}`), 0o644))

		_, err := VersionFromMetadata(path)
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "package.json")
		require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

		_, err := VersionFromMetadata(path)
		assert.Error(t, err)
	})
}

func TestBucket_CountByType(t *testing.T) {
	b := Bucket{Commits: []Commit{
		{Type: TypeFix},
		{Type: TypeFix},
		{Type: TypeFeature},
		{Type: TypeOther},
	}}

	counts := b.CountByType()
	assert.Equal(t, 2, counts[TypeFix])
	assert.Equal(t, 1, counts[TypeFeature])
	assert.Equal(t, 1, counts[TypeOther])
	assert.NotContains(t, counts, TypeDocs)
}

func TestBucket_Contributors(t *testing.T) {
	b := Bucket{Commits: []Commit{
		{Author: "Alice"},
		{Author: "Bob"},
		{Author: "Alice"},
		{Author: ""},
	}}

	assert.Equal(t, []string{"Alice", "Bob"}, b.Contributors())
}
