package changelog

import (
	"time"

	"github.com/ariel-frischer/gitchangelog/internal/gitlog"
)

// ClassifyAll converts raw log entries into classified commits,
// preserving their order.
func ClassifyAll(raw []gitlog.Commit) []Commit {
	commits := make([]Commit, 0, len(raw))
	for _, r := range raw {
		cl := Classify(r.Subject, r.Body)
		commits = append(commits, Commit{
			Hash:        r.Hash,
			Author:      r.Author,
			When:        r.When,
			Subject:     r.Subject,
			Body:        r.Body,
			Type:        cl.Type,
			Scope:       cl.Scope,
			Breaking:    cl.Breaking,
			Description: cl.Description,
		})
	}
	return commits
}

// Group partitions classified commits into version buckets for rendering.
//
// The partitioning is intentionally trivial: one bucket labelled with the
// project's current version, marked unreleased, containing every commit
// unfiltered. Tag-based partitioning of history into released versions is
// not performed; the latest tag is only surfaced in the console summary.
func Group(commits []Commit, version string, now time.Time) []Bucket {
	return []Bucket{
		{
			Version:    version,
			Unreleased: true,
			Date:       now,
			Commits:    commits,
		},
	}
}
