package changelog

import "time"

// CommitType is the classified category of a commit.
type CommitType string

// The fixed type set. Every commit resolves to exactly one of these;
// TypeOther is the catch-all when neither the conventional prefix nor the
// keyword fallback matches.
const (
	TypeFeature     CommitType = "feature"
	TypeFix         CommitType = "fix"
	TypeDocs        CommitType = "docs"
	TypeStyle       CommitType = "style"
	TypeRefactor    CommitType = "refactor"
	TypePerformance CommitType = "performance"
	TypeTest        CommitType = "test"
	TypeChore       CommitType = "chore"
	TypeCI          CommitType = "ci"
	TypeBuild       CommitType = "build"
	TypeRevert      CommitType = "revert"
	TypeOther       CommitType = "other"
)

// TypePriority returns every commit type in its fixed rendering order.
// Sections appear in this order regardless of the order types first appear
// in the raw commit list; "other" is always last.
func TypePriority() []CommitType {
	return []CommitType{
		TypeFeature,
		TypeFix,
		TypePerformance,
		TypeRefactor,
		TypeDocs,
		TypeStyle,
		TypeTest,
		TypeChore,
		TypeBuild,
		TypeCI,
		TypeRevert,
		TypeOther,
	}
}

// sectionHeadings maps commit types to their markdown section headings.
var sectionHeadings = map[CommitType]string{
	TypeFeature:     "Features",
	TypeFix:         "Bug Fixes",
	TypePerformance: "Performance Improvements",
	TypeRefactor:    "Code Refactoring",
	TypeDocs:        "Documentation",
	TypeStyle:       "Styles",
	TypeTest:        "Tests",
	TypeChore:       "Chores",
	TypeBuild:       "Build System",
	TypeCI:          "Continuous Integration",
	TypeRevert:      "Reverts",
	TypeOther:       "Other Changes",
}

// Heading returns the markdown section heading for a commit type.
func (t CommitType) Heading() string {
	if h, ok := sectionHeadings[t]; ok {
		return h
	}
	return sectionHeadings[TypeOther]
}

// Commit is a classified history entry. It is constructed once per run from
// the log snapshot at invocation time and never mutated afterwards.
type Commit struct {
	Hash    string
	Author  string
	When    time.Time
	Subject string // raw subject line as committed
	Body    string

	Type     CommitType
	Scope    string // parenthesized label from the conventional prefix, if any
	Breaking bool
	// Description is the subject with any conventional-commit prefix
	// stripped. Rendered output always uses this, never Subject.
	Description string
}

// ShortHash returns the abbreviated hash used in rendered commit links.
func (c Commit) ShortHash() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// Bucket is a version grouping: a label plus an ordered collection of
// commits. The generator always produces exactly one bucket containing
// every commit, marked unreleased.
type Bucket struct {
	Version    string
	Unreleased bool
	Date       time.Time
	Commits    []Commit
}

// ByType groups the bucket's commits by their classified type,
// preserving commit order within each group.
func (b Bucket) ByType() map[CommitType][]Commit {
	grouped := make(map[CommitType][]Commit)
	for _, c := range b.Commits {
		grouped[c.Type] = append(grouped[c.Type], c)
	}
	return grouped
}

// Breaking returns the commits flagged as breaking changes, in order.
func (b Bucket) Breaking() []Commit {
	var breaking []Commit
	for _, c := range b.Commits {
		if c.Breaking {
			breaking = append(breaking, c)
		}
	}
	return breaking
}

// Contributors returns each distinct author name once, in first-seen order.
func (b Bucket) Contributors() []string {
	seen := make(map[string]bool)
	var authors []string
	for _, c := range b.Commits {
		if c.Author == "" || seen[c.Author] {
			continue
		}
		seen[c.Author] = true
		authors = append(authors, c.Author)
	}
	return authors
}

// CountByType returns the number of commits per classified type.
// Used for the console summary histogram.
func (b Bucket) CountByType() map[CommitType]int {
	counts := make(map[CommitType]int)
	for _, c := range b.Commits {
		counts[c.Type]++
	}
	return counts
}
