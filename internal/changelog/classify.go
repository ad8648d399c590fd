package changelog

import (
	"regexp"
	"strings"
)

// conventionalPattern matches a leading "word(optional-scope): " prefix.
// The bang before the colon is the breaking-change suffix convention.
var conventionalPattern = regexp.MustCompile(`^(\w+)(?:\(([^)]*)\))?(!)?:\s*(.*)$`)

// prefixTypes maps conventional-commit prefix words to commit types.
// Both the short forms used by the convention (feat, perf) and the full
// type names are accepted.
var prefixTypes = map[string]CommitType{
	"feat":        TypeFeature,
	"feature":     TypeFeature,
	"fix":         TypeFix,
	"docs":        TypeDocs,
	"style":       TypeStyle,
	"refactor":    TypeRefactor,
	"perf":        TypePerformance,
	"performance": TypePerformance,
	"test":        TypeTest,
	"chore":       TypeChore,
	"ci":          TypeCI,
	"build":       TypeBuild,
	"revert":      TypeRevert,
}

// keywordRule is one step of the keyword fallback. Rules are checked in
// order; the first keyword contained in the lowercased subject wins.
type keywordRule struct {
	keywords []string
	typ      CommitType
}

// keywordRules is the fallback precedence for subjects without a valid
// conventional prefix. The order is deliberate and load-bearing: a subject
// containing both "fix" and "update" always resolves to fix. This is a
// crude precedence rule, not a bug.
var keywordRules = []keywordRule{
	{[]string{"fix", "bug"}, TypeFix},
	{[]string{"add", "new"}, TypeFeature},
	{[]string{"update", "upgrade"}, TypeChore},
	{[]string{"doc"}, TypeDocs},
	{[]string{"style", "css"}, TypeStyle},
	{[]string{"test"}, TypeTest},
	{[]string{"refactor"}, TypeRefactor},
	{[]string{"perf"}, TypePerformance},
}

// Classification is the {type, scope, breaking} triple derived from a
// commit's subject and body, plus the prefix-stripped description.
type Classification struct {
	Type        CommitType
	Scope       string
	Breaking    bool
	Description string
}

// Classify maps a free-text subject/body pair to a Classification.
// It is a total function: every input produces some classification, worst
// case TypeOther with no scope.
//
// Resolution order:
//  1. A leading "word(scope): " prefix whose word is in the fixed type set.
//  2. Keyword containment in the lowercased subject, in fallback priority.
//  3. TypeOther.
func Classify(subject, body string) Classification {
	cl := Classification{
		Type:        TypeOther,
		Description: strings.TrimSpace(subject),
		Breaking:    isBreaking(subject, body),
	}

	if m := conventionalPattern.FindStringSubmatch(subject); m != nil {
		if typ, ok := prefixTypes[strings.ToLower(m[1])]; ok {
			cl.Type = typ
			cl.Scope = m[2]
			cl.Description = strings.TrimSpace(m[4])
			return cl
		}
	}

	lower := strings.ToLower(subject)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				cl.Type = rule.typ
				return cl
			}
		}
	}

	return cl
}

// isBreaking reports whether a commit is marked as a breaking change:
// the literal "BREAKING CHANGE" marker in subject or body, or the "!:"
// suffix convention in the subject.
func isBreaking(subject, body string) bool {
	return strings.Contains(subject, "BREAKING CHANGE") ||
		strings.Contains(body, "BREAKING CHANGE") ||
		strings.Contains(subject, "!:")
}
