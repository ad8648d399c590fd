package changelog

import (
	"fmt"
	"io"
	"strings"
)

// Document is everything the markdown renderer needs. It carries the
// immutable configuration values (title, repository URL) explicitly so the
// renderer has no ambient global state.
type Document struct {
	Title               string
	RepositoryURL       string // commit link base; empty disables links
	IncludeContributors bool
	Buckets             []Bucket
}

// RenderMarkdown generates the changelog markdown document.
//
// The output is fully deterministic given identical input: only the
// unreleased date stamp and the footer generation date depend on the clock,
// and both come from Bucket.Date rather than a direct time.Now call.
func RenderMarkdown(d *Document, w io.Writer) error {
	if err := renderPreamble(d, w); err != nil {
		return fmt.Errorf("rendering preamble: %w", err)
	}

	for _, b := range d.Buckets {
		if err := renderBucket(d, &b, w); err != nil {
			return fmt.Errorf("rendering version %s: %w", b.Version, err)
		}
	}

	if err := renderFooter(d, w); err != nil {
		return fmt.Errorf("rendering footer: %w", err)
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(d *Document) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(d, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderPreamble writes the fixed document header.
func renderPreamble(d *Document, w io.Writer) error {
	title := d.Title
	if title == "" {
		title = "Changelog"
	}
	preamble := `# ` + title + `

All notable changes to this project are documented in this file.

Entries are generated from commit history and grouped by
[Conventional Commits](https://www.conventionalcommits.org/en/v1.0.0/) type.
`
	_, err := io.WriteString(w, preamble)
	return err
}

// renderBucket writes a single version section: heading, breaking changes,
// type sections in fixed priority order, and the contributors list.
// The sections partition the bucket: a commit flagged as breaking appears in
// the callout only, never again under its type.
func renderBucket(d *Document, b *Bucket, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", bucketHeading(b)); err != nil {
		return err
	}

	if err := renderBreaking(d, b, w); err != nil {
		return err
	}

	grouped := make(map[CommitType][]Commit)
	for _, c := range b.Commits {
		if c.Breaking {
			continue
		}
		grouped[c.Type] = append(grouped[c.Type], c)
	}
	for _, typ := range TypePriority() {
		commits, ok := grouped[typ]
		if !ok {
			continue
		}
		if err := renderSection(d, typ.Heading(), commits, w); err != nil {
			return err
		}
	}

	if d.IncludeContributors {
		if err := renderContributors(b, w); err != nil {
			return err
		}
	}

	return nil
}

// bucketHeading formats the version heading line. Unreleased buckets carry
// the generation date stamp alongside the marker.
func bucketHeading(b *Bucket) string {
	if b.Unreleased {
		return fmt.Sprintf("## [%s] - Unreleased (%s)", b.Version, b.Date.Format("2006-01-02"))
	}
	return fmt.Sprintf("## [%s] - %s", b.Version, b.Date.Format("2006-01-02"))
}

// renderBreaking writes the breaking-changes callout section, emitted before
// any type section when at least one commit is flagged.
func renderBreaking(d *Document, b *Bucket, w io.Writer) error {
	breaking := b.Breaking()
	if len(breaking) == 0 {
		return nil
	}
	return renderSection(d, "⚠ BREAKING CHANGES", breaking, w)
}

// renderSection writes one "### Heading" section with its commit lines.
func renderSection(d *Document, heading string, commits []Commit, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\n### %s\n\n", heading); err != nil {
		return err
	}
	for _, c := range commits {
		if _, err := fmt.Fprintf(w, "- %s\n", formatCommitLine(d, c)); err != nil {
			return err
		}
	}
	return nil
}

// formatCommitLine formats a single entry: optional bold scope prefix, the
// prefix-stripped description, and the linked short hash.
func formatCommitLine(d *Document, c Commit) string {
	var sb strings.Builder
	if c.Scope != "" {
		sb.WriteString("**")
		sb.WriteString(c.Scope)
		sb.WriteString("**: ")
	}
	sb.WriteString(c.Description)
	sb.WriteString(" (")
	sb.WriteString(formatHashRef(d.RepositoryURL, c))
	sb.WriteString(")")
	return sb.String()
}

// formatHashRef links the short hash to the commit URL when a repository
// base URL is known; otherwise it falls back to a bare code span.
func formatHashRef(repoURL string, c Commit) string {
	if repoURL == "" {
		return fmt.Sprintf("`%s`", c.ShortHash())
	}
	return fmt.Sprintf("[`%s`](%s/commit/%s)", c.ShortHash(), repoURL, c.Hash)
}

// renderContributors writes the distinct author list in first-seen order.
func renderContributors(b *Bucket, w io.Writer) error {
	contributors := b.Contributors()
	if len(contributors) == 0 {
		return nil
	}

	if _, err := io.WriteString(w, "\n### Contributors\n\n"); err != nil {
		return err
	}
	for _, name := range contributors {
		if _, err := fmt.Fprintf(w, "- %s\n", name); err != nil {
			return err
		}
	}
	return nil
}

// renderFooter records the generation date. This is the one element of the
// document (besides the unreleased date stamp) that varies between runs
// against an unchanged repository.
func renderFooter(d *Document, w io.Writer) error {
	date := ""
	if len(d.Buckets) > 0 {
		date = d.Buckets[0].Date.Format("2006-01-02")
	}
	_, err := fmt.Fprintf(w, "\n---\n\n_Generated on %s._\n", date)
	return err
}
