package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ariel-frischer/gitchangelog/internal/output"
)

// typeStyle defines the color and icon for a commit type.
type typeStyle struct {
	Color *color.Color
	Icon  string
}

// typeStyles maps commit types to their terminal styling. Icons double as
// the representative symbols in the console histogram.
var typeStyles = map[CommitType]typeStyle{
	TypeFeature:     {Color: color.New(color.FgGreen), Icon: "✨"},
	TypeFix:         {Color: color.New(color.FgYellow), Icon: "🐛"},
	TypePerformance: {Color: color.New(color.FgMagenta), Icon: "⚡"},
	TypeRefactor:    {Color: color.New(color.FgBlue), Icon: "♻"},
	TypeDocs:        {Color: color.New(color.FgCyan), Icon: "📝"},
	TypeStyle:       {Color: color.New(color.FgBlue), Icon: "🎨"},
	TypeTest:        {Color: color.New(color.FgGreen), Icon: "✅"},
	TypeChore:       {Color: color.New(color.FgWhite), Icon: "🔧"},
	TypeBuild:       {Color: color.New(color.FgWhite), Icon: "📦"},
	TypeCI:          {Color: color.New(color.FgWhite), Icon: "🤖"},
	TypeRevert:      {Color: color.New(color.FgRed), Icon: "⏪"},
	TypeOther:       {Color: color.New(color.Faint), Icon: "•"},
}

// Icon returns the histogram icon for a commit type.
func (t CommitType) Icon() string {
	if s, ok := typeStyles[t]; ok {
		return s.Icon
	}
	return typeStyles[TypeOther].Icon
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes a colorized preview of the document to the writer.
// Sections follow the same fixed priority order as the markdown output.
func FormatTerminal(d *Document, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, b := range d.Buckets {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatBucket(&b, w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", b.Version, err)
		}
	}

	return nil
}

// formatBucket writes one version's preview: header, then type sections.
func formatBucket(b *Bucket, w io.Writer, opts FormatOptions, width int) error {
	if err := writeBucketHeader(b, w, opts); err != nil {
		return err
	}

	grouped := b.ByType()
	for _, typ := range TypePriority() {
		commits, ok := grouped[typ]
		if !ok {
			continue
		}
		if err := writeTypeSection(typ, commits, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeBucketHeader writes the version header line.
func writeBucketHeader(b *Bucket, w io.Writer, opts FormatOptions) error {
	header := fmt.Sprintf("v%s", b.Version)
	if b.Unreleased {
		header = fmt.Sprintf("v%s (unreleased)", b.Version)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeTypeSection writes a single type section with its entries.
func writeTypeSection(typ CommitType, commits []Commit, w io.Writer, opts FormatOptions, width int) error {
	style := typeStyles[typ]

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", typ.Heading()); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", style.Icon, colored(typ.Heading())); err != nil {
			return err
		}
	}

	for _, c := range commits {
		if err := writeCommitLine(c, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeCommitLine writes a single preview entry with optional wrapping.
func writeCommitLine(c Commit, style typeStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := c.Description
	if c.Scope != "" {
		text = c.Scope + ": " + text
	}
	if c.Breaking {
		text = "[breaking] " + text
	}
	text = fmt.Sprintf("%s (%s)", text, c.ShortHash())

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")
	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// FormatHistogram writes the per-type commit count summary, one line per
// classified type in priority order, each prefixed with its icon.
// Types with zero commits are omitted.
func FormatHistogram(b *Bucket, w io.Writer, opts FormatOptions) error {
	counts := b.CountByType()

	for _, typ := range TypePriority() {
		n, ok := counts[typ]
		if !ok {
			continue
		}
		if err := writeHistogramLine(typ, n, w, opts); err != nil {
			return err
		}
	}

	return nil
}

// writeHistogramLine writes one "icon Heading  count" summary line.
func writeHistogramLine(typ CommitType, count int, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "  %-26s %d\n", typ.Heading(), count)
		return err
	}

	style := typeStyles[typ]
	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "  %s %s %d\n", style.Icon, colored(fmt.Sprintf("%-26s", typ.Heading())), count)
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	return output.GetTerminalWidth()
}

// wrapText wraps text to fit within maxWidth, using indent for continuation
// lines. Widths are measured in runes so a break inside a space-free run
// never splits a multi-byte character.
func wrapText(text string, maxWidth int, indent string) string {
	runes := []rune(text)
	if maxWidth <= 0 || len(runes) <= maxWidth {
		return text
	}

	var lines []string
	for len(runes) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if runes[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, string(runes[:breakPoint]))
		runes = runes[breakPoint:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}

	if len(runes) > 0 {
		lines = append(lines, string(runes))
	}

	return strings.Join(lines, "\n"+indent)
}
