// Package output provides terminal output formatting utilities for the
// gitchangelog CLI. This package is designed to have minimal dependencies
// to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsTerminal reports whether stdout is attached to a terminal.
// Spinner and color output are suppressed when it is not.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintSuccess prints a green checkmark followed by the message.
// Used for completed artifacts (e.g., the written changelog path).
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintWarning prints a yellow warning line to the given writer.
// Warnings are non-fatal; generation continues with fallback values.
func PrintWarning(out io.Writer, format string, args ...any) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("⚠"), fmt.Sprintf(format, args...))
}

// PrintStep prints a dim progress line (e.g., "Reading commit history...").
func PrintStep(out io.Writer, message string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s\n", dim(message))
}

// PrintKeyValue prints an aligned "key: value" line with a bold key.
// Used for the generation summary (latest tag, output path, commit count).
func PrintKeyValue(out io.Writer, key, value string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(out, "  %s %s\n", bold(key+":"), value)
}
