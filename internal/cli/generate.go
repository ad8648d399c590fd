package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/gitchangelog/internal/changelog"
	"github.com/ariel-frischer/gitchangelog/internal/config"
	"github.com/ariel-frischer/gitchangelog/internal/errors"
	"github.com/ariel-frischer/gitchangelog/internal/output"
)

var (
	generateOutputFlag  string
	generateRepoURLFlag string
	generatePlainFlag   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate CHANGELOG.md from commit history",
	Long: `Generate the markdown changelog from the repository's commit history.

Commits are classified by conventional-commit type (with a keyword fallback
for free-form subjects), grouped into a single unreleased bucket labelled
with the project's metadata version, and rendered in a fixed section order.
The output file is fully overwritten on each run.

Examples:
  gitchangelog generate                   # Write CHANGELOG.md
  gitchangelog generate -o docs/CHANGES.md
  gitchangelog generate --repo-url https://github.com/owner/repo`,
	Args:         noArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOutputFlag, "output", "o", "", "Output path (default: output_path config)")
	generateCmd.Flags().StringVar(&generateRepoURLFlag, "repo-url", "", "Commit link base URL (default: origin remote)")
	generateCmd.Flags().BoolVar(&generatePlainFlag, "plain", false, "Plain summary output (no colors/icons)")
}

func runGenerate(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGenerateFlags(cfg)

	result := buildWithSpinner(cmd, cfg)

	content, err := changelog.RenderMarkdownString(result.doc)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "rendering changelog")
	}

	if err := os.WriteFile(cfg.OutputPath, []byte(content), 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "writing changelog",
			"Check that the output directory exists and is writable",
			fmt.Sprintf("Output path: %s", cfg.OutputPath))
	}

	printGenerateSummary(cmd.OutOrStdout(), cfg, result)
	return nil
}

// applyGenerateFlags layers command-line overrides on top of the resolved
// configuration. Flags beat env vars and config files.
func applyGenerateFlags(cfg *config.Configuration) {
	if generateOutputFlag != "" {
		cfg.OutputPath = generateOutputFlag
	}
	if generateRepoURLFlag != "" {
		cfg.RepositoryURL = generateRepoURLFlag
	}
}

// buildWithSpinner runs the fetch/classify pass with a progress spinner
// when attached to a terminal.
func buildWithSpinner(cmd *cobra.Command, cfg *config.Configuration) *buildResult {
	if generatePlainFlag || !output.IsTerminal() {
		output.PrintStep(cmd.ErrOrStderr(), "Reading commit history...")
		return buildDocument(cmd.Context(), cfg, cmd.ErrOrStderr())
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Reading commit history..."
	s.Start()
	result := buildDocument(cmd.Context(), cfg, cmd.ErrOrStderr())
	s.Stop()
	return result
}

// printGenerateSummary writes the per-type histogram and generation facts.
func printGenerateSummary(w io.Writer, cfg *config.Configuration, result *buildResult) {
	opts := changelog.FormatOptions{Plain: generatePlainFlag}

	fmt.Fprintf(w, "\nClassified %d commits:\n", len(result.bucket.Commits))
	_ = changelog.FormatHistogram(&result.bucket, w, opts)

	fmt.Fprintln(w)
	output.PrintKeyValue(w, "version", result.bucket.Version)
	if result.latestTag != "" {
		output.PrintKeyValue(w, "latest tag", result.latestTag)
	}
	if breaking := result.bucket.Breaking(); len(breaking) > 0 {
		output.PrintKeyValue(w, "breaking", fmt.Sprintf("%d", len(breaking)))
	}

	fmt.Fprintln(w)
	output.PrintSuccess(w, fmt.Sprintf("Wrote %s", cfg.OutputPath))
}
