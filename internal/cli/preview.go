package cli

import (
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/gitchangelog/internal/changelog"
	"github.com/ariel-frischer/gitchangelog/internal/errors"
)

var previewPlainFlag bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the classified changelog in the terminal",
	Long: `Render the classified commit history to the terminal with colors and
icons instead of writing a file. Sections follow the same fixed priority
order as the markdown output.

Examples:
  gitchangelog preview            # Colorized preview
  gitchangelog preview --plain    # Plain output (no colors/icons)`,
	Args:         noArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().BoolVar(&previewPlainFlag, "plain", false, "Plain text output (no colors/icons)")
}

func runPreview(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result := buildDocument(cmd.Context(), cfg, cmd.ErrOrStderr())

	opts := changelog.FormatOptions{Plain: previewPlainFlag}
	if err := changelog.FormatTerminal(result.doc, cmd.OutOrStdout(), opts); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "formatting preview")
	}

	return nil
}
