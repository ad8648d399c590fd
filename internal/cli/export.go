package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/gitchangelog/internal/changelog"
	"github.com/ariel-frischer/gitchangelog/internal/errors"
	"github.com/ariel-frischer/gitchangelog/internal/output"
)

var (
	exportOutputFlag string
	exportStdoutFlag bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the classified changelog as YAML",
	Long: `Export the classified commit model as structured YAML for downstream
tooling. The export carries the same data the markdown renderer uses:
type, scope, breaking flag, stripped subject, author, and hash per commit.

Examples:
  gitchangelog export                  # Write changelog.yaml
  gitchangelog export -o release.yaml
  gitchangelog export --stdout         # Print to stdout`,
	Args:         noArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "changelog.yaml", "Output path for the YAML export")
	exportCmd.Flags().BoolVar(&exportStdoutFlag, "stdout", false, "Print to stdout instead of writing a file")
}

func runExport(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result := buildDocument(cmd.Context(), cfg, cmd.ErrOrStderr())

	var buf bytes.Buffer
	if err := changelog.ExportYAML(result.doc, &buf); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "exporting changelog")
	}

	if exportStdoutFlag {
		_, err := buf.WriteTo(cmd.OutOrStdout())
		return err
	}

	if err := os.WriteFile(exportOutputFlag, buf.Bytes(), 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "writing export",
			"Check that the output directory exists and is writable",
			fmt.Sprintf("Output path: %s", exportOutputFlag))
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s", exportOutputFlag))
	return nil
}
