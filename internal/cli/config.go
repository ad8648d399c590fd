package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/gitchangelog/internal/config"
	"github.com/ariel-frischer/gitchangelog/internal/errors"
	"github.com/ariel-frischer/gitchangelog/internal/output"
)

var configInitForceFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gitchangelog configuration",
	Long: `Commands for inspecting and initializing gitchangelog configuration.

Configuration priority: environment variables (GITCHANGELOG_*) > project
config (.gitchangelog.yml) > user config (~/.config/gitchangelog/config.yml)
> defaults.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented project config template",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration values",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVarP(&configInitForceFlag, "force", "f", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command) error {
	path := config.ProjectConfigPath()
	if configPathFlag != "" {
		path = configPathFlag
	}

	if _, err := os.Stat(path); err == nil && !configInitForceFlag {
		return errors.NewConfigError(
			fmt.Sprintf("config file %s already exists", path),
			"Use --force to overwrite it",
			"Or edit the existing file directly")
	}

	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "writing config template")
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s", path))
	return nil
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	output.PrintKeyValue(out, "repository_url", orUnset(cfg.RepositoryURL))
	output.PrintKeyValue(out, "output_path", cfg.OutputPath)
	output.PrintKeyValue(out, "metadata_file", cfg.MetadataFile)
	output.PrintKeyValue(out, "default_version", cfg.DefaultVersion)
	output.PrintKeyValue(out, "title", cfg.Title)
	output.PrintKeyValue(out, "include_contributors", fmt.Sprintf("%t", cfg.IncludeContributors))
	output.PrintKeyValue(out, "max_commits", fmt.Sprintf("%d", cfg.MaxCommits))
	output.PrintKeyValue(out, "watch_debounce", cfg.WatchDebounce)
	return nil
}

// orUnset renders empty config values as a readable placeholder.
func orUnset(v string) string {
	if v == "" {
		return "(auto-detect)"
	}
	return v
}
