// Package cli implements the gitchangelog command tree. Commands are
// registered on the root command via init functions in their own files,
// mirroring one file per command.
package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/gitchangelog/internal/errors"
	"github.com/ariel-frischer/gitchangelog/internal/gitlog"
	"github.com/ariel-frischer/gitchangelog/internal/version"
)

var (
	debugFlag      bool
	configPathFlag string
)

var rootCmd = &cobra.Command{
	Use:   "gitchangelog",
	Short: "Generate a markdown changelog from git commit history",
	Long: `gitchangelog reads a repository's commit history, classifies each
commit by conventional-commit type, and renders a deterministic markdown
changelog with breaking-change callouts and a contributor list.

The document is regenerated wholesale on each run; there is no incremental
merging with prior content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			gitlog.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
			})
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output for git operations")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Project config path (default: .gitchangelog.yml)")
	rootCmd.Version = version.Version
}

// noArgs rejects positional arguments with a usage-bearing argument error
// instead of cobra's default message.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.NewArgumentErrorWithUsage(
			fmt.Sprintf("unexpected argument %q", args[0]),
			cmd.UseLine(),
			"Remove the extra arguments and try again")
	}
	return nil
}

// Execute runs the root command. Errors are formatted for the terminal
// before being returned; main resolves them to an exit code via ExitCode.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitCodeError
	if stderrors.As(err, &exitErr) {
		if exitErr.Code == ExitSuccess {
			return nil
		}
		return err
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
		return err
	}

	errors.PrintSimpleError(err, errors.Runtime)
	return err
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitCodeError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case errors.Argument:
			return ExitInvalidArguments
		case errors.Configuration:
			return ExitConfigError
		default:
			return ExitRuntimeError
		}
	}

	return ExitRuntimeError
}
