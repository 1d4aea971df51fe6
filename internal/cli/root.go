// Package cli provides the Cobra command structure for docstyle.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/docstyle/internal/logging"
	"github.com/yaklabco/docstyle/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root docstyle command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "docstyle",
		Short: "Check and fix admonition and indentation style in Markdown",
		Long: `docstyle checks Markdown documentation for two layout rules and can fix
both in place.

  DS001 admonition-indent    admonition bodies start on the next line,
                             indented four columns past the marker
  DS002 strict-tab-spacing   leading indentation outside code blocks is a
                             multiple of four spaces

Fixes are applied in passes until the file is stable, checked against the
original code fences and written atomically with an optional backup.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := pretty.ValidateColorMode(flags.color); err != nil {
				return usageError(err)
			}
			if flags.debug {
				logging.SetLevel("debug")
			}
			// Command diagnostics follow the command's error stream.
			level := logging.Default().GetLevel().String()
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newLintCommand(flags))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter().ApplyToCommand(rootCmd)

	return rootCmd
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}
