package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docstyle/internal/configloader"
	"github.com/yaklabco/docstyle/internal/logging"
	"github.com/yaklabco/docstyle/pkg/config"
	"github.com/yaklabco/docstyle/pkg/lint"
	_ "github.com/yaklabco/docstyle/pkg/lint/rules" // Register built-in rules
	goldmarkparser "github.com/yaklabco/docstyle/pkg/parser/goldmark"
	"github.com/yaklabco/docstyle/pkg/reporter"
	"github.com/yaklabco/docstyle/pkg/runner"
)

type lintFlags struct {
	format     string
	flavor     string
	ruleFormat string
	ignore     []string
	enable     []string
	disable    []string
	fixRules   []string
	compact    bool
	watch      bool
}

func newLintCommand(global *globalFlags) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Markdown files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyLintFlags(cmd, &cfg, flags)
			return runLint(cmd, args, &cfg, flags, global)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint Markdown files for admonition and indentation style.

By default, lints all .md and .markdown files in the current directory
and subdirectories. Hidden directories are skipped. Specify paths to lint
specific files or directories.

Examples:
  docstyle lint                    # Lint current directory
  docstyle lint docs/              # Lint docs directory
  docstyle lint README.md          # Lint single file
  docstyle lint --fix              # Lint and fix issues in place
  docstyle lint --dry-run          # Show what --fix would change
  docstyle lint --format diff      # Print pending fixes as a unified diff
  docstyle lint --format json      # Output as JSON for CI
  docstyle lint --strict           # Fail on warnings too
  docstyle lint --watch docs/      # Re-lint whenever a file changes`

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "compute fixes without writing them")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json, diff (diff implies --dry-run)")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rules to enable (ID or name)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rules to disable (ID or name)")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to these rules")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark),
		"Markdown flavor for fence verification: commonmark, gfm")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "exit non-zero on warnings")
	cmd.Flags().BoolVar(&cfg.NoContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-lint whenever Markdown files change")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatName),
		"rule identifier format in output: name, id, or combined")
}

// applyLintFlags copies explicitly set flags into cfg so that unset flags
// leave config files and environment variables in charge.
func applyLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("enable") {
		cfg.EnableRules = flags.enable
	}
	if changed("disable") {
		cfg.DisableRules = flags.disable
	}
	if changed("fix-rules") {
		cfg.FixRules = flags.fixRules
	}
}

func runLint(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *lintFlags, global *globalFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if cliCfg.Format != "" {
		if _, err := reporter.ParseFormat(string(cliCfg.Format)); err != nil {
			return usageError(err)
		}
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:     workDir,
		ExplicitPath:   global.configPath,
		NonInteractive: cliCfg.Format == config.FormatJSON || cliCfg.Format == config.FormatDiff,
		CLIConfig:      cliCfg,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	for _, hint := range loadResult.Hints {
		logger.Info(hint)
	}

	cfg := loadResult.Config
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", configloader.ErrInvalidConfig, err)
	}
	if format == reporter.FormatDiff {
		cfg.DryRun = true
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, format,
		logging.FieldBackups, cfg.BackupsEnabled(),
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       global.color,
		ShowContext: !cfg.NoContext,
		ShowSummary: true,
		Compact:     flags.compact,
		RuleFormat:  cfg.RuleFormat,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	run := runner.New(newPipeline(cfg))
	opts := runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Jobs:       cfg.Jobs,
		Config:     cfg,
	}

	if flags.watch {
		logger.Info("watching for changes", logging.FieldPaths, opts.Paths)
		err := run.Watch(ctx, opts, runner.DefaultDebounce, func(result *runner.Result, err error) {
			if err == nil {
				err = reportResult(ctx, rep, result, cfg)
			}
			if err != nil && !errors.Is(err, ErrLintIssuesFound) {
				logger.Error("lint run failed", logging.FieldError, err)
			}
		})
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		return nil
	}

	result, err := run.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}
	return reportResult(ctx, rep, result, cfg)
}

// reportResult writes result through rep and maps it to the command error
// that carries the exit code.
func reportResult(ctx context.Context, rep reporter.Reporter, result *runner.Result, cfg *config.Config) error {
	logging.FromContext(ctx).Debug("lint run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	if _, err := rep.Report(ctx, result); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if result.HasErrors() {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed,
			result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}

	if code := ExitCodeFromResult(result, cfg.Strict); code != ExitSuccess {
		return withExitCode(code, ErrLintIssuesFound)
	}

	return nil
}

// newPipeline builds the fix pipeline for cfg. Fence verification parses
// with the configured Markdown flavor.
func newPipeline(cfg *config.Config) *lint.Pipeline {
	pipeline := lint.NewPipeline(lint.NewEngine(lint.DefaultRegistry))
	if cfg.FenceVerification() {
		pipeline.Verifier = goldmarkparser.New(string(cfg.Flavor))
	}
	return pipeline
}
