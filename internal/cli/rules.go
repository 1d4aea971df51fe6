package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docstyle/internal/logging"
	"github.com/yaklabco/docstyle/pkg/config"
	"github.com/yaklabco/docstyle/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Severity    string         `json:"severity"`
	Enabled     bool           `json:"enabled"`
	Fixable     bool           `json:"fixable"`
	Options     map[string]any `json:"options,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, descriptions,
default severity, options and whether they support auto-fixing.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ruleFormat := config.RuleFormat(flags.ruleFormat)
			if !ruleFormat.IsValid() {
				return usageError(fmt.Errorf("invalid rule format %q: must be name, id or combined", flags.ruleFormat))
			}
			rules := lint.DefaultRegistry.Rules()

			switch flags.format {
			case string(config.FormatJSON):
				return outputRulesJSON(cmd.OutOrStdout(), rules)
			case string(config.FormatText):
				outputRulesText(cmd.OutOrStdout(), rules, ruleFormat)
				return nil
			default:
				return usageError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatCombined),
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText),
		"output format: text, json")

	return cmd
}

func outputRulesText(w io.Writer, rules []lint.Rule, ruleFormat config.RuleFormat) {
	logger := logging.NewInteractiveWithWriter(w)

	if len(rules) == 0 {
		logger.Info("no rules registered")
		return
	}

	for _, rule := range rules {
		fixable := "-"
		if rule.CanFix() {
			fixable = "yes"
		}

		keyvals := []any{
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldFixable, fixable,
			logging.FieldDescription, rule.Description(),
		}
		if opts := ruleOptions(rule); len(opts) > 0 {
			keyvals = append(keyvals, logging.FieldOptions, formatOptions(opts))
		}

		logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()), keyvals...)
	}
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Fixable:     rule.CanFix(),
			Options:     ruleOptions(rule),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

func ruleOptions(rule lint.Rule) map[string]any {
	if describer, ok := rule.(lint.OptionDescriber); ok {
		return describer.DefaultOptions()
	}
	return nil
}

// formatOptions renders options as "key=value" pairs in key order.
func formatOptions(opts map[string]any) string {
	pairs := make([]string, 0, len(opts))
	for _, key := range slices.Sorted(maps.Keys(opts)) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", key, opts[key]))
	}
	return strings.Join(pairs, " ")
}

// ruleInfos describes every registered rule for the init template.
func ruleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			CanFix:      rule.CanFix(),
			Options:     ruleOptions(rule),
		})
	}
	return infos
}
