package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docstyle/pkg/config"
	"github.com/yaklabco/docstyle/pkg/fix"
	"github.com/yaklabco/docstyle/pkg/lint"
	"github.com/yaklabco/docstyle/pkg/mdast"
)

// applyRule runs rule over input with the given options.
func applyRule(t *testing.T, rule lint.Rule, input string, options map[string]any) []lint.Diagnostic {
	t.Helper()

	snapshot := mdast.NewFileSnapshot("test.md", []byte(input))
	var ruleCfg *config.RuleConfig
	if options != nil {
		ruleCfg = &config.RuleConfig{Options: options}
	}
	ruleCtx := lint.NewRuleContext(context.Background(), snapshot, config.NewConfig(), ruleCfg)

	diags, err := rule.Apply(ruleCtx)
	require.NoError(t, err)
	return diags
}

// applyFixes applies every edit attached to diags.
func applyFixes(t *testing.T, input string, diags []lint.Diagnostic) string {
	t.Helper()

	var edits []fix.TextEdit
	for _, d := range diags {
		edits = append(edits, d.FixEdits...)
	}
	prepared, _, _, err := fix.PrepareEditsFiltered(edits, len(input))
	require.NoError(t, err)
	return string(fix.ApplyEdits([]byte(input), prepared))
}
