package rules

import (
	"fmt"

	"github.com/yaklabco/docstyle/pkg/lint"
	"github.com/yaklabco/docstyle/pkg/style"
)

// StrictTabSpacingRule requires leading indentation to be a multiple of the
// indent unit outside fenced code blocks.
type StrictTabSpacingRule struct {
	lint.BaseRule
}

// NewStrictTabSpacingRule creates the DS002 rule.
func NewStrictTabSpacingRule() *StrictTabSpacingRule {
	return &StrictTabSpacingRule{
		BaseRule: lint.NewBaseRule(
			"DS002",
			"strict-tab-spacing",
			"Leading indentation must be a multiple of four spaces outside code blocks",
			[]string{"whitespace", "indentation"},
			true,
		),
	}
}

// DefaultOptions returns the rule's option defaults.
func (r *StrictTabSpacingRule) DefaultOptions() map[string]any {
	return map[string]any{
		"indent":          style.DefaultTabWidth,
		"round_up_cutoff": style.DefaultRoundUpCutoff,
		"fence":           style.DefaultFenceMarker,
	}
}

// Apply checks the indentation of every line outside code blocks.
// Fence lines themselves are checked.
func (r *StrictTabSpacingRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	opts := style.DefaultOptions()
	opts.Admonitions = false
	opts.TabWidth = ctx.OptionInt("indent", style.DefaultTabWidth)
	opts.RoundUpCutoff = ctx.OptionInt("round_up_cutoff", style.DefaultRoundUpCutoff)
	opts.FenceMarker = ctx.OptionString("fence", style.DefaultFenceMarker)

	return collect(ctx, r, opts, func(v style.Violation) string {
		if v.Fix == nil {
			return ""
		}
		if v.Fix.InsertText == "" {
			return "Remove the leading spaces"
		}
		return fmt.Sprintf("Indent with %d spaces", len(v.Fix.InsertText))
	})
}
