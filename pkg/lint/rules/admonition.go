package rules

import (
	"fmt"

	"github.com/yaklabco/docstyle/pkg/lint"
	"github.com/yaklabco/docstyle/pkg/style"
)

// AdmonitionIndentRule requires an admonition's body to follow its header
// directly, indented a fixed distance past the marker column.
type AdmonitionIndentRule struct {
	lint.BaseRule
}

// NewAdmonitionIndentRule creates the DS001 rule.
func NewAdmonitionIndentRule() *AdmonitionIndentRule {
	return &AdmonitionIndentRule{
		BaseRule: lint.NewBaseRule(
			"DS001",
			"admonition-indent",
			"Admonition bodies must start on the line after the header, indented four columns past the marker",
			[]string{"admonitions", "indentation"},
			true,
		),
	}
}

// DefaultOptions returns the rule's option defaults.
func (r *AdmonitionIndentRule) DefaultOptions() map[string]any {
	return map[string]any{
		"marker":        style.DefaultAdmonitionMarker,
		"body_indent":   style.DefaultBodyIndent,
		"report_offset": style.DefaultReportOffset,
	}
}

// Apply checks every admonition header, including ones inside code blocks.
func (r *AdmonitionIndentRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	opts := style.DefaultOptions()
	opts.TabSpacing = false
	opts.AdmonitionMarker = ctx.OptionString("marker", style.DefaultAdmonitionMarker)
	opts.BodyIndent = ctx.OptionInt("body_indent", style.DefaultBodyIndent)
	opts.ReportOffset = ctx.OptionInt("report_offset", style.DefaultReportOffset)

	return collect(ctx, r, opts, func(v style.Violation) string {
		if v.Fix.DeletesLine() {
			return "Remove the blank line after the admonition header"
		}
		if v.Fix == nil {
			return ""
		}
		return fmt.Sprintf("Indent the body with %d spaces", len(v.Fix.InsertText))
	})
}
