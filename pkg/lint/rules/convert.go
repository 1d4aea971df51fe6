package rules

import (
	"fmt"

	"github.com/yaklabco/docstyle/pkg/fix"
	"github.com/yaklabco/docstyle/pkg/lint"
	"github.com/yaklabco/docstyle/pkg/mdast"
	"github.com/yaklabco/docstyle/pkg/style"
)

// lineEdits records the byte-offset edit for a line fix against file.
// Deleting a line removes its line ending too. Otherwise the first
// DeleteCount bytes of the line are replaced with InsertText; the count is
// clamped to the line's length. Fixes outside the file record nothing.
func lineEdits(file *mdast.FileSnapshot, f *style.Fix) *fix.EditBuilder {
	edits := fix.NewEditBuilder()
	if f == nil {
		return edits
	}
	info, ok := file.Line(f.Line)
	if !ok {
		return edits
	}

	if f.DeletesLine() {
		edits.Delete(info.StartOffset, info.EndOffset)
		return edits
	}

	width := min(max(f.DeleteCount, 0), info.NewlineStart-info.StartOffset)
	edits.ReplaceRange(info.StartOffset, info.StartOffset+width, f.InsertText)
	return edits
}

// collect runs the checker over the rule context's lines and converts each
// violation into a diagnostic for rule.
func collect(
	ctx *lint.RuleContext,
	rule lint.Rule,
	opts style.Options,
	suggest func(style.Violation) string,
) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for v := range style.Check(ctx.Lines(), opts) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		pos := mdast.LinePosition(v.Line, 1, max(len(v.Context), 1))
		builder := lint.NewDiagnosticAt(rule.ID(), ctx.Path(), pos, v.Detail).
			WithSeverity(rule.DefaultSeverity()).
			WithContext(v.Context).
			WithSuggestion(suggest(v))

		if rule.CanFix() {
			builder = builder.WithFix(lineEdits(ctx.File, v.Fix))
		}

		diags = append(diags, builder.Build())
	}

	return diags, nil
}
