package lint

import (
	"github.com/yaklabco/docstyle/pkg/config"
	"github.com/yaklabco/docstyle/pkg/fix"
	"github.com/yaklabco/docstyle/pkg/mdast"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts building a diagnostic at a specific position.
func NewDiagnosticAt(
	ruleID string,
	filePath string,
	pos mdast.SourcePosition,
	message string,
) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// NewLineDiagnostic starts a diagnostic covering a whole 1-based line of
// the snapshot, with the line text as context.
func NewLineDiagnostic(ruleID string, file *mdast.FileSnapshot, line int, message string) *DiagnosticBuilder {
	text := file.LineContent(line)
	pos := mdast.LinePosition(line, 1, max(len(text), 1))
	return NewDiagnosticAt(ruleID, file.Path, pos, message).WithContext(string(text))
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithContext sets the offending line text.
func (b *DiagnosticBuilder) WithContext(text string) *DiagnosticBuilder {
	b.diag.Context = text
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFix appends the edits accumulated in builder. A nil or empty
// builder leaves the diagnostic unfixable.
func (b *DiagnosticBuilder) WithFix(builder *fix.EditBuilder) *DiagnosticBuilder {
	if builder != nil && builder.Len() > 0 {
		b.diag.FixEdits = append(b.diag.FixEdits, builder.Edits...)
	}
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
