package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/docstyle/pkg/config"
	"github.com/yaklabco/docstyle/pkg/lint"
)

// Glyphs used to make leading whitespace visible in source context.
const (
	spaceGlyph = "·"
	tabGlyph   = "→"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "      "

// FormatDiagnostic formats a single diagnostic for terminal output. The
// source line comes from the diagnostic's own Context.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	location := s.Location.Render(fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn))
	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)

	if showContext && diag.StartLine > 0 {
		builder.WriteString(s.FormatSourceContext(diag.Context))
	}

	if diag.Suggestion != "" {
		builder.WriteString(contextIndent + s.Dim.Render("fix:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders line with its leading whitespace made visible
// and underlines that whitespace. A blank line renders as a marker so the
// reader can see that the line itself is the problem.
func (s *Styles) FormatSourceContext(line string) string {
	var builder strings.Builder

	body := strings.TrimLeft(line, " \t")
	lead := line[:len(line)-len(body)]

	if body == "" && lead == "" {
		builder.WriteString(contextIndent + s.Dim.Render("(blank line)") + "\n")
		return builder.String()
	}

	visible := strings.NewReplacer(" ", spaceGlyph, "\t", tabGlyph).Replace(lead)
	builder.WriteString(contextIndent + s.Whitespace.Render(visible) + s.SourceLine.Render(body) + "\n")

	width := max(len(lead), 1)
	builder.WriteString(contextIndent + s.Caret.Render(strings.Repeat("^", width)) + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return s.FilePath.Render(path) + ": " + s.Error.Render("error: "+err.Error())
}
