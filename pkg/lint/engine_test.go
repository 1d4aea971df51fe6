package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yaklabco/docstyle/pkg/config"
	"github.com/yaklabco/docstyle/pkg/fix"
	"github.com/yaklabco/docstyle/pkg/lint"
	"github.com/yaklabco/docstyle/pkg/mdast"
)

// lineRule reports every line whose text equals target and proposes newText
// for the whole line.
func lineRule(id, name, target, newText string) *stubRule {
	rule := newStubRule(id, name, true)
	rule.apply = func(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
		var diags []lint.Diagnostic
		for i, text := range ctx.Lines() {
			if text != target {
				continue
			}
			info := ctx.File.Lines[i]
			edits := fix.NewEditBuilder()
			edits.ReplaceRange(info.StartOffset, info.NewlineStart, newText)
			diags = append(diags, lint.NewLineDiagnostic(id, ctx.File, i+1, "found "+target).
				WithFix(edits).
				Build())
		}
		return diags, nil
	}
	return rule
}

func TestEngine_LintFile_Empty(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(lint.NewRegistry())
	result, err := engine.LintFile(context.Background(), "test.md", []byte("# Hello\n"), config.NewConfig())
	if err != nil {
		t.Fatalf("LintFile() error = %v", err)
	}
	if result.HasIssues() {
		t.Errorf("HasIssues() = true, want false")
	}
	if result.Snapshot == nil || result.Snapshot.LineCount() != 1 {
		t.Errorf("Snapshot not built: %+v", result.Snapshot)
	}
}

func TestEngine_LintFile_FillsDiagnostics(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rule := newStubRule("DS100", "fill-me", false)
	rule.apply = func(*lint.RuleContext) ([]lint.Diagnostic, error) {
		return []lint.Diagnostic{{RuleID: "DS100", Message: "m", StartLine: 1}}, nil
	}
	registry.MustRegister(rule)

	cfg := config.NewConfig()
	cfg.SeverityDefault = string(config.SeverityError)

	result, err := lint.NewEngine(registry).LintFile(context.Background(), "docs/a.md", []byte("x\n"), cfg)
	if err != nil {
		t.Fatalf("LintFile() error = %v", err)
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}

	diag := result.Diagnostics[0]
	if diag.FilePath != "docs/a.md" {
		t.Errorf("FilePath = %q", diag.FilePath)
	}
	if diag.RuleName != "fill-me" {
		t.Errorf("RuleName = %q", diag.RuleName)
	}
	if diag.Severity != config.SeverityError {
		t.Errorf("Severity = %q", diag.Severity)
	}
	if result.CountBySeverity(config.SeverityError) != 1 {
		t.Errorf("CountBySeverity(error) = %d", result.CountBySeverity(config.SeverityError))
	}
}

func TestEngine_LintFile_RuleError(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	broken := newStubRule("DS101", "broken", false)
	broken.apply = func(*lint.RuleContext) ([]lint.Diagnostic, error) {
		return nil, errors.New("boom")
	}
	registry.MustRegister(broken)
	registry.MustRegister(lineRule("DS102", "works", "x", "y"))

	result, err := lint.NewEngine(registry).LintFile(context.Background(), "a.md", []byte("x\n"), nil)
	if err != nil {
		t.Fatalf("LintFile() error = %v", err)
	}
	if result.RuleErrors["DS101"] == nil {
		t.Errorf("expected rule error for DS101")
	}
	if result.IssueCount() != 1 {
		t.Errorf("IssueCount() = %d, want 1", result.IssueCount())
	}
}

func TestEngine_LintFile_EditsOnlyWithFix(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.MustRegister(lineRule("DS001", "upper", "x", "X"))
	engine := lint.NewEngine(registry)
	content := []byte("x\n")

	cfg := config.NewConfig()
	result, err := engine.LintFile(context.Background(), "a.md", content, cfg)
	if err != nil {
		t.Fatalf("LintFile() error = %v", err)
	}
	if result.HasFixes() {
		t.Errorf("edits collected without --fix")
	}
	if result.FixableCount() != 1 {
		t.Errorf("FixableCount() = %d, want 1", result.FixableCount())
	}

	cfg.Fix = true
	result, err = engine.LintFile(context.Background(), "a.md", content, cfg)
	if err != nil {
		t.Fatalf("LintFile() error = %v", err)
	}
	if got := string(fix.ApplyEdits(content, result.Edits)); got != "X\n" {
		t.Errorf("fixed = %q, want %q", got, "X\n")
	}
}

func TestEngine_LintFile_LowerRuleIDWinsConflicts(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.MustRegister(lineRule("DS002", "second", "x", "from-second"))
	registry.MustRegister(lineRule("DS001", "first", "x", "from-first"))

	cfg := config.NewConfig()
	cfg.Fix = true

	content := []byte("x\n")
	result, err := lint.NewEngine(registry).LintFile(context.Background(), "a.md", content, cfg)
	if err != nil {
		t.Fatalf("LintFile() error = %v", err)
	}
	if !result.EditConflicts || len(result.SkippedEdits) != 1 {
		t.Errorf("EditConflicts = %v, skipped = %d", result.EditConflicts, len(result.SkippedEdits))
	}
	if got := string(fix.ApplyEdits(content, result.Edits)); got != "from-first\n" {
		t.Errorf("fixed = %q", got)
	}
}

func TestEngine_LintFile_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lint.NewEngine(lint.NewRegistry()).LintFile(ctx, "a.md", nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestNewLineDiagnostic(t *testing.T) {
	t.Parallel()

	snapshot := mdast.NewFileSnapshot("a.md", []byte("one\n  two\n"))
	diag := lint.NewLineDiagnostic("DS001", snapshot, 2, "msg").WithSuggestion("s").Build()

	if diag.Context != "  two" || diag.StartLine != 2 || diag.EndColumn != 5 {
		t.Errorf("unexpected diagnostic: %+v", diag)
	}
	if pos := diag.SourcePosition(); !pos.IsSingleLine() || !pos.IsValid() {
		t.Errorf("SourcePosition() = %+v", pos)
	}
	if diag.HasFix() {
		t.Errorf("HasFix() = true without edits")
	}
}
