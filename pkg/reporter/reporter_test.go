package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docstyle/pkg/config"
	"github.com/yaklabco/docstyle/pkg/fix"
	"github.com/yaklabco/docstyle/pkg/lint"
	"github.com/yaklabco/docstyle/pkg/reporter"
	"github.com/yaklabco/docstyle/pkg/runner"
)

var workDir = filepath.Join(string(filepath.Separator), "repo")

func sampleResult() *runner.Result {
	diags := []lint.Diagnostic{
		{
			RuleID:      "DS001",
			RuleName:    "admonition-indent",
			Severity:    config.SeverityWarning,
			Message:     "Blank line after admonition header; body must immediately follow",
			StartLine:   2,
			StartColumn: 1,
			EndLine:     2,
			EndColumn:   1,
			Suggestion:  "Remove the blank line after the admonition header",
			FixEdits:    []fix.TextEdit{{StartOffset: 9, EndOffset: 10}},
		},
		{
			RuleID:      "DS002",
			RuleName:    "strict-tab-spacing",
			Severity:    config.SeverityError,
			Message:     "Lines must be indented to a strict 4-space boundary (found 2, suggest 4)",
			StartLine:   3,
			StartColumn: 1,
			EndLine:     3,
			EndColumn:   6,
			Context:     "  body",
			FixEdits:    []fix.TextEdit{{StartOffset: 10, EndOffset: 12, NewText: "    "}},
		},
	}

	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: filepath.Join(workDir, "docs", "a.md"),
				Result: &lint.PipelineResult{
					FileResult: &lint.FileResult{Diagnostics: diags},
				},
			},
			{
				Path:   filepath.Join(workDir, "b.md"),
				Result: &lint.PipelineResult{FileResult: &lint.FileResult{}},
			},
			{
				Path:  filepath.Join(workDir, "c.md"),
				Error: errors.New("permission denied"),
			},
		},
		Stats: runner.Stats{
			FilesProcessed:     2,
			FilesErrored:       1,
			FilesWithIssues:    1,
			DiagnosticsTotal:   2,
			DiagnosticsFixable: 2,
			DiagnosticsBySeverity: map[config.Severity]int{
				config.SeverityWarning: 1,
				config.SeverityError:   1,
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "diff", want: reporter.FormatDiff},
		{input: "sarif", wantErr: true},
		{input: "TEXT", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "diff reporter", format: reporter.FormatDiff},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format, Color: "never"})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTextReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "No files to check")
}

func TestTextReporter_Report(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowContext: true,
		ShowSummary: true,
		RuleFormat:  config.RuleFormatID,
		WorkingDir:  workDir,
	})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "docs/a.md (2 issues)")
	assert.Contains(t, out, "2:1  warning  Blank line after admonition header")
	assert.Contains(t, out, "(DS001)")
	assert.Contains(t, out, "(blank line)")
	assert.Contains(t, out, "··body")
	assert.Contains(t, out, "fix: Remove the blank line after the admonition header")
	assert.Contains(t, out, "c.md: error: permission denied")
	assert.NotContains(t, out, "b.md")
	assert.Contains(t, out, "2 issues (1 error, 1 warning) in 1 file, 2 fixable, 1 file failed")
}

func TestTextReporter_Skipped(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	result := &runner.Result{Files: []runner.FileOutcome{{
		Path: "a.md",
		Result: &lint.PipelineResult{
			FileResult: &lint.FileResult{},
			Skipped:    true,
			SkipReason: "file modified during processing",
		},
	}}}

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "a.md: fixes not written: file modified during processing")
}

func TestJSONReporter_Report(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: workDir})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, reporter.JSONSchemaVersion, out.Version)
	require.Len(t, out.Files, 3)
	assert.Equal(t, "docs/a.md", out.Files[0].Path)
	assert.Empty(t, out.Files[1].Diagnostics)
	assert.Equal(t, "permission denied", out.Files[2].Error)

	diag := out.Files[0].Diagnostics[1]
	assert.Equal(t, "DS002", diag.RuleID)
	assert.Equal(t, "error", diag.Severity)
	assert.Equal(t, "  body", diag.Context)
	assert.True(t, diag.Fixable)
	assert.Equal(t, []reporter.JSONFix{{StartOffset: 10, EndOffset: 12, NewText: "    "}}, diag.Fixes)

	assert.Equal(t, reporter.JSONSummary{
		FilesChecked:    3,
		FilesWithIssues: 1,
		FilesErrored:    1,
		TotalIssues:     2,
		Fixable:         2,
		BySeverity:      map[string]int{"warning": 1, "error": 1},
	}, out.Summary)
}

func TestJSONReporter_Compact(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, `{"version":"1","files":[],"summary":{"filesChecked":0,"filesWithIssues":0,"filesModified":0,"filesSkipped":0,"filesErrored":0,"totalIssues":0,"fixable":0,"bySeverity":{}}}`+"\n", buf.String())
}

func TestDiffReporter_Report(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  workDir,
	})

	path := filepath.Join(workDir, "a.md")
	diff := fix.GenerateDiff(path, []byte("!!! note\n\n  body\n"), []byte("!!! note\n    body\n"))
	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: path, Result: &lint.PipelineResult{FileResult: &lint.FileResult{}, Diff: diff}},
		{Path: filepath.Join(workDir, "clean.md"), Result: &lint.PipelineResult{FileResult: &lint.FileResult{}}},
	}}

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "diff --git a/a.md b/a.md\n--- a/a.md\n+++ b/a.md\n@@ -1,3 +1,2 @@\n")
	assert.Contains(t, out, " !!! note\n-\n-  body\n+    body\n")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 2 deletions(-)")
	assert.NotContains(t, out, "clean.md")
}
