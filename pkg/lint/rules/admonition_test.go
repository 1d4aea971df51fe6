package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmonitionIndentRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		config    map[string]any
		wantLines []int
		wantFix   string
	}{
		{
			name:    "well formed",
			input:   "# Title\n\n!!! note\n    Body text.\n",
			wantFix: "# Title\n\n!!! note\n    Body text.\n",
		},
		{
			name:      "blank line after header",
			input:     "!!! note\n\n    Body text.\n",
			wantLines: []int{2},
			wantFix:   "!!! note\n    Body text.\n",
		},
		{
			name:      "whitespace-only line after header",
			input:     "!!! note\n   \n    Body text.\n",
			wantLines: []int{2},
			wantFix:   "!!! note\n    Body text.\n",
		},
		{
			name:      "under-indented body is reported two lines past the header",
			input:     "!!! note\n  Body text.\n",
			wantLines: []int{3},
			wantFix:   "!!! note\n    Body text.\n",
		},
		{
			name:      "unindented body",
			input:     "!!! warning \"Careful\"\nBody text.\n",
			wantLines: []int{3},
			wantFix:   "!!! warning \"Careful\"\n    Body text.\n",
		},
		{
			name:      "nested header",
			input:     "- item\n\n    !!! tip\n      Body.\n",
			wantLines: []int{5},
			wantFix:   "- item\n\n    !!! tip\n        Body.\n",
		},
		{
			name:      "tab-indented body",
			input:     "!!! note\n\tBody.\n",
			wantLines: []int{3},
			wantFix:   "!!! note\n    Body.\n",
		},
		{
			name:      "crlf line endings",
			input:     "!!! note\r\n  Body.\r\n",
			wantLines: []int{3},
			wantFix:   "!!! note\r\n    Body.\r\n",
		},
		{
			name:    "header on the last line",
			input:   "Text.\n!!! note\n",
			wantFix: "Text.\n!!! note\n",
		},
		{
			name:      "report offset option",
			input:     "!!! note\n  Body.\n",
			config:    map[string]any{"report_offset": 1},
			wantLines: []int{2},
			wantFix:   "!!! note\n    Body.\n",
		},
		{
			name:      "custom marker",
			input:     "??? note\n  Body.\n!!! note\n  Ignored.\n",
			config:    map[string]any{"marker": "???"},
			wantLines: []int{3},
			wantFix:   "??? note\n    Body.\n!!! note\n  Ignored.\n",
		},
		{
			name:      "body indent option",
			input:     "!!! note\n    Body.\n",
			config:    map[string]any{"body_indent": 2},
			wantLines: []int{3},
			wantFix:   "!!! note\n  Body.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewAdmonitionIndentRule()

			diags := applyRule(t, rule, tt.input, tt.config)

			var lines []int
			for _, d := range diags {
				lines = append(lines, d.StartLine)
				assert.Equal(t, "DS001", d.RuleID)
				assert.True(t, d.HasFix())
			}
			assert.Equal(t, tt.wantLines, lines)

			fixed := applyFixes(t, tt.input, diags)
			assert.Equal(t, tt.wantFix, fixed)

			assert.Empty(t, applyRule(t, rule, fixed, tt.config), "fix should be idempotent")
		})
	}
}

func TestAdmonitionIndentRule_DiagnosticDetails(t *testing.T) {
	diags := applyRule(t, NewAdmonitionIndentRule(), "!!! note\n  Body.\n", nil)
	require.Len(t, diags, 1)

	diag := diags[0]
	assert.Equal(t, "test.md", diag.FilePath)
	assert.Equal(t, "  Body.", diag.Context)
	assert.Equal(t, "Indent the body with 4 spaces", diag.Suggestion)
	assert.Contains(t, diag.Message, "indented 4 spaces")
	require.Len(t, diag.FixEdits, 1)
	assert.Equal(t, 9, diag.FixEdits[0].StartOffset)
	assert.Equal(t, 11, diag.FixEdits[0].EndOffset)
}

func TestAdmonitionIndentRule_InsideCodeBlock(t *testing.T) {
	diags := applyRule(t, NewAdmonitionIndentRule(), "```md\n!!! note\n\n```\n", nil)
	require.Len(t, diags, 1)
	assert.Equal(t, 3, diags[0].StartLine)
}
