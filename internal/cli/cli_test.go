package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docstyle/internal/cli"
	"github.com/yaklabco/docstyle/pkg/config"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}
}

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	assert.Equal(t, "docstyle", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"lint", "rules", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestLintCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	expected := []string{
		"fix", "dry-run", "format", "jobs", "ignore", "enable", "disable",
		"fix-rules", "no-backups", "strict", "no-context", "rule-format", "flavor",
		"compact", "watch",
	}
	for _, name := range expected {
		assert.NotNil(t, lintCmd.Flags().Lookup(name), name)
	}

	assert.Equal(t, "name", lintCmd.Flags().Lookup("rule-format").DefValue)
	require.NoError(t, lintCmd.Args(lintCmd, []string{"a.md", "docs/"}))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "docstyle")
	assert.Contains(t, stdout, "version=1.2.3")
	assert.Contains(t, stdout, "commit=abc123")
}

func TestVersionCommand_RejectsArgs(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "version", "extra")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestRulesCommand_Text(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, stdout, "DS001/admonition-indent")
	assert.Contains(t, stdout, "DS002/strict-tab-spacing")
	assert.Contains(t, stdout, "fixable=yes")
	assert.Contains(t, stdout, "body_indent=4")
}

func TestRulesCommand_RuleFormat(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "rules", "--rule-format", "id")
	require.NoError(t, err)
	assert.Contains(t, stdout, "DS001")
	assert.NotContains(t, stdout, "DS001/")
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	var rules []struct {
		ID      string         `json:"id"`
		Name    string         `json:"name"`
		Fixable bool           `json:"fixable"`
		Enabled bool           `json:"enabled"`
		Options map[string]any `json:"options"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))
	require.Len(t, rules, 2)

	assert.Equal(t, "DS001", rules[0].ID)
	assert.Equal(t, "admonition-indent", rules[0].Name)
	assert.Equal(t, "DS002", rules[1].ID)
	assert.True(t, rules[1].Fixable)
	assert.True(t, rules[1].Enabled)
	assert.InDelta(t, 4, rules[1].Options["indent"], 0)
}

func TestRulesCommand_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "rules", "--format", "yaml")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, _, err = execute(t, "rules", "--rule-format", "short")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".docstyle.yml")

	stdout, _, err := execute(t, "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "created configuration file")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), config.TemplateHeader))
	assert.Contains(t, string(content), "admonition-indent")

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)

	_, _, err = execute(t, "init", "--output", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o644))
	_, _, err = execute(t, "init", "--output", path, "--force")
	require.NoError(t, err)

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "# mine\n", string(content))
}

func TestRootHelpListsEnvironment(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "--help", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "Available Commands:")
	assert.Contains(t, stdout, "Environment:")
	assert.Contains(t, stdout, "DOCSTYLE_FIX")
}

func TestSubcommandHelpOmitsEnvironment(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "lint", "--help", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--dry-run")
	assert.Contains(t, stdout, "Global Flags:")
	assert.NotContains(t, stdout, "Environment:")
}

func TestUsageErrors(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"unknown flag":  {"lint", "--bogus"},
		"bad color":     {"version", "--color", "sometimes"},
		"bad format":    {"lint", "--format", "sarif", t.TempDir()},
		"missing path":  {"lint", filepath.Join(t.TempDir(), "absent.md")},
		"bad jobs type": {"lint", "--jobs", "many"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
		})
	}
}
