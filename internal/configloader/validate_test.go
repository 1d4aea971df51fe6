package configloader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docstyle/pkg/config"
)

func strPtr(s string) *string { return &s }

func TestValidate_DefaultsAreValid(t *testing.T) {
	t.Parallel()

	result := Validate(config.NewConfig(), testRegistry())
	assert.True(t, result.Valid())
	assert.Empty(t, result.Warnings)
	assert.NoError(t, result.Err())
}

func TestValidate_NilConfig(t *testing.T) {
	t.Parallel()

	assert.True(t, Validate(nil, nil).Valid())
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"flavor", func(c *config.Config) { c.Flavor = "markdown" }, "flavor"},
		{"severity default", func(c *config.Config) { c.SeverityDefault = "fatal" }, "severity_default"},
		{"format", func(c *config.Config) { c.Format = "sarif" }, "format"},
		{"rule format", func(c *config.Config) { c.RuleFormat = "short" }, "rule_format"},
		{"jobs", func(c *config.Config) { c.Jobs = -1 }, "jobs"},
		{"backup mode", func(c *config.Config) { c.Backups.Mode = "dir" }, "backups.mode"},
		{"ignore glob", func(c *config.Config) { c.Ignore = []string{"ok/**", "[bad"} }, "ignore[1]"},
		{
			"rule severity",
			func(c *config.Config) { c.Rules["DS001"] = config.RuleConfig{Severity: strPtr("loud")} },
			"rules.DS001.severity",
		},
		{
			"option type",
			func(c *config.Config) {
				c.Rules["DS002"] = config.RuleConfig{Options: map[string]any{"indent": "four"}}
			},
			"rules.DS002.options.indent",
		},
		{
			"option not positive",
			func(c *config.Config) {
				c.Rules["DS001"] = config.RuleConfig{Options: map[string]any{"body_indent": 0}}
			},
			"rules.DS001.options.body_indent",
		},
		{
			"option fractional",
			func(c *config.Config) {
				c.Rules["DS002"] = config.RuleConfig{Options: map[string]any{"round_up_cutoff": 2.5}}
			},
			"rules.DS002.options.round_up_cutoff",
		},
		{
			"empty marker",
			func(c *config.Config) {
				c.Rules["DS001"] = config.RuleConfig{Options: map[string]any{"marker": ""}}
			},
			"rules.DS001.options.marker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			result := Validate(cfg, testRegistry())
			require.False(t, result.Valid())
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.field, result.Errors[0].Field)
			assert.True(t, errors.Is(result.Err(), ErrInvalidConfig))
		})
	}
}

func TestValidate_AcceptsIntegralFloats(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["DS002"] = config.RuleConfig{Options: map[string]any{"indent": 4.0, "round_up_cutoff": int64(2)}}

	assert.True(t, Validate(cfg, testRegistry()).Valid())
}

func TestValidate_UnknownRuleListsWarn(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.EnableRules = []string{"DS001", "no-such-rule"}
	cfg.FixRules = []string{"tab-spacing"}

	result := Validate(cfg, testRegistry())
	require.True(t, result.Valid())
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "enable", result.Warnings[0].Field)
	assert.Equal(t, "no-such-rule", result.Warnings[0].Value)
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Flavor = "rst"
	cfg.Rules["DS404"] = config.RuleConfig{}

	result := ValidateWithFile(cfg, testRegistry(), "/repo/.docstyle.yml")
	require.Len(t, result.Errors, 1)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "/repo/.docstyle.yml", result.Errors[0].FilePath)
	assert.Equal(t, "/repo/.docstyle.yml", result.Warnings[0].FilePath)
	assert.Equal(t, `/repo/.docstyle.yml: flavor: invalid flavor "rst"; must be one of: commonmark, gfm`,
		result.Errors[0].Error())
}
