package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docstyle/pkg/config"
)

func boolPtr(b bool) *bool { return &b }

func TestMerge_NilInputs(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, cfg, merge(nil, cfg))
	assert.Equal(t, cfg, merge(cfg, nil))
	assert.NotSame(t, cfg, merge(cfg, nil))
}

func TestMerge_Scalars(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Fix = true
	override := &config.Config{
		Flavor:       config.FlavorGFM,
		Format:       config.FormatJSON,
		Jobs:         2,
		VerifyFences: boolPtr(false),
		Backups:      config.BackupsConfig{Enabled: boolPtr(false)},
	}

	got := merge(base, override)
	assert.Equal(t, config.FlavorGFM, got.Flavor)
	assert.Equal(t, config.FormatJSON, got.Format)
	assert.Equal(t, config.RuleFormatName, got.RuleFormat)
	assert.Equal(t, 2, got.Jobs)
	assert.True(t, got.Fix)
	assert.False(t, got.FenceVerification())
	assert.False(t, got.BackupsEnabled())
	assert.Equal(t, config.BackupModeSidecar, got.Backups.Mode)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Rules["DS001"] = config.RuleConfig{
		Enabled: boolPtr(true),
		Options: map[string]any{"body_indent": 4},
	}
	base.Ignore = []string{"vendor/**"}

	override := &config.Config{
		Rules: map[string]config.RuleConfig{
			"DS001": {Options: map[string]any{"report_offset": 1}},
		},
		Ignore: []string{"build/**"},
	}

	got := merge(base, override)

	assert.Equal(t, map[string]any{"body_indent": 4, "report_offset": 1}, got.Rules["DS001"].Options)
	assert.True(t, *got.Rules["DS001"].Enabled)
	assert.Equal(t, []string{"build/**"}, got.Ignore)

	assert.Equal(t, map[string]any{"body_indent": 4}, base.Rules["DS001"].Options)
	assert.Equal(t, []string{"vendor/**"}, base.Ignore)
	assert.Equal(t, map[string]any{"report_offset": 1}, override.Rules["DS001"].Options)

	got.Rules["DS001"].Options["marker"] = "???"
	assert.NotContains(t, base.Rules["DS001"].Options, "marker")
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	got := MergeAll(
		config.NewConfig(),
		&config.Config{SeverityDefault: "info"},
		&config.Config{SeverityDefault: "error", Strict: true},
	)
	require.NotNil(t, got)
	assert.Equal(t, "error", got.SeverityDefault)
	assert.True(t, got.Strict)
	assert.Nil(t, MergeAll())
}
