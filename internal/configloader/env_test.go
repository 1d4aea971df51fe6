package configloader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docstyle/pkg/config"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadFromLookup(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := loadFromLookup(cfg, lookupFrom(map[string]string{
		"DOCSTYLE_FLAVOR":        "gfm",
		"DOCSTYLE_JOBS":          "6",
		"DOCSTYLE_DRY_RUN":       "1",
		"DOCSTYLE_VERIFY_FENCES": "false",
		"DOCSTYLE_DISABLE":       "DS002,",
		"DOCSTYLE_FORMAT":        "",
	}))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.Equal(t, 6, cfg.Jobs)
	assert.True(t, cfg.DryRun)
	assert.False(t, cfg.FenceVerification())
	assert.Equal(t, []string{"DS002"}, cfg.DisableRules)
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestLoadFromLookup_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"DOCSTYLE_JOBS":   "many",
		"DOCSTYLE_STRICT": "yes please",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := loadFromLookup(config.NewConfig(), lookupFrom(map[string]string{name: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoadFromLookup_NilConfig(t *testing.T) {
	t.Parallel()

	assert.NoError(t, loadFromLookup(nil, lookupFrom(map[string]string{"DOCSTYLE_FIX": "x"})))
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.NotEmpty(t, vars)
	for _, ev := range vars {
		assert.True(t, strings.HasPrefix(ev.Name, EnvPrefix), ev.Name)
		assert.NotEmpty(t, ev.Description, ev.Name)
	}

	vars[0].Name = "changed"
	assert.NotEqual(t, "changed", ListEnvVars()[0].Name)
}

func TestParseList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b c", "d"}, parseList(" a ,b c,,d, "))
	assert.Nil(t, parseList(" , "))
}
