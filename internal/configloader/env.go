package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/docstyle/pkg/config"
)

// EnvPrefix is the prefix for all docstyle environment variables.
const EnvPrefix = "DOCSTYLE_"

// EnvVar describes one supported environment variable.
type EnvVar struct {
	// Name is the full variable name, e.g. DOCSTYLE_FLAVOR.
	Name string

	// Description is a one-line summary for help output.
	Description string

	apply func(cfg *config.Config, value string) error
}

func stringVar(suffix, desc string, set func(*config.Config, string)) EnvVar {
	return EnvVar{
		Name:        EnvPrefix + suffix,
		Description: desc,
		apply: func(cfg *config.Config, value string) error {
			set(cfg, value)
			return nil
		},
	}
}

func boolVar(suffix, desc string, set func(*config.Config, bool)) EnvVar {
	name := EnvPrefix + suffix
	return EnvVar{
		Name:        name,
		Description: desc,
		apply: func(cfg *config.Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, value)
			}
			set(cfg, b)
			return nil
		},
	}
}

func listVar(suffix, desc string, set func(*config.Config, []string)) EnvVar {
	return EnvVar{
		Name:        EnvPrefix + suffix,
		Description: desc,
		apply: func(cfg *config.Config, value string) error {
			set(cfg, parseList(value))
			return nil
		},
	}
}

// envVars is ordered so listings and error reporting are stable.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []EnvVar{
	stringVar("FLAVOR", "Markdown flavor for fence verification: commonmark or gfm",
		func(c *config.Config, v string) { c.Flavor = config.Flavor(v) }),
	stringVar("SEVERITY_DEFAULT", "Default severity: error, warning, or info",
		func(c *config.Config, v string) { c.SeverityDefault = v }),
	boolVar("FIX", "Apply fixes: true or false",
		func(c *config.Config, v bool) { c.Fix = v }),
	boolVar("DRY_RUN", "Compute fixes without writing: true or false",
		func(c *config.Config, v bool) { c.DryRun = v }),
	{
		Name:        EnvPrefix + "JOBS",
		Description: "Number of parallel workers (0 = auto)",
		apply: func(c *config.Config, v string) error {
			jobs, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer for %sJOBS: %q", EnvPrefix, v)
			}
			c.Jobs = jobs
			return nil
		},
	},
	stringVar("FORMAT", "Output format: text, json, or diff",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	stringVar("RULE_FORMAT", "Rule identifiers in output: name, id, or combined",
		func(c *config.Config, v string) { c.RuleFormat = config.RuleFormat(v) }),
	boolVar("BACKUPS_ENABLED", "Write backups when fixing: true or false",
		func(c *config.Config, v bool) { c.Backups.Enabled = &v }),
	stringVar("BACKUPS_MODE", "Backup mode: sidecar or none",
		func(c *config.Config, v string) { c.Backups.Mode = v }),
	boolVar("NO_BACKUPS", "Disable backups: true or false",
		func(c *config.Config, v bool) { c.NoBackups = v }),
	boolVar("VERIFY_FENCES", "Refuse fixes that change code fences: true or false",
		func(c *config.Config, v bool) { c.VerifyFences = &v }),
	boolVar("STRICT", "Fail on warnings: true or false",
		func(c *config.Config, v bool) { c.Strict = v }),
	listVar("IGNORE", "Comma-separated glob patterns to skip",
		func(c *config.Config, v []string) { c.Ignore = v }),
	listVar("ENABLE", "Comma-separated rules to enable",
		func(c *config.Config, v []string) { c.EnableRules = v }),
	listVar("DISABLE", "Comma-separated rules to disable",
		func(c *config.Config, v []string) { c.DisableRules = v }),
}

// LoadFromEnv applies DOCSTYLE_* overrides to cfg. Unset and empty
// variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}
	for _, ev := range envVars {
		value, ok := lookup(ev.Name)
		if !ok || value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return err
		}
	}
	return nil
}

// ListEnvVars returns every supported environment variable.
func ListEnvVars() []EnvVar {
	out := make([]EnvVar, len(envVars))
	copy(out, envVars)
	return out
}

// parseList splits a comma-separated value, trimming and dropping blanks.
func parseList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
