package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/docstyle/pkg/config"
)

// merge layers override on top of base and returns a new Config. Neither
// input is modified.
//   - Scalars: override wins when set (non-zero).
//   - Pointer fields: override wins when non-nil, so false can be set.
//   - Plain booleans: override can only switch them on.
//   - Rules: deep merge per rule, options merged per key.
//   - Slices: override replaces base when non-nil.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.VerifyFences != nil {
		verify := *override.VerifyFences
		result.VerifyFences = &verify
	}
	if override.Backups.Enabled != nil {
		enabled := *override.Backups.Enabled
		result.Backups.Enabled = &enabled
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	result.Fix = result.Fix || override.Fix
	result.DryRun = result.DryRun || override.DryRun
	result.NoBackups = result.NoBackups || override.NoBackups
	result.Strict = result.Strict || override.Strict
	result.NoContext = result.NoContext || override.NoContext

	result.Rules = mergeRules(result.Rules, override.Rules)

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.EnableRules != nil {
		result.EnableRules = slices.Clone(override.EnableRules)
	}
	if override.DisableRules != nil {
		result.DisableRules = slices.Clone(override.DisableRules)
	}
	if override.FixRules != nil {
		result.FixRules = slices.Clone(override.FixRules)
	}

	return result
}

// mergeRules merges override into a copy of base.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	result := make(map[string]config.RuleConfig, len(base)+len(override))
	for key, val := range base {
		result[key] = val.Clone()
	}
	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val.Clone()
		}
	}
	return result
}

// mergeRuleConfig layers override on base. base must already be a copy the
// caller owns.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base
	over := override.Clone()

	if over.Enabled != nil {
		result.Enabled = over.Enabled
	}
	if over.Severity != nil {
		result.Severity = over.Severity
	}
	if over.AutoFix != nil {
		result.AutoFix = over.AutoFix
	}
	if over.Options != nil {
		if result.Options == nil {
			result.Options = make(map[string]any, len(over.Options))
		}
		maps.Copy(result.Options, over.Options)
	}

	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}
