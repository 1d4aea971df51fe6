package configloader

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"path"
	"slices"
	"strings"

	"github.com/yaklabco/docstyle/pkg/config"
	"github.com/yaklabco/docstyle/pkg/lint"
)

// ErrInvalidConfig matches every configuration error returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.DS001.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// Is reports ErrInvalidConfig as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues such as unknown rules.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the first error, or nil.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &r.Errors[0]
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks cfg against the rules in registry. A nil registry means
// lint.DefaultRegistry.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	switch cfg.Flavor {
	case "", config.FlavorCommonMark, config.FlavorGFM:
	default:
		result.errorf("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	if cfg.SeverityDefault != "" && !config.Severity(cfg.SeverityDefault).IsValid() {
		result.errorf("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault)
	}

	switch cfg.Format {
	case "", config.FormatText, config.FormatJSON, config.FormatDiff:
	default:
		result.errorf("format", cfg.Format, "invalid format %q; must be one of: text, json, diff", cfg.Format)
	}

	if !cfg.RuleFormat.IsValid() {
		result.errorf("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}

	if cfg.Jobs < 0 {
		result.errorf("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	switch cfg.Backups.Mode {
	case "", config.BackupModeSidecar, config.BackupModeNone:
	default:
		result.errorf("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	for i, pattern := range cfg.Ignore {
		if _, err := path.Match(pattern, ""); err != nil {
			result.errorf(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	validateRules(cfg, registry, result)
	validateRuleLists(cfg, registry, result)

	return result
}

func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		ruleCfg := cfg.Rules[key]
		field := "rules." + key

		if ruleCfg.Severity != nil && !config.Severity(*ruleCfg.Severity).IsValid() {
			result.errorf(field+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity)
		}

		_, rule, found := registry.Resolve(key)
		if !found {
			result.warnf(field, key, "unknown rule %q; it will be ignored", key)
			continue
		}

		describer, ok := rule.(lint.OptionDescriber)
		if !ok {
			continue
		}
		defaults := describer.DefaultOptions()
		for _, name := range slices.Sorted(maps.Keys(ruleCfg.Options)) {
			def, known := defaults[name]
			if !known {
				result.warnf(field+".options."+name, name, "unknown option %q for %s", name, rule.Name())
				continue
			}
			if msg := checkOptionValue(def, ruleCfg.Options[name]); msg != "" {
				result.errorf(field+".options."+name, ruleCfg.Options[name], "%s", msg)
			}
		}
	}
}

// checkOptionValue compares value against the type of the rule's default.
// Integer options must be positive; every built-in width or offset is.
func checkOptionValue(def, value any) string {
	switch def.(type) {
	case int:
		n, ok := asInt(value)
		if !ok {
			return fmt.Sprintf("expected an integer, got %v", value)
		}
		if n <= 0 {
			return fmt.Sprintf("must be a positive integer, got %d", n)
		}
	case string:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("expected a string, got %v", value)
		}
		if s == "" {
			return "must not be empty"
		}
	case bool:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("expected true or false, got %v", value)
		}
	}
	return ""
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

func validateRuleLists(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	lists := []struct {
		field string
		keys  []string
	}{
		{"enable", cfg.EnableRules},
		{"disable", cfg.DisableRules},
		{"fix_rules", cfg.FixRules},
	}
	for _, list := range lists {
		for _, key := range list.keys {
			if _, _, found := registry.Resolve(key); !found {
				result.warnf(list.field, key, "unknown rule %q; it will be ignored", key)
			}
		}
	}
}

// ValidateWithFile validates cfg and tags every finding with filePath.
func ValidateWithFile(cfg *config.Config, registry *lint.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
