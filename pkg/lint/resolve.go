package lint

import (
	"slices"

	"github.com/yaklabco/docstyle/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// AutoFix indicates whether this rule's fixes are applied.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules run and how, in rule ID order.
//
// Precedence, lowest first: rule defaults, severity_default, the rules:
// section, then --enable/--disable and --fix-rules. Rule keys in cfg may be
// IDs or names.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	sel := newSelection(registry, cfg)
	for _, rule := range registry.Rules() {
		rr := sel.resolve(rule)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

type selection struct {
	cfg     *config.Config
	rules   map[string]config.RuleConfig
	enable  []string
	disable []string
	fixOnly []string
}

func newSelection(registry *Registry, cfg *config.Config) selection {
	sel := selection{cfg: cfg}
	if cfg == nil {
		return sel
	}

	sel.enable = registry.CanonicalIDs(cfg.EnableRules)
	sel.disable = registry.CanonicalIDs(cfg.DisableRules)
	sel.fixOnly = registry.CanonicalIDs(cfg.FixRules)

	sel.rules = make(map[string]config.RuleConfig, len(cfg.Rules))
	for key, rc := range cfg.Rules {
		id := key
		if canonical, _, ok := registry.Resolve(key); ok {
			id = canonical
		}
		sel.rules[id] = rc
	}
	return sel
}

func (s selection) resolve(rule Rule) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}

	if s.cfg == nil {
		return rr
	}

	if sev := config.Severity(s.cfg.SeverityDefault); sev.IsValid() {
		rr.Severity = sev
	}

	if ruleCfg, ok := s.rules[rule.ID()]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	if slices.Contains(s.enable, rule.ID()) {
		rr.Enabled = true
	}
	if slices.Contains(s.disable, rule.ID()) {
		rr.Enabled = false
	}

	if len(s.fixOnly) > 0 {
		rr.AutoFix = rule.CanFix() && slices.Contains(s.fixOnly, rule.ID())
	}

	if !s.cfg.Fix && !s.cfg.DryRun {
		rr.AutoFix = false
	}

	return rr
}
