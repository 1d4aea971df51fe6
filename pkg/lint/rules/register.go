package rules

import (
	"github.com/yaklabco/docstyle/pkg/lint"
	"github.com/yaklabco/docstyle/pkg/style"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.MustRegister(NewAdmonitionIndentRule()) // DS001
	registry.MustRegister(NewStrictTabSpacingRule()) // DS002
}

// RegisterCheckAliases lets configuration refer to the rules by the short
// check names that appear in checker output.
func RegisterCheckAliases(registry *lint.Registry) {
	registry.RegisterAlias(style.CheckAdmonition, "DS001")
	registry.RegisterAlias(style.CheckTabSpacing, "DS002")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterCheckAliases(lint.DefaultRegistry)
}
