package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docstyle/pkg/lint"
)

type stubRule struct {
	lint.BaseRule
	apply func(ctx *lint.RuleContext) ([]lint.Diagnostic, error)
}

func (r *stubRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if r.apply == nil {
		return nil, nil
	}
	return r.apply(ctx)
}

func newStubRule(id, name string, fixable bool) *stubRule {
	return &stubRule{BaseRule: lint.NewBaseRule(id, name, "test rule "+id, nil, fixable)}
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	registry := lint.NewRegistry()
	require.NoError(t, registry.Register(newStubRule("DS002", "second", false)))
	require.NoError(t, registry.Register(newStubRule("DS001", "first", true)))
	registry.RegisterAlias("one", "DS001")

	assert.Equal(t, []string{"DS001", "DS002"}, registry.IDs())

	rules := registry.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "DS001", rules[0].ID())

	for _, key := range []string{"DS001", "first", "one"} {
		id, rule, ok := registry.Resolve(key)
		require.True(t, ok, key)
		assert.Equal(t, "DS001", id)
		assert.Equal(t, "first", rule.Name())
	}

	_, _, ok := registry.Resolve("missing")
	assert.False(t, ok)

	_, ok = registry.GetByID("first")
	assert.False(t, ok, "GetByID must not match names")
}

func TestRegistry_NameCollision(t *testing.T) {
	registry := lint.NewRegistry()
	require.NoError(t, registry.Register(newStubRule("DS001", "shared", false)))

	err := registry.Register(newStubRule("DS009", "shared", false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DS001")

	assert.Panics(t, func() { registry.MustRegister(newStubRule("DS010", "shared", false)) })
}

func TestRegistry_ReplaceByID(t *testing.T) {
	registry := lint.NewRegistry()
	registry.MustRegister(newStubRule("DS001", "old-name", false))
	registry.MustRegister(newStubRule("DS001", "new-name", false))

	_, ok := registry.Get("old-name")
	assert.False(t, ok)
	rule, ok := registry.Get("new-name")
	require.True(t, ok)
	assert.Equal(t, "DS001", rule.ID())
}

func TestRegistry_CanonicalIDs(t *testing.T) {
	registry := lint.NewRegistry()
	registry.MustRegister(newStubRule("DS001", "first", false))

	assert.Equal(t, []string{"DS001", "DS001", "nope"}, registry.CanonicalIDs([]string{"first", "DS001", "nope"}))
	assert.Nil(t, registry.CanonicalIDs(nil))
}
