package rules

import (
	"errors"
	"testing"

	"github.com/harrison/htmlinspector/internal/bus"
	"github.com/harrison/htmlinspector/internal/matcher"
	"github.com/harrison/htmlinspector/internal/reporter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func noop(bus.Bus, *reporter.Reporter, any) error { return nil }

func TestRegistryAdd(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(Rule{Name: "b", Func: noop}))
	require.NoError(t, reg.Add(Rule{Name: "a", Func: noop}))
	require.NoError(t, reg.Add(Rule{Name: "b", Func: noop, Description: "replaced"}))

	assert.Equal(t, []string{"b", "a"}, reg.Names())
	rule, ok := reg.Get("b")
	require.True(t, ok)
	assert.Equal(t, "replaced", rule.Description)
	assert.True(t, reg.Has("a"))
	assert.False(t, reg.Has("c"))
	assert.Len(t, reg.List(), 2)
}

func TestRegistryAddValidation(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.Add(Rule{Func: noop}))
	assert.Error(t, reg.Add(Rule{Name: "x"}))
	assert.Empty(t, reg.Names())
}

func TestRegistryExtend(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(Rule{Name: "r", Func: noop, Config: UniqueElementsConfig{Elements: []string{"title"}}}))

	err := reg.Extend("r", func(config any) any {
		cfg := config.(UniqueElementsConfig)
		cfg.Elements = append(cfg.Elements, "h1")
		return cfg
	})
	require.NoError(t, err)

	rule, _ := reg.Get("r")
	assert.Equal(t, []string{"title", "h1"}, rule.Config.(UniqueElementsConfig).Elements)
	assert.Error(t, reg.Extend("missing", func(c any) any { return c }))
}

func TestRegistryConfigure(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(Rule{Name: ScriptPlacement, Func: noop, Config: ScriptPlacementConfig{}}))
	require.NoError(t, reg.Add(Rule{Name: "plain", Func: noop}))

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("whitelist: [script.analytics]\n"), &node))
	require.NoError(t, reg.Configure(ScriptPlacement, node.Content[0]))

	rule, _ := reg.Get(ScriptPlacement)
	assert.Equal(t, matcher.Selectors("script.analytics"), rule.Config.(ScriptPlacementConfig).Whitelist)

	assert.Error(t, reg.Configure("plain", node.Content[0]))
	assert.Error(t, reg.Configure("missing", node.Content[0]))
}

func TestSelection(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"one", "two", "three"} {
		require.NoError(t, reg.Add(Rule{Name: name, Func: noop}))
	}

	assert.True(t, Selection{}.IsZero())
	assert.True(t, Selection{}.IsAll())
	assert.False(t, All().IsZero())
	assert.Equal(t, []string{"one", "two", "three"}, All().Effective(reg))
	assert.Equal(t, []string{"three", "nope", "one"}, Only("three", "nope", "one").Effective(reg))
	assert.Empty(t, Only().Effective(reg))
	assert.Equal(t, []string{"nope"}, Only("three", "nope").Unknown(reg))
	assert.Equal(t, "all", All().String())
	assert.Equal(t, "a,b", Only("a", "b").String())
}

func TestSelectionYAML(t *testing.T) {
	var cfg struct {
		All     Selection `yaml:"all"`
		List    Selection `yaml:"list"`
		Missing Selection `yaml:"missing"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("all: all\nlist: [duplicate-ids, script-placement]\n"), &cfg))

	assert.True(t, cfg.All.IsAll())
	assert.False(t, cfg.All.IsZero())
	assert.Equal(t, []string{"duplicate-ids", "script-placement"}, cfg.List.Names())
	assert.True(t, cfg.Missing.IsZero())

	err := yaml.Unmarshal([]byte("all: {a: 1}\n"), &cfg)
	assert.Error(t, err)
}

func TestActivate(t *testing.T) {
	calls := map[string]int{}
	var order []string
	reg := NewRegistry()
	for _, name := range []string{"one", "two", "three"} {
		name := name
		require.NoError(t, reg.Add(Rule{Name: name, Config: name + "-config", Func: func(b bus.Bus, r *reporter.Reporter, config any) error {
			calls[name]++
			order = append(order, name)
			assert.Equal(t, name+"-config", config)
			return nil
		}}))
	}

	t.Run("all sentinel activates every rule once", func(t *testing.T) {
		calls, order = map[string]int{}, nil
		activated, err := Activate(All(), bus.NewListener(), reporter.New(), reg)
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two", "three"}, activated)
		assert.Equal(t, map[string]int{"one": 1, "two": 1, "three": 1}, calls)
	})

	t.Run("explicit list in list order, unknown names skipped", func(t *testing.T) {
		calls, order = map[string]int{}, nil
		activated, err := Activate(Only("three", "missing", "one"), bus.NewListener(), reporter.New(), reg)
		require.NoError(t, err)
		assert.Equal(t, []string{"three", "one"}, activated)
		assert.Equal(t, []string{"three", "one"}, order)
		assert.Zero(t, calls["two"])
	})
}

func TestActivateFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	laterCalled := false
	reg := NewRegistry()
	require.NoError(t, reg.Add(Rule{Name: "bad", Func: func(bus.Bus, *reporter.Reporter, any) error { return boom }}))
	require.NoError(t, reg.Add(Rule{Name: "later", Func: func(bus.Bus, *reporter.Reporter, any) error {
		laterCalled = true
		return nil
	}}))

	_, err := Activate(All(), bus.NewListener(), reporter.New(), reg)
	require.Error(t, err)

	var actErr *ActivationError
	require.ErrorAs(t, err, &actErr)
	assert.Equal(t, "bad", actErr.Rule)
	assert.ErrorIs(t, err, boom)
	assert.False(t, laterCalled)
}
