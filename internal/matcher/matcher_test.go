package matcher

import (
	"errors"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

func fixture(t *testing.T) (div, span *html.Node) {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(`<div id="x" class="a b"><span></span></div>`))
	require.NoError(t, err)
	div = cascadia.MustCompile("div").MatchFirst(doc)
	span = cascadia.MustCompile("span").MatchFirst(doc)
	require.NotNil(t, div)
	require.NotNil(t, span)
	return div, span
}

func TestMatches(t *testing.T) {
	div, span := fixture(t)

	tests := []struct {
		name string
		spec Spec
		node *html.Node
		want bool
	}{
		{"unset never matches", Spec{}, div, false},
		{"none never matches", None(), div, false},
		{"blank selector never matches", Selector("  "), div, false},
		{"empty list never matches", List(), div, false},
		{"selector match", Selector("div.a"), div, true},
		{"selector miss", Selector("div.c"), div, false},
		{"selector group", Selector("p, span"), span, true},
		{"list selector entry", Selectors("p", "#x"), div, true},
		{"list node entry", List(NodeEntry(span)), span, true},
		{"list node entry is identity", List(NodeEntry(span)), div, false},
		{"list mixed", List(SelectorEntry("p"), NodeEntry(div)), div, true},
		{"predicate true", Predicate(func(n *html.Node) bool { return n.Data == "span" }), span, true},
		{"predicate false", Predicate(func(n *html.Node) bool { return n.Data == "span" }), div, false},
		{"nil predicate", Predicate(nil), div, false},
		{"nil node", Selector("div"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Matches(tt.node, tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesMalformedSelector(t *testing.T) {
	div, _ := fixture(t)

	for _, spec := range []Spec{Selector("div["), Selectors("p", "div[")} {
		_, err := Matches(div, spec)
		require.Error(t, err)

		var selErr *SelectorError
		require.True(t, errors.As(err, &selErr), "want *SelectorError, got %T", err)
		assert.Equal(t, "div[", selErr.Selector)
		assert.Error(t, Validate(spec))
	}
}

func TestListStopsAtFirstMatch(t *testing.T) {
	div, _ := fixture(t)

	// the malformed entry after a match is never compiled
	ok, err := Matches(div, Selectors("div", "div["))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSpecAccessors(t *testing.T) {
	assert.True(t, Spec{}.IsZero())
	assert.False(t, None().IsZero())
	assert.Equal(t, KindSelector, Selector("svg").Kind())
	assert.Equal(t, "svg", Selector("svg").SelectorString())
	assert.Equal(t, `list["svg", "iframe"]`, Selectors("svg", "iframe").String())
	assert.Len(t, Selectors("svg", "iframe").Entries(), 2)
}

func TestUnmarshalYAML(t *testing.T) {
	var cfg struct {
		Exclude        Spec `yaml:"exclude"`
		ExcludeSubTree Spec `yaml:"exclude_subtree"`
		Empty          Spec `yaml:"empty"`
		Missing        Spec `yaml:"missing"`
	}
	src := "exclude: svg\nexclude_subtree: [svg, iframe]\nempty: []\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))

	assert.Equal(t, Selector("svg"), cfg.Exclude)
	assert.Equal(t, Selectors("svg", "iframe"), cfg.ExcludeSubTree)
	assert.Equal(t, KindNone, cfg.Empty.Kind())
	assert.True(t, cfg.Missing.IsZero())
}

func TestUnmarshalYAMLRejectsMapping(t *testing.T) {
	var cfg struct {
		Exclude Spec `yaml:"exclude"`
	}
	err := yaml.Unmarshal([]byte("exclude:\n  tag: svg\n"), &cfg)
	assert.Error(t, err)
}

func TestMarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(map[string]Spec{"exclude_subtree": Selectors("svg", "iframe")})
	require.NoError(t, err)
	assert.Equal(t, "exclude_subtree:\n    - svg\n    - iframe\n", string(out))

	_, err = yaml.Marshal(map[string]Spec{"x": List(NodeEntry(&html.Node{}))})
	assert.Error(t, err)
}
