package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func first(t *testing.T, root *html.Node, selector string) *html.Node {
	t.Helper()
	n, err := QuerySelector(root, selector)
	require.NoError(t, err)
	require.NotNil(t, n, "no match for %q", selector)
	return n
}

func TestIsElement(t *testing.T) {
	doc := parse(t, `<p>text</p>`)
	p := first(t, doc, "p")

	assert.True(t, IsElement(p))
	assert.False(t, IsElement(doc), "document node")
	assert.False(t, IsElement(p.FirstChild), "text node")
	assert.False(t, IsElement(nil))
}

func TestTagNameLowercases(t *testing.T) {
	doc := parse(t, `<svg><foreignObject></foreignObject></svg>`)
	fo := first(t, doc, "svg > *")

	assert.Equal(t, "foreignobject", TagName(fo))
	assert.Equal(t, "", TagName(doc))
}

func TestClassesKeepsOrderAndDuplicates(t *testing.T) {
	doc := parse(t, "<div class=\"  b a\tb  \"></div>")
	div := first(t, doc, "div")

	assert.Equal(t, []string{"b", "a", "b"}, Classes(div))
	assert.Nil(t, Classes(first(t, doc, "body")))
}

func TestClassesSplitOnASCIIWhitespaceOnly(t *testing.T) {
	doc := parse(t, "<div class=\"a\u00a0b\fc\"></div>")
	div := first(t, doc, "div")

	assert.Equal(t, []string{"a\u00a0b", "c"}, Classes(div))

	// class tokens agree with selector matching on the same node
	n, err := QuerySelector(doc, ".a")
	require.NoError(t, err)
	assert.Nil(t, n)
	n, err = QuerySelector(doc, ".c")
	require.NoError(t, err)
	assert.Same(t, div, n)
}

func TestIDAndAttributes(t *testing.T) {
	doc := parse(t, `<a id="home" href="/" data-x="1">home</a>`)
	a := first(t, doc, "a")

	assert.Equal(t, "home", ID(a))
	assert.Equal(t, []Attribute{
		{Name: "id", Value: "home"},
		{Name: "href", Value: "/"},
		{Name: "data-x", Value: "1"},
	}, Attributes(a))
}

func TestAttributesNamespaced(t *testing.T) {
	doc := parse(t, `<svg><use xlink:href="#icon"></use></svg>`)
	use := first(t, doc, "use")

	attrs := Attributes(use)
	require.Len(t, attrs, 1)
	assert.Equal(t, "xlink:href", attrs[0].Name)
	assert.Equal(t, "#icon", attrs[0].Value)
}

func TestChildrenIsSnapshot(t *testing.T) {
	doc := parse(t, `<ul><li>1</li><li>2</li></ul>`)
	ul := first(t, doc, "ul")

	children := Children(ul)
	require.Len(t, children, 2)
	ul.RemoveChild(children[1])
	assert.Len(t, children, 2)
}

func TestParents(t *testing.T) {
	doc := parse(t, `<div><p><em>x</em></p></div>`)
	em := first(t, doc, "em")

	var names []string
	for _, p := range Parents(em) {
		names = append(names, TagName(p))
	}
	assert.Equal(t, []string{"p", "div", "body", "html"}, names)
}

func TestStartTag(t *testing.T) {
	doc := parse(t, `<div id="x" class="a b" title="1 &lt; 2"><span></span></div>`)

	assert.Equal(t, `<div id="x" class="a b" title="1 &lt; 2">`, StartTag(first(t, doc, "div")))
	assert.Equal(t, "<nil>", StartTag(nil))
}

func TestQuerySelector(t *testing.T) {
	doc := parse(t, `<main><p class="lead">a</p><p>b</p></main>`)

	t.Run("first match", func(t *testing.T) {
		n, err := QuerySelector(doc, "p")
		require.NoError(t, err)
		assert.Equal(t, []string{"lead"}, Classes(n))
	})

	t.Run("no match", func(t *testing.T) {
		n, err := QuerySelector(doc, "#missing")
		require.NoError(t, err)
		assert.Nil(t, n)
	})

	t.Run("malformed selector", func(t *testing.T) {
		_, err := QuerySelector(doc, "p[")
		assert.Error(t, err)
	})

	t.Run("all", func(t *testing.T) {
		ps, err := QuerySelectorAll(doc, "main p")
		require.NoError(t, err)
		assert.Len(t, ps, 2)
	})
}
