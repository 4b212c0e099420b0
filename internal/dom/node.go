// Package dom provides read-only helpers over golang.org/x/net/html nodes.
//
// Nothing in this package mutates a node. Slices returned by the helpers are
// fresh copies taken at call time, so callers may hold them while the tree
// keeps its own structure.
package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Attribute is a single name/value pair in source order.
type Attribute struct {
	Name  string
	Value string
}

// IsElement reports whether n is a non-nil element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// TagName returns the lowercased tag name of an element, or "" for other nodes.
func TagName(n *html.Node) string {
	if !IsElement(n) {
		return ""
	}
	return strings.ToLower(n.Data)
}

// Attr returns the value of the un-namespaced attribute key.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// ID returns the id attribute value, or "" when absent.
func ID(n *html.Node) string {
	id, _ := Attr(n, "id")
	return id
}

// Classes returns the class tokens of n in document order.
// Duplicate tokens are kept. Tokens are separated by ASCII whitespace only,
// as selector class matching does, so "a\u00a0b" is a single token.
func Classes(n *html.Node) []string {
	class, ok := Attr(n, "class")
	if !ok {
		return nil
	}
	return strings.FieldsFunc(class, isASCIISpace)
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// Attributes returns every attribute of n in source order.
// Namespaced attributes are named "ns:key" (e.g. "xlink:href").
func Attributes(n *html.Node) []Attribute {
	if n == nil || len(n.Attr) == 0 {
		return nil
	}
	attrs := make([]Attribute, 0, len(n.Attr))
	for _, a := range n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		attrs = append(attrs, Attribute{Name: name, Value: a.Val})
	}
	return attrs
}

// Children returns a snapshot of n's direct children, of every node type.
func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

// Parents returns the element ancestors of n, nearest first.
func Parents(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var parents []*html.Node
	for p := n.Parent; p != nil; p = p.Parent {
		if IsElement(p) {
			parents = append(parents, p)
		}
	}
	return parents
}

// StartTag renders the opening tag of an element, e.g. `<div id="x" class="a b">`.
// Non-element nodes render as their text content, trimmed.
func StartTag(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	if !IsElement(n) {
		return strings.TrimSpace(n.Data)
	}

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(TagName(n))
	for _, a := range Attributes(n) {
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	return b.String()
}
