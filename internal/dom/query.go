package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// QuerySelector returns the first element under root (root included) that
// matches selector, or nil when nothing matches. A malformed selector is an error.
func QuerySelector(root *html.Node, selector string) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	if root == nil {
		return nil, nil
	}
	return sel.MatchFirst(root), nil
}

// QuerySelectorAll returns every element under root (root included) that
// matches selector, in document order.
func QuerySelectorAll(root *html.Node, selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	if root == nil {
		return nil, nil
	}
	return sel.MatchAll(root), nil
}
