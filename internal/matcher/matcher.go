// Package matcher decides whether a document node is included in, or excluded
// from, an inspection.
//
// A Spec is one of three forms: a CSS selector, a list whose entries are
// selectors or explicit node references, or a predicate function. The zero
// Spec is "unset" and, like None, never matches.
package matcher

import (
	"fmt"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Kind identifies which form a Spec takes.
type Kind int

const (
	// KindUnset is the zero Spec. It never matches and is replaced by the
	// default when configurations are merged.
	KindUnset Kind = iota
	// KindNone explicitly matches nothing.
	KindNone
	// KindSelector matches nodes selected by a CSS selector.
	KindSelector
	// KindList matches nodes selected by any entry of a list.
	KindList
	// KindPredicate matches nodes for which a function returns true.
	KindPredicate
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindNone:
		return "none"
	case KindSelector:
		return "selector"
	case KindList:
		return "list"
	case KindPredicate:
		return "predicate"
	default:
		return "unknown"
	}
}

// PredicateFunc reports whether a node matches.
type PredicateFunc func(n *html.Node) bool

// Entry is one element of a List spec: a selector or a node reference.
type Entry struct {
	Selector string
	Node     *html.Node
}

// Spec is a tagged node matcher. Build one with Selector, List, Predicate or None.
type Spec struct {
	kind      Kind
	selector  string
	entries   []Entry
	predicate PredicateFunc
}

// Selector returns a Spec matching nodes selected by sel.
func Selector(sel string) Spec {
	return Spec{kind: KindSelector, selector: sel}
}

// Selectors is shorthand for a List made only of selector entries.
func Selectors(sels ...string) Spec {
	entries := make([]Entry, 0, len(sels))
	for _, s := range sels {
		entries = append(entries, SelectorEntry(s))
	}
	return List(entries...)
}

// List returns a Spec matching nodes matched by any of entries.
func List(entries ...Entry) Spec {
	return Spec{kind: KindList, entries: append([]Entry(nil), entries...)}
}

// Predicate returns a Spec matching nodes for which fn returns true.
func Predicate(fn PredicateFunc) Spec {
	return Spec{kind: KindPredicate, predicate: fn}
}

// None returns a Spec that never matches. Unlike the zero Spec it is set,
// so it overrides a default during configuration merging.
func None() Spec {
	return Spec{kind: KindNone}
}

// SelectorEntry returns a list entry holding a selector.
func SelectorEntry(sel string) Entry {
	return Entry{Selector: sel}
}

// NodeEntry returns a list entry holding an explicit node reference.
func NodeEntry(n *html.Node) Entry {
	return Entry{Node: n}
}

// Kind returns the form of the Spec.
func (s Spec) Kind() Kind {
	return s.kind
}

// IsZero reports whether the Spec is unset.
func (s Spec) IsZero() bool {
	return s.kind == KindUnset
}

// SelectorString returns the selector of a KindSelector spec.
func (s Spec) SelectorString() string {
	return s.selector
}

// Entries returns a copy of the entries of a KindList spec.
func (s Spec) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// String describes the Spec for logs and error messages.
func (s Spec) String() string {
	switch s.kind {
	case KindSelector:
		return fmt.Sprintf("selector(%q)", s.selector)
	case KindList:
		parts := make([]string, 0, len(s.entries))
		for _, e := range s.entries {
			if e.Node != nil {
				parts = append(parts, "<node>")
			} else {
				parts = append(parts, fmt.Sprintf("%q", e.Selector))
			}
		}
		return "list[" + strings.Join(parts, ", ") + "]"
	default:
		return s.kind.String()
	}
}

// SelectorError reports a selector that could not be compiled.
type SelectorError struct {
	Selector string
	Err      error
}

// Error implements the error interface for SelectorError.
func (e *SelectorError) Error() string {
	return fmt.Sprintf("malformed selector %q: %v", e.Selector, e.Err)
}

// Unwrap returns the underlying compile error.
func (e *SelectorError) Unwrap() error {
	return e.Err
}

// Matches reports whether n is matched by spec.
//
// Unset and None specs, blank selectors and empty lists never match. A selector that fails to compile yields a
// *SelectorError; callers treat it as fatal for the whole inspection.
func Matches(n *html.Node, spec Spec) (bool, error) {
	switch spec.kind {
	case KindSelector:
		return matchSelector(n, spec.selector)
	case KindList:
		for _, e := range spec.entries {
			if e.Node != nil {
				if e.Node == n {
					return true, nil
				}
				continue
			}
			ok, err := matchSelector(n, e.Selector)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case KindPredicate:
		if spec.predicate == nil {
			return false, nil
		}
		return spec.predicate(n), nil
	default:
		return false, nil
	}
}

// Validate compiles every selector in spec without matching anything.
func Validate(spec Spec) error {
	switch spec.kind {
	case KindSelector:
		if strings.TrimSpace(spec.selector) == "" {
			return nil
		}
		_, err := compile(spec.selector)
		return err
	case KindList:
		for _, e := range spec.entries {
			if e.Node != nil || strings.TrimSpace(e.Selector) == "" {
				continue
			}
			if _, err := compile(e.Selector); err != nil {
				return err
			}
		}
	}
	return nil
}

func matchSelector(n *html.Node, sel string) (bool, error) {
	if strings.TrimSpace(sel) == "" {
		return false, nil
	}
	compiled, err := compile(sel)
	if err != nil {
		return false, err
	}
	if n == nil {
		return false, nil
	}
	return compiled.Match(n), nil
}

// compiled selectors, keyed by source text
var cache sync.Map

func compile(sel string) (cascadia.Selector, error) {
	if cached, ok := cache.Load(sel); ok {
		return cached.(cascadia.Selector), nil
	}
	compiled, err := cascadia.Compile(sel)
	if err != nil {
		return nil, &SelectorError{Selector: sel, Err: err}
	}
	cache.Store(sel, compiled)
	return compiled, nil
}
