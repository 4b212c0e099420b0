package inspector

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"

	"github.com/harrison/htmlinspector/internal/matcher"
	"github.com/harrison/htmlinspector/internal/reporter"
	"github.com/harrison/htmlinspector/internal/rules"
)

// ErrUnsupportedConfig is returned by Resolve for values that are neither a
// Config nor one of its shorthands.
var ErrUnsupportedConfig = errors.New("unsupported inspection config")

// CompleteFunc receives the warnings of a finished inspection.
type CompleteFunc func(warnings []reporter.Warning)

// Root names the subtree an inspection starts from: either a selector looked
// up in the inspector's document or a node used as is.
type Root struct {
	Selector string
	Node     *html.Node
}

// RootSelector returns a Root resolved by selector.
func RootSelector(sel string) Root {
	return Root{Selector: sel}
}

// RootNode returns a Root that is n itself.
func RootNode(n *html.Node) Root {
	return Root{Node: n}
}

// IsZero reports whether the root is unset.
func (r Root) IsZero() bool {
	return r.Node == nil && r.Selector == ""
}

// String describes the root for logs.
func (r Root) String() string {
	switch {
	case r.Node != nil:
		return "node <" + r.Node.Data + ">"
	case r.Selector != "":
		return fmt.Sprintf("%q", r.Selector)
	default:
		return "unset"
	}
}

// Config controls a single inspection. Zero-valued fields are unset and
// inherit from the inspector's defaults during resolution.
type Config struct {
	UseRules       rules.Selection
	DOMRoot        Root
	Exclude        matcher.Spec
	ExcludeSubTree matcher.Spec
	OnComplete     CompleteFunc
}

// Resolve turns raw into a complete Config, filling unset keys from defaults.
//
// Accepted shorthands: nil (defaults only), a string or *html.Node (the DOM
// root), a []string (the rules to use) and a completion function. A Config
// or *Config is taken as a partial configuration. The merge is shallow: a
// set key at the call site replaces the default key wholesale.
func Resolve(raw any, defaults Config) (Config, error) {
	partial, err := normalize(raw)
	if err != nil {
		return Config{}, err
	}
	return merge(defaults, partial), nil
}

func normalize(raw any) (Config, error) {
	switch v := raw.(type) {
	case nil:
		return Config{}, nil
	case string:
		return Config{DOMRoot: RootSelector(v)}, nil
	case *html.Node:
		return Config{DOMRoot: RootNode(v)}, nil
	case []string:
		return Config{UseRules: rules.Only(v...)}, nil
	case func([]reporter.Warning):
		return Config{OnComplete: v}, nil
	case CompleteFunc:
		return Config{OnComplete: v}, nil
	case Config:
		return v, nil
	case *Config:
		if v == nil {
			return Config{}, nil
		}
		return *v, nil
	default:
		return Config{}, fmt.Errorf("%w: %T", ErrUnsupportedConfig, raw)
	}
}

func merge(base, over Config) Config {
	out := base
	if !over.UseRules.IsZero() {
		out.UseRules = over.UseRules
	}
	if !over.DOMRoot.IsZero() {
		out.DOMRoot = over.DOMRoot
	}
	if !over.Exclude.IsZero() {
		out.Exclude = over.Exclude
	}
	if !over.ExcludeSubTree.IsZero() {
		out.ExcludeSubTree = over.ExcludeSubTree
	}
	if over.OnComplete != nil {
		out.OnComplete = over.OnComplete
	}
	return out
}
