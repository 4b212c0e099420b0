// Package traverse walks a document tree once, depth first, and emits the
// inspection events for every element it visits.
package traverse

import (
	"fmt"

	"github.com/harrison/htmlinspector/internal/bus"
	"github.com/harrison/htmlinspector/internal/dom"
	"github.com/harrison/htmlinspector/internal/matcher"
	"golang.org/x/net/html"
)

// Options controls which nodes produce events and which are descended into.
// The two axes are independent: excluding a node's events does not stop
// descent, and excluding its subtree does not silence the node itself.
type Options struct {
	Exclude        matcher.Spec
	ExcludeSubTree matcher.Spec
}

// Walk visits node and its descendants in pre-order, emitting through b.
//
// Non-element nodes (including nil) are ignored entirely. Children are
// snapshotted when their parent is visited. A selector or handler error
// stops the walk and is returned; events already emitted are not undone.
func Walk(node *html.Node, b bus.Bus, opts Options) error {
	if !dom.IsElement(node) {
		return nil
	}

	excluded, err := matcher.Matches(node, opts.Exclude)
	if err != nil {
		return fmt.Errorf("exclude: %w", err)
	}
	if !excluded {
		if err := emitElement(node, b); err != nil {
			return err
		}
	}

	excludedSubtree, err := matcher.Matches(node, opts.ExcludeSubTree)
	if err != nil {
		return fmt.Errorf("exclude subtree: %w", err)
	}
	if excludedSubtree {
		return nil
	}

	for _, child := range dom.Children(node) {
		if err := Walk(child, b, opts); err != nil {
			return err
		}
	}
	return nil
}

// emitElement fires element, id, class and attribute events for node, in that order.
func emitElement(node *html.Node, b bus.Bus) error {
	if err := b.Emit(bus.ElementEvent(dom.TagName(node), node)); err != nil {
		return err
	}
	if id := dom.ID(node); id != "" {
		if err := b.Emit(bus.IDEvent(id, node)); err != nil {
			return err
		}
	}
	for _, class := range dom.Classes(node) {
		if err := b.Emit(bus.ClassEvent(class, node)); err != nil {
			return err
		}
	}
	for _, attr := range dom.Attributes(node) {
		if err := b.Emit(bus.AttributeEvent(attr.Name, attr.Value, node)); err != nil {
			return err
		}
	}
	return nil
}
