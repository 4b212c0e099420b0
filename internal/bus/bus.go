// Package bus carries traversal events from the inspector to rule handlers.
//
// The inspector only ever calls Emit. Rules call Subscribe from their
// activation functions, and the Bus implementation owns dispatch.
package bus

import (
	"fmt"

	"golang.org/x/net/html"
)

// EventType names one event of the fixed inspection vocabulary.
type EventType string

const (
	// BeforeInspect fires once before traversal with the root as Node.
	BeforeInspect EventType = "beforeInspect"
	// Element fires per visited element with the lowercased tag as Name.
	Element EventType = "element"
	// ID fires for an element with a non-empty id, the id as Value.
	ID EventType = "id"
	// Class fires once per class token, the token as Value.
	Class EventType = "class"
	// Attribute fires once per attribute with Name and Value set.
	Attribute EventType = "attribute"
	// AfterInspect fires once after traversal with the root as Node.
	AfterInspect EventType = "afterInspect"
)

// Event is one emission. Node is the element the event is about; for
// BeforeInspect and AfterInspect it is the root, which may be nil.
type Event struct {
	Type  EventType
	Name  string
	Value string
	Node  *html.Node
}

// String renders the event as "type(args)" for logs and test failures.
func (e Event) String() string {
	switch e.Type {
	case Element:
		return fmt.Sprintf("element(%s)", e.Name)
	case ID, Class:
		return fmt.Sprintf("%s(%s)", e.Type, e.Value)
	case Attribute:
		return fmt.Sprintf("attribute(%s,%q)", e.Name, e.Value)
	default:
		return string(e.Type)
	}
}

// Handler receives an event. A returned error aborts the inspection.
type Handler func(Event) error

// Bus is the subscribe/emit contract between the inspector and rules.
type Bus interface {
	// Subscribe registers h for events of type t.
	Subscribe(t EventType, h Handler)
	// Emit delivers e to the handlers subscribed to e.Type.
	Emit(e Event) error
}

// ElementEvent builds an Element event.
func ElementEvent(tag string, n *html.Node) Event {
	return Event{Type: Element, Name: tag, Node: n}
}

// IDEvent builds an ID event.
func IDEvent(id string, n *html.Node) Event {
	return Event{Type: ID, Value: id, Node: n}
}

// ClassEvent builds a Class event.
func ClassEvent(class string, n *html.Node) Event {
	return Event{Type: Class, Value: class, Node: n}
}

// AttributeEvent builds an Attribute event.
func AttributeEvent(name, value string, n *html.Node) Event {
	return Event{Type: Attribute, Name: name, Value: value, Node: n}
}

// RootEvent builds a BeforeInspect or AfterInspect event.
func RootEvent(t EventType, root *html.Node) Event {
	return Event{Type: t, Node: root}
}
