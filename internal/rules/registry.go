// Package rules holds the rule registry, the activator that wires selected
// rules to an inspection, and the built-in rules.
//
// A rule is a named activation function. Activation runs once per inspection;
// the function subscribes handlers on the bus and reports findings through
// the reporter. Any state a rule keeps belongs in its activation closure.
package rules

import (
	"fmt"
	"reflect"

	"github.com/harrison/htmlinspector/internal/bus"
	"github.com/harrison/htmlinspector/internal/reporter"
	"gopkg.in/yaml.v3"
)

// ActivateFunc wires a rule to one inspection. config is the rule's current
// configuration value from the registry.
type ActivateFunc func(b bus.Bus, r *reporter.Reporter, config any) error

// Rule is a registry entry.
type Rule struct {
	Name        string
	Description string
	Func        ActivateFunc
	Config      any
}

// Registry is a keyed collection of rules that remembers registration order.
// It is populated at startup and must not change while an inspection runs.
type Registry struct {
	order []string
	rules map[string]Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Add registers rule. Re-adding a name replaces the rule in place, keeping
// its original position.
func (r *Registry) Add(rule Rule) error {
	if rule.Name == "" {
		return fmt.Errorf("rule name cannot be empty")
	}
	if rule.Func == nil {
		return fmt.Errorf("rule %q has no activation function", rule.Name)
	}
	if _, exists := r.rules[rule.Name]; !exists {
		r.order = append(r.order, rule.Name)
	}
	r.rules[rule.Name] = rule
	return nil
}

// Extend replaces the configuration of a registered rule with fn(current).
func (r *Registry) Extend(name string, fn func(config any) any) error {
	rule, ok := r.rules[name]
	if !ok {
		return fmt.Errorf("cannot extend unknown rule %q", name)
	}
	rule.Config = fn(rule.Config)
	r.rules[name] = rule
	return nil
}

// Configure decodes a YAML node over a copy of the rule's configuration.
// Keys missing from value keep their current values.
func (r *Registry) Configure(name string, value *yaml.Node) error {
	rule, ok := r.rules[name]
	if !ok {
		return fmt.Errorf("cannot configure unknown rule %q", name)
	}
	if rule.Config == nil {
		return fmt.Errorf("rule %q takes no configuration", name)
	}

	target := reflect.New(reflect.TypeOf(rule.Config))
	target.Elem().Set(reflect.ValueOf(rule.Config))
	if err := value.Decode(target.Interface()); err != nil {
		return fmt.Errorf("rule %q config: %w", name, err)
	}

	return r.Extend(name, func(any) any { return target.Elem().Interface() })
}

// Get retrieves a rule by name.
// Returns the rule and true if found, a zero Rule and false otherwise.
func (r *Registry) Get(name string) (Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// Has reports whether a rule is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.rules[name]
	return ok
}

// Names returns the registered rule names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// List returns the registered rules in registration order.
func (r *Registry) List() []Rule {
	list := make([]Rule, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.rules[name])
	}
	return list
}
