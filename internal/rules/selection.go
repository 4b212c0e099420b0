package rules

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Selection chooses which rules an inspection activates: every registered
// rule, or an explicit ordered list. The zero Selection is unset and is
// filled from defaults when configurations merge.
type Selection struct {
	set   bool
	all   bool
	names []string
}

// All selects every registered rule.
func All() Selection {
	return Selection{set: true, all: true}
}

// Only selects exactly names, in order.
func Only(names ...string) Selection {
	return Selection{set: true, names: append([]string{}, names...)}
}

// IsZero reports whether the selection is unset.
func (s Selection) IsZero() bool {
	return !s.set
}

// IsAll reports whether the selection is the all-rules sentinel.
// An unset selection also means all rules.
func (s Selection) IsAll() bool {
	return s.all || !s.set
}

// Names returns the explicit names, or nil for the all-rules sentinel.
func (s Selection) Names() []string {
	if s.IsAll() {
		return nil
	}
	return append([]string{}, s.names...)
}

// Effective returns the names to activate against reg.
func (s Selection) Effective(reg *Registry) []string {
	if s.IsAll() {
		return reg.Names()
	}
	return s.Names()
}

// Unknown returns the explicit names that reg does not contain.
func (s Selection) Unknown(reg *Registry) []string {
	var unknown []string
	for _, name := range s.Names() {
		if !reg.Has(name) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// String describes the selection for logs.
func (s Selection) String() string {
	if s.IsAll() {
		return "all"
	}
	return strings.Join(s.names, ",")
}

// UnmarshalYAML decodes "all" or a list of rule names.
func (s *Selection) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*s = Selection{}
			return nil
		}
		if strings.EqualFold(value.Value, "all") {
			*s = All()
			return nil
		}
		*s = Only(value.Value)
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return fmt.Errorf("rule list: %w", err)
		}
		*s = Only(names...)
		return nil
	default:
		return fmt.Errorf("line %d: expected \"all\" or a list of rule names", value.Line)
	}
}

// MarshalYAML encodes the selection as "all" or a list of names.
func (s Selection) MarshalYAML() (interface{}, error) {
	if s.IsAll() {
		return "all", nil
	}
	return s.names, nil
}
