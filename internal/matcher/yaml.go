package matcher

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a selector string or a list of selector strings.
// A null value leaves the Spec unset; an empty list decodes to None.
func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*s = Spec{}
			return nil
		}
		*s = Selector(value.Value)
		return nil
	case yaml.SequenceNode:
		var sels []string
		if err := value.Decode(&sels); err != nil {
			return fmt.Errorf("selector list: %w", err)
		}
		if len(sels) == 0 {
			*s = None()
			return nil
		}
		*s = Selectors(sels...)
		return nil
	default:
		return fmt.Errorf("line %d: expected a selector or a list of selectors", value.Line)
	}
}

// MarshalYAML encodes selector and selector-only list specs. Node references
// and predicates cannot be represented and are reported as errors.
func (s Spec) MarshalYAML() (interface{}, error) {
	switch s.kind {
	case KindUnset:
		return nil, nil
	case KindNone:
		return []string{}, nil
	case KindSelector:
		return s.selector, nil
	case KindList:
		sels := make([]string, 0, len(s.entries))
		for _, e := range s.entries {
			if e.Node != nil {
				return nil, fmt.Errorf("cannot encode node reference in %s", s)
			}
			sels = append(sels, e.Selector)
		}
		return sels, nil
	default:
		return nil, fmt.Errorf("cannot encode %s matcher", s.kind)
	}
}
