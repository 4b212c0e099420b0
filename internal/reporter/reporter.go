// Package reporter collects the warnings raised by rules during an inspection.
package reporter

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Priority is the severity a rule attaches to a warning.
type Priority string

const (
	// PriorityUnset means the rule gave no priority; renderers show it as "default".
	PriorityUnset  Priority = ""
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// String returns the display name of the priority.
func (p Priority) String() string {
	if p == PriorityUnset {
		return "default"
	}
	return string(p)
}

// Rank orders priorities from most to least severe: high=3, medium=2, low=1,
// default/unset=0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ParsePriority converts a case-insensitive name into a Priority.
// "" and "default" both yield PriorityUnset.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return PriorityUnset, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return PriorityUnset, fmt.Errorf("invalid priority %q, must be one of: high, medium, low, default", s)
	}
}

// Warning is one finding reported by a rule.
type Warning struct {
	Rule     string
	Message  string
	Context  []*html.Node
	Priority Priority
}

// Reporter is an append-only, ordered collection of warnings.
// It is created per inspection and is not safe for concurrent use.
type Reporter struct {
	warnings []Warning
}

// New returns an empty Reporter.
func New() *Reporter {
	return &Reporter{}
}

// Warn appends a warning. Nothing is deduplicated or capped.
func (r *Reporter) Warn(rule, message string, context []*html.Node, priority Priority) {
	r.warnings = append(r.warnings, Warning{
		Rule:     rule,
		Message:  message,
		Context:  append([]*html.Node(nil), context...),
		Priority: priority,
	})
}

// Warnings returns the warnings reported so far, in call order.
func (r *Reporter) Warnings() []Warning {
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Len returns the number of warnings reported so far.
func (r *Reporter) Len() int {
	return len(r.warnings)
}

// CountByPriority tallies warnings by priority.
func CountByPriority(warnings []Warning) map[Priority]int {
	counts := make(map[Priority]int)
	for _, w := range warnings {
		counts[w.Priority]++
	}
	return counts
}
