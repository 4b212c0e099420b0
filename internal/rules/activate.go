package rules

import (
	"fmt"

	"github.com/harrison/htmlinspector/internal/bus"
	"github.com/harrison/htmlinspector/internal/reporter"
)

// ActivationError reports a rule whose activation function failed.
type ActivationError struct {
	Rule string
	Err  error
}

// Error implements the error interface for ActivationError.
func (e *ActivationError) Error() string {
	return fmt.Sprintf("activate rule %s: %v", e.Rule, e.Err)
}

// Unwrap returns the underlying error.
func (e *ActivationError) Unwrap() error {
	return e.Err
}

// Activate calls the activation function of every selected rule once, in
// selection order, and returns the names it activated.
//
// Names missing from reg are skipped without error. Rules are not isolated
// from each other: the first failing activation stops the loop and its
// error is returned.
func Activate(sel Selection, b bus.Bus, rep *reporter.Reporter, reg *Registry) ([]string, error) {
	var activated []string
	for _, name := range sel.Effective(reg) {
		rule, ok := reg.Get(name)
		if !ok {
			continue
		}
		if err := rule.Func(b, rep, rule.Config); err != nil {
			return activated, &ActivationError{Rule: name, Err: err}
		}
		activated = append(activated, name)
	}
	return activated, nil
}
