package inspector

import "fmt"

// Phase identifies the step of an inspection that failed.
type Phase int

const (
	// PhaseResolve covers normalizing and merging the call's configuration.
	PhaseResolve Phase = iota
	// PhaseRoot covers looking up the root element by selector.
	PhaseRoot
	// PhaseActivate covers running the selected rules' activation functions.
	PhaseActivate
	// PhaseTraverse covers the root events and the walk between them.
	PhaseTraverse
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseResolve:
		return "resolve"
	case PhaseRoot:
		return "root"
	case PhaseActivate:
		return "activate"
	case PhaseTraverse:
		return "traverse"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// InspectError reports an aborted inspection. The completion handler is
// never called for an inspection that returns one.
type InspectError struct {
	Phase  Phase
	Target string
	Err    error
}

// Error implements the error interface for InspectError.
func (e *InspectError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("inspect %s: %s: %v", e.Target, e.Phase, e.Err)
	}
	return fmt.Sprintf("inspect: %s: %v", e.Phase, e.Err)
}

// Unwrap returns the underlying error.
func (e *InspectError) Unwrap() error {
	return e.Err
}
