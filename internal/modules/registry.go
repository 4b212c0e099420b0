// Package modules holds named helper modules that rules consult while
// handling events, such as lists of obsolete elements.
package modules

import (
	"fmt"
	"sort"
)

// Module is a named, read-only helper shared by rules.
type Module interface {
	Name() string
}

// Registry is a keyed collection of modules, populated at startup and
// read-only during inspection.
type Registry struct {
	modules map[string]Module
}

// NewRegistry creates an empty module registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// NewDefaultRegistry returns a registry holding the built-in modules.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Add(NewValidation())
	return r
}

// Add registers m under its name, replacing any module of the same name.
func (r *Registry) Add(m Module) {
	r.modules[m.Name()] = m
}

// Get retrieves a module by name.
// Returns the module and true if found, nil and false otherwise.
func (r *Registry) Get(name string) (Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validation returns the registered validation module.
func (r *Registry) Validation() (*Validation, error) {
	m, ok := r.Get(ValidationName)
	if !ok {
		return nil, fmt.Errorf("module %q not registered", ValidationName)
	}
	v, ok := m.(*Validation)
	if !ok {
		return nil, fmt.Errorf("module %q has unexpected type %T", ValidationName, m)
	}
	return v, nil
}
