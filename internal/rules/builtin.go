package rules

import (
	"fmt"

	"github.com/harrison/htmlinspector/internal/modules"
)

// Built-in rule names.
const (
	DuplicateIDs        = "duplicate-ids"
	InlineEventHandlers = "inline-event-handlers"
	ScriptPlacement     = "script-placement"
	UniqueElements      = "unique-elements"
	UnnecessaryElements = "unnecessary-elements"
	ValidateElements    = "validate-elements"
	ValidateAttributes  = "validate-attributes"
	BEMConventions      = "bem-conventions"
)

// NewDefaultRegistry returns a registry holding every built-in rule, wired
// to the modules in mods.
func NewDefaultRegistry(mods *modules.Registry) (*Registry, error) {
	reg := NewRegistry()
	if err := RegisterBuiltins(reg, mods); err != nil {
		return nil, err
	}
	return reg, nil
}

// RegisterBuiltins adds the built-in rules to reg.
func RegisterBuiltins(reg *Registry, mods *modules.Registry) error {
	validation, err := mods.Validation()
	if err != nil {
		return fmt.Errorf("built-in rules: %w", err)
	}

	builtins := []Rule{
		duplicateIDsRule(),
		inlineEventHandlersRule(),
		scriptPlacementRule(),
		uniqueElementsRule(validation),
		unnecessaryElementsRule(),
		validateElementsRule(validation),
		validateAttributesRule(validation),
		bemConventionsRule(),
	}
	for _, rule := range builtins {
		if err := reg.Add(rule); err != nil {
			return err
		}
	}
	return nil
}

// configAs asserts a rule's configuration to its expected type.
func configAs[T any](rule string, config any) (T, error) {
	typed, ok := config.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("rule %s: config has type %T, want %T", rule, config, zero)
	}
	return typed, nil
}
