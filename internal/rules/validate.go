package rules

import (
	"fmt"

	"github.com/harrison/htmlinspector/internal/bus"
	"github.com/harrison/htmlinspector/internal/dom"
	"github.com/harrison/htmlinspector/internal/modules"
	"github.com/harrison/htmlinspector/internal/reporter"
	"golang.org/x/net/html"
)

func validateElementsRule(validation *modules.Validation) Rule {
	return Rule{
		Name:        ValidateElements,
		Description: "Reports obsolete elements",
		Func: func(b bus.Bus, r *reporter.Reporter, _ any) error {
			b.Subscribe(bus.Element, func(e bus.Event) error {
				if validation.IsObsoleteElement(e.Name) {
					r.Warn(ValidateElements,
						fmt.Sprintf("The <%s> element is obsolete and should not be used.", e.Name),
						[]*html.Node{e.Node}, reporter.PriorityMedium)
				}
				return nil
			})
			return nil
		},
	}
}

func validateAttributesRule(validation *modules.Validation) Rule {
	return Rule{
		Name:        ValidateAttributes,
		Description: "Reports attributes that are obsolete on their element",
		Func: func(b bus.Bus, r *reporter.Reporter, _ any) error {
			b.Subscribe(bus.Attribute, func(e bus.Event) error {
				tag := dom.TagName(e.Node)
				if validation.IsObsoleteAttribute(tag, e.Name) {
					r.Warn(ValidateAttributes,
						fmt.Sprintf("The '%s' attribute is no longer valid on the <%s> element and should not be used.", e.Name, tag),
						[]*html.Node{e.Node}, reporter.PriorityMedium)
				}
				return nil
			})
			return nil
		},
	}
}
