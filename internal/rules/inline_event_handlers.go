package rules

import (
	"fmt"
	"strings"

	"github.com/harrison/htmlinspector/internal/bus"
	"github.com/harrison/htmlinspector/internal/reporter"
	"golang.org/x/net/html"
)

func inlineEventHandlersRule() Rule {
	return Rule{
		Name:        InlineEventHandlers,
		Description: "Reports on* attributes that bind scripts inline",
		Func: func(b bus.Bus, r *reporter.Reporter, _ any) error {
			b.Subscribe(bus.Attribute, func(e bus.Event) error {
				if strings.HasPrefix(strings.ToLower(e.Name), "on") && len(e.Name) > 2 {
					r.Warn(InlineEventHandlers,
						fmt.Sprintf("An '%s' attribute was found in the HTML. Use external scripts for event binding instead.", e.Name),
						[]*html.Node{e.Node}, reporter.PriorityMedium)
				}
				return nil
			})
			return nil
		},
	}
}
