package rules

import (
	"fmt"

	"github.com/harrison/htmlinspector/internal/bus"
	"github.com/harrison/htmlinspector/internal/reporter"
	"golang.org/x/net/html"
)

func duplicateIDsRule() Rule {
	return Rule{
		Name:        DuplicateIDs,
		Description: "Reports id values used by more than one element",
		Func: func(b bus.Bus, r *reporter.Reporter, _ any) error {
			var order []string
			seen := make(map[string][]*html.Node)

			b.Subscribe(bus.ID, func(e bus.Event) error {
				if _, ok := seen[e.Value]; !ok {
					order = append(order, e.Value)
				}
				seen[e.Value] = append(seen[e.Value], e.Node)
				return nil
			})

			b.Subscribe(bus.AfterInspect, func(bus.Event) error {
				for _, id := range order {
					if nodes := seen[id]; len(nodes) > 1 {
						r.Warn(DuplicateIDs,
							fmt.Sprintf("The id %q appears more than once in the document.", id),
							nodes, reporter.PriorityHigh)
					}
				}
				return nil
			})
			return nil
		},
	}
}
