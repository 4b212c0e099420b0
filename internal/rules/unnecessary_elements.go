package rules

import (
	"fmt"

	"github.com/harrison/htmlinspector/internal/bus"
	"github.com/harrison/htmlinspector/internal/reporter"
	"golang.org/x/net/html"
)

func unnecessaryElementsRule() Rule {
	return Rule{
		Name:        UnnecessaryElements,
		Description: "Reports <div> and <span> elements without attributes",
		Func: func(b bus.Bus, r *reporter.Reporter, _ any) error {
			b.Subscribe(bus.Element, func(e bus.Event) error {
				if (e.Name == "div" || e.Name == "span") && len(e.Node.Attr) == 0 {
					r.Warn(UnnecessaryElements,
						fmt.Sprintf("Do not use <%s> elements without any attributes.", e.Name),
						[]*html.Node{e.Node}, reporter.PriorityUnset)
				}
				return nil
			})
			return nil
		},
	}
}
