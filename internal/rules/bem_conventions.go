package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/harrison/htmlinspector/internal/bus"
	"github.com/harrison/htmlinspector/internal/dom"
	"github.com/harrison/htmlinspector/internal/reporter"
	"golang.org/x/net/html"
)

// bemElementSeparator joins a block name and an element name.
const bemElementSeparator = "__"

func bemConventionsRule() Rule {
	return Rule{
		Name:        BEMConventions,
		Description: "Reports BEM element classes used outside an element of their block",
		Func: func(b bus.Bus, r *reporter.Reporter, _ any) error {
			b.Subscribe(bus.Class, func(e bus.Event) error {
				block, _, ok := strings.Cut(e.Value, bemElementSeparator)
				if !ok || block == "" {
					return nil
				}
				for _, parent := range dom.Parents(e.Node) {
					if slices.Contains(dom.Classes(parent), block) {
						return nil
					}
				}
				r.Warn(BEMConventions,
					fmt.Sprintf("The BEM element '%s' must be a descendant of '%s'.", e.Value, block),
					[]*html.Node{e.Node}, reporter.PriorityLow)
				return nil
			})
			return nil
		},
	}
}
