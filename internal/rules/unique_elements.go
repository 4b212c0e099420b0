package rules

import (
	"fmt"

	"github.com/harrison/htmlinspector/internal/bus"
	"github.com/harrison/htmlinspector/internal/modules"
	"github.com/harrison/htmlinspector/internal/reporter"
	"golang.org/x/net/html"
)

// UniqueElementsConfig configures the unique-elements rule.
type UniqueElementsConfig struct {
	// Elements lists tag names that may appear at most once.
	Elements []string `yaml:"elements"`
}

func uniqueElementsRule(validation *modules.Validation) Rule {
	return Rule{
		Name:        UniqueElements,
		Description: "Reports elements that may only appear once but appear more often",
		Config:      UniqueElementsConfig{Elements: validation.UniqueElements()},
		Func: func(b bus.Bus, r *reporter.Reporter, config any) error {
			cfg, err := configAs[UniqueElementsConfig](UniqueElements, config)
			if err != nil {
				return err
			}

			found := make(map[string][]*html.Node, len(cfg.Elements))
			for _, tag := range cfg.Elements {
				found[tag] = nil
			}

			b.Subscribe(bus.Element, func(e bus.Event) error {
				if nodes, tracked := found[e.Name]; tracked {
					found[e.Name] = append(nodes, e.Node)
				}
				return nil
			})

			b.Subscribe(bus.AfterInspect, func(bus.Event) error {
				for _, tag := range cfg.Elements {
					if nodes := found[tag]; len(nodes) > 1 {
						r.Warn(UniqueElements,
							fmt.Sprintf("The <%s> element may only appear once in the document.", tag),
							nodes, reporter.PriorityHigh)
					}
				}
				return nil
			})
			return nil
		},
	}
}
