package rules

import (
	"github.com/harrison/htmlinspector/internal/bus"
	"github.com/harrison/htmlinspector/internal/dom"
	"github.com/harrison/htmlinspector/internal/matcher"
	"github.com/harrison/htmlinspector/internal/reporter"
	"golang.org/x/net/html"
)

// ScriptPlacementConfig configures the script-placement rule.
type ScriptPlacementConfig struct {
	// Whitelist matches scripts allowed anywhere in the document.
	Whitelist matcher.Spec `yaml:"whitelist"`
}

func scriptPlacementRule() Rule {
	return Rule{
		Name:        ScriptPlacement,
		Description: "Reports blocking <script> elements that are not at the end of the document",
		Config:      ScriptPlacementConfig{},
		Func: func(b bus.Bus, r *reporter.Reporter, config any) error {
			cfg, err := configAs[ScriptPlacementConfig](ScriptPlacement, config)
			if err != nil {
				return err
			}
			if err := matcher.Validate(cfg.Whitelist); err != nil {
				return err
			}

			var elements []*html.Node
			b.Subscribe(bus.Element, func(e bus.Event) error {
				elements = append(elements, e.Node)
				return nil
			})

			b.Subscribe(bus.AfterInspect, func(bus.Event) error {
				// trailing scripts are where they belong
				end := len(elements)
				for end > 0 && dom.TagName(elements[end-1]) == "script" {
					end--
				}

				for _, el := range elements[:end] {
					if dom.TagName(el) != "script" || isDeferredScript(el) {
						continue
					}
					whitelisted, err := matcher.Matches(el, cfg.Whitelist)
					if err != nil {
						return err
					}
					if whitelisted {
						continue
					}
					r.Warn(ScriptPlacement,
						"<script> elements should appear right before the closing </body> tag for optimal performance.",
						[]*html.Node{el}, reporter.PriorityLow)
				}
				return nil
			})
			return nil
		},
	}
}

// isDeferredScript reports scripts that do not block parsing.
func isDeferredScript(n *html.Node) bool {
	if _, ok := dom.Attr(n, "async"); ok {
		return true
	}
	if _, ok := dom.Attr(n, "defer"); ok {
		return true
	}
	typ, _ := dom.Attr(n, "type")
	return typ == "module"
}
