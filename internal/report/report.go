// Package report renders inspection warnings for people and for tools.
//
// The text renderer is the default completion handler of an inspection. The
// JSON and YAML renderers emit the same records in a stable structure.
package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/harrison/htmlinspector/internal/dom"
	"github.com/harrison/htmlinspector/internal/reporter"
)

// CrossOriginPlaceholder replaces the context of an iframe whose source is on
// another origin.
const CrossOriginPlaceholder = "(can't display iframe with cross-origin source)"

// Format is an output format name
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat converts a format name, case-insensitively. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// Renderer writes a batch of warnings.
type Renderer interface {
	Render(warnings []reporter.Warning) error
}

// NewRenderer returns the renderer for format writing to w. origin is the
// document origin used to sanitize cross-origin iframe contexts.
func NewRenderer(format Format, w io.Writer, origin string) (Renderer, error) {
	switch format {
	case "", FormatText:
		return NewTextRenderer(w, origin), nil
	case FormatJSON:
		return NewJSONRenderer(w, origin), nil
	case FormatYAML:
		return NewYAMLRenderer(w, origin), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Describe returns the display form of a warning context node: its start tag,
// or the cross-origin placeholder for iframes loading from another origin.
func Describe(n *html.Node, origin string) string {
	if n == nil {
		return ""
	}
	if dom.TagName(n) == "iframe" {
		if src, ok := dom.Attr(n, "src"); ok && dom.IsCrossOrigin(src, origin) {
			return CrossOriginPlaceholder
		}
	}
	return dom.StartTag(n)
}

// Record is the structured form of a warning.
type Record struct {
	Rule     string   `json:"rule" yaml:"rule"`
	Message  string   `json:"message" yaml:"message"`
	Priority string   `json:"priority" yaml:"priority"`
	Context  []string `json:"context" yaml:"context"`
}

// Records converts warnings into their structured form, sanitizing contexts
// against origin.
func Records(warnings []reporter.Warning, origin string) []Record {
	records := make([]Record, 0, len(warnings))
	for _, w := range warnings {
		rec := Record{
			Rule:     w.Rule,
			Message:  w.Message,
			Priority: w.Priority.String(),
			Context:  make([]string, 0, len(w.Context)),
		}
		for _, n := range w.Context {
			rec.Context = append(rec.Context, Describe(n, origin))
		}
		records = append(records, rec)
	}
	return records
}
