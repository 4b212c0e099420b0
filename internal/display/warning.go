package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Related names or files (optional)
	ItemLabel  string   // Heading for Items, e.g. "Affected file" (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Items) > 0 {
		label := w.ItemLabel
		if label == "" {
			label = "Affected item"
		}
		if len(w.Items) != 1 {
			label += "s"
		}
		fmt.Fprintf(&b, "    %s:\n", label)
		for i, item := range w.Items {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, item)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	paint(out, color.FgYellow).Fprint(out, b.String())
}

// WarnUnknownRules creates a warning for selected rule names that are not
// registered. Those rules are skipped by the inspection.
func WarnUnknownRules(unknown []string, known []string) Warning {
	return Warning{
		Title:      "Unknown rules will be skipped",
		Items:      unknown,
		ItemLabel:  "Unknown rule",
		Suggestion: "Available rules: " + strings.Join(known, ", "),
	}
}

// WarnSkippedFiles creates a warning for arguments that are not inspectable documents.
func WarnSkippedFiles(files []string, supported []string) Warning {
	return Warning{
		Title:     "Unsupported files skipped",
		Message:   "Only " + strings.Join(supported, ", ") + " files are inspected",
		Items:     files,
		ItemLabel: "Skipped file",
	}
}
