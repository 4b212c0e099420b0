package logger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/htmlinspector/internal/models"
)

// priorityOrder is the display order of warning priorities, most severe first.
var priorityOrder = []string{"high", "medium", "low", "default"}

// priorityColor matches the text renderer's severity styling.
func priorityColor(priority string) *color.Color {
	switch priority {
	case "high":
		return color.New(color.FgRed, color.Bold)
	case "medium":
		return color.New(color.FgHiRed)
	case "low":
		return color.New(color.FgBlue)
	default:
		return color.New(color.Reset)
	}
}

func statusColor(status string) *color.Color {
	switch status {
	case models.StatusClean:
		return color.New(color.FgGreen)
	case models.StatusWarnings:
		return color.New(color.FgYellow)
	case models.StatusFailed:
		return color.New(color.FgRed)
	default:
		return color.New(color.Reset)
	}
}

// formatPriorityCounts formats per-priority warning counts, most severe first.
// Format: "high: 2, low: 1". Priorities without warnings are omitted.
// Unknown priority names are appended in the order they are found.
func formatPriorityCounts(counts map[string]int, useColor bool) string {
	if len(counts) == 0 {
		return ""
	}

	var parts []string
	seen := make(map[string]bool, len(priorityOrder))
	add := func(name string) {
		n := counts[name]
		if n == 0 {
			return
		}
		label := name
		if useColor {
			c := priorityColor(name)
			c.EnableColor()
			label = c.Sprint(name)
		}
		parts = append(parts, fmt.Sprintf("%s: %d", label, n))
	}

	for _, name := range priorityOrder {
		seen[name] = true
		add(name)
	}
	var extra []string
	for name := range counts {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		add(name)
	}

	return strings.Join(parts, ", ")
}
