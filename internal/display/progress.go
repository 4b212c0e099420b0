package display

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
)

// ProgressIndicator manages multi-step progress display
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer: w,
		total:  total,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Inspecting %d documents:\n", p.total)
}

// Step displays progress for current item: [N/Total] filename (cyan)
func (p *ProgressIndicator) Step(filename string) {
	p.current++
	paint(p.writer, color.FgCyan).Fprintf(p.writer, "  [%d/%d] %s\n", p.current, p.total, filepath.Base(filename))
}

// Complete displays success message with green checkmark
func (p *ProgressIndicator) Complete() {
	check := paint(p.writer, color.FgGreen).Sprint("✓")
	fmt.Fprintf(p.writer, "%s Inspected %d documents\n", check, p.current)
}

// DisplaySingleFile shows simple loading message for single file
func DisplaySingleFile(w io.Writer, filename string) {
	fmt.Fprintf(w, "Inspecting %s...\n", filename)
}
