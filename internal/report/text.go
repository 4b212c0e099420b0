package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/htmlinspector/internal/reporter"
)

// TextRenderer prints warnings one per block, styled by priority:
// high on a red background, medium bright red, low blue, default plain.
type TextRenderer struct {
	w      io.Writer
	origin string
	color  bool
	err    error
}

// NewTextRenderer creates a TextRenderer. Color is enabled only when w is a
// terminal and NO_COLOR is unset.
func NewTextRenderer(w io.Writer, origin string) *TextRenderer {
	return &TextRenderer{
		w:      w,
		origin: origin,
		color:  isTerminal(w),
	}
}

// SetColor forces color output on or off.
func (r *TextRenderer) SetColor(enabled bool) {
	r.color = enabled
}

// Render writes warnings in call order.
func (r *TextRenderer) Render(warnings []reporter.Warning) error {
	if r.w == nil {
		return nil
	}
	for _, w := range warnings {
		label := fmt.Sprintf("[%s] %s", w.Priority, w.Rule)
		if _, err := fmt.Fprintf(r.w, "%s: %s\n", r.style(w.Priority).Sprint(label), w.Message); err != nil {
			return err
		}
		for _, n := range w.Context {
			if _, err := fmt.Fprintf(r.w, "    %s\n", Describe(n, r.origin)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Complete renders warnings as an inspection completion handler. A write
// failure is kept and reported by Err.
func (r *TextRenderer) Complete(warnings []reporter.Warning) {
	if err := r.Render(warnings); err != nil && r.err == nil {
		r.err = err
	}
}

// Err returns the first write error seen by Complete.
func (r *TextRenderer) Err() error {
	return r.err
}

func (r *TextRenderer) style(p reporter.Priority) *color.Color {
	var c *color.Color
	switch p {
	case reporter.PriorityHigh:
		c = color.New(color.BgRed, color.FgHiWhite)
	case reporter.PriorityMedium:
		c = color.New(color.FgHiRed)
	case reporter.PriorityLow:
		c = color.New(color.FgBlue)
	default:
		c = color.New(color.Reset)
	}
	if r.color && p != reporter.PriorityUnset {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func isTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
