package display

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// paint returns c with color forced on or off for out.
func paint(out io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if useColor(out) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func useColor(out io.Writer) bool {
	if out != os.Stdout && out != os.Stderr {
		return false
	}
	return !color.NoColor
}
