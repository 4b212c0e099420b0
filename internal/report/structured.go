package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/harrison/htmlinspector/internal/reporter"
)

// JSONRenderer writes warnings as an indented JSON array of records.
type JSONRenderer struct {
	w      io.Writer
	origin string
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer(w io.Writer, origin string) *JSONRenderer {
	return &JSONRenderer{w: w, origin: origin}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(warnings []reporter.Warning) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(Records(warnings, r.origin))
}

// YAMLRenderer writes warnings as a YAML sequence of records.
type YAMLRenderer struct {
	w      io.Writer
	origin string
}

// NewYAMLRenderer creates a YAMLRenderer.
func NewYAMLRenderer(w io.Writer, origin string) *YAMLRenderer {
	return &YAMLRenderer{w: w, origin: origin}
}

// Render implements Renderer.
func (r *YAMLRenderer) Render(warnings []reporter.Warning) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(Records(warnings, r.origin)); err != nil {
		return err
	}
	return enc.Close()
}
