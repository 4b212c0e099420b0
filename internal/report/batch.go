package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/harrison/htmlinspector/internal/reporter"
)

// DocumentRecords groups the records of one inspected document.
type DocumentRecords struct {
	Document string   `json:"document" yaml:"document"`
	Warnings []Record `json:"warnings" yaml:"warnings"`
}

// Batch collects the warnings of several inspections so they can be written
// as a single JSON or YAML document once every inspection has finished.
type Batch struct {
	origin string
	docs   []DocumentRecords
}

// NewBatch creates an empty Batch.
func NewBatch(origin string) *Batch {
	return &Batch{origin: origin}
}

// Handler returns a completion handler that records warnings under document.
func (b *Batch) Handler(document string) func([]reporter.Warning) {
	return func(warnings []reporter.Warning) {
		b.docs = append(b.docs, DocumentRecords{
			Document: document,
			Warnings: Records(warnings, b.origin),
		})
	}
}

// Documents returns the collected documents in completion order.
func (b *Batch) Documents() []DocumentRecords {
	return append([]DocumentRecords{}, b.docs...)
}

// Write encodes the collected documents to w. Only json and yaml are
// supported; text output is written per inspection.
func (b *Batch) Write(format Format, w io.Writer) error {
	docs := b.docs
	if docs == nil {
		docs = []DocumentRecords{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("batch output does not support format %q", format)
	}
}
