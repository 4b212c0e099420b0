// Package document loads inspectable documents from disk.
//
// HTML files are parsed as is. Markdown files are rendered to HTML first and
// wrapped in a minimal page so the usual root selector ("html") finds them.
package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Format represents the source format of a document
type Format int

const (
	// FormatUnknown represents an unsupported file type
	FormatUnknown Format = iota
	// FormatHTML represents an HTML (.html, .htm) document
	FormatHTML
	// FormatMarkdown represents a Markdown (.md, .markdown) document
	FormatMarkdown
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// Extensions lists the file extensions DetectFormat recognizes.
var Extensions = []string{".html", ".htm", ".md", ".markdown"}

// Document is a parsed document ready for inspection.
type Document struct {
	Path   string     // Absolute path, empty for documents read from a stream
	Format Format     // Source format
	Root   *html.Node // Document node of the parsed tree
}

// DetectFormat detects the document format from the file extension
//   - .html, .htm -> FormatHTML
//   - .md, .markdown -> FormatMarkdown
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return FormatHTML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatUnknown
	}
}

// Parse reads a document of the given format from r.
func Parse(r io.Reader, format Format) (*Document, error) {
	var (
		root *html.Node
		err  error
	)
	switch format {
	case FormatHTML:
		root, err = html.Parse(r)
	case FormatMarkdown:
		root, err = parseMarkdown(r)
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", format, err)
	}
	return &Document{Format: format, Root: root}, nil
}

// LoadFile detects the format of path, then opens and parses it.
func LoadFile(path string) (*Document, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unknown file format: %s (supported: %s)", path, strings.Join(Extensions, ", "))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	doc, err := Parse(file, format)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	doc.Path = absPath
	return doc, nil
}
