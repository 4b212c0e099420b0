package document

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// frontMatter is the optional YAML header of a Markdown document
type frontMatter struct {
	Title string `yaml:"title"`
	Lang  string `yaml:"lang"`
}

// Raw HTML in Markdown is passed through so it gets inspected too, and
// headings get generated ids the way static site generators emit them.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(gmparser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// RenderMarkdown converts Markdown source into a complete HTML page.
func RenderMarkdown(src []byte) ([]byte, error) {
	meta, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html")
	if meta.Lang != "" {
		fmt.Fprintf(&out, ` lang="%s"`, html.EscapeString(meta.Lang))
	}
	out.WriteString("><head>")
	if meta.Title != "" {
		fmt.Fprintf(&out, "<title>%s</title>", html.EscapeString(meta.Title))
	}
	out.WriteString("</head><body>\n")
	if err := markdown.Convert(body, &out); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	out.WriteString("</body></html>\n")
	return out.Bytes(), nil
}

func parseMarkdown(r io.Reader) (*html.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	page, err := RenderMarkdown(src)
	if err != nil {
		return nil, err
	}
	return html.Parse(bytes.NewReader(page))
}

// splitFrontMatter separates a leading "---" delimited YAML block from the body.
func splitFrontMatter(src []byte) (frontMatter, []byte, error) {
	var meta frontMatter
	normalized := bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return meta, src, nil
	}
	rest := normalized[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---\n"))
	var header, body []byte
	switch {
	case end >= 0:
		header, body = rest[:end], rest[end+len("\n---\n"):]
	case bytes.HasSuffix(rest, []byte("\n---")):
		header, body = rest[:len(rest)-len("\n---")], nil
	default:
		return meta, src, nil
	}
	if err := yaml.Unmarshal(header, &meta); err != nil {
		return meta, nil, fmt.Errorf("invalid front matter: %w", err)
	}
	return meta, body, nil
}
