package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/harrison/htmlinspector/internal/dom"
	"github.com/harrison/htmlinspector/internal/reporter"
)

const page = `<!DOCTYPE html>
<html><body>
<div id="x" class="a b"></div>
<iframe id="local" src="/embed"></iframe>
<iframe id="remote" src="https://video.example.net/embed"></iframe>
</body></html>`

func parsePage(t *testing.T) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func find(t *testing.T, doc *html.Node, sel string) *html.Node {
	t.Helper()
	n, err := dom.QuerySelector(doc, sel)
	require.NoError(t, err)
	require.NotNil(t, n, "no match for %s", sel)
	return n
}

func sampleWarnings(t *testing.T) []reporter.Warning {
	doc := parsePage(t)
	return []reporter.Warning{
		{Rule: "duplicate-ids", Message: "duplicate id x", Context: []*html.Node{find(t, doc, "#x")}, Priority: reporter.PriorityHigh},
		{Rule: "frames", Message: "two frames", Context: []*html.Node{find(t, doc, "#local"), find(t, doc, "#remote")}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"TEXT", FormatText, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribe(t *testing.T) {
	doc := parsePage(t)

	assert.Equal(t, `<div id="x" class="a b">`, Describe(find(t, doc, "#x"), "https://example.com"))
	assert.Equal(t, `<iframe id="local" src="/embed">`, Describe(find(t, doc, "#local"), "https://example.com"))
	assert.Equal(t, CrossOriginPlaceholder, Describe(find(t, doc, "#remote"), "https://example.com"))
	assert.Equal(t, `<iframe id="remote" src="https://video.example.net/embed">`,
		Describe(find(t, doc, "#remote"), "https://video.example.net"))
	assert.Equal(t, "", Describe(nil, ""))
}

func TestTextRenderer_Plain(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf, "https://example.com")

	require.NoError(t, r.Render(sampleWarnings(t)))

	want := "[high] duplicate-ids: duplicate id x\n" +
		"    <div id=\"x\" class=\"a b\">\n" +
		"[default] frames: two frames\n" +
		"    <iframe id=\"local\" src=\"/embed\">\n" +
		"    " + CrossOriginPlaceholder + "\n"
	assert.Equal(t, want, buf.String())
}

func TestTextRenderer_Color(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf, "")
	r.SetColor(true)

	r.Complete([]reporter.Warning{
		{Rule: "r1", Message: "m", Priority: reporter.PriorityMedium},
		{Rule: "r2", Message: "m"},
	})
	require.NoError(t, r.Err())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "\x1b[")
	assert.Equal(t, "[default] r2: m", lines[1])
}

func TestTextRenderer_NoWarnings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf, "").Render(nil))
	assert.Empty(t, buf.String())
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer(&buf, "https://example.com").Render(sampleWarnings(t)))

	var got []Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].Priority)
	assert.Equal(t, "default", got[1].Priority)
	assert.Equal(t, []string{`<iframe id="local" src="/embed">`, CrossOriginPlaceholder}, got[1].Context)
}

func TestJSONRenderer_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer(&buf, "").Render(nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLRenderer(&buf, "https://example.com").Render(sampleWarnings(t)))

	var got []Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "duplicate-ids", got[0].Rule)
	assert.Equal(t, CrossOriginPlaceholder, got[1].Context[1])
}

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer
	for _, f := range Formats {
		r, err := NewRenderer(f, &buf, "")
		require.NoError(t, err)
		assert.NotNil(t, r)
	}
	_, err := NewRenderer("xml", &buf, "")
	assert.Error(t, err)
}
