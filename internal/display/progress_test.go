package display

import (
	"bytes"
	"testing"
)

func TestProgressIndicator(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressIndicator(&buf, 2)

	p.Start()
	p.Step("/site/docs/index.html")
	p.Step("README.md")
	p.Complete()

	want := "Inspecting 2 documents:\n" +
		"  [1/2] index.html\n" +
		"  [2/2] README.md\n" +
		"✓ Inspected 2 documents\n"
	if buf.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestDisplaySingleFile(t *testing.T) {
	var buf bytes.Buffer
	DisplaySingleFile(&buf, "index.html")
	if got := buf.String(); got != "Inspecting index.html...\n" {
		t.Errorf("DisplaySingleFile() = %q", got)
	}
}
