package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/htmlinspector/internal/config"
)

// setupHome points the configuration home at a fresh temp directory and
// returns it. The directory itself is not created.
func setupHome(t *testing.T) string {
	t.Helper()
	home := filepath.Join(t.TempDir(), config.HomeDirName)
	t.Setenv(config.HomeEnv, home)
	return home
}

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeFile writes content to name inside dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
