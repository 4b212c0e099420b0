package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// HomeDirName is the per-project directory holding configuration and logs
	HomeDirName = ".htmlinspector"
	// ConfigFileName is the configuration file inside the home directory
	ConfigFileName = "config.yaml"
	// HomeEnv overrides home directory discovery
	HomeEnv = "HTMLINSPECTOR_HOME"
)

// GetHome returns the htmlinspector home directory
// Priority order:
//  1. HTMLINSPECTOR_HOME environment variable (if set)
//  2. The nearest .htmlinspector directory in the working directory or its parents
//  3. .htmlinspector in the current working directory (may not exist yet)
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	if found, ok := findHome(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, HomeDirName), nil
}

// findHome walks up from dir looking for a home directory.
func findHome(dir string) (string, bool) {
	current := dir
	for {
		candidate := filepath.Join(current, HomeDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// GetConfigPath returns the path of the configuration file in the home directory
func GetConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFileName), nil
}

// ResolveLogDir makes a relative log directory absolute against the project
// containing home, so logs land next to the configuration wherever the
// command runs from.
func ResolveLogDir(home, logDir string) string {
	if logDir == "" || filepath.IsAbs(logDir) {
		return logDir
	}
	return filepath.Join(filepath.Dir(home), logDir)
}
