package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExcludeDirs are directory names never scanned.
var DefaultExcludeDirs = []string{".git", "node_modules"}

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Extensions is a list of file extensions to include (e.g., ".html", ".md")
	Extensions []string
	// Recursive enables recursive directory scanning
	Recursive bool
	// ExcludeDirs lists directory names to skip; nil means DefaultExcludeDirs
	ExcludeDirs []string
	// MaxDepth limits recursion depth (0 = unlimited, 1 = current dir only)
	MaxDepth int
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the absolute paths of all matched files, sorted
	Files []string
	// Skipped contains explicitly named files whose extension is not accepted
	Skipped []string
	// Errors contains non-fatal errors encountered during scanning
	Errors []error
}

func (opts ScanOptions) extensionSet() map[string]bool {
	set := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[strings.ToLower(ext)] = true
	}
	return set
}

func (opts ScanOptions) accepts(exts map[string]bool, name string) bool {
	return len(exts) == 0 || exts[strings.ToLower(filepath.Ext(name))]
}

// ScanDirectory scans a directory for files matching the provided options
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	result := &ScanResult{}
	exts := opts.extensionSet()

	excludeDirs := opts.ExcludeDirs
	if excludeDirs == nil {
		excludeDirs = DefaultExcludeDirs
	}
	exclude := make(map[string]bool, len(excludeDirs))
	for _, name := range excludeDirs {
		exclude[name] = true
	}

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil
		}
		if path == dir {
			return nil
		}

		if d.IsDir() {
			if exclude[d.Name()] || strings.HasPrefix(d.Name(), ".") || !opts.Recursive {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 {
				rel, _ := filepath.Rel(dir, path)
				if strings.Count(rel, string(filepath.Separator))+1 >= opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !opts.accepts(exts, d.Name()) {
			return nil
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}
		result.Files = append(result.Files, absPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(result.Files)
	return result, nil
}

// Collect expands files and directories into the documents to inspect.
// Directories are scanned with opts; files are taken as named when their
// extension is accepted and reported in Skipped otherwise. The returned
// files are absolute, deduplicated and sorted.
//
// Returns an error if no paths are given or a path does not exist.
func Collect(paths []string, opts ScanOptions) (*ScanResult, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths provided")
	}

	exts := opts.extensionSet()
	files := make(map[string]bool)
	result := &ScanResult{}

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
		}
		info, err := os.Stat(absPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("path %q does not exist", path)
			}
			return nil, fmt.Errorf("failed to access path %q: %w", path, err)
		}

		if !info.IsDir() {
			if opts.accepts(exts, absPath) {
				files[absPath] = true
			} else {
				result.Skipped = append(result.Skipped, path)
			}
			continue
		}

		scanned, err := ScanDirectory(absPath, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %q: %w", path, err)
		}
		for _, f := range scanned.Files {
			files[f] = true
		}
		result.Errors = append(result.Errors, scanned.Errors...)
	}

	result.Files = make([]string, 0, len(files))
	for f := range files {
		result.Files = append(result.Files, f)
	}
	sort.Strings(result.Files)
	return result, nil
}
