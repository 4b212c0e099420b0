// Package fileutil finds the documents an htmlinspector run should inspect.
//
// ScanDirectory walks a directory with extension, depth and directory
// exclusion filters. Collect expands a mix of file and directory arguments
// into a sorted, deduplicated list of documents plus the files it had to
// skip. Hidden directories and the configured exclusions (".git" and
// "node_modules" by default) are never entered.
//
//	result, err := fileutil.Collect([]string{"site", "README.md"}, fileutil.ScanOptions{
//	    Extensions: []string{".html", ".htm", ".md", ".markdown"},
//	    Recursive:  true,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, file := range result.Files {
//	    // inspect file
//	}
package fileutil
