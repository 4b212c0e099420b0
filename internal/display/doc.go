// Package display provides terminal UI utilities for the htmlinspector CLI:
// loading progress for document batches and user-facing warnings about the
// run itself (unknown rule names, skipped files). Inspection warnings are
// rendered by the report package instead.
//
// # Progress Indicators
//
//	progress := display.NewProgressIndicator(os.Stderr, len(files))
//	progress.Start()
//	for _, file := range files {
//	    progress.Step(file)
//	    // ... inspect file ...
//	}
//	progress.Complete()
//
// # Warning Messages
//
//	warning := display.WarnUnknownRules([]string{"no-such-rule"}, registry.Names())
//	warning.Display(os.Stderr)
//
// Colors come from fatih/color and are only written when the destination is
// a terminal and NO_COLOR is unset. All functions accept io.Writer.
package display
