package models

import "time"

// Document inspection status constants
const (
	StatusClean    = "CLEAN"    // No warnings
	StatusWarnings = "WARNINGS" // Inspection finished with warnings
	StatusFailed   = "FAILED"   // Inspection aborted with an error
)

// DocumentResult represents the outcome of inspecting a single document
type DocumentResult struct {
	Target     string         // Document path or label
	Status     string         // Status: "CLEAN", "WARNINGS", "FAILED"
	Warnings   int            // Number of warnings reported
	ByPriority map[string]int // Warning count per priority name (high, medium, low, default)
	Rules      []string       // Rules activated for the inspection
	Duration   time.Duration  // Time taken to inspect
	Error      error          // Error if the inspection aborted
}

// Summary represents the aggregate result of inspecting every document of a run
type Summary struct {
	Documents  int              // Total number of documents
	Clean      int              // Documents without warnings
	Failed     int              // Documents whose inspection aborted
	Warnings   int              // Total warnings across documents
	ByPriority map[string]int   // Warning count per priority name
	Duration   time.Duration    // Total inspection time
	Results    []DocumentResult // Per-document results, in inspection order
}

// Add folds a document result into the summary.
func (s *Summary) Add(result DocumentResult) {
	s.Documents++
	s.Warnings += result.Warnings
	s.Duration += result.Duration
	switch result.Status {
	case StatusClean:
		s.Clean++
	case StatusFailed:
		s.Failed++
	}
	if len(result.ByPriority) > 0 && s.ByPriority == nil {
		s.ByPriority = make(map[string]int)
	}
	for priority, n := range result.ByPriority {
		s.ByPriority[priority] += n
	}
	s.Results = append(s.Results, result)
}
