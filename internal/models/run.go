package models

import "time"

// Run identifies one inspection of one document
type Run struct {
	ID        string    // Unique run ID (uuid)
	Target    string    // Document path or label
	Rules     string    // Rule selection, "all" or comma-separated names
	StartedAt time.Time // When the inspection began
}
