package domain

import "time"

// ProgressRecord is the persisted form of the ledger, stored in its own
// slot independently of the document.
type ProgressRecord struct {
	// CurrentSectionIndex is the zero-based index of the current step.
	CurrentSectionIndex int `json:"currentSectionIndex"`

	// CompletedSections lists the step identifiers visited so far.
	CompletedSections []string `json:"completedSections"`

	// Timestamp is when the record was last written.
	Timestamp time.Time `json:"timestamp"`
}

// ProgressSnapshot is a read-only view of the ledger's derived state.
type ProgressSnapshot struct {
	// CurrentIndex is the zero-based index of the current step.
	CurrentIndex int

	// Visited holds the steps recorded as visited.
	Visited []Step

	// OverallCompletion is the ratio of completed required fields across
	// all steps, 0..100.
	OverallCompletion int

	// VisualProgress is (index+1)/StepCount as a 0..1 fraction, used for
	// the progress bar.
	VisualProgress float64
}
