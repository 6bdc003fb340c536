package tui

import "errors"

// Errors for missing required ports.
var (
	// ErrMissingJournalService indicates the journal service was not provided.
	ErrMissingJournalService = errors.New("journal service is required")

	// ErrMissingProgressService indicates the progress service was not provided.
	ErrMissingProgressService = errors.New("progress service is required")

	// ErrMissingDiagramService indicates the diagram service was not provided.
	ErrMissingDiagramService = errors.New("diagram service is required")

	// ErrMissingInsightService indicates the insight service was not provided.
	ErrMissingInsightService = errors.New("insight service is required")
)
