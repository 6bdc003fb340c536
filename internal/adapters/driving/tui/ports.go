// Package tui provides the interactive terminal interface for ripple.
// It implements a driving adapter following hexagonal architecture
// principles.
package tui

import (
	"github.com/quietpath/ripple/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Journal is the document model.
	Journal driving.JournalService

	// Progress is the progress ledger.
	Progress driving.ProgressService

	// Diagram is the relationship diagram layout engine.
	Diagram driving.DiagramService

	// Insight requests generated reflections.
	Insight driving.InsightService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	journal driving.JournalService,
	progress driving.ProgressService,
	diagram driving.DiagramService,
	insight driving.InsightService,
) *Ports {
	return &Ports{
		Journal:  journal,
		Progress: progress,
		Diagram:  diagram,
		Insight:  insight,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Journal == nil {
		return ErrMissingJournalService
	}
	if p.Progress == nil {
		return ErrMissingProgressService
	}
	if p.Diagram == nil {
		return ErrMissingDiagramService
	}
	if p.Insight == nil {
		return ErrMissingInsightService
	}
	return nil
}
