// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/quietpath/ripple/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewJourney is the nine-step guided journey.
	ViewJourney
	// ViewDiagram is the relationship diagram.
	ViewDiagram
	// ViewInsight shows generated reflections.
	ViewInsight
	// ViewSettings is the settings and credential view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewJourney:
		return "journey"
	case ViewDiagram:
		return "diagram"
	case ViewInsight:
		return "insight"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// StepChanged is sent when the journey moves to another step.
type StepChanged struct {
	Step domain.Step
}

// InsightRequested asks for a generated reflection of the given kind.
type InsightRequested struct {
	Kind InsightKind
}

// InsightKind selects which reflection is requested.
type InsightKind int

const (
	// InsightInfluence reflects on the user's energy influences.
	InsightInfluence InsightKind = iota
	// InsightSummary summarises the whole journey.
	InsightSummary
)

// InsightReceived carries generated (or fallback) reflection text.
type InsightReceived struct {
	Kind InsightKind
	Text string
}

// Notice carries a transient, non-blocking status line.
type Notice struct {
	Text string
}

// Quit signals the application should exit.
type Quit struct{}
