package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quietpath/ripple/internal/adapters/driving/tui/messages"
	"github.com/quietpath/ripple/internal/adapters/driving/tui/styles"
	"github.com/quietpath/ripple/internal/adapters/driving/tui/views/diagram"
	"github.com/quietpath/ripple/internal/adapters/driving/tui/views/insight"
	"github.com/quietpath/ripple/internal/adapters/driving/tui/views/journey"
	"github.com/quietpath/ripple/internal/adapters/driving/tui/views/menu"
	"github.com/quietpath/ripple/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// journeyView is the nine-step guided journey.
	journeyView *journey.View

	// diagramView is the relationship map.
	diagramView *diagram.View

	// insightView shows generated reflections.
	insightView *insight.View

	// settingsView manages the insight credential.
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s, ports.Journal),
		journeyView:  journey.NewView(s, ports.Journal, ports.Progress),
		diagramView:  diagram.NewView(s, ports.Diagram, ports.Journal),
		insightView:  insight.NewView(s, ports.Insight, ports.Journal),
		settingsView: settings.NewView(s, ports.Insight, ports.Journal),
		currentView:  messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ripple - Reflection Journal"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.journeyView.SetDimensions(msg.Width, msg.Height)
		a.diagramView.SetDimensions(msg.Width, msg.Height)
		a.insightView.SetDimensions(msg.Width, msg.Height)
		a.settingsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c. The journal's pending edits are
		// flushed by the CLI layer after the program exits.
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewJourney:
			a.journeyView, cmd = a.journeyView.Update(msg)
			return a, cmd

		case messages.ViewDiagram:
			a.diagramView, cmd = a.diagramView.Update(msg)
			return a, cmd

		case messages.ViewInsight:
			a.insightView, cmd = a.insightView.Update(msg)
			return a, cmd

		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewJourney:
			a.journeyView.Reset()
			return a, a.journeyView.Init()
		case messages.ViewDiagram:
			a.diagramView.Reset()
			return a, a.diagramView.Init()
		case messages.ViewInsight:
			a.insightView.Reset()
			return a, a.insightView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// No special initialisation
		}
		return a, nil

	case messages.StepChanged:
		// The journey already persisted the move; nothing to sync here.
		return a, nil

	case messages.InsightReceived:
		a.insightView, cmd = a.insightView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewJourney:
		a.journeyView, cmd = a.journeyView.Update(msg)
	case messages.ViewDiagram:
		a.diagramView, cmd = a.diagramView.Update(msg)
	case messages.ViewInsight:
		a.insightView, cmd = a.insightView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewJourney:
		return a.journeyView.View()
	case messages.ViewDiagram:
		return a.diagramView.View()
	case messages.ViewInsight:
		return a.insightView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Journey:
  tab, ↑/↓    Move between fields
  space       Toggle checkboxes
  ctrl+n/p    Next / previous step
  esc         Back to Menu (answers are saved)

Relationship map:
  tab         Select a node
  arrows      Move the selected node
  r           Redraw from current answers
  esc         Back to Menu

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.journeyView.SetDimensions(width, height)
	a.diagramView.SetDimensions(width, height)
	a.insightView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
