// Package insight shows generated reflections for the current journey.
package insight

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quietpath/ripple/internal/adapters/driving/tui/messages"
	"github.com/quietpath/ripple/internal/adapters/driving/tui/styles"
	"github.com/quietpath/ripple/internal/core/domain"
	"github.com/quietpath/ripple/internal/core/ports/driving"
)

// View is the insight view. One request is in flight at a time; the
// service guarantees a displayable string for every outcome.
type View struct {
	styles  *styles.Styles
	insight driving.InsightService
	journal driving.JournalService

	spinner spinner.Model
	loading bool
	text    string
	kind    messages.InsightKind

	width  int
	height int
	ready  bool
}

// NewView creates a new insight view.
func NewView(s *styles.Styles, insightSvc driving.InsightService, journal driving.JournalService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Primary)

	return &View{
		styles:  s,
		insight: insightSvc,
		journal: journal,
		spinner: sp,
		width:   80,
		height:  24,
	}
}

// Init initialises the insight view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Reset clears any previous reflection.
func (v *View) Reset() {
	v.text = ""
	v.loading = false
}

// Update handles messages for the insight view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		if v.loading {
			// Only esc interrupts a pending request's display.
			if msg.String() == "esc" {
				return v, func() tea.Msg {
					return messages.ViewChanged{View: messages.ViewMenu}
				}
			}
			return v, nil
		}
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "i":
			return v.request(messages.InsightInfluence)
		case "s":
			return v.request(messages.InsightSummary)
		}
		return v, nil

	case messages.InsightReceived:
		v.loading = false
		v.kind = msg.Kind
		v.text = msg.Text
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	return v, nil
}

// request starts a reflection request off the UI loop.
func (v *View) request(kind messages.InsightKind) (*View, tea.Cmd) {
	v.loading = true
	v.text = ""

	journal := v.journal
	insight := v.insight

	requestCmd := func() tea.Msg {
		var text string
		switch kind {
		case messages.InsightSummary:
			text = insight.RequestJourneySummary(context.Background(), driving.JourneySummaryData{
				WantMore:       fieldText(journal, domain.StepFocus, "wantMore"),
				KeyLearning:    fieldText(journal, domain.StepPatterns, "keyLearning"),
				GoalStatement:  fieldText(journal, domain.StepGoals, "goalStatement"),
				CommitmentText: fieldText(journal, domain.StepCommitment, "commitmentText"),
			})
		default:
			text = insight.RequestInfluenceInsight(context.Background(), driving.InfluenceInsightData{
				WantMore:       fieldText(journal, domain.StepFocus, "wantMore"),
				EnergyGivers:   fieldText(journal, domain.StepInfluences, "energyGivers"),
				EnergyDrainers: fieldText(journal, domain.StepInfluences, "energyDrainers"),
				PatternNoticed: fieldText(journal, domain.StepConnections, "patternNoticed"),
			})
		}
		return messages.InsightReceived{Kind: kind, Text: text}
	}

	return v, tea.Batch(v.spinner.Tick, requestCmd)
}

func fieldText(journal driving.JournalService, step domain.Step, field string) string {
	return domain.AsString(journal.GetField(step, field, ""))
}

// View renders the insight view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Insight"))
	b.WriteString("\n\n")

	if !v.insight.IsAvailable() {
		b.WriteString(v.styles.Warning.Render("No credential configured. Requests will return a gentle fallback."))
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Muted.Render(" generating a reflection..."))
		b.WriteString("\n")
	case v.text != "":
		wrapped := lipgloss.NewStyle().Width(min(v.width-4, 76)).Render(v.text)
		b.WriteString(v.styles.Normal.Render(wrapped))
		b.WriteString("\n")
	default:
		b.WriteString(v.styles.Muted.Render("Request a reflection on your answers so far."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[i] influence insight  [s] journey summary  [esc] menu"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Loading returns whether a request is in flight (for testing).
func (v *View) Loading() bool {
	return v.loading
}
