// Package settings provides the settings view for the TUI.
// It manages the insight credential and shows journey status.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quietpath/ripple/internal/adapters/driving/tui/messages"
	"github.com/quietpath/ripple/internal/adapters/driving/tui/styles"
	"github.com/quietpath/ripple/internal/core/domain"
	"github.com/quietpath/ripple/internal/core/ports/driving"
)

// View is the settings view.
type View struct {
	styles  *styles.Styles
	insight driving.InsightService
	journal driving.JournalService

	credentialInput textinput.Model
	notice          string
	noticeIsError   bool

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, insightSvc driving.InsightService, journal driving.JournalService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "paste credential"
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 128

	return &View{
		styles:          s,
		insight:         insightSvc,
		journal:         journal,
		credentialInput: ti,
		width:           80,
		height:          24,
	}
}

// Init initialises the settings view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the input and notices.
func (v *View) Reset() {
	v.credentialInput.SetValue("")
	v.credentialInput.Focus()
	v.notice = ""
	v.noticeIsError = false
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}

		case "enter":
			v.saveCredential()
			return v, nil
		}

		var cmd tea.Cmd
		v.credentialInput, cmd = v.credentialInput.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.credentialInput, cmd = v.credentialInput.Update(msg)
	return v, cmd
}

func (v *View) saveCredential() {
	err := v.insight.SetCredential(v.credentialInput.Value())
	switch {
	case errors.Is(err, domain.ErrEmptyCredential):
		v.notice = "Credential cannot be blank"
		v.noticeIsError = true
	case err != nil:
		v.notice = "Could not store the credential"
		v.noticeIsError = true
	default:
		v.notice = "Credential saved"
		v.noticeIsError = false
		v.credentialInput.SetValue("")
	}
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	status := "not configured"
	style := v.styles.Warning
	if v.insight.IsAvailable() {
		status = "configured"
		style = v.styles.Success
	}
	b.WriteString(v.styles.Normal.Render("Insight credential: "))
	b.WriteString(style.Render(status))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Normal.Render("Set a new credential"))
	b.WriteString("\n")
	b.WriteString(v.styles.InputField.Render(v.credentialInput.View()))
	b.WriteString("\n\n")

	if v.notice != "" {
		if v.noticeIsError {
			b.WriteString(v.styles.Error.Render(v.notice))
		} else {
			b.WriteString(v.styles.Success.Render(v.notice))
		}
		b.WriteString("\n\n")
	}

	if v.journal != nil {
		b.WriteString(v.styles.Muted.Render(
			fmt.Sprintf("Journey completion: %d%%", v.journal.CompletionPercentage())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[enter] save  [esc] menu"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
