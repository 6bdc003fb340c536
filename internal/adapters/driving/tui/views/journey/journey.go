// Package journey provides the guided nine-step reflection wizard.
//
// The view renders one step at a time from the domain field templates,
// captures answers into the document model when the user leaves a step,
// and applies auto-population when a step is entered.
package journey

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quietpath/ripple/internal/adapters/driving/tui/messages"
	"github.com/quietpath/ripple/internal/adapters/driving/tui/styles"
	"github.com/quietpath/ripple/internal/core/domain"
	"github.com/quietpath/ripple/internal/core/ports/driving"
)

// editor holds the widget state for one field of the current step.
type editor struct {
	spec  domain.FieldSpec
	input textinput.Model // text and date fields

	// Multi-select state.
	optionCursor int
	selected     map[string]bool

	// Toggle state.
	checked bool
}

// View is the journey wizard view.
type View struct {
	styles   *styles.Styles
	journal  driving.JournalService
	progress driving.ProgressService

	step    domain.Step
	editors []editor
	focus   int
	bar     progress.Model
	notice  string

	width  int
	height int
	ready  bool
}

// NewView creates a new journey view.
func NewView(s *styles.Styles, journal driving.JournalService, progressSvc driving.ProgressService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		journal:  journal,
		progress: progressSvc,
		bar:      progress.New(progress.WithDefaultGradient()),
		width:    80,
		height:   24,
	}
}

// Init initialises the journey view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Reset re-enters the wizard at the persisted current step.
func (v *View) Reset() {
	v.notice = ""
	v.enterStep(v.journal.GetCurrentSection())
}

// enterStep loads stored answers and auto-population defaults, then
// builds the editors for the step.
func (v *View) enterStep(step domain.Step) {
	v.step = step
	v.focus = 0

	section := v.journal.GetSection(step)

	// Auto-populated values pre-fill the editors only; they are written
	// back by captureStep when the user leaves the step, so a later edit
	// to the source field re-propagates until then. Saved answers always
	// win over the pre-fill.
	for field, value := range v.journal.AutoPopulationData(step) {
		if domain.IsEmptyValue(section[field]) {
			section[field] = value
		}
	}

	// Fill state is not persisted; reseed it from the stored answers.
	for _, field := range domain.RequiredFields(step) {
		v.progress.TrackFieldEdit(step, field, !domain.IsEmptyValue(section[field]))
	}

	specs := domain.StepFields(step)
	v.editors = make([]editor, len(specs))
	for i, spec := range specs {
		ed := editor{spec: spec}
		switch spec.Kind {
		case domain.FieldMultiSelect:
			ed.selected = make(map[string]bool)
			if picked, ok := domain.AsStringSlice(section[spec.Key]); ok {
				for _, opt := range picked {
					ed.selected[opt] = true
				}
			}
		case domain.FieldToggle:
			ed.checked = domain.AsBool(section[spec.Key])
		case domain.FieldDate:
			ti := textinput.New()
			ti.Placeholder = "YYYY-MM-DD"
			ti.CharLimit = 10
			ti.SetValue(v.dateValue(section[spec.Key]))
			ed.input = ti
		default:
			ti := textinput.New()
			ti.Placeholder = spec.Placeholder
			ti.CharLimit = 280
			ti.SetValue(domain.AsString(section[spec.Key]))
			ed.input = ti
		}
		v.editors[i] = ed
	}
	v.updateFocus()

	v.progress.RecordVisit(step)
	v.journal.SaveCurrentSection(step)
}

// dateValue returns the stored date, defaulting to today on the
// commitment step so signing feels immediate.
func (v *View) dateValue(value any) string {
	if s := domain.AsString(value); s != "" {
		return s
	}
	if v.step == domain.StepCommitment {
		return time.Now().Format("2006-01-02")
	}
	return ""
}

// captureStep writes every editor's value back to the document model and
// updates the progress ledger's required-field tracking.
func (v *View) captureStep() {
	values := domain.Section{}
	for _, ed := range v.editors {
		switch ed.spec.Kind {
		case domain.FieldMultiSelect:
			var picked []string
			for _, opt := range ed.spec.Options {
				if ed.selected[opt] {
					picked = append(picked, opt)
				}
			}
			values[ed.spec.Key] = picked
		case domain.FieldToggle:
			values[ed.spec.Key] = ed.checked
		default:
			values[ed.spec.Key] = strings.TrimSpace(ed.input.Value())
		}
	}
	v.journal.SaveSection(v.step, values)

	for _, ed := range v.editors {
		if !ed.spec.Required {
			continue
		}
		v.progress.TrackFieldEdit(v.step, ed.spec.Key, !domain.IsEmptyValue(values[ed.spec.Key]))
	}
}

// Update handles messages for the journey view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.bar.Width = min(msg.Width-4, 60)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, v.updateFocusedInput(msg)
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.notice = ""

	switch msg.String() {
	case "esc":
		v.captureStep()
		v.journal.Flush()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case "tab", "down":
		v.focus++
		if v.focus >= len(v.editors) {
			v.focus = 0
		}
		return v, v.updateFocus()

	case "shift+tab", "up":
		v.focus--
		if v.focus < 0 {
			v.focus = len(v.editors) - 1
		}
		return v, v.updateFocus()

	case "ctrl+n":
		return v.nextStep()

	case "ctrl+p":
		return v.previousStep()

	case "enter":
		if v.focus == len(v.editors)-1 {
			return v.nextStep()
		}
		v.focus++
		return v, v.updateFocus()
	}

	// alt+1..alt+9 jump straight to a step, gated by the ledger.
	if key := msg.String(); len(key) == 5 && strings.HasPrefix(key, "alt+") &&
		key[4] >= '1' && key[4] <= '9' {
		return v.jumpToStep(int(key[4] - '1'))
	}

	if len(v.editors) == 0 {
		return v, nil
	}
	ed := &v.editors[v.focus]

	switch ed.spec.Kind {
	case domain.FieldMultiSelect:
		switch msg.String() {
		case "left", "h":
			if ed.optionCursor > 0 {
				ed.optionCursor--
			}
			return v, nil
		case "right", "l":
			if ed.optionCursor < len(ed.spec.Options)-1 {
				ed.optionCursor++
			}
			return v, nil
		case " ":
			opt := ed.spec.Options[ed.optionCursor]
			ed.selected[opt] = !ed.selected[opt]
			return v, nil
		}
		return v, nil

	case domain.FieldToggle:
		if msg.String() == " " {
			ed.checked = !ed.checked
		}
		return v, nil

	default:
		var cmd tea.Cmd
		ed.input, cmd = ed.input.Update(msg)
		if ed.spec.Required {
			v.progress.TrackFieldEdit(v.step, ed.spec.Key, strings.TrimSpace(ed.input.Value()) != "")
		}
		return v, cmd
	}
}

// nextStep captures the current answers and delegates to the ledger's
// index advance. At the final step the wizard closes back to the menu.
func (v *View) nextStep() (*View, tea.Cmd) {
	v.captureStep()

	next, ok := v.progress.Advance()
	if !ok {
		v.journal.Flush()
		v.notice = "Journey complete"
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	v.enterStep(next)
	return v, func() tea.Msg {
		return messages.StepChanged{Step: next}
	}
}

// previousStep delegates to the ledger's index retreat. At the first
// step it stays put.
func (v *View) previousStep() (*View, tea.Cmd) {
	v.captureStep()

	previous, ok := v.progress.Retreat()
	if !ok {
		return v, nil
	}

	v.enterStep(previous)
	return v, func() tea.Msg {
		return messages.StepChanged{Step: previous}
	}
}

// jumpToStep moves directly to the numbered step when the ledger's
// navigation gate allows it: revisiting is always fine, skipping ahead
// past the next unvisited step is not.
func (v *View) jumpToStep(index int) (*View, tea.Cmd) {
	target, ok := domain.StepAt(index)
	if !ok || target == v.step {
		return v, nil
	}
	if !v.progress.CanNavigateTo(target) {
		v.notice = "Finish earlier steps first"
		return v, nil
	}

	v.captureStep()
	v.enterStep(target)
	return v, func() tea.Msg {
		return messages.StepChanged{Step: target}
	}
}

// updateFocus focuses the active text input and blurs the rest.
func (v *View) updateFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range v.editors {
		ed := &v.editors[i]
		if ed.spec.Kind == domain.FieldMultiSelect || ed.spec.Kind == domain.FieldToggle {
			continue
		}
		if i == v.focus {
			cmd = ed.input.Focus()
		} else {
			ed.input.Blur()
		}
	}
	return cmd
}

// updateFocusedInput forwards non-key messages (blink ticks) to the
// focused text input.
func (v *View) updateFocusedInput(msg tea.Msg) tea.Cmd {
	if len(v.editors) == 0 || v.focus >= len(v.editors) {
		return nil
	}
	ed := &v.editors[v.focus]
	if ed.spec.Kind == domain.FieldMultiSelect || ed.spec.Kind == domain.FieldToggle {
		return nil
	}
	var cmd tea.Cmd
	ed.input, cmd = ed.input.Update(msg)
	return cmd
}

// View renders the current step.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	header := fmt.Sprintf("Step %d of %d · %s", v.step.Index()+1, domain.StepCount, v.step.Title())
	b.WriteString(v.styles.Title.Render(header))
	b.WriteString("\n")

	snapshot := v.progress.Snapshot()
	b.WriteString(v.bar.ViewAs(snapshot.VisualProgress))
	b.WriteString("\n\n")

	if intro := v.stepIntro(); intro != "" {
		b.WriteString(v.styles.Normal.Render(intro))
		b.WriteString("\n\n")
	}

	for i, ed := range v.editors {
		label := ed.spec.Label
		if ed.spec.Required {
			label += " *"
		}
		if i == v.focus {
			b.WriteString(v.styles.Subtitle.Render(label))
		} else {
			b.WriteString(v.styles.Normal.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(v.renderEditor(i, ed))
		b.WriteString("\n\n")
	}

	if v.notice != "" {
		b.WriteString(v.styles.Warning.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render(
		"[tab] next field  [ctrl+n] next step  [ctrl+p] previous step  [alt+1..9] jump  [esc] menu"))

	return b.String()
}

// stepIntro renders the read-only context shown above the inputs on
// steps that summarise earlier answers.
func (v *View) stepIntro() string {
	switch v.step {
	case domain.StepMapping:
		var lines []string
		if givers := domain.AsString(v.journal.GetField(domain.StepInfluences, "energyGivers", "")); givers != "" {
			lines = append(lines, "Energy givers: "+givers)
		}
		if drainers := domain.AsString(v.journal.GetField(domain.StepInfluences, "energyDrainers", "")); drainers != "" {
			lines = append(lines, "Energy drainers: "+drainers)
		}
		if pattern := domain.AsString(v.journal.GetField(domain.StepConnections, "patternNoticed", "")); pattern != "" {
			lines = append(lines, "Pattern: "+pattern)
		}
		return strings.Join(lines, "\n")

	case domain.StepCommitment:
		name := domain.AsString(v.journal.GetField(domain.StepWelcome, "name", ""))
		if name == "" {
			return "I commit to the following:"
		}
		return fmt.Sprintf("I, %s, commit to the following:", name)
	}
	return ""
}

func (v *View) renderEditor(index int, ed editor) string {
	switch ed.spec.Kind {
	case domain.FieldMultiSelect:
		var parts []string
		for i, opt := range ed.spec.Options {
			box := "[ ]"
			if ed.selected[opt] {
				box = "[x]"
			}
			cell := fmt.Sprintf("%s %s", box, opt)
			if index == v.focus && i == ed.optionCursor {
				cell = v.styles.Selected.Render(cell)
			}
			parts = append(parts, cell)
		}
		return "  " + strings.Join(parts, "  ")

	case domain.FieldToggle:
		box := "[ ]"
		if ed.checked {
			box = "[x]"
		}
		line := fmt.Sprintf("  %s %s", box, "yes")
		if index == v.focus {
			return v.styles.Selected.Render(line)
		}
		return line

	default:
		return ed.input.View()
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.bar.Width = min(width-4, 60)
	v.ready = true
}

// Step returns the current step (for testing).
func (v *View) Step() domain.Step {
	return v.step
}
