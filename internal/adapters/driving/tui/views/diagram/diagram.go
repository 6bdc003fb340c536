// Package diagram renders the relationship map on a character canvas.
//
// Each element is plotted at its layout position with a connection line
// back to the central focus. When the terminal is too small for the
// canvas, the view degrades to a static pill list.
package diagram

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quietpath/ripple/internal/adapters/driving/tui/messages"
	"github.com/quietpath/ripple/internal/adapters/driving/tui/styles"
	"github.com/quietpath/ripple/internal/core/domain"
	"github.com/quietpath/ripple/internal/core/ports/driving"
)

// Minimum terminal size for the interactive canvas. Below this the view
// falls back to the static pill rendering.
const (
	minCanvasWidth  = 60
	minCanvasHeight = 16

	// Reserved rows for the header and footer around the canvas.
	chromeRows = 5

	moveStepX = 2.0
	moveStepY = 1.0
)

// View is the relationship diagram view.
type View struct {
	styles  *styles.Styles
	diagram driving.DiagramService
	journal driving.JournalService

	// selected indexes into the draggable elements, -1 when none.
	selected int

	width  int
	height int
	ready  bool
}

// NewView creates a new diagram view.
func NewView(s *styles.Styles, diagramSvc driving.DiagramService, journal driving.JournalService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		diagram:  diagramSvc,
		journal:  journal,
		selected: -1,
		width:    80,
		height:   24,
	}
}

// Init initialises the diagram view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Reset regenerates the diagram from the current journal answers.
func (v *View) Reset() {
	data := v.diagramData()
	v.diagram.Generate(data, v.canvasWidth(), v.canvasHeight())
	v.selected = -1
	if draggable := v.draggableElements(); len(draggable) > 0 {
		v.selected = 0
	}
}

// diagramData reads the mapping and connections answers feeding the map.
func (v *View) diagramData() domain.DiagramData {
	return domain.DiagramData{
		FocusText:         domain.AsString(v.journal.GetField(domain.StepMapping, "centralFocus", "")),
		PositiveItemsText: domain.AsString(v.journal.GetField(domain.StepMapping, "positiveInfluences", "")),
		NegativeItemsText: domain.AsString(v.journal.GetField(domain.StepMapping, "negativeInfluences", "")),
		PatternText:       domain.AsString(v.journal.GetField(domain.StepConnections, "patternNoticed", "")),
	}
}

func (v *View) canvasWidth() float64 {
	return float64(v.width - 2)
}

func (v *View) canvasHeight() float64 {
	return float64(v.height - chromeRows)
}

func (v *View) tooSmall() bool {
	return v.width < minCanvasWidth || v.height < minCanvasHeight
}

func (v *View) draggableElements() []domain.Element {
	var out []domain.Element
	for _, el := range v.diagram.Elements() {
		if el.Draggable {
			out = append(out, el)
		}
	}
	return out
}

// Update handles messages for the diagram view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.diagram.Resize(v.canvasWidth(), v.canvasHeight())
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.diagram.Clear()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case "r":
		v.Reset()
		return v, nil

	case "tab":
		draggable := v.draggableElements()
		if len(draggable) == 0 {
			return v, nil
		}
		v.selected = (v.selected + 1) % len(draggable)
		return v, nil

	case "up", "down", "left", "right":
		if v.tooSmall() {
			return v, nil
		}
		v.moveSelected(msg.String())
		return v, nil
	}

	return v, nil
}

func (v *View) moveSelected(direction string) {
	draggable := v.draggableElements()
	if v.selected < 0 || v.selected >= len(draggable) {
		return
	}
	el := draggable[v.selected]

	x, y := el.X, el.Y
	switch direction {
	case "up":
		y -= moveStepY
	case "down":
		y += moveStepY
	case "left":
		x -= moveStepX
	case "right":
		x += moveStepX
	}
	v.diagram.MoveElement(el.ID, x, y)
}

// View renders the diagram.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Relationship Map"))
	b.WriteString("\n")

	if v.tooSmall() {
		b.WriteString(v.renderFallback())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[esc] menu  (enlarge the window for the interactive map)"))
		return b.String()
	}

	b.WriteString(v.renderCanvas())
	b.WriteString("\n")
	b.WriteString(v.renderLegend())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[tab] select  [arrows] move  [r] redraw  [esc] menu"))
	return b.String()
}

// renderCanvas plots connections and element labels on a rune grid.
func (v *View) renderCanvas() string {
	cols := int(v.canvasWidth())
	rows := int(v.canvasHeight())
	if cols < 1 || rows < 1 {
		return ""
	}

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = make([]rune, cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	elements := v.diagram.Elements()
	byID := make(map[string]domain.Element, len(elements))
	for _, el := range elements {
		byID[el.ID] = el
	}

	for _, conn := range v.diagram.Connections() {
		from, okFrom := byID[conn.FromID]
		to, okTo := byID[conn.ToID]
		if !okFrom || !okTo {
			continue
		}
		plotLine(grid, from.X, from.Y, to.X, to.Y)
	}

	draggable := v.draggableElements()
	for _, el := range elements {
		label := el.DisplayText
		// Truncation counts runes, not bytes, so accented labels keep
		// their width and never split mid-character.
		if runes, maxLen := []rune(label), int(el.Width); len(runes) > maxLen {
			label = string(runes[:maxLen-1]) + "…"
		}
		if v.selected >= 0 && v.selected < len(draggable) && draggable[v.selected].ID == el.ID {
			label = "[" + label + "]"
		} else if el.Category == domain.CategoryFocus {
			label = "(" + label + ")"
		}
		plotLabel(grid, el.X, el.Y, label)
	}

	lines := make([]string, rows)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

// plotLine draws a dotted straight line between two points.
func plotLine(grid [][]rune, x0, y0, x1, y1 float64) {
	steps := int(max(abs(x1-x0), abs(y1-y0)))
	if steps == 0 {
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(x0 + (x1-x0)*t)
		y := int(y0 + (y1-y0)*t)
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = '·'
		}
	}
}

// plotLabel writes the label centred on the element position.
func plotLabel(grid [][]rune, x, y float64, label string) {
	row := int(y)
	if row < 0 || row >= len(grid) {
		return
	}
	runes := []rune(label)
	start := int(x) - len(runes)/2
	for i, r := range runes {
		col := start + i
		if col >= 0 && col < len(grid[row]) {
			grid[row][col] = r
		}
	}
}

func (v *View) renderLegend() string {
	return strings.Join([]string{
		v.styles.FocusPill.Render("focus"),
		v.styles.PositivePill.Render("gives energy"),
		v.styles.NegativePill.Render("drains energy"),
		v.styles.PatternPill.Render("pattern"),
	}, " ")
}

// renderFallback is the static pill rendering used when the viewport is
// too small for the canvas. No selection, no lines.
func (v *View) renderFallback() string {
	data := v.diagramData()
	var b strings.Builder

	focus := strings.TrimSpace(data.FocusText)
	if focus == "" {
		focus = "My Focus"
	}
	b.WriteString(v.styles.FocusPill.Render(focus))
	b.WriteString("\n")

	for _, el := range v.diagram.Elements() {
		switch el.Category {
		case domain.CategoryPositive:
			b.WriteString(v.styles.PositivePill.Render(fmt.Sprintf("+ %s", el.DisplayText)))
			b.WriteString("\n")
		case domain.CategoryNegative:
			b.WriteString(v.styles.NegativePill.Render(fmt.Sprintf("- %s", el.DisplayText)))
			b.WriteString("\n")
		case domain.CategoryPattern:
			b.WriteString(v.styles.PatternPill.Render(el.DisplayText))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
