package diagram

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietpath/ripple/internal/adapters/driven/storage/memory"
	"github.com/quietpath/ripple/internal/adapters/driving/tui/messages"
	"github.com/quietpath/ripple/internal/core/domain"
	"github.com/quietpath/ripple/internal/core/services"
)

func newTestView(t *testing.T) (*View, *services.DiagramService) {
	t.Helper()

	journal := services.NewJournalService(memory.New())
	journal.SaveSection(domain.StepMapping, domain.Section{
		"centralFocus":       "calm",
		"positiveInfluences": "walks, music",
		"negativeInfluences": "noise",
	})
	journal.SaveField(domain.StepConnections, "patternNoticed", "avoidance")

	diagramSvc := services.NewDiagramService()
	v := NewView(nil, diagramSvc, journal)
	v.SetDimensions(100, 30)
	v.Reset()
	return v, diagramSvc
}

func TestDiagram_ResetGeneratesFromJournal(t *testing.T) {
	_, svc := newTestView(t)

	elements := svc.Elements()
	// Focus, two positive, one negative, one pattern.
	assert.Len(t, elements, 5)
	assert.Len(t, svc.Connections(), 4)
}

func TestDiagram_TabCyclesSelection(t *testing.T) {
	v, _ := newTestView(t)
	require.Equal(t, 0, v.selected)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, v.selected)

	// Cycles back around after the last draggable element.
	for i := 0; i < 3; i++ {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	assert.Equal(t, 0, v.selected)
}

func TestDiagram_ArrowMovesSelected(t *testing.T) {
	v, svc := newTestView(t)

	before := v.draggableElements()[0]
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRight})

	var after domain.Element
	for _, el := range svc.Elements() {
		if el.ID == before.ID {
			after = el
		}
	}
	assert.Equal(t, before.X+moveStepX, after.X)
	assert.Equal(t, before.Y, after.Y)
}

func TestDiagram_EscClearsAndReturnsToMenu(t *testing.T) {
	v, svc := newTestView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, msg.View)
	assert.Empty(t, svc.Elements())
}

func TestDiagram_ViewRendersCanvas(t *testing.T) {
	v, _ := newTestView(t)

	out := v.View()
	assert.Contains(t, out, "Relationship Map")
	assert.Contains(t, out, "calm")
	assert.Contains(t, out, "walks")
}

func TestDiagram_MultibyteLabelTruncation(t *testing.T) {
	journal := services.NewJournalService(memory.New())
	journal.SaveField(domain.StepMapping, "centralFocus",
		"équilibre et sérénité au quotidien")

	v := NewView(nil, services.NewDiagramService(), journal)
	v.SetDimensions(100, 30)
	v.Reset()

	out := v.View()
	// 22-cell focus label: 21 runes kept, ellipsis appended, no rune
	// split mid-character.
	assert.Contains(t, out, "équilibre et sérénité…")
	assert.NotContains(t, out, "au quotidien")
	assert.NotContains(t, out, "�")
}

func TestDiagram_FallbackWhenTooSmall(t *testing.T) {
	v, _ := newTestView(t)
	v.SetDimensions(40, 12)

	out := v.View()
	assert.Contains(t, out, "calm")
	assert.Contains(t, out, "+ walks")
	assert.Contains(t, out, "- noise")
	assert.Contains(t, out, "enlarge the window")
}

func TestDiagram_MoveIgnoredWhenTooSmall(t *testing.T) {
	v, svc := newTestView(t)
	v.SetDimensions(40, 12)

	before := v.draggableElements()[0]
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRight})

	for _, el := range svc.Elements() {
		if el.ID == before.ID {
			assert.Equal(t, before.X, el.X)
		}
	}
}
