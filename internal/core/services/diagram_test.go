package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietpath/ripple/internal/core/domain"
)

func elementsByCategory(elements []domain.Element, category domain.ElementCategory) []domain.Element {
	var out []domain.Element
	for _, el := range elements {
		if el.Category == category {
			out = append(out, el)
		}
	}
	return out
}

func TestParseInfluenceText(t *testing.T) {
	assert.Nil(t, ParseInfluenceText(""))
	assert.Nil(t, ParseInfluenceText(" , ,, "))
	assert.Equal(t, []string{"walks", "music"}, ParseInfluenceText(" walks , music "))
	assert.Equal(t,
		[]string{"a", "b", "c", "d"},
		ParseInfluenceText("a,b,c,d,e,f"),
		"items beyond the fourth are dropped")
}

func TestParseInfluenceText_MixedSeparators(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d"}, ParseInfluenceText("a, b,,  c ,d,e"))
}

func TestDiagram_Generate_FullComplement(t *testing.T) {
	service := NewDiagramService()

	service.Generate(domain.DiagramData{
		FocusText:         "calm",
		PositiveItemsText: "a, b, c, d",
		NegativeItemsText: "e, f, g, h",
		PatternText:       "p",
	}, 200, 200)

	assert.Len(t, service.Elements(), 9)
	assert.Len(t, service.Connections(), 8)
}

func TestDiagram_Generate_FocusAtCentre(t *testing.T) {
	service := NewDiagramService()

	service.Generate(domain.DiagramData{FocusText: "calm"}, 100, 60)

	elements := service.Elements()
	focus := elementsByCategory(elements, domain.CategoryFocus)
	require.Len(t, focus, 1)
	assert.Equal(t, "calm", focus[0].DisplayText)
	assert.Equal(t, 50.0, focus[0].X)
	assert.Equal(t, 30.0, focus[0].Y)
	assert.False(t, focus[0].Draggable)
}

func TestDiagram_Generate_BlankFocusGetsPlaceholder(t *testing.T) {
	service := NewDiagramService()

	service.Generate(domain.DiagramData{}, 100, 60)

	focus := elementsByCategory(service.Elements(), domain.CategoryFocus)
	require.Len(t, focus, 1)
	assert.Equal(t, "My Focus", focus[0].DisplayText)
}

func TestDiagram_Generate_RingPlacement(t *testing.T) {
	service := NewDiagramService()

	service.Generate(domain.DiagramData{
		FocusText:         "calm",
		PositiveItemsText: "walks, music",
		NegativeItemsText: "noise",
	}, 200, 200)

	elements := service.Elements()
	positive := elementsByCategory(elements, domain.CategoryPositive)
	negative := elementsByCategory(elements, domain.CategoryNegative)
	require.Len(t, positive, 2)
	require.Len(t, negative, 1)

	// First positive item sits at -90 degrees, straight above centre.
	assert.InDelta(t, 100, positive[0].X, 0.001)
	assert.Less(t, positive[0].Y, 100.0)

	// Second positive item is half a turn on, below centre.
	assert.InDelta(t, 100, positive[1].X, 0.001)
	assert.Greater(t, positive[1].Y, 100.0)

	// Sole negative item sits at +90 degrees, below centre.
	assert.InDelta(t, 100, negative[0].X, 0.001)
	assert.Greater(t, negative[0].Y, 100.0)

	for _, el := range append(positive, negative...) {
		assert.True(t, el.Draggable)
	}
}

func TestDiagram_Generate_PatternNodeUpperRight(t *testing.T) {
	service := NewDiagramService()

	service.Generate(domain.DiagramData{FocusText: "calm", PatternText: "avoidance"}, 200, 100)

	pattern := elementsByCategory(service.Elements(), domain.CategoryPattern)
	require.Len(t, pattern, 1)
	assert.Greater(t, pattern[0].X, 100.0)
	assert.Less(t, pattern[0].Y, 50.0)
}

func TestDiagram_Connections_OnePerNonFocusElement(t *testing.T) {
	service := NewDiagramService()

	service.Generate(domain.DiagramData{
		FocusText:         "calm",
		PositiveItemsText: "a, b, c",
		NegativeItemsText: "x",
		PatternText:       "p",
	}, 200, 200)

	elements := service.Elements()
	connections := service.Connections()
	assert.Len(t, connections, len(elements)-1)

	focus := elementsByCategory(elements, domain.CategoryFocus)[0]
	for _, conn := range connections {
		assert.Equal(t, focus.ID, conn.ToID)
		assert.NotEqual(t, focus.ID, conn.FromID)
	}
}

func TestDiagram_MoveElement(t *testing.T) {
	service := NewDiagramService()
	service.Generate(domain.DiagramData{FocusText: "calm", PositiveItemsText: "walks"}, 200, 200)

	positive := elementsByCategory(service.Elements(), domain.CategoryPositive)[0]

	assert.True(t, service.MoveElement(positive.ID, 40, 40))

	moved := elementsByCategory(service.Elements(), domain.CategoryPositive)[0]
	assert.Equal(t, 40.0, moved.X)
	assert.Equal(t, 40.0, moved.Y)
}

func TestDiagram_MoveElement_ClampsToBounds(t *testing.T) {
	service := NewDiagramService()
	service.Generate(domain.DiagramData{FocusText: "calm", PositiveItemsText: "walks"}, 200, 200)

	positive := elementsByCategory(service.Elements(), domain.CategoryPositive)[0]

	assert.True(t, service.MoveElement(positive.ID, -50, 10_000))

	moved := elementsByCategory(service.Elements(), domain.CategoryPositive)[0]
	assert.Equal(t, positive.Width/2, moved.X)
	assert.Equal(t, 200-positive.Height/2, moved.Y)
}

func TestDiagram_MoveElement_RefusesFocusAndUnknown(t *testing.T) {
	service := NewDiagramService()
	service.Generate(domain.DiagramData{FocusText: "calm"}, 200, 200)

	focus := elementsByCategory(service.Elements(), domain.CategoryFocus)[0]

	assert.False(t, service.MoveElement(focus.ID, 10, 10))
	assert.False(t, service.MoveElement("no-such-id", 10, 10))

	unchanged := elementsByCategory(service.Elements(), domain.CategoryFocus)[0]
	assert.Equal(t, 100.0, unchanged.X)
}

func TestDiagram_Resize_RecentresOnlyFocus(t *testing.T) {
	service := NewDiagramService()
	service.Generate(domain.DiagramData{FocusText: "calm", PositiveItemsText: "walks"}, 200, 200)

	positive := elementsByCategory(service.Elements(), domain.CategoryPositive)[0]
	require.True(t, service.MoveElement(positive.ID, 60, 60))

	service.Resize(300, 300)

	focus := elementsByCategory(service.Elements(), domain.CategoryFocus)[0]
	assert.Equal(t, 150.0, focus.X)
	assert.Equal(t, 150.0, focus.Y)

	kept := elementsByCategory(service.Elements(), domain.CategoryPositive)[0]
	assert.Equal(t, 60.0, kept.X)
	assert.Equal(t, 60.0, kept.Y)
}

func TestDiagram_Clear(t *testing.T) {
	service := NewDiagramService()
	service.Generate(domain.DiagramData{FocusText: "calm", PositiveItemsText: "walks"}, 200, 200)

	service.Clear()

	assert.Empty(t, service.Elements())
	assert.Empty(t, service.Connections())
}

func TestDiagram_ExportImage_NotImplemented(t *testing.T) {
	service := NewDiagramService()

	_, err := service.ExportImage()

	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestDiagram_RingAngleStep(t *testing.T) {
	service := NewDiagramService()
	service.Generate(domain.DiagramData{FocusText: "f", PositiveItemsText: "a, b, c"}, 400, 400)

	positive := elementsByCategory(service.Elements(), domain.CategoryPositive)
	require.Len(t, positive, 3)

	// Three items step 120 degrees apart around the centre.
	angles := make([]float64, len(positive))
	for i, el := range positive {
		angles[i] = math.Atan2(el.Y-200, el.X-200) * 180 / math.Pi
	}
	assert.InDelta(t, -90, angles[0], 0.001)
	assert.InDelta(t, 30, angles[1], 0.001)
	assert.InDelta(t, 150, angles[2], 0.001)
}
