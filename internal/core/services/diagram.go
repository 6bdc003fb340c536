package services

import (
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/quietpath/ripple/internal/core/domain"
	"github.com/quietpath/ripple/internal/core/ports/driving"
)

var _ driving.DiagramService = (*DiagramService)(nil)

// maxInfluenceItems caps how many items of each polarity are drawn.
const maxInfluenceItems = 4

// Node extents in surface units. The focus node is drawn larger than the
// influence nodes around it.
const (
	focusWidth  = 22.0
	focusHeight = 5.0
	nodeWidth   = 18.0
	nodeHeight  = 3.0

	// ringRatio sets the influence ring radius as a fraction of the
	// smaller surface dimension.
	ringRatio = 0.36

	// patternOffsetX/Y place the pattern node relative to centre,
	// towards the upper right.
	patternOffsetX = 0.32
	patternOffsetY = -0.38
)

// DiagramService is the layout engine for the relationship diagram.
// Elements and connections live only as long as the rendered surface;
// nothing here is persisted.
type DiagramService struct {
	mu          sync.Mutex
	width       float64
	height      float64
	elements    []domain.Element
	connections []domain.Connection
	newID       func() string
}

// NewDiagramService creates an empty layout engine.
func NewDiagramService() *DiagramService {
	return &DiagramService{
		newID: func() string { return uuid.NewString() },
	}
}

// ParseInfluenceText splits a comma-separated field into at most four
// trimmed, non-empty items.
func ParseInfluenceText(text string) []string {
	var items []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
		if len(items) == maxInfluenceItems {
			break
		}
	}
	return items
}

// Generate lays the diagram out on a surface of the given size. Any
// previous layout is discarded.
func (s *DiagramService) Generate(data domain.DiagramData, width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.width = width
	s.height = height
	s.elements = nil
	s.connections = nil

	cx := width / 2
	cy := height / 2

	focusText := strings.TrimSpace(data.FocusText)
	if focusText == "" {
		focusText = "My Focus"
	}
	focus := domain.Element{
		ID:          s.newID(),
		DisplayText: focusText,
		Category:    domain.CategoryFocus,
		X:           cx,
		Y:           cy,
		Width:       focusWidth,
		Height:      focusHeight,
		Draggable:   false,
	}
	s.elements = append(s.elements, focus)

	radius := math.Min(width, height) * ringRatio

	s.placeRing(ParseInfluenceText(data.PositiveItemsText), domain.CategoryPositive, cx, cy, radius, -90)
	s.placeRing(ParseInfluenceText(data.NegativeItemsText), domain.CategoryNegative, cx, cy, radius, 90)

	if pattern := strings.TrimSpace(data.PatternText); pattern != "" {
		s.addElement(domain.Element{
			ID:          s.newID(),
			DisplayText: pattern,
			Category:    domain.CategoryPattern,
			X:           cx + width*patternOffsetX,
			Y:           cy + height*patternOffsetY,
			Width:       nodeWidth,
			Height:      nodeHeight,
			Draggable:   true,
		})
	}

	s.rebuildConnectionsLocked()
}

// placeRing distributes the items on the influence ring, stepping
// clockwise from the group's base angle.
func (s *DiagramService) placeRing(items []string, category domain.ElementCategory, cx, cy, radius, baseAngle float64) {
	n := len(items)
	if n == 0 {
		return
	}
	step := 360.0 / float64(n)
	for i, text := range items {
		angle := (baseAngle + float64(i)*step) * math.Pi / 180
		s.addElement(domain.Element{
			ID:          s.newID(),
			DisplayText: text,
			Category:    category,
			X:           cx + radius*math.Cos(angle),
			Y:           cy + radius*math.Sin(angle),
			Width:       nodeWidth,
			Height:      nodeHeight,
			Draggable:   true,
		})
	}
}

// addElement clamps the element inside the surface and appends it.
func (s *DiagramService) addElement(el domain.Element) {
	el.X, el.Y = s.clamp(el.X, el.Y, el.Width, el.Height)
	s.elements = append(s.elements, el)
}

// clamp keeps a node centre within the surface bounds minus half-extents.
func (s *DiagramService) clamp(x, y, w, h float64) (float64, float64) {
	halfW := w / 2
	halfH := h / 2
	x = math.Max(halfW, math.Min(s.width-halfW, x))
	y = math.Max(halfH, math.Min(s.height-halfH, y))
	return x, y
}

// Elements returns a copy of the current elements.
func (s *DiagramService) Elements() []domain.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Connections returns a copy of the current connections.
func (s *DiagramService) Connections() []domain.Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Connection, len(s.connections))
	copy(out, s.connections)
	return out
}

// MoveElement repositions a draggable element and refreshes connection
// geometry. The focus element and unknown ids refuse the move.
func (s *DiagramService) MoveElement(id string, x, y float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.elements {
		if s.elements[i].ID != id {
			continue
		}
		if !s.elements[i].Draggable {
			return false
		}
		s.elements[i].X, s.elements[i].Y = s.clamp(x, y, s.elements[i].Width, s.elements[i].Height)
		s.rebuildConnectionsLocked()
		return true
	}
	return false
}

// Resize adopts the new surface size and recentres only the focus
// element. Other elements keep their absolute positions, clamped to the
// new bounds.
func (s *DiagramService) Resize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.width = width
	s.height = height
	for i := range s.elements {
		if s.elements[i].Category == domain.CategoryFocus {
			s.elements[i].X = width / 2
			s.elements[i].Y = height / 2
		} else {
			s.elements[i].X, s.elements[i].Y = s.clamp(s.elements[i].X, s.elements[i].Y, s.elements[i].Width, s.elements[i].Height)
		}
	}
	s.rebuildConnectionsLocked()
}

// Clear discards all elements and connections.
func (s *DiagramService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = nil
	s.connections = nil
}

// ExportImage is not supported on this surface.
func (s *DiagramService) ExportImage() ([]byte, error) {
	return nil, domain.ErrNotImplemented
}

// rebuildConnectionsLocked links every non-focus element to the focus
// element, one line each, coloured by the element's category.
func (s *DiagramService) rebuildConnectionsLocked() {
	s.connections = nil

	var focusID string
	for _, el := range s.elements {
		if el.Category == domain.CategoryFocus {
			focusID = el.ID
			break
		}
	}
	if focusID == "" {
		return
	}
	for _, el := range s.elements {
		if el.ID == focusID {
			continue
		}
		s.connections = append(s.connections, domain.Connection{
			FromID:   el.ID,
			ToID:     focusID,
			Category: el.Category,
		})
	}
}
