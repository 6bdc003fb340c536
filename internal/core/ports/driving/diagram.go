package driving

import "github.com/quietpath/ripple/internal/core/domain"

// DiagramService owns the relationship diagram's elements and connections
// for the lifetime of one rendered surface. State is ephemeral: it is
// recomputed on Generate and discarded on Clear or navigation away.
type DiagramService interface {
	// Generate lays out the diagram on a surface of the given size.
	Generate(data domain.DiagramData, width, height float64)

	// Elements returns the current elements.
	Elements() []domain.Element

	// Connections returns one connection per non-focus element, linking
	// it to the focus element.
	Connections() []domain.Connection

	// MoveElement repositions a draggable element, clamping its centre
	// to the surface bounds minus half-extents. Returns false for the
	// focus element or an unknown id.
	MoveElement(id string, x, y float64) bool

	// Resize recentres only the focus element; other elements keep
	// their absolute coordinates.
	Resize(width, height float64)

	// Clear discards all elements and connections.
	Clear()

	// ExportImage is an open capability gap: it always returns
	// domain.ErrNotImplemented.
	ExportImage() ([]byte, error)
}
