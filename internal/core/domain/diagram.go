package domain

// ElementCategory classifies a diagram element.
type ElementCategory string

// Diagram element categories.
const (
	// CategoryFocus is the single central element. Never draggable.
	CategoryFocus ElementCategory = "focus"

	// CategoryPositive marks an energy-giving influence.
	CategoryPositive ElementCategory = "positive"

	// CategoryNegative marks an energy-draining influence.
	CategoryNegative ElementCategory = "negative"

	// CategoryPattern marks the optional pattern label.
	CategoryPattern ElementCategory = "pattern"
)

// DiagramData is the input to diagram generation, read from the mapping
// and connections sections. The item lists are comma-separated free text.
type DiagramData struct {
	FocusText         string
	PositiveItemsText string
	NegativeItemsText string
	PatternText       string
}

// Element is one node of the relationship diagram. Elements are
// ephemeral: recomputed on every generation, never persisted.
type Element struct {
	// ID uniquely identifies the element within one generation.
	ID string

	// DisplayText is the label drawn for the element.
	DisplayText string

	// Category drives colour and connection styling.
	Category ElementCategory

	// X, Y is the element's centre on the surface.
	X, Y float64

	// Width, Height are the element's extents.
	Width, Height float64

	// Draggable is false only for the central focus element.
	Draggable bool
}

// Connection is a straight line from a non-focus element to the focus
// element. Geometry is derived from the endpoints' current positions and
// recomputed whenever either moves.
type Connection struct {
	FromID   string
	ToID     string
	Category ElementCategory
}
