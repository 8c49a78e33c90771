package world

import "github.com/google/uuid"

// GroundItem is a loose stack of items lying in the world, waiting to be
// hauled to a stockpile.
type GroundItem struct {
	ID       string
	Kind     string
	Quantity int
	X, Y     float64
}

// NewGroundItem creates a ground item stack at a position.
func NewGroundItem(kind string, qty int, x, y float64) *GroundItem {
	return &GroundItem{
		ID:       uuid.NewString(),
		Kind:     kind,
		Quantity: qty,
		X:        x,
		Y:        y,
	}
}
