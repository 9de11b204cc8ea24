// Package display models connected displays and resolves which one should
// constrain a capture request.
package display

import (
	"errors"

	"github.com/screenstitch/screenstitch/internal/geometry"
)

// ErrNoDisplays is returned when the enumerator reports no connected
// displays. Callers treat it as "nothing to capture" rather than a fault.
var ErrNoDisplays = errors.New("no displays available")

// Point is a position in virtual-desktop coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a pixel extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Display is an immutable snapshot of one connected display. Position and
// Size describe the full pixel bounds in virtual-desktop space; the Visible
// fields narrow that to the OS-usable area (excluding menu bars, docks and
// similar chrome) when the platform reports one.
type Display struct {
	ID              string `json:"id"`
	Position        Point  `json:"position"`
	Size            Size   `json:"size"`
	VisiblePosition *Point `json:"visible_position,omitempty"`
	VisibleSize     *Size  `json:"visible_size,omitempty"`
}

// Bounds returns the display's full rectangle.
func (d Display) Bounds() geometry.Rect {
	return geometry.NewRect(d.Position.X, d.Position.Y, d.Size.Width, d.Size.Height)
}

// VisibleRect returns the display's usable rectangle. When the platform did
// not report a visible position the full position is used as origin, and when
// it did not report a visible size the full size is used.
func (d Display) VisibleRect() geometry.Rect {
	x, y := d.Position.X, d.Position.Y
	if d.VisiblePosition != nil {
		x, y = d.VisiblePosition.X, d.VisiblePosition.Y
	}
	w, h := d.Size.Width, d.Size.Height
	if d.VisibleSize != nil {
		w, h = d.VisibleSize.Width, d.VisibleSize.Height
	}
	return geometry.NewRect(x, y, w, h)
}

// Enumerator lists the connected displays. Enumeration order is stable within
// a session and is used as the deterministic fallback when no display matches
// a requested ID.
type Enumerator interface {
	Displays() ([]Display, error)
}
