// Package geometry provides rectangle math in virtual-desktop coordinates.
//
// All rectangles live in the shared coordinate space reported by the display
// enumerator. An empty rectangle (non-positive width or height) is the "no
// area" sentinel: operations that would produce one return it, and callers
// are expected to short-circuit on it instead of proceeding.
package geometry

// Rect is an axis-aligned rectangle. Coordinates are kept as float64 because
// callers may request sub-pixel geometry; conversion to device pixels always
// truncates toward zero (see TruncX etc.), never rounds.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect returns a rectangle with the given origin and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// MaxX returns the exclusive right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the exclusive bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Intersect returns the intersection of r and other, or the empty rectangle
// when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	maxX := min(r.MaxX(), other.MaxX())
	maxY := min(r.MaxY(), other.MaxY())
	if maxX <= x || maxY <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, Width: maxX - x, Height: maxY - y}
}

// Overlaps reports whether r and other share any area.
func (r Rect) Overlaps(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.MaxX() && y >= r.Y && y < r.MaxY()
}

// TruncX returns the X origin truncated toward zero.
func (r Rect) TruncX() int { return int(r.X) }

// TruncY returns the Y origin truncated toward zero.
func (r Rect) TruncY() int { return int(r.Y) }

// TruncWidth returns the width truncated toward zero.
func (r Rect) TruncWidth() int { return int(r.Width) }

// TruncHeight returns the height truncated toward zero.
func (r Rect) TruncHeight() int { return int(r.Height) }

// BoundingBox returns the minimal rectangle containing every rectangle in
// rects. It must not be called with an empty slice.
func BoundingBox(rects []Rect) Rect {
	box := rects[0]
	for _, r := range rects[1:] {
		x := min(box.X, r.X)
		y := min(box.Y, r.Y)
		maxX := max(box.MaxX(), r.MaxX())
		maxY := max(box.MaxY(), r.MaxY())
		box = Rect{X: x, Y: y, Width: maxX - x, Height: maxY - y}
	}
	return box
}
