package capture

import (
	"github.com/screenstitch/screenstitch/internal/display"
	"github.com/screenstitch/screenstitch/internal/geometry"
)

// Sanitize clips a requested capture rectangle to a display's visible bounds
// so the native backend is only ever asked for on-screen pixels.
//
// With an explicit target the request is intersected strictly against that
// display, and the result is empty when they do not overlap (the orchestrator
// then short-circuits with no result). Without a target the first enumerated
// display whose visible rectangle overlaps the request is used; when none
// overlaps the request is returned unchanged and the backend is left to fail
// gracefully on the out-of-bounds rectangle.
func Sanitize(requested geometry.Rect, displays []display.Display, target *display.Display) geometry.Rect {
	if target != nil {
		return requested.Intersect(target.VisibleRect())
	}
	for _, d := range displays {
		if visible := d.VisibleRect(); visible.Overlaps(requested) {
			return requested.Intersect(visible)
		}
	}
	return requested
}
