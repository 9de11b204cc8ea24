package capture

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/screenstitch/screenstitch/internal/display"
	"github.com/screenstitch/screenstitch/internal/geometry"
	"github.com/screenstitch/screenstitch/internal/logger"
	"github.com/screenstitch/screenstitch/internal/pixbuf"
)

// Manager orchestrates capture requests: it resolves target displays,
// sanitizes rectangles, drives the backend and hands raw buffers to the
// compositor. Every request allocates fresh buffers and re-enumerates
// displays, so concurrent requests share no mutable state.
//
// Operations return (nil, nil) for every "nothing to capture" condition: an
// empty request, no displays, or a backend miss. An actual error indicates a
// broken collaborator, such as a backend response whose byte length does not
// match its dimensions.
type Manager struct {
	enum     display.Enumerator
	backend  Backend
	resolver display.Resolver
}

// NewManager creates a capture manager using the given enumerator and backend.
func NewManager(enum display.Enumerator, backend Backend, resolver display.Resolver) *Manager {
	return &Manager{enum: enum, backend: backend, resolver: resolver}
}

// CaptureArea captures the requested rectangle. With a target display the
// request is clipped strictly against that display; otherwise the display
// list is enumerated and the first overlapping display clips it. The result
// is always padded back to the requested (truncated) size, with any
// off-screen region left transparent black.
func (m *Manager) CaptureArea(requested geometry.Rect, target *display.Display) (*pixbuf.Buffer, error) {
	if requested.IsEmpty() {
		return nil, nil
	}

	var displays []display.Display
	if target == nil {
		var err error
		displays, err = m.enum.Displays()
		if err != nil {
			if errors.Is(err, display.ErrNoDisplays) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to enumerate displays: %w", err)
		}
	}

	corrected := Sanitize(requested, displays, target)
	if corrected.IsEmpty() {
		logger.WithComponent("capture").Debug().
			Float64("x", requested.X).
			Float64("y", requested.Y).
			Msg("Requested rect entirely off-screen")
		return nil, nil
	}

	captured, err := m.backend.Capture(
		corrected.TruncX(), corrected.TruncY(),
		corrected.TruncWidth(), corrected.TruncHeight())
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", m.backend.Name(), err)
	}
	if captured == nil {
		logger.WithComponent("capture").Debug().
			Int("width", corrected.TruncWidth()).
			Int("height", corrected.TruncHeight()).
			Msg("Backend returned no data")
		return nil, nil
	}
	if err := captured.Validate(); err != nil {
		return nil, fmt.Errorf("backend %s: %w", m.backend.Name(), err)
	}

	return pixbuf.PadToOriginal(captured, requested, corrected), nil
}

// CaptureEntireScreen captures one display's full visible area. With an
// empty displayID the primary display is used; an unknown ID falls back to
// the first enumerated display.
func (m *Manager) CaptureEntireScreen(displayID string) (*pixbuf.Buffer, error) {
	displays, err := m.enum.Displays()
	if err != nil {
		if errors.Is(err, display.ErrNoDisplays) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to enumerate displays: %w", err)
	}

	target, err := m.resolver.ResolveEntireScreen(displays, displayID)
	if err != nil {
		if errors.Is(err, display.ErrNoDisplays) {
			return nil, nil
		}
		return nil, err
	}

	// Passing the resolved display as target keeps the rect from being
	// re-clipped against a different display.
	return m.CaptureArea(target.VisibleRect(), &target)
}

// CapturePixelColor captures a 1x1 region and returns its color, or nil when
// the point is not on any display.
func (m *Manager) CapturePixelColor(x, y float64) (*color.RGBA, error) {
	buf, err := m.CaptureArea(geometry.NewRect(x, y, 1, 1), nil)
	if err != nil || buf == nil {
		return nil, err
	}
	c := buf.ColorAt(0, 0)
	return &c, nil
}

// CaptureAllDisplays captures every display and stitches the results into
// one canvas sized to the bounding box of all display rectangles, each
// capture placed at its true virtual-desktop offset. Displays that fail to
// capture are logged and skipped; the result is nil only when no display
// produced pixels.
func (m *Manager) CaptureAllDisplays() (*pixbuf.Buffer, error) {
	displays, err := m.enum.Displays()
	if err != nil {
		if errors.Is(err, display.ErrNoDisplays) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to enumerate displays: %w", err)
	}
	if len(displays) == 0 {
		return nil, nil
	}

	log := logger.WithComponent("capture")

	rects := make([]geometry.Rect, len(displays))
	for i, d := range displays {
		rects[i] = d.VisibleRect()
	}

	// Per-display captures are independent, so they run concurrently; the
	// blit phase below stays sequential in enumeration order so overlapping
	// (malformed) layouts resolve deterministically to last-wins.
	captures := make([]*pixbuf.Buffer, len(displays))
	var wg sync.WaitGroup
	for i := range displays {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := displays[i]
			buf, err := m.CaptureArea(rects[i], &d)
			if err != nil {
				log.Warn().
					Err(err).
					Str("display_id", d.ID).
					Msg("Display capture failed, skipping")
				return
			}
			if buf == nil {
				log.Warn().
					Str("display_id", d.ID).
					Msg("Display capture returned no data, skipping")
				return
			}
			captures[i] = buf
		}(i)
	}
	wg.Wait()

	captured := 0
	for _, buf := range captures {
		if buf != nil {
			captured++
		}
	}
	if captured == 0 {
		return nil, nil
	}

	// The bounding box spans all display rects, including failed ones, so a
	// partial result keeps every capture at its correct offset.
	box := geometry.BoundingBox(rects)
	canvas := pixbuf.NewCanvas(box.TruncWidth(), box.TruncHeight())
	for i, buf := range captures {
		if buf == nil {
			continue
		}
		pixbuf.Blit(canvas, buf,
			rects[i].TruncX()-box.TruncX(),
			rects[i].TruncY()-box.TruncY())
	}

	log.Debug().
		Int("displays", len(displays)).
		Int("captured", captured).
		Int("width", canvas.Width).
		Int("height", canvas.Height).
		Msg("Stitched combined capture")
	return canvas, nil
}
