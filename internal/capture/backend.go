// Package capture turns raw per-display captures into coordinate-correct
// pixel buffers: it clips requests against display bounds, drives the native
// backend, pads clipped captures back to the requested size and stitches
// multi-display captures into one virtual-desktop image.
package capture

import (
	"errors"

	"github.com/screenstitch/screenstitch/internal/pixbuf"
)

// Backend rasterizes screen contents. Implementations are opaque to the
// orchestrator: it neither knows nor cares how a rectangle gets captured.
type Backend interface {
	// Start initializes the backend and any required resources
	Start() error

	// Stop releases resources held by the backend
	Stop() error

	// Capture grabs the given device-pixel rectangle. The caller guarantees
	// non-negative width and height. A (nil, nil) return means the region
	// could not be captured; that is an expected condition, not an error.
	Capture(x, y, width, height int) (*pixbuf.Buffer, error)

	// Name returns a human-readable name for this backend
	Name() string

	// IsAvailable checks if this backend can be used in the current environment
	IsAvailable() bool
}

// SelectBackend returns the first backend usable in the current environment,
// in the order given.
func SelectBackend(backends ...Backend) (Backend, error) {
	for _, b := range backends {
		if b.IsAvailable() {
			return b, nil
		}
	}
	return nil, errors.New("no capture backend available")
}
