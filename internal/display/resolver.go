package display

import (
	"github.com/screenstitch/screenstitch/internal/logger"
)

// DefaultPrimaryID is the ID the resolver prefers when the caller did not
// name a display. X11 enumeration puts the primary output first and gives it
// this ID.
const DefaultPrimaryID = "0"

// Resolver picks the display whose bounds should constrain a capture.
type Resolver struct {
	// PrimaryID is the ID treated as the primary display when no explicit
	// target is requested. Empty means DefaultPrimaryID.
	PrimaryID string
}

// ResolveEntireScreen returns the display a whole-screen capture should
// target. With no requested ID the primary display is preferred; with a
// requested ID the matching display is preferred. Either way the first
// enumerated display is the fallback, so resolution only fails when displays
// is empty (ErrNoDisplays).
func (r Resolver) ResolveEntireScreen(displays []Display, requestedID string) (Display, error) {
	if len(displays) == 0 {
		return Display{}, ErrNoDisplays
	}

	wanted := requestedID
	if wanted == "" {
		wanted = r.PrimaryID
		if wanted == "" {
			wanted = DefaultPrimaryID
		}
	}

	for _, d := range displays {
		if d.ID == wanted {
			return d, nil
		}
	}

	logger.WithComponent("display").Debug().
		Str("requested_id", requestedID).
		Str("fallback_id", displays[0].ID).
		Msg("No display matched, falling back to first enumerated")
	return displays[0], nil
}
