package display

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"

	"github.com/screenstitch/screenstitch/internal/logger"
)

// X11Enumerator lists displays via the Xinerama extension.
type X11Enumerator struct {
	conn *xgb.Conn
	mu   sync.Mutex
}

// NewX11Enumerator connects to the X server and initializes Xinerama.
func NewX11Enumerator() (*X11Enumerator, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	if err := xinerama.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("xinerama extension unavailable: %w", err)
	}
	return &X11Enumerator{conn: conn}, nil
}

// Displays queries the current screen layout. The query runs on every call
// so hot-plugged or removed monitors are reflected immediately; results are
// never cached.
func (e *X11Enumerator) Displays() ([]Display, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	reply, err := xinerama.QueryScreens(e.conn).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query screens: %w", err)
	}

	displays := make([]Display, 0, len(reply.ScreenInfo))
	for i, info := range reply.ScreenInfo {
		displays = append(displays, Display{
			ID:       strconv.Itoa(i),
			Position: Point{X: float64(info.XOrg), Y: float64(info.YOrg)},
			Size:     Size{Width: float64(info.Width), Height: float64(info.Height)},
			// X11 reports no per-output chrome insets, so the visible
			// rectangle falls back to the full bounds.
		})
	}

	logger.WithComponent("display").Debug().
		Int("count", len(displays)).
		Msg("Enumerated displays")
	return displays, nil
}

// Close releases the X connection.
func (e *X11Enumerator) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.conn.Close()
}
