package capture

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	mshm "github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/gen2brain/shm"

	"github.com/screenstitch/screenstitch/internal/logger"
	"github.com/screenstitch/screenstitch/internal/pixbuf"
)

// X11Backend captures root-window regions over the X protocol. When the
// MIT-SHM extension is available image data is transferred through a shared
// memory segment instead of the X socket, which matters for full-screen
// grabs.
type X11Backend struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	useShm bool
	mu     sync.Mutex
}

// NewX11Backend connects to the X server.
func NewX11Backend() (*X11Backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	setup := xproto.Setup(conn)
	return &X11Backend{
		conn:   conn,
		screen: setup.DefaultScreen(conn),
	}, nil
}

// Start probes for the MIT-SHM extension.
func (b *X11Backend) Start() error {
	log := logger.WithComponent("x11-backend")
	if err := mshm.Init(b.conn); err != nil {
		log.Warn().Err(err).Msg("MIT-SHM unavailable, using socket transfer")
		b.useShm = false
	} else {
		b.useShm = true
		log.Info().Msg("MIT-SHM extension initialized")
	}
	return nil
}

// Stop closes the X connection.
func (b *X11Backend) Stop() error {
	b.conn.Close()
	return nil
}

// Name returns the backend name.
func (b *X11Backend) Name() string {
	return "X11"
}

// IsAvailable checks if X11 capture is available.
func (b *X11Backend) IsAvailable() bool {
	return b.conn != nil
}

// Capture grabs a rectangle of the root window. A failed GetImage (for
// example an out-of-bounds rectangle after an unclipped passthrough) is
// reported as (nil, nil), not as an error.
func (b *X11Backend) Capture(x, y, width, height int) (*pixbuf.Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return nil, nil
	}

	var data []byte
	var err error
	if b.useShm {
		data, err = b.captureShm(x, y, width, height)
	} else {
		data, err = b.captureSocket(x, y, width, height)
	}
	if err != nil {
		logger.WithComponent("x11-backend").Debug().
			Err(err).
			Int("x", x).Int("y", y).
			Int("width", width).Int("height", height).
			Msg("GetImage failed")
		return nil, nil
	}

	buf := &pixbuf.Buffer{
		Pix:           data,
		Width:         width,
		Height:        height,
		BitsPerPixel:  32,
		BytesPerPixel: 4,
		Order:         pixbuf.OrderBGRA,
	}
	if b.screen.RootDepth == 24 {
		// Depth-24 visuals leave the fourth byte undefined
		for i := 3; i < len(buf.Pix); i += 4 {
			buf.Pix[i] = 0xff
		}
	}
	return buf, nil
}

func (b *X11Backend) captureSocket(x, y, width, height int) ([]byte, error) {
	reply, err := xproto.GetImage(
		b.conn,
		xproto.ImageFormatZPixmap,
		xproto.Drawable(b.screen.Root),
		int16(x), int16(y),
		uint16(width), uint16(height),
		0xffffffff,
	).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Data, nil
}

func (b *X11Backend) captureShm(x, y, width, height int) ([]byte, error) {
	size := width * height * 4
	shmID, err := shm.Get(shm.IPC_PRIVATE, size, shm.IPC_CREAT|0777)
	if err != nil {
		return nil, fmt.Errorf("shmget: %w", err)
	}
	defer func() { _ = shm.Rm(shmID) }()

	seg, err := mshm.NewSegId(b.conn)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate shm segment id: %w", err)
	}

	shared, err := shm.At(shmID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("shmat: %w", err)
	}
	defer func() { _ = shm.Dt(shared) }()

	mshm.Attach(b.conn, seg, uint32(shmID), false)
	defer mshm.Detach(b.conn, seg)

	_, err = mshm.GetImage(
		b.conn,
		xproto.Drawable(b.screen.Root),
		int16(x), int16(y),
		uint16(width), uint16(height),
		0xffffffff,
		byte(xproto.ImageFormatZPixmap),
		seg, 0,
	).Reply()
	if err != nil {
		return nil, err
	}

	// The segment is unmapped on return, so the pixels move to a fresh
	// buffer owned by the caller.
	data := make([]byte, size)
	copy(data, shared)
	return data, nil
}
