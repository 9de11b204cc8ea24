// Package pixbuf holds captured pixel data and composites buffers onto
// larger canvases.
package pixbuf

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrMalformed indicates a buffer whose byte length does not match its
// declared dimensions. It signals a bug in a capture backend, not an
// expected runtime condition.
var ErrMalformed = errors.New("malformed pixel buffer")

// ChannelOrder is the byte order of one 4-byte pixel. It is data carried by
// every buffer, not a type hierarchy: the compositor reorders channels per
// pixel whenever source and destination disagree.
type ChannelOrder int

const (
	// OrderRGBA is the canvas-native order.
	OrderRGBA ChannelOrder = iota
	// OrderBGRA is what X11 ZPixmap data arrives in on little-endian setups.
	OrderBGRA
	// OrderARGB is seen on some big-endian visuals.
	OrderARGB
)

// String returns the order name.
func (o ChannelOrder) String() string {
	switch o {
	case OrderRGBA:
		return "rgba"
	case OrderBGRA:
		return "bgra"
	case OrderARGB:
		return "argb"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

// rgbaAt reads one 4-byte pixel in this order.
func (o ChannelOrder) rgbaAt(p []byte) (r, g, b, a uint8) {
	switch o {
	case OrderBGRA:
		return p[2], p[1], p[0], p[3]
	case OrderARGB:
		return p[1], p[2], p[3], p[0]
	default:
		return p[0], p[1], p[2], p[3]
	}
}

// putRGBA writes one 4-byte pixel in this order.
func (o ChannelOrder) putRGBA(p []byte, r, g, b, a uint8) {
	switch o {
	case OrderBGRA:
		p[0], p[1], p[2], p[3] = b, g, r, a
	case OrderARGB:
		p[0], p[1], p[2], p[3] = a, r, g, b
	default:
		p[0], p[1], p[2], p[3] = r, g, b, a
	}
}

// Buffer is a captured or composited image. It is a value type: every
// capture and every compositing step allocates a fresh one, and buffers are
// never shared across requests.
type Buffer struct {
	Pix           []byte
	Width         int
	Height        int
	BitsPerPixel  int
	BytesPerPixel int
	Order         ChannelOrder
}

// NewCanvas allocates a zero-filled (fully transparent black) RGBA canvas.
func NewCanvas(width, height int) *Buffer {
	return &Buffer{
		Pix:           make([]byte, width*height*4),
		Width:         width,
		Height:        height,
		BitsPerPixel:  32,
		BytesPerPixel: 4,
		Order:         OrderRGBA,
	}
}

// Validate checks the length invariant. Compositing a buffer that fails this
// check would read out of bounds, so callers must reject it loudly.
func (b *Buffer) Validate() error {
	want := b.Width * b.Height * b.BytesPerPixel
	if len(b.Pix) != want {
		return fmt.Errorf("%w: %d bytes for %dx%dx%d (want %d)",
			ErrMalformed, len(b.Pix), b.Width, b.Height, b.BytesPerPixel, want)
	}
	return nil
}

// ColorAt returns the pixel at (x, y) regardless of channel order.
func (b *Buffer) ColorAt(x, y int) color.RGBA {
	i := (y*b.Width + x) * b.BytesPerPixel
	r, g, bb, a := b.Order.rgbaAt(b.Pix[i : i+4])
	return color.RGBA{R: r, G: g, B: bb, A: a}
}

// ToImage converts the buffer to a standard *image.RGBA for encoding.
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	if b.Order == OrderRGBA && b.BytesPerPixel == 4 {
		copy(img.Pix, b.Pix)
		return img
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			src := (y*b.Width + x) * b.BytesPerPixel
			r, g, bb, a := b.Order.rgbaAt(b.Pix[src : src+4])
			dst := img.PixOffset(x, y)
			img.Pix[dst+0] = r
			img.Pix[dst+1] = g
			img.Pix[dst+2] = bb
			img.Pix[dst+3] = a
		}
	}
	return img
}
