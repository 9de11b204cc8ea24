package pixbuf

import (
	"github.com/screenstitch/screenstitch/internal/geometry"
)

// Blit copies src into dst with the top-left of src at (dstX, dstY),
// overwriting destination pixels. Source pixels that land outside the
// destination are dropped silently. When the two buffers disagree on channel
// order the copy reorders channels per pixel.
func Blit(dst, src *Buffer, dstX, dstY int) {
	// Clip the source region to the destination bounds.
	srcX, srcY := 0, 0
	if dstX < 0 {
		srcX = -dstX
		dstX = 0
	}
	if dstY < 0 {
		srcY = -dstY
		dstY = 0
	}
	w := src.Width - srcX
	if over := dstX + w - dst.Width; over > 0 {
		w -= over
	}
	h := src.Height - srcY
	if over := dstY + h - dst.Height; over > 0 {
		h -= over
	}
	if w <= 0 || h <= 0 {
		return
	}

	if dst.Order == src.Order && dst.BytesPerPixel == src.BytesPerPixel {
		// Same layout: copy whole rows.
		bpp := src.BytesPerPixel
		for y := 0; y < h; y++ {
			so := ((srcY+y)*src.Width + srcX) * bpp
			do := ((dstY+y)*dst.Width + dstX) * bpp
			copy(dst.Pix[do:do+w*bpp], src.Pix[so:so+w*bpp])
		}
		return
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			so := ((srcY+y)*src.Width + (srcX + x)) * src.BytesPerPixel
			do := ((dstY+y)*dst.Width + (dstX + x)) * dst.BytesPerPixel
			r, g, b, a := src.Order.rgbaAt(src.Pix[so : so+4])
			dst.Order.putRGBA(dst.Pix[do:do+4], r, g, b, a)
		}
	}
}

// PadToOriginal restores a clipped capture to the size the caller originally
// requested. When sanitization did not change the rectangle the captured
// buffer is returned as-is, with no allocation. Otherwise the capture is
// placed on a zero-filled canvas sized to the requested rectangle, offset by
// the truncated distance between the corrected and requested origins, so a
// capture clipped at a screen edge still comes back at the requested
// resolution with the off-screen area transparent black.
func PadToOriginal(captured *Buffer, requested, corrected geometry.Rect) *Buffer {
	if corrected == requested {
		return captured
	}

	width := requested.TruncWidth()
	height := requested.TruncHeight()
	padded := &Buffer{
		Pix:           make([]byte, width*height*captured.BytesPerPixel),
		Width:         width,
		Height:        height,
		BitsPerPixel:  captured.BitsPerPixel,
		BytesPerPixel: captured.BytesPerPixel,
		Order:         captured.Order,
	}
	Blit(padded, captured,
		corrected.TruncX()-requested.TruncX(),
		corrected.TruncY()-requested.TruncY())
	return padded
}
