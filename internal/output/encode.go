// Package output encodes pixel buffers into standard image formats.
package output

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/screenstitch/screenstitch/internal/pixbuf"
)

// Format is an output image format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
)

// DefaultJPEGQuality is used when the configured quality is out of range.
const DefaultJPEGQuality = 90

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", s)
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	return "image/" + string(f)
}

// Encode writes buf to w in the given format. JPEG quality outside [1, 100]
// falls back to DefaultJPEGQuality.
func Encode(w io.Writer, buf *pixbuf.Buffer, format Format, jpegQuality int) error {
	img := buf.ToImage()
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		if jpegQuality < 1 || jpegQuality > 100 {
			jpegQuality = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}
