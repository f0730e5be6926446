package debayer

import (
	"fmt"
	"image"
)

// MaxSamples bounds Width*Height for every mosaic the package builds or
// reads. The RGBA output is four bytes per sample.
const MaxSamples = 1 << 26

// checkDimensions rejects non-positive sizes and sizes whose product exceeds
// MaxSamples, without overflowing.
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxSamples/height {
		return fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
	}
	return nil
}

// Mosaic is a raw single-channel CFA frame, one 8-bit sample per site,
// stored row-major.
type Mosaic struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewMosaic allocates a zeroed width x height mosaic.
func NewMosaic(width, height int) *Mosaic {
	return &Mosaic{
		Pix:    make([]uint8, width*height),
		Width:  width,
		Height: height,
	}
}

// MosaicFromBytes wraps pix without copying it.
func MosaicFromBytes(pix []uint8, width, height int) (*Mosaic, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("got %d samples for %dx%d: %w", len(pix), width, height, ErrShortBuffer)
	}
	return &Mosaic{Pix: pix, Width: width, Height: height}, nil
}

// MosaicFromGray copies a grayscale image into a new mosaic.
func MosaicFromGray(g *image.Gray) *Mosaic {
	b := g.Bounds()
	m := NewMosaic(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		srcOff := g.PixOffset(b.Min.X, b.Min.Y+y)
		copy(m.Pix[y*m.Width:(y+1)*m.Width], g.Pix[srcOff:srcOff+m.Width])
	}
	return m
}

// At returns the sample at (x, y). Coordinates must be in range.
func (m *Mosaic) At(x, y int) uint8 {
	return m.Pix[y*m.Width+x]
}

// Set stores v at (x, y).
func (m *Mosaic) Set(x, y int, v uint8) {
	m.Pix[y*m.Width+x] = v
}

// Gray returns an image.Gray view sharing the mosaic's samples.
func (m *Mosaic) Gray() *image.Gray {
	return &image.Gray{
		Pix:    m.Pix,
		Stride: m.Width,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}

func (m *Mosaic) validate() error {
	if m == nil {
		return fmt.Errorf("nil mosaic: %w", ErrInvalidDimensions)
	}
	if err := checkDimensions(m.Width, m.Height); err != nil {
		return err
	}
	if len(m.Pix) != m.Width*m.Height {
		return fmt.Errorf("got %d samples for %dx%d: %w", len(m.Pix), m.Width, m.Height, ErrShortBuffer)
	}
	return nil
}

// wrap returns i mod n in [0, n).
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Neighborhood samples the 3x3 window around (x, y). Indices outside the
// frame wrap around to the opposite edge.
func Neighborhood(m *Mosaic, x, y int) Window {
	var w Window
	for dy := -1; dy <= 1; dy++ {
		rowOff := wrap(y+dy, m.Height) * m.Width
		for dx := -1; dx <= 1; dx++ {
			w[dy+1][dx+1] = m.Pix[rowOff+wrap(x+dx, m.Width)]
		}
	}
	return w
}
