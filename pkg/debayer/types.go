package debayer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("width and height must be positive")
	ErrOddDimensions     = errors.New("width and height must be even to tile the 2x2 CFA")
	ErrDimensionMismatch = errors.New("mosaic dimensions do not match engine configuration")
	ErrShortBuffer       = errors.New("mosaic buffer length does not match width*height")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// ColorRole is the CFA colour of a mosaic site.
type ColorRole int

const (
	Red ColorRole = iota
	Blue
	GreenBesideRed
	GreenBesideBlue
)

func (c ColorRole) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case GreenBesideRed:
		return "GreenBesideRed"
	case GreenBesideBlue:
		return "GreenBesideBlue"
	default:
		return "Unknown"
	}
}

// Short returns the label drawn by AnnotateCFA.
func (c ColorRole) Short() string {
	switch c {
	case Red:
		return "R"
	case Blue:
		return "B"
	case GreenBesideRed:
		return "Gr"
	case GreenBesideBlue:
		return "Gb"
	default:
		return "?"
	}
}

// Lateral is the horizontal boundary zone of a coordinate.
type Lateral int

const (
	Left Lateral = iota
	Center
	Right
)

func (l Lateral) String() string {
	switch l {
	case Left:
		return "Left"
	case Center:
		return "Center"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Vertical is the vertical boundary zone of a coordinate.
type Vertical int

const (
	Top Vertical = iota
	Middle
	Bottom
)

func (v Vertical) String() string {
	switch v {
	case Top:
		return "Top"
	case Middle:
		return "Middle"
	case Bottom:
		return "Bottom"
	default:
		return "Unknown"
	}
}

// Window is a 3x3 neighbourhood, indexed [row][col].
// Row 0 is the line above the centre, column 0 the sample to its left.
type Window [3][3]uint8

// Center returns the sample under the output pixel.
func (w Window) Center() uint8 { return w[1][1] }

func (w Window) String() string {
	return fmt.Sprintf("[%02x %02x %02x | %02x %02x %02x | %02x %02x %02x]",
		w[0][0], w[0][1], w[0][2],
		w[1][0], w[1][1], w[1][2],
		w[2][0], w[2][1], w[2][2])
}

// Config holds the fixed geometry of a sensor and how the pass is scheduled.
type Config struct {
	Width  int
	Height int
	// Workers is the number of row bands processed concurrently. Values <= 1
	// run the pass on the calling goroutine.
	Workers int
	// AllowOdd accepts dimensions that do not tile the 2x2 pattern evenly.
	AllowOdd bool
}

// DefaultConfig returns the geometry of the 40x30 sensor the tool was written for.
func DefaultConfig() Config {
	return Config{
		Width:   40,
		Height:  30,
		Workers: 1,
	}
}

// Validate checks the dimensions against MaxSamples and the 2x2 tiling.
func (c Config) Validate() error {
	if err := checkDimensions(c.Width, c.Height); err != nil {
		return err
	}
	if !c.AllowOdd && (c.Width%2 != 0 || c.Height%2 != 0) {
		return fmt.Errorf("%dx%d: %w", c.Width, c.Height, ErrOddDimensions)
	}
	return nil
}

// PixelTrace records every intermediate value used for one output pixel.
type PixelTrace struct {
	X, Y     int
	Role     ColorRole
	Lateral  Lateral
	Vertical Vertical
	Raw      Window
	Adjusted Window
	R, G, B  uint8
}

func (t PixelTrace) String() string {
	return fmt.Sprintf("{(%d,%d) Role=%s, Zone=%s/%s, Raw=%s, Adjusted=%s, RGB=(%02x,%02x,%02x)}",
		t.X, t.Y, t.Role, t.Lateral, t.Vertical, t.Raw, t.Adjusted, t.R, t.G, t.B)
}
