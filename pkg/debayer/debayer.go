// Package debayer reconstructs RGBA images from raw RGGB Bayer mosaics.
package debayer

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/sync/errgroup"
)

// Engine debayers mosaics of one fixed geometry.
type Engine struct {
	cfg Config
}

// NewEngine validates cfg and returns an engine for it.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Debayer interpolates every site of m and returns a new fully opaque image
// of the same size. m is only read.
func (e *Engine) Debayer(m *Mosaic) (*image.RGBA, error) {
	return e.DebayerContext(context.Background(), m)
}

// DebayerContext is Debayer with cancellation checked between row bands.
// No image is returned when ctx is cancelled.
func (e *Engine) DebayerContext(ctx context.Context, m *Mosaic) (*image.RGBA, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	if m.Width != e.cfg.Width || m.Height != e.cfg.Height {
		return nil, fmt.Errorf("mosaic is %dx%d, engine expects %dx%d: %w",
			m.Width, m.Height, e.cfg.Width, e.cfg.Height, ErrDimensionMismatch)
	}

	out := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))

	workers := e.cfg.Workers
	if workers > m.Height {
		workers = m.Height
	}
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		debayerRows(m, out, 0, m.Height)
		return out, nil
	}

	rowsPerBand := (m.Height + workers - 1) / workers
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < m.Height; start += rowsPerBand {
		start, end := start, min(start+rowsPerBand, m.Height)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			debayerRows(m, out, start, end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// debayerRows fills rows [start, end) of out. Bands never share rows.
func debayerRows(m *Mosaic, out *image.RGBA, start, end int) {
	for y := start; y < end; y++ {
		vertical := VerticalZone(y, m.Height)
		off := out.PixOffset(0, y)
		for x := 0; x < m.Width; x++ {
			window := AdjustEdges(Neighborhood(m, x, y), LateralZone(x, m.Width), vertical)
			px := Filter(window, Classify(x, y))
			out.Pix[off+0] = px.R
			out.Pix[off+1] = px.G
			out.Pix[off+2] = px.B
			out.Pix[off+3] = px.A
			off += 4
		}
	}
}

// DebayerPixel computes the output value of a single site.
func DebayerPixel(m *Mosaic, x, y int) color.RGBA {
	window := AdjustEdges(Neighborhood(m, x, y), LateralZone(x, m.Width), VerticalZone(y, m.Height))
	return Filter(window, Classify(x, y))
}

// Trace records the intermediate windows and classification for (x, y).
func Trace(m *Mosaic, x, y int) PixelTrace {
	t := PixelTrace{
		X:        x,
		Y:        y,
		Role:     Classify(x, y),
		Lateral:  LateralZone(x, m.Width),
		Vertical: VerticalZone(y, m.Height),
		Raw:      Neighborhood(m, x, y),
	}
	t.Adjusted = AdjustEdges(t.Raw, t.Lateral, t.Vertical)
	px := Filter(t.Adjusted, t.Role)
	t.R, t.G, t.B = px.R, px.G, px.B
	return t
}
