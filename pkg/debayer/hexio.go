package debayer

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
)

// ReadHexMosaic reads width*height samples, one hexadecimal value per line,
// in row-major order. Lines are parsed like strtol(line, NULL, 16) and
// truncated to 8 bits. Lines after the last sample are not read.
func ReadHexMosaic(r io.Reader, width, height int) (*Mosaic, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	m := NewMosaic(width, height)
	br := bufio.NewReader(r)

	for i := range m.Pix {
		line, err := br.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("reading hex sample %d: %w", i, err)
			}
			if line == "" {
				return nil, fmt.Errorf("reading hex sample %d of %d: %w", i, len(m.Pix), io.ErrUnexpectedEOF)
			}
		}
		m.Pix[i] = uint8(parseHexLong(line))
	}
	return m, nil
}

// parseHexLong mirrors strtol with base 16: leading white space, an optional
// sign, an optional 0x prefix, then the longest run of hex digits. Input
// without digits yields 0 and out-of-range values saturate.
func parseHexLong(s string) int64 {
	i := 0
	for i < len(s) && isCSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	if i+2 < len(s) && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X') && hexDigit(s[i+2]) >= 0 {
		i += 2
	}

	var v uint64
	overflow := false
	for ; i < len(s); i++ {
		d := hexDigit(s[i])
		if d < 0 {
			break
		}
		if v > (math.MaxUint64-uint64(d))/16 {
			overflow = true
			continue
		}
		v = v*16 + uint64(d)
	}

	switch {
	case neg && (overflow || v > 1<<63):
		return math.MinInt64
	case !neg && (overflow || v > math.MaxInt64):
		return math.MaxInt64
	case neg:
		return -int64(v)
	default:
		return int64(v)
	}
}

func isCSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// WriteHexRGBA writes one "rrggbbaa" line per pixel in row-major order.
func WriteHexRGBA(w io.Writer, img *image.RGBA) error {
	bw := bufio.NewWriter(w)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := img.RGBAAt(x, y)
			if _, err := fmt.Fprintf(bw, "%02x%02x%02x%02x\n", px.R, px.G, px.B, px.A); err != nil {
				return fmt.Errorf("writing pixel (%d,%d): %w", x, y, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing hex output: %w", err)
	}
	return nil
}
