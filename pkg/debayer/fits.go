package debayer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	fitsCardSize  = 80
	fitsBlockSize = 2880
	// samples decoded per read of the data unit
	fitsChunk = 1 << 16
)

// FitsHeader holds the cards of a FITS primary header that matter for a raw
// frame. Keywords are upper case; string values are unquoted.
type FitsHeader map[string]string

// Int returns the integer value of key.
func (h FitsHeader) Int(key string) (int, bool) {
	v, ok := h[key]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	return i, err == nil
}

// Float returns the numeric value of key, or def when it is missing.
func (h FitsHeader) Float(key string, def float64) float64 {
	if v, ok := h[key]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// ReadFitsMosaic reads the primary image of a FITS stream as a mosaic.
// Physical values (raw*BSCALE+BZERO) are clamped to the range of the stored
// type and reduced to 8 bits: BITPIX 8 is taken as is, wider integer types
// keep their top byte of a 16-bit range and -32 floats are read as 0..65535.
// Frames whose BAYERPAT names another pattern are rejected.
func ReadFitsMosaic(r io.Reader) (*Mosaic, FitsHeader, error) {
	hdr, err := readFitsHeader(r)
	if err != nil {
		return nil, nil, err
	}

	naxis, _ := hdr.Int("NAXIS")
	width, _ := hdr.Int("NAXIS1")
	height, _ := hdr.Int("NAXIS2")
	if naxis < 2 {
		return nil, hdr, fmt.Errorf("FITS NAXIS=%d: %w", naxis, ErrInvalidDimensions)
	}
	if err := checkDimensions(width, height); err != nil {
		return nil, hdr, fmt.Errorf("FITS NAXIS1/NAXIS2 %w", err)
	}
	if pat, ok := hdr["BAYERPAT"]; ok && !strings.EqualFold(strings.TrimSpace(pat), "RGGB") {
		return nil, hdr, fmt.Errorf("FITS BAYERPAT %q: %w", pat, ErrUnsupportedFormat)
	}

	bitpix, _ := hdr.Int("BITPIX")
	bscale := hdr.Float("BSCALE", 1)
	bzero := hdr.Float("BZERO", 0)

	var size int
	var sample func(b []byte) float64
	switch bitpix {
	case 8:
		size, sample = 1, func(b []byte) float64 { return float64(b[0]) }
	case 16:
		size, sample = 2, func(b []byte) float64 { return float64(int16(binary.BigEndian.Uint16(b))) }
	case 32:
		size, sample = 4, func(b []byte) float64 { return float64(int32(binary.BigEndian.Uint32(b))) }
	case -32:
		size, sample = 4, func(b []byte) float64 { return float64(math.Float32frombits(binary.BigEndian.Uint32(b))) }
	default:
		return nil, hdr, fmt.Errorf("FITS BITPIX %d: %w", bitpix, ErrUnsupportedFormat)
	}

	// Pix grows with the data actually read, not with the header's claim.
	n := width * height
	pix := make([]uint8, 0, min(n, fitsChunk))
	buf := make([]byte, fitsChunk*size)
	for len(pix) < n {
		k := min(n-len(pix), fitsChunk)
		if _, err := io.ReadFull(r, buf[:k*size]); err != nil {
			return nil, hdr, fmt.Errorf("reading %d-bit FITS data at sample %d of %d: %w", bitpix, len(pix), n, err)
		}
		for i := 0; i < k; i++ {
			v := sample(buf[i*size:])*bscale + bzero
			if bitpix == 8 {
				pix = append(pix, uint8(clampFloat(v, 0, 255)))
			} else {
				pix = append(pix, uint8(uint16(clampFloat(v, 0, 65535))>>8))
			}
		}
	}
	return &Mosaic{Pix: pix, Width: width, Height: height}, hdr, nil
}

// readFitsHeader consumes header blocks up to and including the one holding
// END, leaving r at the start of the data unit.
func readFitsHeader(r io.Reader) (FitsHeader, error) {
	hdr := make(FitsHeader)
	block := make([]byte, fitsBlockSize)
	for first := true; ; first = false {
		if _, err := io.ReadFull(r, block); err != nil {
			return nil, fmt.Errorf("reading FITS header: %w", err)
		}
		if first && !strings.HasPrefix(string(block), "SIMPLE") {
			return nil, fmt.Errorf("missing SIMPLE card: %w", ErrUnsupportedFormat)
		}
		for off := 0; off < fitsBlockSize; off += fitsCardSize {
			card := string(block[off : off+fitsCardSize])
			key := strings.TrimSpace(card[:8])
			if key == "END" {
				return hdr, nil
			}
			if key == "" || card[8:10] != "= " {
				continue
			}
			hdr[strings.ToUpper(key)] = fitsValue(card[10:])
		}
	}
}

// fitsValue strips the comment and quotes from a card's value field.
func fitsValue(field string) string {
	field = strings.TrimSpace(field)
	if strings.HasPrefix(field, "'") {
		if end := strings.Index(field[1:], "'"); end >= 0 {
			return strings.TrimRight(field[1:end+1], " ")
		}
		return strings.TrimRight(field[1:], " ")
	}
	value, _, _ := strings.Cut(field, "/")
	return strings.TrimSpace(value)
}

// clampFloat maps NaN to lo.
func clampFloat(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
