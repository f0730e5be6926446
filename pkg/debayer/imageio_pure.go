//go:build purego || js

package debayer

import (
	"fmt"
	"image"
	"io"
	"os"
)

// loadImageMosaic reads a raw frame from an image file as 8-bit grayscale.
// Colour images are reduced to luminance. PNG, JPEG, TIFF, BMP and WebP
// decoders are registered by imageio.go.
func loadImageMosaic(path string) (*Mosaic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return MosaicFromGray(grayFromImage(img)), nil
}

func encodeFallback(_ io.Writer, ext string, _ image.Image) error {
	return fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
}

func hasNativeCodec(string) bool { return false }
