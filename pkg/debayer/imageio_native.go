//go:build !purego && !js

package debayer

import (
	"fmt"
	"image"
	"io"
	"strings"

	"gocv.io/x/gocv"
)

// loadImageMosaic reads a raw frame from an image file as 8-bit grayscale.
func loadImageMosaic(path string) (*Mosaic, error) {
	src := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer src.Close()
	if src.Empty() {
		return nil, fmt.Errorf("could not load image: %s", path)
	}

	if src.Type() != gocv.MatTypeCV8U {
		return nil, fmt.Errorf("%s: unexpected mat type %v: %w", path, src.Type(), ErrUnsupportedFormat)
	}
	return MosaicFromBytes(src.ToBytes(), src.Cols(), src.Rows())
}

func encodeFallback(w io.Writer, ext string, img image.Image) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("converting to mat: %w", err)
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.FileExt(strings.ToLower(ext)), mat)
	if err != nil {
		return fmt.Errorf("%q: %v: %w", ext, err, ErrUnsupportedFormat)
	}
	defer buf.Close()

	_, err = w.Write(buf.GetBytes())
	return err
}

// hasNativeCodec reports extensions OpenCV reads and writes that have no
// decoder registered with package image.
func hasNativeCodec(ext string) bool {
	switch ext {
	case ".pgm", ".ppm", ".pbm", ".pnm":
		return true
	}
	return false
}
