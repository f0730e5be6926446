package debayer

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// EncodeImage writes img to w in the format named by ext (".png", ".tif",
// ".tiff", ".bmp", ".jpg" or ".jpeg"). Other extensions are left to the
// build's fallback encoder.
func EncodeImage(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case ".bmp":
		return bmp.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	default:
		return encodeFallback(w, ext, img)
	}
}

// SaveImage encodes img by the extension of path and atomically replaces
// path with the result.
func SaveImage(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := EncodeImage(&buf, filepath.Ext(path), img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	f, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Cleanup()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// LoadMosaicImage reads a raw frame from path. FITS files (.fits, .fit,
// .fts) go through ReadFitsMosaic; anything else is decoded as an image and
// read as 8-bit grayscale.
func LoadMosaicImage(path string) (*Mosaic, error) {
	if !isFitsPath(path) {
		return loadImageMosaic(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening FITS file: %w", err)
	}
	defer f.Close()
	m, _, err := ReadFitsMosaic(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func isFitsPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fits", ".fit", ".fts":
		return true
	}
	return false
}

// IsImagePath reports whether path has an extension SaveImage or
// LoadMosaicImage is expected to handle in this build.
func IsImagePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".tif", ".tiff", ".bmp", ".jpg", ".jpeg", ".webp":
		return true
	}
	return isFitsPath(path) || hasNativeCodec(ext)
}

// grayFromImage reduces img to 8-bit luminance.
func grayFromImage(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, gr, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			g.Pix[y*g.Stride+x] = uint8((19595*r + 38470*gr + 7471*b + 1<<15) >> 24)
		}
	}
	return g
}
