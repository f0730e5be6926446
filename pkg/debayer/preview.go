package debayer

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// MinAnnotateFactor is the smallest zoom factor whose cells fit a label.
const MinAnnotateFactor = 16

// Zoom scales img up by an integer factor with nearest-neighbour sampling, so
// every site becomes a factor x factor block. A factor <= 1 returns img.
func Zoom(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// AnnotateCFA labels every factor x factor cell of a zoomed image with the
// CFA role of the site it came from. It does nothing when factor is below
// MinAnnotateFactor.
func AnnotateCFA(img *image.RGBA, factor int) {
	if factor < MinAnnotateFactor {
		return
	}
	face := basicfont.Face7x13
	b := img.Bounds()
	cols, rows := b.Dx()/factor, b.Dy()/factor

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			x0 := b.Min.X + x*factor
			y0 := b.Min.Y + y*factor
			cell := img.RGBAAt(x0, y0)

			textColor := color.RGBA{255, 255, 255, 255}
			if luma(cell) >= 128 {
				textColor = color.RGBA{0, 0, 0, 255}
			}
			// basicfont ascent is 11px; centre the baseline in the cell
			drawCenteredText(img, face, Classify(x, y).Short(), x0+factor/2, y0+(factor+11)/2-1, textColor)
		}
	}
}

// luma is the unweighted channel mean.
func luma(c color.RGBA) uint8 {
	return uint8((int(c.R) + int(c.G) + int(c.B)) / 3)
}

// drawText draws a string at (x, y) using the given font face.
func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawCenteredText draws a string centered horizontally at cx with its
// baseline at y.
func drawCenteredText(img *image.RGBA, face font.Face, s string, cx, y int, c color.RGBA) {
	advance := font.MeasureString(face, s)
	drawText(img, face, s, cx-advance.Round()/2, y, c)
}
