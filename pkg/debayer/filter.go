package debayer

import "image/color"

// Filter interpolates the missing channels at the centre of w, which has
// colour role c, with a bilinear kernel. Averages truncate.
func Filter(w Window, c ColorRole) color.RGBA {
	n := int(w[0][1])
	s := int(w[2][1])
	e := int(w[1][2])
	west := int(w[1][0])
	ne := int(w[0][2])
	nw := int(w[0][0])
	se := int(w[2][2])
	sw := int(w[2][0])
	center := w[1][1]

	cross := uint8((n + s + e + west) / 4)
	diagonal := uint8((ne + nw + se + sw) / 4)
	horizontal := uint8((e + west) / 2)
	vertical := uint8((n + s) / 2)

	px := color.RGBA{A: 0xff}
	switch c {
	case Red:
		// Red pixel: have R, need G and B
		px.R, px.G, px.B = center, cross, diagonal
	case Blue:
		// Blue pixel: have B, need R and G
		px.R, px.G, px.B = diagonal, cross, center
	case GreenBesideRed:
		// Green on red row (Gr): need R and B
		px.R, px.G, px.B = horizontal, center, vertical
	case GreenBesideBlue:
		// Green on blue row (Gb): need R and B
		px.R, px.G, px.B = vertical, center, horizontal
	}
	return px
}
