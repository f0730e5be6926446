package debayer

// LateralZone classifies column x of a frame width pixels wide.
func LateralZone(x, width int) Lateral {
	switch x {
	case 0:
		return Left
	case width - 1:
		return Right
	default:
		return Center
	}
}

// VerticalZone classifies row y of a frame height pixels tall.
func VerticalZone(y, height int) Vertical {
	switch y {
	case 0:
		return Top
	case height - 1:
		return Bottom
	default:
		return Middle
	}
}

// AdjustEdges substitutes the parts of a window that fall past the frame
// boundary. Both substitutions read from in; the lateral one is applied
// first, so at corners the vertical one overwrites the shared cells.
//
// Top copies row 0 of in onto itself and so leaves the window unchanged,
// unlike Bottom, which replaces row 2 with row 0. Keep it that way until
// the intended top-edge policy is confirmed.
func AdjustEdges(in Window, lateral Lateral, vertical Vertical) Window {
	out := in

	switch lateral {
	case Left:
		for row := 0; row < 3; row++ {
			out[row][0] = in[row][2]
		}
	case Right:
		for row := 0; row < 3; row++ {
			out[row][2] = in[row][0]
		}
	case Center:
	}

	switch vertical {
	case Top:
		out[0] = in[0]
	case Bottom:
		out[2] = in[0]
	case Middle:
	}

	return out
}
