package debayer

// Classify returns the CFA role of (x, y) in the RGGB tiling:
//
//	(even row, even col) = R
//	(even row, odd  col) = G  (Gr)
//	(odd  row, even col) = G  (Gb)
//	(odd  row, odd  col) = B
func Classify(x, y int) ColorRole {
	evenCol := x&1 == 0
	evenRow := y&1 == 0

	switch {
	case evenRow && evenCol:
		return Red
	case evenRow && !evenCol:
		return GreenBesideRed
	case !evenRow && evenCol:
		return GreenBesideBlue
	default:
		return Blue
	}
}
