package debayer

import (
	"image"
	"image/color"
	"testing"
)

func TestZoom(t *testing.T) {
	img := mustDebayer(t, Config{Width: 4, Height: 2}, randomMosaic(4, 2, 5))

	if got := Zoom(img, 1); got != img {
		t.Errorf("Zoom(img, 1) returned a copy")
	}

	const factor = 3
	z := Zoom(img, factor)
	if got, want := z.Bounds(), image.Rect(0, 0, 4*factor, 2*factor); got != want {
		t.Fatalf("Bounds: got %v, want %v", got, want)
	}
	for y := 0; y < z.Bounds().Dy(); y++ {
		for x := 0; x < z.Bounds().Dx(); x++ {
			if got, want := z.RGBAAt(x, y), img.RGBAAt(x/factor, y/factor); got != want {
				t.Fatalf("(%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestAnnotateCFA(t *testing.T) {
	img := mustDebayer(t, Config{Width: 2, Height: 2}, randomMosaic(2, 2, 6))

	small := Zoom(img, MinAnnotateFactor-1)
	before := append([]uint8(nil), small.Pix...)
	AnnotateCFA(small, MinAnnotateFactor-1)
	if string(before) != string(small.Pix) {
		t.Errorf("AnnotateCFA below MinAnnotateFactor changed the image")
	}

	big := Zoom(img, MinAnnotateFactor)
	plain := append([]uint8(nil), big.Pix...)
	AnnotateCFA(big, MinAnnotateFactor)
	for cy := 0; cy < 2; cy++ {
		for cx := 0; cx < 2; cx++ {
			changed := false
			for y := cy * MinAnnotateFactor; y < (cy+1)*MinAnnotateFactor && !changed; y++ {
				for x := cx * MinAnnotateFactor; x < (cx+1)*MinAnnotateFactor; x++ {
					off := big.PixOffset(x, y)
					if string(big.Pix[off:off+4]) != string(plain[off:off+4]) {
						changed = true
						break
					}
				}
			}
			if !changed {
				t.Errorf("cell (%d,%d) %v: no label drawn", cx, cy, Classify(cx, cy))
			}
		}
	}
}

func TestLuma(t *testing.T) {
	for _, test := range []struct {
		c    color.RGBA
		want uint8
	}{
		{color.RGBA{0, 0, 0, 0xff}, 0},
		{color.RGBA{0xff, 0xff, 0xff, 0xff}, 0xff},
		{color.RGBA{0xff, 0, 0, 0xff}, 0x55},
		{color.RGBA{0xff, 0xff, 0, 0xff}, 0xaa},
		{color.RGBA{1, 1, 0, 0xff}, 0},
	} {
		if got := luma(test.c); got != test.want {
			t.Errorf("luma(%v): got %#x, want %#x", test.c, got, test.want)
		}
	}
}
