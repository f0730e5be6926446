package debayer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseHexLong(t *testing.T) {
	for _, test := range []struct {
		in   string
		want int64
	}{
		{"80\n", 0x80},
		{"ff", 0xff},
		{"FF\r\n", 0xff},
		{"  7f\n", 0x7f},
		{"\t0x1A\n", 0x1a},
		{"0X1a", 0x1a},
		{"0x", 0},
		{"0xg", 0},
		{"+10", 0x10},
		{"-1", -1},
		{"12zz", 0x12},
		{"", 0},
		{"\n", 0},
		{"hello", 0},
		{"123", 0x123},
		{"ffffffffffffffffff", math.MaxInt64},
		{"-ffffffffffffffffff", math.MinInt64},
	} {
		if got := parseHexLong(test.in); got != test.want {
			t.Errorf("parseHexLong(%q): got %#x, want %#x", test.in, got, test.want)
		}
	}
}

func TestReadHexMosaic(t *testing.T) {
	in := "00\n01\n0a\nff\n123\n-1\nzz\n7f"
	m, err := ReadHexMosaic(strings.NewReader(in), 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	// 0x123 and -1 keep their low byte, garbage reads as 0 and the last
	// line needs no trailing newline.
	want := []uint8{0x00, 0x01, 0x0a, 0xff, 0x23, 0xff, 0x00, 0x7f}
	if diff := cmp.Diff(want, m.Pix); diff != "" {
		t.Errorf("ReadHexMosaic: unexpected diff (-want +got):\n%s", diff)
	}
}

func TestReadHexMosaicIgnoresTrailingLines(t *testing.T) {
	m, err := ReadHexMosaic(strings.NewReader("1\n2\n3\n4\n5\n6\n"), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint8{1, 2, 3, 4}, m.Pix); diff != "" {
		t.Errorf("ReadHexMosaic: unexpected diff (-want +got):\n%s", diff)
	}
}

func TestReadHexMosaicShortInput(t *testing.T) {
	_, err := ReadHexMosaic(strings.NewReader("1\n2\n3\n"), 2, 2)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("got err %v, want io.ErrUnexpectedEOF", err)
	}
	if !strings.Contains(err.Error(), "sample 3 of 4") {
		t.Errorf("error %q does not name the missing sample", err)
	}
}

func TestReadHexMosaicInvalidDimensions(t *testing.T) {
	for _, test := range []struct {
		width, height int
	}{
		{0, 2},
		{2, -1},
		{MaxSamples, 2},
		{math.MaxInt, math.MaxInt},
	} {
		_, err := ReadHexMosaic(strings.NewReader("1\n"), test.width, test.height)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("ReadHexMosaic(%dx%d): got err %v, want ErrInvalidDimensions", test.width, test.height, err)
		}
	}
}

func TestWriteHexRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{0x00, 0x01, 0x02, 0xff})
	img.SetRGBA(1, 0, color.RGBA{0xab, 0xcd, 0xef, 0xff})
	img.SetRGBA(0, 1, color.RGBA{0x10, 0x20, 0x30, 0xff})
	img.SetRGBA(1, 1, color.RGBA{0xff, 0xff, 0xff, 0xff})

	var buf bytes.Buffer
	if err := WriteHexRGBA(&buf, img); err != nil {
		t.Fatal(err)
	}
	want := "000102ff\nabcdefff\n102030ff\nffffffff\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteHexRGBA: got %q, want %q", got, want)
	}
}

func TestHexPipeline(t *testing.T) {
	var in strings.Builder
	for i := 0; i < 40*30; i++ {
		in.WriteString("80\n")
	}
	m, err := ReadHexMosaic(strings.NewReader(in.String()), 40, 30)
	if err != nil {
		t.Fatal(err)
	}
	img := mustDebayer(t, DefaultConfig(), m)

	var out bytes.Buffer
	if err := WriteHexRGBA(&out, img); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if got, want := len(lines), 40*30; got != want {
		t.Fatalf("output lines: got %d, want %d", got, want)
	}
	for i, line := range lines {
		if line != "808080ff" {
			t.Fatalf("line %d: got %q, want %q", i, line, "808080ff")
		}
	}
}
