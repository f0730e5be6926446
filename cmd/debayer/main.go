package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"debayer/pkg/debayer"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	cfg      debayer.Config
	in       string
	out      string
	zoom     int
	annotate bool
	trace    string
	verbose  bool
	sizeSet  bool
}

func parseFlags(args []string) (*options, error) {
	def := debayer.DefaultConfig()
	fs := flag.NewFlagSet("debayer", flag.ContinueOnError)
	width := fs.Int("width", getEnvInt("DEBAYER_WIDTH", def.Width), "mosaic width in samples")
	height := fs.Int("height", getEnvInt("DEBAYER_HEIGHT", def.Height), "mosaic height in samples")
	workers := fs.Int("workers", getEnvInt("DEBAYER_WORKERS", def.Workers), "row bands processed concurrently")
	allowOdd := fs.Bool("allow-odd", false, "accept dimensions that do not tile the 2x2 pattern")
	in := fs.String("in", "-", "input: - for hex samples on stdin, or an image file")
	out := fs.String("out", "-", "output: - for hex RGBA on stdout, or an image file")
	zoom := fs.Int("zoom", 1, "integer upscale for image outputs")
	annotate := fs.Bool("annotate", false, "label CFA sites in zoomed image outputs (needs -zoom >= 16)")
	trace := fs.String("trace", "", "x,y of a pixel whose windows are printed to stderr")
	verbose := fs.Bool("v", false, "print progress to stderr")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("usage: debayer [flags], unexpected argument %q", fs.Arg(0))
	}

	o := &options{
		cfg: debayer.Config{
			Width:    *width,
			Height:   *height,
			Workers:  *workers,
			AllowOdd: *allowOdd,
		},
		in:       *in,
		out:      *out,
		zoom:     *zoom,
		annotate: *annotate,
		trace:    *trace,
		verbose:  *verbose,
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "width" || f.Name == "height" {
			o.sizeSet = true
		}
	})
	return o, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "debayer: ", 0)
	if o.verbose {
		logger.SetOutput(stderr)
	}

	mosaic, err := readMosaic(o, stdin)
	if err != nil {
		return err
	}
	logger.Printf("mosaic loaded: %dx%d", mosaic.Width, mosaic.Height)

	if o.trace != "" {
		x, y, err := parsePoint(o.trace)
		if err != nil {
			return err
		}
		if x < 0 || x >= mosaic.Width || y < 0 || y >= mosaic.Height {
			return fmt.Errorf("trace point (%d,%d) outside %dx%d", x, y, mosaic.Width, mosaic.Height)
		}
		fmt.Fprintf(stderr, "%s\n", debayer.Trace(mosaic, x, y))
	}

	engine, err := debayer.NewEngine(o.cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startTime := time.Now()
	img, err := engine.DebayerContext(ctx, mosaic)
	if err != nil {
		return fmt.Errorf("debayering: %w", err)
	}
	logger.Printf("debayered with %d worker(s) in %.3fs", max(o.cfg.Workers, 1), time.Since(startTime).Seconds())

	if o.out == "-" {
		if o.zoom > 1 || o.annotate {
			logger.Printf("-zoom and -annotate ignored: hex output is written at sensor size")
		}
		return debayer.WriteHexRGBA(stdout, img)
	}
	if o.zoom > 1 {
		img = debayer.Zoom(img, o.zoom)
		if o.annotate {
			if o.zoom < debayer.MinAnnotateFactor {
				logger.Printf("-annotate ignored: -zoom %d < %d", o.zoom, debayer.MinAnnotateFactor)
			}
			debayer.AnnotateCFA(img, o.zoom)
		}
	}
	if err := debayer.SaveImage(o.out, img); err != nil {
		return err
	}
	logger.Printf("wrote %s (%dx%d)", o.out, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func readMosaic(o *options, stdin io.Reader) (*debayer.Mosaic, error) {
	if o.in == "-" {
		return debayer.ReadHexMosaic(stdin, o.cfg.Width, o.cfg.Height)
	}
	if !debayer.IsImagePath(o.in) {
		f, err := os.Open(o.in)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		return debayer.ReadHexMosaic(f, o.cfg.Width, o.cfg.Height)
	}

	m, err := debayer.LoadMosaicImage(o.in)
	if err != nil {
		return nil, err
	}
	if o.sizeSet && (m.Width != o.cfg.Width || m.Height != o.cfg.Height) {
		return nil, fmt.Errorf("%s is %dx%d, flags say %dx%d: %w",
			o.in, m.Width, m.Height, o.cfg.Width, o.cfg.Height, debayer.ErrDimensionMismatch)
	}
	o.cfg.Width, o.cfg.Height = m.Width, m.Height
	return m, nil
}

func parsePoint(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New("trace point must be x,y")
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, fmt.Errorf("trace x: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, fmt.Errorf("trace y: %w", err)
	}
	return x, y, nil
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil {
			return x
		}
	}
	return def
}
