//go:build js && wasm

package main

import (
	"bytes"
	"image"
	"strings"
	"syscall/js"

	"debayer/pkg/debayer"
)

func main() {
	js.Global().Set("debayerHex", js.FuncOf(debayerHex))
	js.Global().Set("debayerRaw", js.FuncOf(debayerRaw))
	js.Global().Set("debayerPNG", js.FuncOf(debayerPNG))
	select {} // block forever
}

// debayerHex(text, width, height) -> string of rrggbbaa lines
func debayerHex(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("usage: debayerHex(text, width, height)")
	}
	width, height := args[1].Int(), args[2].Int()

	mosaic, err := debayer.ReadHexMosaic(strings.NewReader(args[0].String()), width, height)
	if err != nil {
		return errorResult("hex parse error: " + err.Error())
	}
	img, err := runEngine(mosaic)
	if err != nil {
		return errorResult("debayer error: " + err.Error())
	}

	var buf bytes.Buffer
	if err := debayer.WriteHexRGBA(&buf, img); err != nil {
		return errorResult("hex encode error: " + err.Error())
	}
	return js.ValueOf(buf.String())
}

// debayerRaw(Uint8Array, width, height) -> Uint8Array of RGBA quads
func debayerRaw(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("usage: debayerRaw(samples, width, height)")
	}
	mosaic, err := mosaicFromJS(args[0], args[1].Int(), args[2].Int())
	if err != nil {
		return errorResult(err.Error())
	}
	img, err := runEngine(mosaic)
	if err != nil {
		return errorResult("debayer error: " + err.Error())
	}
	return toUint8Array(img.Pix)
}

// debayerPNG(Uint8Array, width, height, zoom) -> Uint8Array of PNG bytes
func debayerPNG(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("usage: debayerPNG(samples, width, height, zoom)")
	}
	mosaic, err := mosaicFromJS(args[0], args[1].Int(), args[2].Int())
	if err != nil {
		return errorResult(err.Error())
	}
	img, err := runEngine(mosaic)
	if err != nil {
		return errorResult("debayer error: " + err.Error())
	}

	zoom := 1
	if len(args) >= 4 && args[3].Type() == js.TypeNumber {
		zoom = args[3].Int()
	}
	img = debayer.Zoom(img, zoom)
	debayer.AnnotateCFA(img, zoom)

	var buf bytes.Buffer
	if err := debayer.EncodeImage(&buf, ".png", img); err != nil {
		return errorResult("png encode error: " + err.Error())
	}
	return toUint8Array(buf.Bytes())
}

func runEngine(m *debayer.Mosaic) (*image.RGBA, error) {
	engine, err := debayer.NewEngine(debayer.Config{Width: m.Width, Height: m.Height, AllowOdd: true})
	if err != nil {
		return nil, err
	}
	return engine.Debayer(m)
}

func mosaicFromJS(v js.Value, width, height int) (*debayer.Mosaic, error) {
	length := v.Get("length").Int()
	pix := make([]byte, length)
	js.CopyBytesToGo(pix, v)
	return debayer.MosaicFromBytes(pix, width, height)
}

func toUint8Array(b []byte) js.Value {
	uint8Array := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(uint8Array, b)
	return uint8Array
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error": msg,
	})
}
