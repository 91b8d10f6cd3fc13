// Package imagecodec turns encoded image files into raw pixel buffers
// that a render.Texture can upload.
package imagecodec

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/render"
)

// Decoded holds raw pixel data produced by a Codec.
type Decoded struct {
	Pixels []byte
	Size   graphics.Size
	Format render.PixelFormat
}

// Codec decodes raw file data. Load reports failure with ok=false; callers
// turn that into an error naming the file.
type Codec interface {
	Identifier() string
	Load(raw []byte) (img *Decoded, ok bool)
}

type decodeFunc func([]byte) (image.Image, error)

var decoders = map[string]decodeFunc{
	"image/png":  func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) },
	"image/jpeg": func(b []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(b)) },
	"image/gif":  func(b []byte) (image.Image, error) { return gif.Decode(bytes.NewReader(b)) },
	"image/bmp":  func(b []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(b)) },
	"image/tiff": func(b []byte) (image.Image, error) { return tiff.Decode(bytes.NewReader(b)) },
	"image/webp": func(b []byte) (image.Image, error) { return webp.Decode(bytes.NewReader(b)) },
}

// SupportedTypes lists the MIME types Default can decode.
func SupportedTypes() []string {
	return []string{"image/bmp", "image/gif", "image/jpeg", "image/png", "image/tiff", "image/webp"}
}

// Sniff returns the MIME type of raw, or "" if it is not recognised.
func Sniff(raw []byte) string {
	kind, err := filetype.Match(raw)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

// Default decodes the formats in SupportedTypes into RGBA pixels.
var Default Codec = stdCodec{}

type stdCodec struct{}

func (stdCodec) Identifier() string { return "facet image codec" }

func (stdCodec) Load(raw []byte) (*Decoded, bool) {
	decode, ok := decoders[Sniff(raw)]
	if !ok {
		return nil, false
	}
	img, err := decode(raw)
	if err != nil {
		return nil, false
	}
	return FromImage(img), true
}

// FromImage converts img to non-premultiplied RGBA pixels.
func FromImage(img image.Image) *Decoded {
	b := img.Bounds()
	rgba, ok := img.(*image.NRGBA)
	if !ok || rgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		rgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &Decoded{
		Pixels: rgba.Pix,
		Size:   graphics.Size{Width: float32(b.Dx()), Height: float32(b.Dy())},
		Format: render.PixelFormatRGBA,
	}
}
