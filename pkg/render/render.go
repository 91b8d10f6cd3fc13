// Package render declares the narrow interface the toolkit core draws
// through. Backends (GPU APIs, software rasterizers, test recorders)
// implement Renderer, Texture, GeometryBuffer and RenderTarget; the core
// never rasterizes anything itself.
package render

import (
	"fmt"

	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/graphics"
)

// PixelFormat describes the layout of texture pixel data.
type PixelFormat int

const (
	PixelFormatRGBA PixelFormat = iota
	PixelFormatRGB
	PixelFormatBGRA
	PixelFormatRGBA4444
	PixelFormatRGB565
)

// BytesPerPixel returns the storage size of one pixel.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGB:
		return 3
	case PixelFormatRGBA4444, PixelFormatRGB565:
		return 2
	default:
		return 4
	}
}

// String returns a human-readable representation of the pixel format.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGBA:
		return "rgba"
	case PixelFormatRGB:
		return "rgb"
	case PixelFormatBGRA:
		return "bgra"
	case PixelFormatRGBA4444:
		return "rgba4444"
	case PixelFormatRGB565:
		return "rgb565"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// Texture is an image uploaded to the backend.
type Texture interface {
	Name() string
	// Size is the backend size, which may be padded.
	Size() graphics.Size
	// OriginalDataSize is the size of the pixel data that was loaded.
	OriginalDataSize() graphics.Size
	// LoadFromMemory replaces the texture contents.
	LoadFromMemory(pixels []byte, size graphics.Size, format PixelFormat) error
	IsPixelFormatSupported(format PixelFormat) bool
}

// Vertex is one corner of a textured, coloured triangle.
type Vertex struct {
	Position graphics.Vec2
	TexCoord graphics.Vec2
	Colour   graphics.Colour
}

// GeometryBuffer accumulates triangles to be drawn together.
type GeometryBuffer interface {
	// AppendVertex adds one vertex; every three vertices form a triangle.
	AppendVertex(v Vertex)
	AppendGeometry(vs []Vertex)
	// SetActiveTexture applies to vertices appended afterwards.
	SetActiveTexture(t Texture)
	ActiveTexture() Texture
	SetClippingRegion(r graphics.Rect)
	ClippingRegion() graphics.Rect
	SetTranslation(v graphics.Vec2)
	SetAlpha(a float32)
	Alpha() float32
	// Reset discards all geometry.
	Reset()
	VertexCount() int
	// BatchCount is the number of texture runs.
	BatchCount() int
	Draw()
}

// RenderTarget event names.
const (
	EventAreaChanged = "AreaChanged"
)

// RenderTargetEventArgs accompanies RenderTarget events.
type RenderTargetEventArgs struct {
	event.EventArgs
	Target RenderTarget
}

// RenderTarget is a surface geometry is drawn onto.
type RenderTarget interface {
	Activate()
	Deactivate()
	Area() graphics.Rect
	// SetArea changes the output area and fires EventAreaChanged.
	SetArea(r graphics.Rect)
	Draw(buf GeometryBuffer)
	// IsImageryCache reports whether contents persist between frames.
	IsImageryCache() bool
	Events() *event.Set
}

// Renderer creates and owns backend resources.
type Renderer interface {
	Identifier() string
	CreateGeometryBuffer() GeometryBuffer
	DestroyGeometryBuffer(buf GeometryBuffer)
	// CreateTexture fails with AlreadyExists if name is taken.
	CreateTexture(name string) (Texture, error)
	// CreateTextureFromFile loads and decodes filename from the resource
	// group. Load and decode failures are FileIO errors naming the file.
	CreateTextureFromFile(name, filename, group string) (Texture, error)
	DestroyTexture(name string)
	// Texture fails with UnknownObject for undefined names.
	Texture(name string) (Texture, error)
	IsTextureDefined(name string) bool
	DefaultRenderTarget() RenderTarget
	DisplaySize() graphics.Size
	SetDisplaySize(size graphics.Size)
	BeginRendering()
	EndRendering()
	MaxTextureSize() int
}
