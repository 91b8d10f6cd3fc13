// Package null implements the render interfaces without producing pixels.
// Every draw submission is recorded so geometry and render-target behavior
// can be asserted in tests and inspected by tools.
package null

import (
	"fmt"
	"sort"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/imagecodec"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/resource"
)

// Identifier is returned by Renderer.Identifier.
const Identifier = "facet null renderer"

// DrawCall records one GeometryBuffer.Draw.
type DrawCall struct {
	Target      render.RenderTarget
	Buffer      *GeometryBuffer
	Vertices    int
	Batches     int
	Clip        graphics.Rect
	Translation graphics.Vec2
	Alpha       float32
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProvider sets the resource provider used by CreateTextureFromFile.
func WithProvider(p resource.Provider) Option {
	return func(r *Renderer) { r.provider = p }
}

// WithCodec sets the image codec used by CreateTextureFromFile.
func WithCodec(c imagecodec.Codec) Option {
	return func(r *Renderer) { r.codec = c }
}

// WithMaxTextureSize limits texture dimensions.
func WithMaxTextureSize(n int) Option {
	return func(r *Renderer) { r.maxTexture = n }
}

// Renderer is a recording render.Renderer.
type Renderer struct {
	textures      map[string]*Texture
	buffers       map[*GeometryBuffer]struct{}
	displaySize   graphics.Size
	defaultTarget *RenderTarget
	active        render.RenderTarget
	provider      resource.Provider
	codec         imagecodec.Codec
	maxTexture    int
	rendering     bool
	frames        int
	calls         []DrawCall
}

// New returns a renderer with the given display size.
func New(displaySize graphics.Size, opts ...Option) *Renderer {
	r := &Renderer{
		textures:    map[string]*Texture{},
		buffers:     map[*GeometryBuffer]struct{}{},
		displaySize: displaySize,
		codec:       imagecodec.Default,
		maxTexture:  4096,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.defaultTarget = newRenderTarget(r, graphics.RectFromPosSize(graphics.Vec2{}, displaySize), false)
	return r
}

func (r *Renderer) Identifier() string { return Identifier }

// CreateGeometryBuffer returns a new, empty buffer.
func (r *Renderer) CreateGeometryBuffer() render.GeometryBuffer {
	b := &GeometryBuffer{renderer: r, alpha: 1}
	r.buffers[b] = struct{}{}
	return b
}

// DestroyGeometryBuffer releases buf.
func (r *Renderer) DestroyGeometryBuffer(buf render.GeometryBuffer) {
	if b, ok := buf.(*GeometryBuffer); ok {
		delete(r.buffers, b)
	}
}

// BufferCount returns the number of live geometry buffers.
func (r *Renderer) BufferCount() int {
	return len(r.buffers)
}

// CreateTexture defines an empty texture.
func (r *Renderer) CreateTexture(name string) (render.Texture, error) {
	if _, ok := r.textures[name]; ok {
		return nil, guierrors.AlreadyExists("null.CreateTexture", name)
	}
	t := &Texture{name: name, renderer: r}
	r.textures[name] = t
	return t, nil
}

// CreateTextureFromFile defines a texture and loads it through the
// configured provider and codec.
func (r *Renderer) CreateTextureFromFile(name, filename, group string) (render.Texture, error) {
	if r.provider == nil {
		return nil, guierrors.InvalidRequestf("null.CreateTextureFromFile", filename, "no resource provider")
	}
	t, err := r.CreateTexture(name)
	if err != nil {
		return nil, err
	}
	if err := imagecodec.LoadTexture(t, r.provider, r.codec, filename, group); err != nil {
		r.DestroyTexture(name)
		return nil, err
	}
	return t, nil
}

// DestroyTexture removes the named texture. Unknown names are ignored.
func (r *Renderer) DestroyTexture(name string) {
	delete(r.textures, name)
}

// Texture returns the named texture.
func (r *Renderer) Texture(name string) (render.Texture, error) {
	t, ok := r.textures[name]
	if !ok {
		return nil, guierrors.UnknownObject("null.Texture", name)
	}
	return t, nil
}

// IsTextureDefined reports whether name is defined.
func (r *Renderer) IsTextureDefined(name string) bool {
	_, ok := r.textures[name]
	return ok
}

// TextureNames returns the defined texture names in sorted order.
func (r *Renderer) TextureNames() []string {
	names := make([]string, 0, len(r.textures))
	for n := range r.textures {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *Renderer) DefaultRenderTarget() render.RenderTarget { return r.defaultTarget }

// CreateTextureTarget returns an offscreen target whose contents persist.
func (r *Renderer) CreateTextureTarget(area graphics.Rect) *RenderTarget {
	return newRenderTarget(r, area, true)
}

func (r *Renderer) DisplaySize() graphics.Size { return r.displaySize }

// SetDisplaySize resizes the display and the default target.
func (r *Renderer) SetDisplaySize(size graphics.Size) {
	if size == r.displaySize {
		return
	}
	r.displaySize = size
	r.defaultTarget.SetArea(graphics.RectFromPosSize(graphics.Vec2{}, size))
}

// BeginRendering starts a frame.
func (r *Renderer) BeginRendering() {
	r.rendering = true
}

// EndRendering finishes a frame.
func (r *Renderer) EndRendering() {
	if r.rendering {
		r.frames++
	}
	r.rendering = false
}

// Frames returns the number of completed frames.
func (r *Renderer) Frames() int { return r.frames }

// InFrame reports whether BeginRendering has been called without a
// matching EndRendering.
func (r *Renderer) InFrame() bool { return r.rendering }

func (r *Renderer) MaxTextureSize() int { return r.maxTexture }

// DrawCalls returns the recorded draw submissions.
func (r *Renderer) DrawCalls() []DrawCall { return r.calls }

// ResetDrawCalls clears the recorded submissions.
func (r *Renderer) ResetDrawCalls() { r.calls = nil }

// Texture is a render.Texture that keeps its pixels in memory.
type Texture struct {
	renderer *Renderer
	name     string
	size     graphics.Size
	dataSize graphics.Size
	format   render.PixelFormat
	pixels   []byte
}

func (t *Texture) Name() string                    { return t.name }
func (t *Texture) Size() graphics.Size             { return t.size }
func (t *Texture) OriginalDataSize() graphics.Size { return t.dataSize }
func (t *Texture) Format() render.PixelFormat      { return t.format }
func (t *Texture) Pixels() []byte                  { return t.pixels }

// IsPixelFormatSupported accepts the 32 and 24 bit formats.
func (t *Texture) IsPixelFormatSupported(f render.PixelFormat) bool {
	switch f {
	case render.PixelFormatRGBA, render.PixelFormatRGB, render.PixelFormatBGRA:
		return true
	}
	return false
}

// LoadFromMemory copies pixels into the texture.
func (t *Texture) LoadFromMemory(pixels []byte, size graphics.Size, f render.PixelFormat) error {
	if !t.IsPixelFormatSupported(f) {
		return guierrors.Render("null.LoadFromMemory", t.name, fmt.Errorf("unsupported pixel format %s", f))
	}
	w, h := int(size.Width), int(size.Height)
	if w < 0 || h < 0 || w > t.renderer.maxTexture || h > t.renderer.maxTexture {
		return guierrors.Render("null.LoadFromMemory", t.name, fmt.Errorf("texture size %s exceeds limit %d", size, t.renderer.maxTexture))
	}
	if need := w * h * f.BytesPerPixel(); len(pixels) < need {
		return guierrors.InvalidRequestf("null.LoadFromMemory", t.name, "need %d bytes of pixel data, got %d", need, len(pixels))
	}
	t.pixels = append(t.pixels[:0], pixels...)
	t.size = size
	t.dataSize = size
	t.format = f
	return nil
}

// RenderTarget is a recording render.RenderTarget.
type RenderTarget struct {
	renderer *Renderer
	area     graphics.Rect
	cache    bool
	active   bool
	prev     render.RenderTarget
	events   *event.Set
	draws    int
}

func newRenderTarget(r *Renderer, area graphics.Rect, cache bool) *RenderTarget {
	t := &RenderTarget{renderer: r, area: area, cache: cache, events: event.NewSet()}
	t.events.AddEvents(render.EventAreaChanged)
	return t
}

// Activate makes t the target of subsequent draws.
func (t *RenderTarget) Activate() {
	if t.active {
		return
	}
	t.active = true
	t.prev = t.renderer.active
	t.renderer.active = t
}

// Deactivate restores the previously active target.
func (t *RenderTarget) Deactivate() {
	if !t.active {
		return
	}
	t.active = false
	t.renderer.active = t.prev
	t.prev = nil
}

// IsActive reports whether t is activated.
func (t *RenderTarget) IsActive() bool { return t.active }

func (t *RenderTarget) Area() graphics.Rect { return t.area }

// SetArea changes the area and fires AreaChanged.
func (t *RenderTarget) SetArea(area graphics.Rect) {
	t.area = area
	t.events.FireEvent(render.EventAreaChanged, &render.RenderTargetEventArgs{Target: t}, "RenderTarget")
}

// Draw submits buf to this target.
func (t *RenderTarget) Draw(buf render.GeometryBuffer) {
	prev := t.renderer.active
	t.renderer.active = t
	t.draws++
	buf.Draw()
	t.renderer.active = prev
}

// Draws returns the number of buffers drawn to t.
func (t *RenderTarget) Draws() int { return t.draws }

func (t *RenderTarget) IsImageryCache() bool { return t.cache }
func (t *RenderTarget) Events() *event.Set   { return t.events }
