package null

import (
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/render"
)

// Batch is a run of vertices sharing a texture.
type Batch struct {
	Texture  render.Texture
	Vertices []render.Vertex
}

// GeometryBuffer is a recording render.GeometryBuffer.
type GeometryBuffer struct {
	renderer    *Renderer
	batches     []Batch
	active      render.Texture
	clip        graphics.Rect
	translation graphics.Vec2
	alpha       float32
	draws       int
}

// AppendVertex adds v to the current batch.
func (b *GeometryBuffer) AppendVertex(v render.Vertex) {
	b.current().Vertices = append(b.current().Vertices, v)
}

// AppendGeometry adds vs to the current batch.
func (b *GeometryBuffer) AppendGeometry(vs []render.Vertex) {
	if len(vs) == 0 {
		return
	}
	cur := b.current()
	cur.Vertices = append(cur.Vertices, vs...)
}

func (b *GeometryBuffer) current() *Batch {
	if n := len(b.batches); n > 0 && b.batches[n-1].Texture == b.active {
		return &b.batches[n-1]
	}
	b.batches = append(b.batches, Batch{Texture: b.active})
	return &b.batches[len(b.batches)-1]
}

func (b *GeometryBuffer) SetActiveTexture(t render.Texture) { b.active = t }
func (b *GeometryBuffer) ActiveTexture() render.Texture     { return b.active }
func (b *GeometryBuffer) SetClippingRegion(r graphics.Rect) { b.clip = r }
func (b *GeometryBuffer) ClippingRegion() graphics.Rect     { return b.clip }
func (b *GeometryBuffer) SetTranslation(v graphics.Vec2)    { b.translation = v }
func (b *GeometryBuffer) Translation() graphics.Vec2        { return b.translation }
func (b *GeometryBuffer) SetAlpha(a float32)                { b.alpha = a }
func (b *GeometryBuffer) Alpha() float32                    { return b.alpha }

// Reset discards all geometry and the active texture.
func (b *GeometryBuffer) Reset() {
	b.batches = b.batches[:0]
	b.active = nil
}

// VertexCount returns the number of vertices across all batches.
func (b *GeometryBuffer) VertexCount() int {
	n := 0
	for _, batch := range b.batches {
		n += len(batch.Vertices)
	}
	return n
}

func (b *GeometryBuffer) BatchCount() int { return len(b.batches) }

// Batches returns the recorded batches.
func (b *GeometryBuffer) Batches() []Batch { return b.batches }

// Vertices returns all vertices in submission order.
func (b *GeometryBuffer) Vertices() []render.Vertex {
	var out []render.Vertex
	for _, batch := range b.batches {
		out = append(out, batch.Vertices...)
	}
	return out
}

// Draw records a submission against the active render target.
func (b *GeometryBuffer) Draw() {
	b.draws++
	b.renderer.calls = append(b.renderer.calls, DrawCall{
		Target:      b.renderer.active,
		Buffer:      b,
		Vertices:    b.VertexCount(),
		Batches:     len(b.batches),
		Clip:        b.clip,
		Translation: b.translation,
		Alpha:       b.alpha,
	})
}

// Draws returns how many times the buffer was drawn.
func (b *GeometryBuffer) Draws() int { return b.draws }
