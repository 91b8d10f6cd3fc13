package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/render/null"
)

func TestPixelFormat(t *testing.T) {
	assert.Equal(t, 4, render.PixelFormatRGBA.BytesPerPixel())
	assert.Equal(t, 3, render.PixelFormatRGB.BytesPerPixel())
	assert.Equal(t, 2, render.PixelFormatRGB565.BytesPerPixel())
	assert.Equal(t, "bgra", render.PixelFormatBGRA.String())
	assert.Equal(t, "PixelFormat(42)", render.PixelFormat(42).String())
}

func TestAppendQuad(t *testing.T) {
	r := null.New(graphics.Size{Width: 800, Height: 600})
	buf := r.CreateGeometryBuffer().(*null.GeometryBuffer)
	white := graphics.UniformColours(0xFFFFFFFF)
	uv := graphics.Rect{Right: 1, Bottom: 1}

	n := render.AppendQuad(buf, graphics.RectFromLTWH(10, 10, 100, 50), uv, nil, white)
	require.Equal(t, 6, n)
	vs := buf.Vertices()
	assert.Equal(t, graphics.Vec2{X: 10, Y: 10}, vs[0].Position)
	assert.Equal(t, graphics.Vec2{X: 110, Y: 60}, vs[2].Position)
	assert.Equal(t, graphics.Vec2{X: 1, Y: 1}, vs[2].TexCoord)
}

func TestAppendQuadClipped(t *testing.T) {
	r := null.New(graphics.Size{Width: 800, Height: 600})
	buf := r.CreateGeometryBuffer().(*null.GeometryBuffer)
	white := graphics.UniformColours(0xFFFFFFFF)
	uv := graphics.Rect{Right: 1, Bottom: 1}

	// Right half clipped away.
	clip := graphics.RectFromLTWH(0, 0, 50, 100)
	n := render.AppendQuad(buf, graphics.RectFromLTWH(0, 0, 100, 100), uv, &clip, white)
	require.Equal(t, 6, n)
	vs := buf.Vertices()
	assert.Equal(t, float32(50), vs[2].Position.X)
	assert.InDelta(t, 0.5, vs[2].TexCoord.X, 1e-6)

	// Fully clipped.
	off := graphics.RectFromLTWH(500, 500, 10, 10)
	assert.Zero(t, render.AppendQuad(buf, graphics.RectFromLTWH(0, 0, 100, 100), uv, &off, white))
	assert.Zero(t, render.AppendQuad(buf, graphics.Rect{}, uv, nil, white))
	assert.Equal(t, 6, buf.VertexCount())
}
