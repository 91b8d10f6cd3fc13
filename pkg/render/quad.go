package render

import "github.com/go-drift/facet/pkg/graphics"

// AppendQuad appends dest as two triangles sampling the texture area uv
// (normalized coordinates). When clip is non-nil the quad is clipped to it,
// with texture coordinates adjusted proportionally; fully clipped quads
// append nothing. It returns the number of vertices appended.
func AppendQuad(buf GeometryBuffer, dest, uv graphics.Rect, clip *graphics.Rect, colours graphics.ColourRect) int {
	if dest.IsEmpty() {
		return 0
	}
	final := dest
	if clip != nil {
		final = dest.Intersect(*clip)
		if final.IsEmpty() {
			return 0
		}
	}
	tex := uv
	if final != dest {
		sx := uv.Width() / dest.Width()
		sy := uv.Height() / dest.Height()
		tex = graphics.Rect{
			Left:   uv.Left + (final.Left-dest.Left)*sx,
			Top:    uv.Top + (final.Top-dest.Top)*sy,
			Right:  uv.Right - (dest.Right-final.Right)*sx,
			Bottom: uv.Bottom - (dest.Bottom-final.Bottom)*sy,
		}
	}
	tl := Vertex{Position: graphics.Vec2{X: final.Left, Y: final.Top}, TexCoord: graphics.Vec2{X: tex.Left, Y: tex.Top}, Colour: colours.TopLeft}
	tr := Vertex{Position: graphics.Vec2{X: final.Right, Y: final.Top}, TexCoord: graphics.Vec2{X: tex.Right, Y: tex.Top}, Colour: colours.TopRight}
	bl := Vertex{Position: graphics.Vec2{X: final.Left, Y: final.Bottom}, TexCoord: graphics.Vec2{X: tex.Left, Y: tex.Bottom}, Colour: colours.BottomLeft}
	br := Vertex{Position: graphics.Vec2{X: final.Right, Y: final.Bottom}, TexCoord: graphics.Vec2{X: tex.Right, Y: tex.Bottom}, Colour: colours.BottomRight}
	buf.AppendGeometry([]Vertex{tl, bl, br, br, tr, tl})
	return 6
}
