// Package imageset manages named images: rectangular areas of textures
// that skins and widgets draw by name.
package imageset

import (
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/render"
)

// Image is a named area of a texture.
type Image struct {
	name    string
	texture render.Texture
	area    graphics.Rect
	offset  graphics.Vec2
}

// NewImage returns an image over area of tex. The offset is applied to
// the destination when rendering.
func NewImage(name string, tex render.Texture, area graphics.Rect, offset graphics.Vec2) *Image {
	return &Image{name: name, texture: tex, area: area, offset: offset}
}

func (i *Image) Name() string            { return i.name }
func (i *Image) Texture() render.Texture { return i.texture }
func (i *Image) Area() graphics.Rect     { return i.area }
func (i *Image) Offset() graphics.Vec2   { return i.offset }

// Size returns the pixel size of the image.
func (i *Image) Size() graphics.Size {
	return i.area.Size()
}

// TexCoords returns the image area in normalized texture coordinates.
func (i *Image) TexCoords() graphics.Rect {
	if i.texture == nil {
		return graphics.Rect{Right: 1, Bottom: 1}
	}
	ts := i.texture.Size()
	if ts.Width <= 0 || ts.Height <= 0 {
		return graphics.Rect{Right: 1, Bottom: 1}
	}
	return graphics.Rect{
		Left:   i.area.Left / ts.Width,
		Top:    i.area.Top / ts.Height,
		Right:  i.area.Right / ts.Width,
		Bottom: i.area.Bottom / ts.Height,
	}
}

// Render appends two triangles drawing the image into dest, clipped to
// clip when it is non-nil. It returns the number of vertices appended.
func (i *Image) Render(buf render.GeometryBuffer, dest graphics.Rect, clip *graphics.Rect, colours graphics.ColourRect) int {
	buf.SetActiveTexture(i.texture)
	return render.AppendQuad(buf, dest.Offset(i.offset), i.TexCoords(), clip, colours)
}
