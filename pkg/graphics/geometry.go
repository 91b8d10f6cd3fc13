// Package graphics provides the geometry and colour value types shared by
// every layer of the toolkit: pixel vectors and rectangles, the unified
// (scale, offset) coordinate system windows are positioned in, and ARGB
// colours.
package graphics

import "github.com/chewxy/math32"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Vec2 represents a 2D point or vector in pixel coordinates.
type Vec2 struct {
	X float32
	Y float32
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of v and o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float32
	Height float32
}

// Clamp returns s limited to the range [min, max] on each axis. A zero
// component in max means unbounded on that axis.
func (s Size) Clamp(min, max Size) Size {
	if max.Width > 0 {
		s.Width = math32.Min(s.Width, max.Width)
	}
	if max.Height > 0 {
		s.Height = math32.Min(s.Height, max.Height)
	}
	s.Width = math32.Max(s.Width, min.Width)
	s.Height = math32.Max(s.Height, min.Height)
	return s
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float32) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// RectFromPosSize constructs a Rect from a position and a size.
func RectFromPosSize(pos Vec2, size Size) Rect {
	return RectFromLTWH(pos.X, pos.Y, size.Width, size.Height)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float32 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Position returns the top-left corner.
func (r Rect) Position() Vec2 {
	return Vec2{X: r.Left, Y: r.Top}
}

// Intersect returns the intersection of two rectangles.
// Returns an empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := math32.Max(r.Left, other.Left)
	top := math32.Max(r.Top, other.Top)
	right := math32.Min(r.Right, other.Right)
	bottom := math32.Min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// ContainsRect reports whether o lies entirely within r, within epsilon.
// An empty o is contained in any rect.
func (r Rect) ContainsRect(o Rect) bool {
	if o.IsEmpty() {
		return true
	}
	return o.Left >= r.Left-epsilon && o.Top >= r.Top-epsilon &&
		o.Right <= r.Right+epsilon && o.Bottom <= r.Bottom+epsilon
}

// Offset returns a new rect moved by v.
func (r Rect) Offset(v Vec2) Rect {
	return Rect{
		Left:   r.Left + v.X,
		Top:    r.Top + v.Y,
		Right:  r.Right + v.X,
		Bottom: r.Bottom + v.Y,
	}
}

// Union returns the smallest rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Left:   math32.Min(r.Left, other.Left),
		Top:    math32.Min(r.Top, other.Top),
		Right:  math32.Max(r.Right, other.Right),
		Bottom: math32.Max(r.Bottom, other.Bottom),
	}
}

// Inset shrinks r by the given amounts on each side.
func (r Rect) Inset(left, top, right, bottom float32) Rect {
	return Rect{
		Left:   r.Left + left,
		Top:    r.Top + top,
		Right:  r.Right - right,
		Bottom: r.Bottom - bottom,
	}
}

// Snapped returns r with every edge floored to a whole pixel.
func (r Rect) Snapped() Rect {
	return Rect{
		Left:   math32.Floor(r.Left),
		Top:    math32.Floor(r.Top),
		Right:  math32.Floor(r.Right),
		Bottom: math32.Floor(r.Bottom),
	}
}

// ApproxEqual reports whether both rects match within epsilon.
func (r Rect) ApproxEqual(o Rect) bool {
	return floatEqual(r.Left, o.Left) && floatEqual(r.Top, o.Top) &&
		floatEqual(r.Right, o.Right) && floatEqual(r.Bottom, o.Bottom)
}

func floatEqual(a, b float32) bool {
	return math32.Abs(a-b) <= epsilon
}
