package window

import (
	"github.com/go-drift/facet/pkg/graphics"
)

type rectCache struct {
	size                               graphics.Size
	outer, inner, outerClip, innerClip graphics.Rect
	sizeOK, outerOK, innerOK           bool
	outerClipOK, innerClipOK           bool
}

// invalidateRects drops cached rects for w and its subtree.
func (w *Window) invalidateRects() {
	w.rects = rectCache{}
	w.dirty = true
	for _, c := range w.children {
		c.invalidateRects()
	}
}

// NotifyClientAreaChanged recomputes cached rects after the renderer's
// client area changed without a change of window area.
func (w *Window) NotifyClientAreaChanged() {
	w.invalidateRects()
	w.PerformChildLayout()
}

func (w *Window) displaySize() graphics.Size {
	if w.manager == nil {
		return graphics.Size{}
	}
	return w.manager.DisplaySize()
}

func (w *Window) displayRect() graphics.Rect {
	return graphics.RectFromPosSize(graphics.Vec2{}, w.displaySize())
}

// baseRect is the rect w is positioned against.
func (w *Window) baseRect() graphics.Rect {
	switch {
	case w.parent == nil:
		return w.displayRect()
	case w.nonClient:
		return w.parent.UnclippedOuterRect()
	default:
		return w.parent.UnclippedInnerRect()
	}
}

// baseClip is the rect w's clippers are bounded by.
func (w *Window) baseClip() graphics.Rect {
	switch {
	case w.parent == nil || !w.clippedByParent:
		return w.displayRect()
	case w.nonClient:
		return w.parent.OuterRectClipper()
	default:
		return w.parent.InnerRectClipper()
	}
}

// Area returns the unified area.
func (w *Window) Area() graphics.URect { return w.area }

// Position returns the unified position.
func (w *Window) Position() graphics.UVector2 { return w.area.Position() }

// Size returns the unified size.
func (w *Window) Size() graphics.USize { return w.area.Size() }

// MinSize returns the unified minimum size.
func (w *Window) MinSize() graphics.USize { return w.minSize }

// MaxSize returns the unified maximum size. Zero means unbounded.
func (w *Window) MaxSize() graphics.USize { return w.maxSize }

// HorizontalAlignment returns the horizontal alignment.
func (w *Window) HorizontalAlignment() HorizontalAlignment { return w.hAlign }

// VerticalAlignment returns the vertical alignment.
func (w *Window) VerticalAlignment() VerticalAlignment { return w.vAlign }

// SetArea replaces the unified area, firing Sized and Moved when the
// pixel size or position changes.
func (w *Window) SetArea(a graphics.URect) {
	if a == w.area {
		return
	}
	before := w.UnclippedOuterRect()
	w.area = a
	w.geometryChanged(before)
}

func (w *Window) geometryChanged(before graphics.Rect) {
	w.invalidateRects()
	after := w.UnclippedOuterRect()
	if after.Size() != before.Size() {
		w.PerformChildLayout()
		w.fireSimple(EventSized)
	}
	if after.Position() != before.Position() {
		w.fireSimple(EventMoved)
	}
}

// SetPosition moves w, keeping its size.
func (w *Window) SetPosition(pos graphics.UVector2) { w.SetArea(w.area.WithPosition(pos)) }

// SetSize resizes w, keeping its position.
func (w *Window) SetSize(size graphics.USize) { w.SetArea(w.area.WithSize(size)) }

// SetXPosition sets the x coordinate.
func (w *Window) SetXPosition(x graphics.UDim) {
	p := w.Position()
	p.X = x
	w.SetPosition(p)
}

// SetYPosition sets the y coordinate.
func (w *Window) SetYPosition(y graphics.UDim) {
	p := w.Position()
	p.Y = y
	w.SetPosition(p)
}

// SetWidth sets the width.
func (w *Window) SetWidth(width graphics.UDim) {
	s := w.Size()
	s.Width = width
	w.SetSize(s)
}

// SetHeight sets the height.
func (w *Window) SetHeight(height graphics.UDim) {
	s := w.Size()
	s.Height = height
	w.SetSize(s)
}

// SetMinSize sets the minimum size, resolved against the display.
func (w *Window) SetMinSize(s graphics.USize) {
	if s == w.minSize {
		return
	}
	before := w.UnclippedOuterRect()
	w.minSize = s
	w.geometryChanged(before)
}

// SetMaxSize sets the maximum size, resolved against the display. A zero
// dimension is unbounded.
func (w *Window) SetMaxSize(s graphics.USize) {
	if s == w.maxSize {
		return
	}
	before := w.UnclippedOuterRect()
	w.maxSize = s
	w.geometryChanged(before)
}

// SetHorizontalAlignment sets the horizontal alignment.
func (w *Window) SetHorizontalAlignment(a HorizontalAlignment) {
	if a == w.hAlign {
		return
	}
	before := w.UnclippedOuterRect()
	w.hAlign = a
	w.geometryChanged(before)
}

// SetVerticalAlignment sets the vertical alignment.
func (w *Window) SetVerticalAlignment(a VerticalAlignment) {
	if a == w.vAlign {
		return
	}
	before := w.UnclippedOuterRect()
	w.vAlign = a
	w.geometryChanged(before)
}

// ParentPixelSize returns the size w's unified dimensions resolve against.
func (w *Window) ParentPixelSize() graphics.Size {
	return w.baseRect().Size()
}

// PixelSize returns w's size in pixels after min/max clamping.
func (w *Window) PixelSize() graphics.Size {
	if !w.rects.sizeOK {
		display := w.displaySize()
		size := w.area.Size().Resolve(w.ParentPixelSize())
		w.rects.size = size.Clamp(w.minSize.Resolve(display), w.maxSize.Resolve(display))
		w.rects.sizeOK = true
	}
	return w.rects.size
}

// UnclippedOuterRect returns w's full area in screen pixels.
func (w *Window) UnclippedOuterRect() graphics.Rect {
	if w.rects.outerOK {
		return w.rects.outer
	}
	base := w.baseRect()
	size := w.PixelSize()
	offset := w.area.Position().Resolve(base.Size())

	x := base.Left + offset.X
	switch w.hAlign {
	case AlignCentre:
		x += (base.Width() - size.Width) / 2
	case AlignRight:
		x += base.Width() - size.Width
	}
	y := base.Top + offset.Y
	switch w.vAlign {
	case AlignMiddle:
		y += (base.Height() - size.Height) / 2
	case AlignBottom:
		y += base.Height() - size.Height
	}
	w.rects.outer = graphics.RectFromLTWH(x, y, size.Width, size.Height)
	w.rects.outerOK = true
	return w.rects.outer
}

// UnclippedInnerRect returns the client area in screen pixels: the area
// the renderer reserves for children, or the outer rect.
func (w *Window) UnclippedInnerRect() graphics.Rect {
	if w.rects.innerOK {
		return w.rects.inner
	}
	outer := w.UnclippedOuterRect()
	inner := outer
	if w.renderer != nil {
		if local, ok := w.renderer.UnclippedInnerRect(); ok {
			inner = local.Offset(outer.Position())
		}
	}
	w.rects.inner = inner
	w.rects.innerOK = true
	return inner
}

// OuterRectClipper returns the visible part of the outer rect.
func (w *Window) OuterRectClipper() graphics.Rect {
	if !w.rects.outerClipOK {
		w.rects.outerClip = w.UnclippedOuterRect().Intersect(w.baseClip())
		w.rects.outerClipOK = true
	}
	return w.rects.outerClip
}

// InnerRectClipper returns the visible part of the inner rect; children
// are clipped to it.
func (w *Window) InnerRectClipper() graphics.Rect {
	if !w.rects.innerClipOK {
		w.rects.innerClip = w.UnclippedInnerRect().Intersect(w.baseClip())
		w.rects.innerClipOK = true
	}
	return w.rects.innerClip
}

// PixelRect returns the clipped outer rect.
func (w *Window) PixelRect() graphics.Rect { return w.OuterRectClipper() }

// IsHit reports whether pt falls on the visible part of w. Disabled
// windows only count when allowDisabled is set.
func (w *Window) IsHit(pt graphics.Vec2, allowDisabled bool) bool {
	if !allowDisabled && w.IsEffectiveDisabled() {
		return false
	}
	return w.OuterRectClipper().Contains(pt)
}

// ChildAtPosition returns the front-most visible descendant containing
// pt, including disabled and pass-through windows.
func (w *Window) ChildAtPosition(pt graphics.Vec2) *Window {
	return w.childAt(pt, true, false)
}

// TargetChildAtPosition returns the front-most descendant that should
// receive input at pt. Mouse pass-through windows are skipped.
func (w *Window) TargetChildAtPosition(pt graphics.Vec2, allowDisabled bool) *Window {
	return w.childAt(pt, allowDisabled, true)
}

func (w *Window) childAt(pt graphics.Vec2, allowDisabled, target bool) *Window {
	for i := len(w.children) - 1; i >= 0; i-- {
		c := w.children[i]
		if !c.visible {
			continue
		}
		if found := c.childAt(pt, allowDisabled, target); found != nil {
			return found
		}
		if target && c.mousePassThrough {
			continue
		}
		if c.IsHit(pt, allowDisabled) {
			return c
		}
	}
	return nil
}
