// Package renderers turns window looks into geometry. Each renderer is
// bound to one window at a time and draws the look's state imagery plus
// whatever content its window type carries: text, rows or a caret.
package renderers

import (
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/property"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/skin"
	"github.com/go-drift/facet/pkg/window"
)

// Named areas a look may define to shape a renderer's content.
const (
	AreaClient = "ClientArea"
	AreaText   = "TextArea"
	AreaItems  = "ItemRenderArea"
)

// Base implements the parts of window.WindowRenderer every renderer
// shares. Embedders override CreateRenderGeometry and, where needed,
// UnclippedInnerRect and ItemPixelSize.
type Base struct {
	name  string
	w     *window.Window
	props []property.Property
}

func newBase(name string) Base { return Base{name: name} }

func (b *Base) Name() string { return b.name }

// Window returns the attached window, or nil.
func (b *Base) Window() *window.Window { return b.w }

func (b *Base) Attach(w *window.Window) error {
	b.w = w
	for _, p := range b.props {
		w.Properties().Replace(p)
	}
	return nil
}

func (b *Base) Detach() {
	if b.w == nil {
		return
	}
	for _, p := range b.props {
		b.w.Properties().Remove(p.Name())
	}
	b.w = nil
}

// addProperties registers renderer properties, added to the window on
// Attach and removed on Detach.
func (b *Base) addProperties(ps ...property.Property) {
	b.props = append(b.props, ps...)
}

// Look returns the attached window's look.
func (b *Base) Look() *skin.WidgetLook {
	if b.w == nil {
		return nil
	}
	return b.w.Look()
}

func (b *Base) PerformChildLayout() {}

// ItemPixelSize defaults to the window's current pixel size.
func (b *Base) ItemPixelSize() graphics.Size {
	if b.w == nil {
		return graphics.Size{}
	}
	return b.w.PixelSize()
}

// UnclippedInnerRect uses the look's client area when it defines one.
func (b *Base) UnclippedInnerRect() (graphics.Rect, bool) {
	return b.namedArea(AreaClient)
}

// namedArea resolves a named area of the look in window-local pixels.
func (b *Base) namedArea(name string) (graphics.Rect, bool) {
	look := b.Look()
	if look == nil || !look.IsNamedAreaDefined(name) {
		return graphics.Rect{}, false
	}
	na, err := look.NamedArea(name)
	if err != nil {
		return graphics.Rect{}, false
	}
	r, err := na.Area.Pixel(b.w, look)
	if err != nil {
		return graphics.Rect{}, false
	}
	return r, true
}

// localRect is the window's own rect in local pixels.
func (b *Base) localRect() graphics.Rect {
	return graphics.RectFromPosSize(graphics.Vec2{}, b.w.PixelSize())
}

// innerLocal is the inner rect in local pixels.
func (b *Base) innerLocal() graphics.Rect {
	outer := b.w.UnclippedOuterRect()
	inner := b.w.UnclippedInnerRect()
	return inner.Offset(graphics.Vec2{X: -outer.Left, Y: -outer.Top})
}

// DrawContext builds the context used to draw look imagery into buf.
func (b *Base) DrawContext(buf render.GeometryBuffer) *skin.DrawContext {
	m := b.w.Manager()
	outer := b.w.UnclippedOuterRect()
	clip := b.localRect()
	display := graphics.RectFromPosSize(graphics.Vec2{X: -outer.Left, Y: -outer.Top}, m.DisplaySize())
	return &skin.DrawContext{
		Look:        b.Look(),
		Widget:      b.w,
		Buffer:      buf,
		Images:      m.Images(),
		Fonts:       m.Fonts(),
		Looks:       m.Looks(),
		Clip:        &clip,
		DisplayClip: &display,
		Alpha:       b.w.EffectiveAlpha(),
	}
}

// enabledPrefix is the state name prefix for the window's enabled state.
func (b *Base) enabledPrefix() string {
	if b.w.IsEffectiveDisabled() {
		return skin.StateDisabled
	}
	return skin.StateEnabled
}

// renderState draws the named state imagery. Windows without a look draw
// nothing.
func (b *Base) renderState(buf render.GeometryBuffer, state string) error {
	look := b.Look()
	if look == nil {
		return nil
	}
	s, err := look.State(state)
	if err != nil {
		return err
	}
	return s.Render(b.DrawContext(buf))
}

// renderOptionalState draws state when the look defines it.
func (b *Base) renderOptionalState(buf render.GeometryBuffer, state string) error {
	look := b.Look()
	if look == nil || !look.IsStateDefined(state) {
		return nil
	}
	return b.renderState(buf, state)
}

// renderResolvedState draws prefix+suffix with the look's fallbacks.
func (b *Base) renderResolvedState(buf render.GeometryBuffer, prefix, suffix string) error {
	look := b.Look()
	if look == nil {
		return nil
	}
	s, err := look.ResolveState(prefix, suffix)
	if err != nil {
		return err
	}
	return s.Render(b.DrawContext(buf))
}

// colours applies the window's effective alpha to c.
func (b *Base) colours(c graphics.ColourRect) graphics.ColourRect {
	if a := b.w.EffectiveAlpha(); a < 1 {
		return c.ModulateAlpha(a)
	}
	return c
}

// brush draws the named image stretched over dest. An empty name draws
// nothing.
func (b *Base) brush(buf render.GeometryBuffer, name string, dest graphics.Rect, clip *graphics.Rect, c graphics.ColourRect) error {
	if name == "" {
		return nil
	}
	images := b.w.Manager().Images()
	if images == nil {
		return nil
	}
	img, err := images.Get(name)
	if err != nil {
		return err
	}
	img.Render(buf, dest, clip, b.colours(c))
	return nil
}

// Default draws the Enabled or Disabled state of any window.
type Default struct {
	Base
}

// NewDefault creates the renderer registered as "Default".
func NewDefault() window.WindowRenderer { return &Default{Base: newBase(NameDefault)} }

func (d *Default) CreateRenderGeometry(buf render.GeometryBuffer) error {
	return d.renderState(buf, d.enabledPrefix())
}

var _ window.WindowRenderer = (*Default)(nil)
