package window

import (
	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/skin"
)

// WindowRenderer turns a window's look into geometry.
type WindowRenderer interface {
	Name() string
	Attach(w *Window) error
	Detach()
	// CreateRenderGeometry fills buf with the window's imagery, in
	// window-local pixels.
	CreateRenderGeometry(buf render.GeometryBuffer) error
	// UnclippedInnerRect returns the client area in window-local pixels,
	// or false when the client area is the whole window.
	UnclippedInnerRect() (graphics.Rect, bool)
	// ItemPixelSize returns the natural size of the window's content.
	ItemPixelSize() graphics.Size
	PerformChildLayout()
	Look() *skin.WidgetLook
}

// RendererFactory creates window renderers by name.
type RendererFactory interface {
	Create(name string) (WindowRenderer, error)
}

// LookNFeel returns the name of the assigned look.
func (w *Window) LookNFeel() string { return w.lookName }

// Look returns the resolved assigned look, or nil.
func (w *Window) Look() *skin.WidgetLook { return w.look }

// WindowRenderer returns the bound renderer, or nil.
func (w *Window) WindowRenderer() WindowRenderer { return w.renderer }

// WindowRendererName returns the bound renderer's name, or "".
func (w *Window) WindowRendererName() string {
	if w.renderer == nil {
		return ""
	}
	return w.renderer.Name()
}

// SetWindowRenderer binds the named renderer, replacing any previous one.
// The empty name unbinds.
func (w *Window) SetWindowRenderer(name string) error {
	if name == w.WindowRendererName() {
		return nil
	}
	if old := w.renderer; old != nil {
		old.Detach()
		w.renderer = nil
		w.invalidateRects()
		w.fireSimple(EventRendererDetached)
	}
	if name == "" {
		return nil
	}
	if w.manager == nil || w.manager.renderers == nil {
		return guierrors.InvalidRequestf("window.Window.SetWindowRenderer", name, "no renderer registry")
	}
	r, err := w.manager.renderers.Create(name)
	if err != nil {
		return err
	}
	if err := r.Attach(w); err != nil {
		return err
	}
	w.renderer = r
	w.invalidateRects()
	w.PerformChildLayout()
	w.fireSimple(EventRendererAttached)
	return nil
}

// SetLookNFeel assigns the named look: its properties are added to w, its
// child components created and its initialisers applied. The empty name
// removes the current look. A failure leaves w without a look.
func (w *Window) SetLookNFeel(name string) error {
	const op = "window.Window.SetLookNFeel"
	if name == w.lookName {
		return nil
	}
	if w.lookName != "" {
		w.unapplyLook()
	}
	if name == "" {
		return nil
	}
	if w.manager == nil || w.manager.looks == nil {
		return guierrors.InvalidRequestf(op, name, "no look manager")
	}
	look, err := w.manager.looks.Get(name)
	if err != nil {
		return err
	}
	w.lookName = name
	w.look = look
	for _, p := range look.DefinedProperties() {
		w.props.Replace(p)
	}
	if err := w.applyLook(look); err != nil {
		w.unapplyLook()
		return guierrors.InvalidRequest(op, name, err)
	}
	w.invalidateRects()
	w.PerformChildLayout()
	w.fireSimple(EventLookNFeelAssigned)
	return nil
}

func (w *Window) applyLook(look *skin.WidgetLook) error {
	for _, comp := range look.Children {
		child, err := w.manager.CreateWindow(comp.Type, comp.NameSuffix)
		if err != nil {
			return err
		}
		child.lookChild = true
		child.autoWindow = comp.AutoWindow
		if err := child.configure(comp); err != nil {
			w.manager.DestroyWindow(child)
			return err
		}
		if err := w.AddChild(child); err != nil {
			w.manager.DestroyWindow(child)
			return err
		}
	}
	for _, init := range look.Initialisers {
		if err := w.SetProperty(init.Name, init.Value); err != nil {
			return err
		}
	}
	return nil
}

func (w *Window) configure(comp *skin.WidgetComponent) error {
	if err := w.SetWindowRenderer(comp.Renderer); err != nil {
		return err
	}
	if err := w.SetLookNFeel(comp.Look); err != nil {
		return err
	}
	for _, p := range comp.Properties {
		if err := w.SetProperty(p.Name, p.Value); err != nil {
			return err
		}
	}
	return nil
}

func (w *Window) unapplyLook() {
	look := w.look
	w.look = nil
	w.lookName = ""
	if look == nil {
		return
	}
	for _, comp := range look.Children {
		if c := w.directChild(comp.NameSuffix); c != nil && c.lookChild {
			w.manager.DestroyWindow(c)
		}
	}
	for _, p := range look.DefinedProperties() {
		w.props.Remove(p.Name())
	}
	w.invalidateRects()
	w.fireSimple(EventLookNFeelUnassigned)
}

// PerformChildLayout positions the look's child components and lets the
// renderer lay out its content.
func (w *Window) PerformChildLayout() {
	if w.look != nil {
		for _, comp := range w.look.Children {
			c := w.directChild(comp.NameSuffix)
			if c == nil {
				continue
			}
			c.SetArea(w.componentArea(comp.Area))
		}
	}
	if w.renderer != nil {
		w.renderer.PerformChildLayout()
	}
}

func (w *Window) componentArea(a skin.ComponentArea) graphics.URect {
	if a.AreaProperty == "" && a.NamedArea == "" {
		return a.Rect
	}
	px, err := a.Pixel(w, w.look)
	if err != nil {
		guierrors.ReportErr("window.Window.PerformChildLayout", err)
		return a.Rect
	}
	return graphics.URect{
		Min: graphics.UVector2{X: graphics.Absolute(px.Left), Y: graphics.Absolute(px.Top)},
		Max: graphics.UVector2{X: graphics.Absolute(px.Right), Y: graphics.Absolute(px.Bottom)},
	}
}

// StateSuffix returns the behavior's current state suffix, such as
// "Hover" or "Pushed", or "Normal".
func (w *Window) StateSuffix() string {
	if s, ok := w.behavior.(StateSuffixer); ok {
		return s.StateSuffix(w)
	}
	return skin.StateNormal
}

// Geometry returns the window's geometry buffer, created on first render.
func (w *Window) Geometry() render.GeometryBuffer { return w.geometry }

// Render draws w and its visible subtree to target back to front.
// Geometry is regenerated only for invalidated windows.
func (w *Window) Render(target render.RenderTarget) {
	if !w.visible || w.dead {
		return
	}
	if w.dirty {
		w.regenerate()
	}
	if w.geometry != nil && w.geometry.VertexCount() > 0 {
		target.Draw(w.geometry)
	}
	for _, c := range w.children {
		c.Render(target)
	}
}

func (w *Window) regenerate() {
	w.dirty = false
	if w.renderer == nil || w.manager == nil || w.manager.renderer == nil {
		return
	}
	if w.geometry == nil {
		w.geometry = w.manager.renderer.CreateGeometryBuffer()
	}
	buf := w.geometry
	buf.Reset()
	buf.SetTranslation(w.UnclippedOuterRect().Position())
	buf.SetClippingRegion(w.OuterRectClipper())
	if err := w.renderer.CreateRenderGeometry(buf); err != nil {
		guierrors.ReportErr("window.Window.Render", err)
	}
}
