// Package window implements the widget tree: windows, their geometry,
// z-order, state, properties and events, and the Manager that creates and
// destroys them.
//
// Widget types are not subclasses. A window composes a Behavior, which
// carries type-specific state and input handling, and a WindowRenderer,
// which turns the window's look into geometry.
//
// Like the rest of the toolkit, windows are NOT thread-safe; all use must
// happen on the GUI thread.
package window

import (
	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/font"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/property"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/skin"
)

// HorizontalAlignment positions a window horizontally within its parent.
type HorizontalAlignment int

const (
	AlignLeft HorizontalAlignment = iota
	AlignCentre
	AlignRight
)

// VerticalAlignment positions a window vertically within its parent.
type VerticalAlignment int

const (
	AlignTop VerticalAlignment = iota
	AlignMiddle
	AlignBottom
)

// ChildHook is consulted after a child is attached. A non-nil error vetoes
// the addition and the tree is restored.
type ChildHook func(parent, child *Window) error

// Window is a node of the widget tree.
type Window struct {
	manager *Manager
	name    string
	typ     string
	id      uint

	lookName string
	look     *skin.WidgetLook

	area     graphics.URect
	minSize  graphics.USize
	maxSize  graphics.USize
	hAlign   HorizontalAlignment
	vAlign   VerticalAlignment
	visible  bool
	disabled bool
	active   bool

	alpha         float32
	inheritsAlpha bool

	clippedByParent   bool
	nonClient         bool
	alwaysOnTop       bool
	zOrderEnabled     bool
	mousePassThrough  bool
	destroyedByParent bool
	autoWindow        bool
	lookChild         bool

	text    string
	tooltip string
	font    *font.Font
	fontSub *event.Connection

	user map[string]string

	parent   *Window
	children []*Window
	hooks    []ChildHook

	// capture is only meaningful on a root window.
	capture *Window

	behavior Behavior
	renderer WindowRenderer

	props  *property.Set
	events *event.Set

	rects    rectCache
	geometry render.GeometryBuffer
	dirty    bool
	dead     bool
}

func newWindow(m *Manager, typ, name string) *Window {
	w := &Window{
		manager:           m,
		name:              name,
		typ:               typ,
		visible:           true,
		alpha:             1,
		inheritsAlpha:     true,
		clippedByParent:   true,
		zOrderEnabled:     true,
		destroyedByParent: true,
		user:              map[string]string{},
		events:            event.NewSet(),
		dirty:             true,
	}
	w.events.AddEvents(windowEvents...)
	if m != nil {
		w.events.SetGlobal(m.global)
	}
	w.props = property.NewSet(w)
	addWindowProperties(w.props)
	return w
}

// Name returns the window name, unique among its siblings.
func (w *Window) Name() string { return w.name }

// Type returns the type the window was created as.
func (w *Window) Type() string { return w.typ }

// ID returns the client-assigned ID.
func (w *Window) ID() uint { return w.id }

// SetID assigns a client ID.
func (w *Window) SetID(id uint) { w.id = id }

// Manager returns the manager that created w.
func (w *Window) Manager() *Manager { return w.manager }

// Events returns the window's event set.
func (w *Window) Events() *event.Set { return w.events }

// Properties returns the window's property set.
func (w *Window) Properties() *property.Set { return w.props }

// Behavior returns the composed behavior, which may be nil.
func (w *Window) Behavior() Behavior { return w.behavior }

// IsAutoWindow reports whether w was created by its parent's look.
func (w *Window) IsAutoWindow() bool { return w.autoWindow }

// SubscribeEvent subscribes fn to the named event of w.
func (w *Window) SubscribeEvent(name string, fn event.Subscriber) *event.Connection {
	return w.events.SubscribeEvent(name, fn)
}

func (w *Window) fire(name string, args event.Args) {
	w.events.FireEvent(name, args, EventNamespace)
}

func (w *Window) fireSimple(name string) {
	w.fire(name, &WindowEventArgs{Window: w})
}

// UserString returns a client-defined string.
func (w *Window) UserString(name string) (string, bool) {
	v, ok := w.user[name]
	return v, ok
}

// SetUserString stores a client-defined string.
func (w *Window) SetUserString(name, value string) {
	w.user[name] = value
}

// Property returns the named property in canonical string form.
func (w *Window) Property(name string) (string, error) {
	return w.props.Get(name)
}

// SetProperty assigns the named property and fires PropertyChanged.
func (w *Window) SetProperty(name, value string) error {
	if err := w.props.SetValue(name, value); err != nil {
		return err
	}
	w.fire(EventPropertyChanged, &PropertyEventArgs{WindowEventArgs: WindowEventArgs{Window: w}, Property: name})
	return nil
}

// FirePropertyEvent fires eventName after a skin-defined property changed.
func (w *Window) FirePropertyEvent(eventName, prop string) {
	w.fire(eventName, &PropertyEventArgs{WindowEventArgs: WindowEventArgs{Window: w}, Property: prop})
}

// PropertyDefault reports the look's override of a property default.
// A falagard mapping supplies the defaults of WindowRenderer and LookNFeel.
func (w *Window) PropertyDefault(name string) (string, bool) {
	if name == "WindowRenderer" || name == "LookNFeel" {
		if w.manager == nil {
			return "", false
		}
		typ, err := w.manager.resolveAlias(w.typ)
		if err != nil {
			return "", false
		}
		fm, ok := w.manager.mappings[typ]
		if !ok {
			return "", false
		}
		if name == "LookNFeel" {
			return fm.Look, true
		}
		return fm.Renderer, true
	}
	if w.look == nil {
		return "", false
	}
	return w.look.PropertyDefault(name)
}

// LinkTarget returns the child named by suffix, or w for the empty suffix.
func (w *Window) LinkTarget(suffix string) (skin.PropertyHolder, error) {
	if suffix == "" {
		return w, nil
	}
	return w.Child(suffix)
}

// Text returns the window text.
func (w *Window) Text() string { return w.text }

// SetText replaces the window text.
func (w *Window) SetText(text string) {
	if w.text == text {
		return
	}
	w.text = text
	w.Invalidate(false)
	w.fireSimple(EventTextChanged)
}

// TooltipText returns the tooltip text.
func (w *Window) TooltipText() string { return w.tooltip }

// SetTooltipText replaces the tooltip text.
func (w *Window) SetTooltipText(text string) { w.tooltip = text }

// OwnFont returns the font assigned to w, or nil when it uses the default.
func (w *Window) OwnFont() *font.Font { return w.font }

// Font returns the effective font: the window's own, else the manager's
// default font. It may be nil.
func (w *Window) Font() *font.Font {
	if w.font != nil {
		return w.font
	}
	if w.manager != nil && w.manager.fonts != nil {
		return w.manager.fonts.Default()
	}
	return nil
}

// SetFont assigns f, or the default font for nil. The window follows the
// font's RenderSizeChanged notifications until the font is replaced.
func (w *Window) SetFont(f *font.Font) {
	if f == w.font {
		return
	}
	if w.fontSub != nil {
		w.fontSub.Disconnect()
		w.fontSub = nil
	}
	w.font = f
	if f != nil {
		w.fontSub = f.Events().SubscribeEvent(font.EventRenderSizeChanged, func(event.Args) bool {
			w.Invalidate(false)
			w.PerformChildLayout()
			return true
		})
	}
	w.Invalidate(false)
	w.fireSimple(EventFontChanged)
}

// SetFontByName assigns the named font; the empty name selects the
// default font.
func (w *Window) SetFontByName(name string) error {
	if name == "" {
		w.SetFont(nil)
		return nil
	}
	if w.manager == nil || w.manager.fonts == nil {
		return guierrors.UnknownObject("window.SetFontByName", name)
	}
	f, err := w.manager.fonts.Get(name)
	if err != nil {
		return err
	}
	w.SetFont(f)
	return nil
}

func (w *Window) fontName() string {
	if w.font == nil {
		return ""
	}
	return w.font.Name()
}

// Alpha returns the window's own alpha.
func (w *Window) Alpha() float32 { return w.alpha }

// SetAlpha sets the alpha, clamped to [0, 1].
func (w *Window) SetAlpha(a float32) {
	a = min(max(a, 0), 1)
	if a == w.alpha {
		return
	}
	w.alpha = a
	w.Invalidate(true)
	w.fireSimple(EventAlphaChanged)
}

// InheritsAlpha reports whether the parent's alpha modulates w.
func (w *Window) InheritsAlpha() bool { return w.inheritsAlpha }

// SetInheritsAlpha controls alpha inheritance.
func (w *Window) SetInheritsAlpha(b bool) {
	if b == w.inheritsAlpha {
		return
	}
	w.inheritsAlpha = b
	w.Invalidate(true)
}

// EffectiveAlpha returns the alpha used for drawing.
func (w *Window) EffectiveAlpha() float32 {
	if w.parent == nil || !w.inheritsAlpha {
		return w.alpha
	}
	return w.alpha * w.parent.EffectiveAlpha()
}

// IsVisible reports the window's own visibility flag.
func (w *Window) IsVisible() bool { return w.visible }

// IsDestroyed reports whether w was destroyed and awaits cleanup.
func (w *Window) IsDestroyed() bool { return w.dead }

// IsEffectiveVisible reports whether w and all its ancestors are visible.
func (w *Window) IsEffectiveVisible() bool {
	for c := w; c != nil; c = c.parent {
		if !c.visible {
			return false
		}
	}
	return true
}

// SetVisible shows or hides w.
func (w *Window) SetVisible(b bool) {
	if b == w.visible {
		return
	}
	w.visible = b
	w.Invalidate(true)
	if b {
		w.fireSimple(EventShown)
		return
	}
	w.ReleaseInput()
	w.fireSimple(EventHidden)
}

// Show makes w visible.
func (w *Window) Show() { w.SetVisible(true) }

// Hide makes w invisible.
func (w *Window) Hide() { w.SetVisible(false) }

// IsDisabled reports the window's own disabled flag.
func (w *Window) IsDisabled() bool { return w.disabled }

// IsEffectiveDisabled reports whether w or any ancestor is disabled.
func (w *Window) IsEffectiveDisabled() bool {
	for c := w; c != nil; c = c.parent {
		if c.disabled {
			return true
		}
	}
	return false
}

// SetEnabled enables or disables w.
func (w *Window) SetEnabled(b bool) {
	if b == !w.disabled {
		return
	}
	w.disabled = !b
	w.Invalidate(true)
	if b {
		w.fireSimple(EventEnabled)
		return
	}
	w.ReleaseInput()
	w.fireSimple(EventDisabled)
}

// Enable enables w.
func (w *Window) Enable() { w.SetEnabled(true) }

// Disable disables w.
func (w *Window) Disable() { w.SetEnabled(false) }

func (w *Window) setDisabled(b bool) { w.SetEnabled(!b) }

// IsActive reports whether w is active.
func (w *Window) IsActive() bool { return w.active }

// Activate makes w the active window among its siblings, deactivating
// whichever sibling was active, and brings it to the front.
func (w *Window) Activate() {
	if w.dead || !w.IsEffectiveVisible() {
		return
	}
	w.MoveToFront()
	if w.active {
		return
	}
	var prev *Window
	if w.parent != nil {
		for _, s := range w.parent.children {
			if s != w && s.active {
				prev = s
				s.deactivate(w)
			}
		}
		w.parent.Activate()
	}
	w.active = true
	w.Invalidate(false)
	w.fire(EventActivated, &ActivationEventArgs{WindowEventArgs: WindowEventArgs{Window: w}, Other: prev})
}

// Deactivate deactivates w and its active descendants.
func (w *Window) Deactivate() { w.deactivate(nil) }

func (w *Window) deactivate(other *Window) {
	if !w.active {
		return
	}
	for _, c := range w.children {
		c.deactivate(other)
	}
	w.active = false
	w.Invalidate(false)
	w.fire(EventDeactivated, &ActivationEventArgs{WindowEventArgs: WindowEventArgs{Window: w}, Other: other})
}

// ActiveChild returns the deepest active window in w's subtree, or nil.
func (w *Window) ActiveChild() *Window {
	if !w.active {
		return nil
	}
	for i := len(w.children) - 1; i >= 0; i-- {
		if c := w.children[i].ActiveChild(); c != nil {
			return c
		}
	}
	return w
}

// CaptureInput directs all mouse input of w's tree to w. It fails for
// hidden or disabled windows.
func (w *Window) CaptureInput() bool {
	if w.dead || !w.IsEffectiveVisible() || w.IsEffectiveDisabled() {
		return false
	}
	root := w.Root()
	if root.capture == w {
		return true
	}
	prev := root.capture
	root.capture = w
	if prev != nil {
		prev.fireSimple(EventInputCaptureLost)
	}
	w.fireSimple(EventInputCaptureGained)
	return true
}

// ReleaseInput gives up input capture if w holds it.
func (w *Window) ReleaseInput() {
	root := w.Root()
	if root.capture != w {
		return
	}
	root.capture = nil
	w.fireSimple(EventInputCaptureLost)
}

// CaptureWindow returns the window holding capture in w's tree.
func (w *Window) CaptureWindow() *Window {
	return w.Root().capture
}

// Flag accessors used by the property table.

func (w *Window) ClippedByParent() bool             { return w.clippedByParent }
func (w *Window) NonClient() bool                   { return w.nonClient }
func (w *Window) AlwaysOnTop() bool                 { return w.alwaysOnTop }
func (w *Window) ZOrderChangeEnabled() bool         { return w.zOrderEnabled }
func (w *Window) MousePassThroughEnabled() bool     { return w.mousePassThrough }
func (w *Window) DestroyedByParent() bool           { return w.destroyedByParent }
func (w *Window) SetZOrderChangeEnabled(b bool)     { w.zOrderEnabled = b }
func (w *Window) SetMousePassThroughEnabled(b bool) { w.mousePassThrough = b }
func (w *Window) SetDestroyedByParent(b bool)       { w.destroyedByParent = b }

// SetClippedByParent controls clipping against the parent.
func (w *Window) SetClippedByParent(b bool) {
	if b == w.clippedByParent {
		return
	}
	w.clippedByParent = b
	w.invalidateRects()
}

// SetNonClient places w in its parent's non-client area: it is positioned
// against the parent's outer rect and escapes the parent's inner clip.
func (w *Window) SetNonClient(b bool) {
	if b == w.nonClient {
		return
	}
	w.nonClient = b
	w.invalidateRects()
}

// Invalidate marks w for geometry regeneration.
func (w *Window) Invalidate(recursive bool) {
	w.dirty = true
	if recursive {
		for _, c := range w.children {
			c.Invalidate(true)
		}
	}
}

// IsDirty reports whether w itself needs regenerating.
func (w *Window) IsDirty() bool { return w.dirty }

// NeedsRedraw reports whether any visible window in the subtree is dirty.
func (w *Window) NeedsRedraw() bool {
	if !w.visible {
		return false
	}
	if w.dirty {
		return true
	}
	for _, c := range w.children {
		if c.NeedsRedraw() {
			return true
		}
	}
	return false
}

var (
	_ skin.Widget               = (*Window)(nil)
	_ skin.LinkHost             = (*Window)(nil)
	_ property.DefaultOverrider = (*Window)(nil)
)
