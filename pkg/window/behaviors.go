package window

import (
	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/skin"
)

// Behavior-specific event names.
const (
	EventClicked          = "Clicked"
	EventCloseClicked     = "CloseClicked"
	EventSelectionChanged = "SelectionChanged"
)

// Names of the look components behaviors recognise.
const (
	CloseButtonName = "__auto_closebutton__"
	TitlebarName    = "__auto_titlebar__"
)

// Built-in window types.
const (
	TypeDefault       = "DefaultWindow"
	TypeContainer     = "Container"
	TypeSlotContainer = "SlotContainer"
	TypeButton        = "Button"
	TypeStatic        = "Static"
	TypeFrame         = "FrameWindow"
	TypeEditbox       = "Editbox"
	TypeItemView      = "ItemView"
)

// RegisterDefaultTypes registers the built-in window types.
func RegisterDefaultTypes(m *Manager) error {
	types := []struct {
		name    string
		factory Factory
	}{
		{TypeDefault, nil},
		{TypeContainer, func() Behavior { return &ContainerBehavior{} }},
		{TypeSlotContainer, func() Behavior { return &ContainerBehavior{SingleSlot: true} }},
		{TypeButton, func() Behavior { return &ButtonBehavior{} }},
		{TypeStatic, func() Behavior { return &StaticBehavior{} }},
		{TypeFrame, func() Behavior { return &FrameBehavior{DragMovable: true} }},
		{TypeEditbox, func() Behavior { return &EditboxBehavior{} }},
		{TypeItemView, func() Behavior { return &ItemViewBehavior{} }},
	}
	for _, t := range types {
		if err := m.RegisterFactory(t.name, t.factory); err != nil {
			return err
		}
	}
	return nil
}

// As returns w's behavior as T.
func As[T Behavior](w *Window) (T, bool) {
	b, ok := w.behavior.(T)
	return b, ok
}

// ButtonBehavior tracks hover and push state and fires Clicked when the
// left button is released over a pushed button.
type ButtonBehavior struct {
	conns    event.ConnectionList
	hovering bool
	pushed   bool
}

func (b *ButtonBehavior) Attach(w *Window) {
	w.events.AddEvents(EventClicked)
	b.conns.Add(w.SubscribeEvent(EventInputCaptureLost, func(event.Args) bool {
		if b.pushed {
			b.pushed = false
			w.Invalidate(false)
		}
		return false
	}))
}

func (b *ButtonBehavior) Detach(w *Window) {
	b.conns.DisconnectAll()
	w.events.RemoveEvent(EventClicked)
}

// IsHovering reports whether the mouse is over the button.
func (b *ButtonBehavior) IsHovering() bool { return b.hovering }

// IsPushed reports whether the button is held down.
func (b *ButtonBehavior) IsPushed() bool { return b.pushed }

func (b *ButtonBehavior) setHovering(w *Window, h bool) {
	if h != b.hovering {
		b.hovering = h
		w.Invalidate(false)
	}
}

func (b *ButtonBehavior) HandleInput(w *Window, name string, args WindowArgs) bool {
	switch name {
	case EventMouseEnters:
		b.setHovering(w, true)
	case EventMouseLeaves:
		b.setHovering(w, false)
	case EventMouseMove:
		b.setHovering(w, w.IsHit(args.(*MouseEventArgs).Position, false))
		return true
	case EventMouseButtonDown:
		if args.(*MouseEventArgs).Button != LeftButton {
			return false
		}
		if w.CaptureInput() {
			b.pushed = true
			b.hovering = true
			w.Invalidate(false)
		}
		return true
	case EventMouseButtonUp:
		ma := args.(*MouseEventArgs)
		if ma.Button != LeftButton || !b.pushed {
			return false
		}
		b.pushed = false
		w.ReleaseInput()
		w.Invalidate(false)
		if w.IsHit(ma.Position, false) {
			w.fireSimple(EventClicked)
		}
		return true
	}
	return false
}

func (b *ButtonBehavior) StateSuffix(*Window) string {
	switch {
	case b.pushed && b.hovering:
		return "Pushed"
	case b.hovering:
		return "Hover"
	}
	return skin.StateNormal
}

// ContainerBehavior groups children. A single-slot container accepts one
// child besides its look components.
type ContainerBehavior struct {
	SingleSlot bool
}

func (*ContainerBehavior) Attach(*Window) {}
func (*ContainerBehavior) Detach(*Window) {}

func (c *ContainerBehavior) CanAddChild(parent, child *Window) error {
	if !c.SingleSlot || child.lookChild {
		return nil
	}
	for _, existing := range parent.children {
		if !existing.lookChild {
			return guierrors.InvalidRequestf("window.ContainerBehavior.CanAddChild", parent.NamePath(),
				"single-slot container already holds %q", existing.name)
		}
	}
	return nil
}

// StaticBehavior is for non-interactive windows such as labels and
// images.
type StaticBehavior struct{}

func (*StaticBehavior) Attach(*Window) {}
func (*StaticBehavior) Detach(*Window) {}

// FrameBehavior turns a look's close button into CloseClicked and lets
// the user drag the frame by its non-client area.
type FrameBehavior struct {
	DragMovable bool

	conns    event.ConnectionList
	dragging bool
	grab     graphics.Vec2
}

func (f *FrameBehavior) Attach(w *Window) {
	w.events.AddEvents(EventCloseClicked)
	f.conns.Add(w.SubscribeEvent(EventChildAdded, func(a event.Args) bool {
		child := a.(*WindowEventArgs).Window
		switch child.name {
		case CloseButtonName:
			child.SetNonClient(true)
			f.conns.Add(child.SubscribeEvent(EventClicked, func(event.Args) bool {
				w.fireSimple(EventCloseClicked)
				return true
			}))
		case TitlebarName:
			child.SetNonClient(true)
		}
		return false
	}))
}

func (f *FrameBehavior) Detach(w *Window) {
	f.conns.DisconnectAll()
	w.events.RemoveEvent(EventCloseClicked)
}

// IsDragging reports whether the frame is being dragged.
func (f *FrameBehavior) IsDragging() bool { return f.dragging }

// inDragArea reports whether pt is on the title bar or, without one, in
// the area between the outer and inner rects.
func (f *FrameBehavior) inDragArea(w *Window, pt graphics.Vec2) bool {
	if tb := w.directChild(TitlebarName); tb != nil {
		return tb.IsHit(pt, false)
	}
	return w.IsHit(pt, false) && !w.UnclippedInnerRect().Contains(pt)
}

func (f *FrameBehavior) HandleInput(w *Window, name string, args WindowArgs) bool {
	if !f.DragMovable {
		return false
	}
	switch name {
	case EventMouseButtonDown:
		ma := args.(*MouseEventArgs)
		if ma.Button != LeftButton || !f.inDragArea(w, ma.Position) || !w.CaptureInput() {
			return false
		}
		f.dragging = true
		f.grab = ma.Position.Sub(w.UnclippedOuterRect().Position())
		return true
	case EventMouseMove:
		if !f.dragging {
			return false
		}
		ma := args.(*MouseEventArgs)
		delta := ma.Position.Sub(w.UnclippedOuterRect().Position()).Sub(f.grab)
		pos := w.Position()
		pos.X = pos.X.Add(graphics.Absolute(delta.X))
		pos.Y = pos.Y.Add(graphics.Absolute(delta.Y))
		w.SetPosition(pos)
		return true
	case EventMouseButtonUp:
		if !f.dragging || args.(*MouseEventArgs).Button != LeftButton {
			return false
		}
		f.dragging = false
		w.ReleaseInput()
		return true
	}
	return false
}

var (
	_ InputHandler  = (*ButtonBehavior)(nil)
	_ StateSuffixer = (*ButtonBehavior)(nil)
	_ ChildPolicy   = (*ContainerBehavior)(nil)
	_ InputHandler  = (*FrameBehavior)(nil)
)
