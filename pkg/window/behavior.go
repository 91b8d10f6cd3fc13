package window

// Behavior carries the type-specific state of a window. A fresh Behavior
// is created for every window by the type's factory.
//
// Capabilities are optional interfaces: ChildPolicy, InputHandler and
// StateSuffixer.
type Behavior interface {
	Attach(w *Window)
	Detach(w *Window)
}

// ChildPolicy restricts the children a window accepts.
type ChildPolicy interface {
	CanAddChild(parent, child *Window) error
}

// InputHandler sees input events before the window's subscribers. It
// returns true when it consumed the event.
type InputHandler interface {
	HandleInput(w *Window, name string, args WindowArgs) bool
}

// StateSuffixer reports the look state suffix of a window, for example
// "Hover" or "Pushed".
type StateSuffixer interface {
	StateSuffix(w *Window) string
}

func (w *Window) setBehavior(b Behavior) {
	if w.behavior != nil {
		w.behavior.Detach(w)
	}
	w.behavior = b
	if b != nil {
		b.Attach(w)
	}
}

// Inject delivers an input event to w. Unhandled events bubble up the
// ancestors until one handles them. It reports whether the event was
// handled.
func (w *Window) Inject(name string, args WindowArgs) bool {
	for cur := w; cur != nil; cur = cur.parent {
		if cur.dead {
			return false
		}
		args.WindowArgs().Window = cur
		if h, ok := cur.behavior.(InputHandler); ok && h.HandleInput(cur, name, args) {
			args.Base().Handled++
		}
		cur.fire(name, args)
		if args.Base().Handled > 0 {
			return true
		}
		if !bubbling(name) {
			return false
		}
	}
	return false
}
