package gui

import (
	"slices"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/input"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/window"
)

// Context events, fired in ContextNamespace.
const (
	ContextNamespace       = "GUIContext"
	EventRootWindowChanged = "RootWindowChanged"
	EventRenderTargetArea  = "RenderTargetAreaChanged"
)

// ContextEventArgs accompanies context events.
type ContextEventArgs struct {
	event.EventArgs
	Context *Context
	// Previous is the replaced root for RootWindowChanged.
	Previous *window.Window
}

// Context is one drawing surface: a root window drawn to a render target
// and fed by an input aggregator.
type Context struct {
	sys      *System
	target   render.RenderTarget
	root     *window.Window
	injector *input.Aggregator
	events   *event.Set
	conns    event.ConnectionList
	dirty    bool
}

// CreateContext adds a context drawing to target.
func (s *System) CreateContext(target render.RenderTarget) *Context {
	c := &Context{sys: s, target: target, events: event.NewSet(), dirty: true}
	c.events.SetGlobal(s.global)
	c.events.AddEvents(EventRootWindowChanged, EventRenderTargetArea)
	c.injector = input.New(c.RootWindow, s.inputCfg)
	c.conns.Add(target.Events().SubscribeEvent(render.EventAreaChanged, func(event.Args) bool {
		if c.root != nil {
			c.root.NotifyClientAreaChanged()
		}
		c.MarkAsDirty()
		c.fire(EventRenderTargetArea, nil)
		return false
	}))
	s.contexts = append(s.contexts, c)
	return c
}

// DestroyContext removes c. The default context cannot be destroyed.
func (s *System) DestroyContext(c *Context) error {
	const op = "gui.System.DestroyContext"
	i := slices.Index(s.contexts, c)
	switch {
	case i < 0:
		return guierrors.UnknownObject(op, "context")
	case i == 0:
		return guierrors.InvalidRequestf(op, "context", "the default context cannot be destroyed")
	}
	c.detach()
	s.contexts = slices.Delete(s.contexts, i, i+1)
	return nil
}

// DefaultContext returns the context drawing to the renderer's default
// target.
func (s *System) DefaultContext() *Context {
	if len(s.contexts) == 0 {
		return nil
	}
	return s.contexts[0]
}

// Contexts returns every context, default first.
func (s *System) Contexts() []*Context { return slices.Clone(s.contexts) }

func (c *Context) detach() {
	c.conns.DisconnectAll()
	c.root = nil
}

func (c *Context) fire(name string, prev *window.Window) {
	c.events.FireEvent(name, &ContextEventArgs{Context: c, Previous: prev}, ContextNamespace)
}

// Events returns the context event set.
func (c *Context) Events() *event.Set { return c.events }

// RenderTarget returns the target the context draws to.
func (c *Context) RenderTarget() render.RenderTarget { return c.target }

// RootWindow returns the root window, or nil. A root destroyed since it
// was set is reported as nil.
func (c *Context) RootWindow() *window.Window {
	if c.root != nil && c.root.IsDestroyed() {
		return nil
	}
	return c.root
}

// SetRootWindow makes w the root drawn by the context. A nil w clears the
// root. The root must not have a parent.
func (c *Context) SetRootWindow(w *window.Window) error {
	if w == c.root {
		return nil
	}
	if w != nil && w.Parent() != nil {
		return guierrors.InvalidRequestf("gui.Context.SetRootWindow", w.Name(), "window has a parent")
	}
	prev := c.root
	c.root = w
	if w != nil {
		w.NotifyClientAreaChanged()
	}
	c.MarkAsDirty()
	c.fire(EventRootWindowChanged, prev)
	return nil
}

// Injector returns the input aggregator feeding the root window.
func (c *Context) Injector() *input.Aggregator { return c.injector }

// MarkAsDirty requests a redraw on the next Render.
func (c *Context) MarkAsDirty() { c.dirty = true }

// IsDirty reports whether the context changed since it was last drawn.
func (c *Context) IsDirty() bool { return c.dirty }

// Render draws the root window to the target. Windows regenerate geometry
// only when invalidated, so unchanged frames replay cached geometry.
func (c *Context) Render() {
	c.target.Activate()
	if root := c.RootWindow(); root != nil {
		root.Render(c.target)
	}
	c.target.Deactivate()
	c.dirty = false
}
