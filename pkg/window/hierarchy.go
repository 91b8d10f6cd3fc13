package window

import (
	"slices"
	"strings"

	guierrors "github.com/go-drift/facet/pkg/errors"
)

// Parent returns the parent window, or nil for a root.
func (w *Window) Parent() *Window { return w.parent }

// Root returns the topmost ancestor of w.
func (w *Window) Root() *Window {
	r := w
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Children returns the children back to front.
func (w *Window) Children() []*Window {
	return slices.Clone(w.children)
}

// ChildCount returns the number of children.
func (w *Window) ChildCount() int { return len(w.children) }

// ChildAt returns the child at z-index i.
func (w *Window) ChildAt(i int) *Window { return w.children[i] }

// NamePath returns the '/'-separated names from the root down to w.
func (w *Window) NamePath() string {
	if w.parent == nil {
		return w.name
	}
	return w.parent.NamePath() + "/" + w.name
}

// IsChild reports whether c is a direct child of w.
func (w *Window) IsChild(c *Window) bool {
	return c != nil && c.parent == w
}

// IsAncestor reports whether a is an ancestor of w.
func (w *Window) IsAncestor(a *Window) bool {
	for p := w.parent; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

func (w *Window) directChild(name string) *Window {
	for _, c := range w.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Child resolves a '/'-separated name path relative to w.
func (w *Window) Child(namePath string) (*Window, error) {
	cur := w
	for _, part := range strings.Split(namePath, "/") {
		if cur = cur.directChild(part); cur == nil {
			return nil, guierrors.UnknownObject("window.Window.Child", w.NamePath()+"/"+namePath)
		}
	}
	return cur, nil
}

// ChildRecursive returns the shallowest descendant called name, searching
// breadth first.
func (w *Window) ChildRecursive(name string) *Window {
	queue := slices.Clone(w.children)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c.name == name {
			return c
		}
		queue = append(queue, c.children...)
	}
	return nil
}

// OnBeforeChildAdd registers a hook that can veto new children.
func (w *Window) OnBeforeChildAdd(h ChildHook) {
	w.hooks = append(w.hooks, h)
}

// AddChild attaches c on top of its z-order partition, detaching it from
// any previous parent. ChildAdded fires after the tree is updated. A veto
// from a child hook or a panic in a ChildAdded handler restores the
// previous tree before the failure propagates.
func (w *Window) AddChild(c *Window) (err error) {
	const op = "window.Window.AddChild"
	switch {
	case c == nil:
		return guierrors.InvalidRequestf(op, w.name, "nil child")
	case c == w || w.IsAncestor(c):
		return guierrors.InvalidRequestf(op, c.name, "cannot add a window to its own subtree")
	case c.parent == w:
		return nil
	case w.directChild(c.name) != nil:
		return guierrors.AlreadyExists(op, w.NamePath()+"/"+c.name)
	}
	if p, ok := w.behavior.(ChildPolicy); ok {
		if err := p.CanAddChild(w, c); err != nil {
			return err
		}
	}

	oldParent := c.parent
	oldIndex := -1
	var oldRoot, oldCapture *Window
	if oldParent != nil {
		oldIndex = slices.Index(oldParent.children, c)
		oldRoot = oldParent.Root()
		oldCapture = oldRoot.capture
		oldParent.detach(c)
	}
	w.attach(c)

	rollback := func() {
		w.detach(c)
		if oldParent != nil {
			oldParent.children = slices.Insert(oldParent.children, oldIndex, c)
			c.parent = oldParent
			c.invalidateRects()
			oldRoot.capture = oldCapture
		}
	}
	for _, h := range w.hooks {
		if err := h(w, c); err != nil {
			rollback()
			return err
		}
	}

	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()
	if oldParent != nil {
		oldParent.fire(EventChildRemoved, &WindowEventArgs{Window: c})
	}
	w.fire(EventChildAdded, &WindowEventArgs{Window: c})
	return nil
}

// RemoveChild detaches c from w and fires ChildRemoved. Windows that are
// not children of w are ignored.
func (w *Window) RemoveChild(c *Window) {
	if !w.IsChild(c) {
		return
	}
	w.detach(c)
	w.fire(EventChildRemoved, &WindowEventArgs{Window: c})
}

func (w *Window) attach(c *Window) {
	c.parent = w
	w.children = slices.Insert(w.children, w.frontIndex(c.alwaysOnTop), c)
	c.invalidateRects()
	w.Invalidate(false)
}

func (w *Window) detach(c *Window) {
	i := slices.Index(w.children, c)
	if i < 0 {
		return
	}
	root := w.Root()
	if holder := root.capture; holder == c || (holder != nil && holder.IsAncestor(c)) {
		root.capture = nil
	}
	w.children = slices.Delete(w.children, i, i+1)
	c.parent = nil
	c.invalidateRects()
	w.Invalidate(false)
}

// frontIndex returns the insertion index at the front of a partition.
func (w *Window) frontIndex(onTop bool) int {
	if onTop {
		return len(w.children)
	}
	for i, c := range w.children {
		if c.alwaysOnTop {
			return i
		}
	}
	return len(w.children)
}

// backIndex returns the insertion index at the back of a partition.
func (w *Window) backIndex(onTop bool) int {
	if !onTop {
		return 0
	}
	return w.frontIndex(false)
}

// ZOrderIndex returns w's position among its siblings, 0 being the back.
// It returns -1 for a root.
func (w *Window) ZOrderIndex() int {
	if w.parent == nil {
		return -1
	}
	return slices.Index(w.parent.children, w)
}

// reorder moves w to index i within its parent's remaining children.
func (w *Window) reorder(index func(p *Window) int) {
	p := w.parent
	old := slices.Index(p.children, w)
	p.children = slices.Delete(p.children, old, old+1)
	i := index(p)
	p.children = slices.Insert(p.children, i, w)
	if i != old {
		p.Invalidate(false)
		w.fireSimple(EventZOrderChanged)
	}
}

// MoveToFront brings w and its ancestors to the front of their partitions.
func (w *Window) MoveToFront() {
	if w.parent == nil {
		return
	}
	if w.zOrderEnabled {
		w.reorder(func(p *Window) int { return p.frontIndex(w.alwaysOnTop) })
	}
	w.parent.MoveToFront()
}

// MoveToBack sends w to the back of its partition.
func (w *Window) MoveToBack() {
	if w.parent == nil || !w.zOrderEnabled {
		return
	}
	w.reorder(func(p *Window) int { return p.backIndex(w.alwaysOnTop) })
}

func (w *Window) checkSibling(op string, other *Window) error {
	if w.parent == nil || other == nil || other.parent != w.parent || other == w {
		return guierrors.InvalidRequestf(op, w.name, "window is not a sibling")
	}
	return nil
}

// MoveInFront places w directly in front of sibling other. A normal window
// cannot be placed in front of an always-on-top one.
func (w *Window) MoveInFront(other *Window) error {
	const op = "window.Window.MoveInFront"
	if err := w.checkSibling(op, other); err != nil {
		return err
	}
	if other.alwaysOnTop && !w.alwaysOnTop {
		return guierrors.InvalidRequestf(op, w.name, "cannot move in front of an always-on-top window")
	}
	if !w.zOrderEnabled {
		return nil
	}
	w.reorder(func(p *Window) int {
		return max(slices.Index(p.children, other)+1, p.backIndex(w.alwaysOnTop))
	})
	return nil
}

// MoveBehind places w directly behind sibling other. An always-on-top
// window cannot be placed behind a normal one.
func (w *Window) MoveBehind(other *Window) error {
	const op = "window.Window.MoveBehind"
	if err := w.checkSibling(op, other); err != nil {
		return err
	}
	if w.alwaysOnTop && !other.alwaysOnTop {
		return guierrors.InvalidRequestf(op, w.name, "cannot move behind a normal window")
	}
	if !w.zOrderEnabled {
		return nil
	}
	w.reorder(func(p *Window) int {
		return min(slices.Index(p.children, other), p.frontIndex(w.alwaysOnTop))
	})
	return nil
}

// SetAlwaysOnTop moves w between the normal and always-on-top partitions,
// placing it at the front of the new one.
func (w *Window) SetAlwaysOnTop(b bool) {
	if b == w.alwaysOnTop {
		return
	}
	w.alwaysOnTop = b
	if w.parent != nil {
		w.reorder(func(p *Window) int { return p.frontIndex(b) })
	}
}
