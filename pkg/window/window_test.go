package window

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/font"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/render/null"
	"github.com/go-drift/facet/pkg/skin"
)

// stubRenderer draws one quad over the window and optionally reserves an
// inner rect.
type stubRenderer struct {
	w      *Window
	inner  *graphics.Rect
	builds int
}

func (s *stubRenderer) Name() string           { return "Stub" }
func (s *stubRenderer) Attach(w *Window) error { s.w = w; return nil }
func (s *stubRenderer) Detach()                { s.w = nil }
func (s *stubRenderer) PerformChildLayout()    {}
func (s *stubRenderer) Look() *skin.WidgetLook { return s.w.Look() }

func (s *stubRenderer) ItemPixelSize() graphics.Size { return s.w.PixelSize() }

func (s *stubRenderer) UnclippedInnerRect() (graphics.Rect, bool) {
	if s.inner == nil {
		return graphics.Rect{}, false
	}
	return *s.inner, true
}

func (s *stubRenderer) CreateRenderGeometry(buf render.GeometryBuffer) error {
	s.builds++
	dest := graphics.RectFromPosSize(graphics.Vec2{}, s.w.PixelSize())
	render.AppendQuad(buf, dest, graphics.Rect{Right: 1, Bottom: 1}, nil, graphics.UniformColours(graphics.ColourWhite))
	return nil
}

type stubFactory map[string]func() WindowRenderer

func (f stubFactory) Create(name string) (WindowRenderer, error) {
	fn, ok := f[name]
	if !ok {
		return nil, guierrors.UnknownObject("stubFactory.Create", name)
	}
	return fn(), nil
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(Services{
		Renderer:  null.New(graphics.Size{Width: 800, Height: 600}),
		Renderers: stubFactory{"Stub": func() WindowRenderer { return &stubRenderer{} }},
		Global:    event.NewGlobalSet(),
	})
	require.NoError(t, RegisterDefaultTypes(m))
	return m
}

func mustCreate(t *testing.T, m *Manager, typ, name string) *Window {
	t.Helper()
	w, err := m.CreateWindow(typ, name)
	require.NoError(t, err)
	return w
}

func absArea(x, y, w, h float32) graphics.URect {
	return graphics.URect{
		Min: graphics.UVector2{X: graphics.Absolute(x), Y: graphics.Absolute(y)},
		Max: graphics.UVector2{X: graphics.Absolute(x + w), Y: graphics.Absolute(y + h)},
	}
}

var fullArea = graphics.URect{Max: graphics.UVector2{X: graphics.Relative(1), Y: graphics.Relative(1)}}

func TestCreateWindow(t *testing.T) {
	m := newTestManager(t)

	a := mustCreate(t, m, TypeDefault, "")
	b := mustCreate(t, m, TypeDefault, "")
	assert.Contains(t, a.Name(), AutoNamePrefix)
	assert.NotEqual(t, a.Name(), b.Name())
	assert.True(t, m.IsAlive(a))

	_, err := m.CreateWindow("Nope", "x")
	assert.True(t, errors.Is(err, guierrors.ErrUnknownObject))

	btn := mustCreate(t, m, TypeButton, "ok")
	_, ok := As[*ButtonBehavior](btn)
	assert.True(t, ok)
}

func TestTypeRegistration(t *testing.T) {
	m := newTestManager(t)

	err := m.RegisterFactory(TypeButton, nil)
	assert.True(t, errors.Is(err, guierrors.ErrAlreadyExists))

	require.NoError(t, m.RegisterAlias("PushButton", TypeButton))
	require.NoError(t, m.RegisterAlias("Knob", "PushButton"))
	w := mustCreate(t, m, "Knob", "k")
	_, ok := As[*ButtonBehavior](w)
	assert.True(t, ok)
	assert.Equal(t, "Knob", w.Type())

	assert.True(t, errors.Is(m.RegisterAlias(TypeButton, TypeStatic), guierrors.ErrAlreadyExists))
	assert.True(t, errors.Is(m.RegisterFalagardMapping("X/Y", "Missing", "", ""), guierrors.ErrUnknownObject))

	require.NoError(t, m.RegisterFalagardMapping("Test/Button", TypeButton, "Stub", ""))
	mapped := mustCreate(t, m, "Test/Button", "tb")
	assert.Equal(t, "Stub", mapped.WindowRendererName())
	v, err := mapped.Properties().IsDefault("WindowRenderer")
	require.NoError(t, err)
	assert.True(t, v, "mapping supplies the renderer default")
	assert.Contains(t, m.Types(), "Test/Button")
}

func TestAddChildFiresAfterMutation(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	child := mustCreate(t, m, TypeDefault, "child")

	var seen []string
	root.SubscribeEvent(EventChildAdded, func(a event.Args) bool {
		c := a.(*WindowEventArgs).Window
		assert.Same(t, root, c.Parent())
		seen = append(seen, c.Name())
		return false
	})
	root.SubscribeEvent(EventChildRemoved, func(a event.Args) bool {
		assert.Nil(t, a.(*WindowEventArgs).Window.Parent())
		assert.Zero(t, root.ChildCount())
		seen = append(seen, "-"+a.(*WindowEventArgs).Window.Name())
		return false
	})

	require.NoError(t, root.AddChild(child))
	root.RemoveChild(child)
	assert.Equal(t, []string{"child", "-child"}, seen)
}

func TestAddChildErrors(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	child := mustCreate(t, m, TypeDefault, "child")
	twin := mustCreate(t, m, TypeDefault, "child")
	require.NoError(t, root.AddChild(child))

	assert.True(t, errors.Is(root.AddChild(nil), guierrors.ErrInvalidRequest))
	assert.True(t, errors.Is(root.AddChild(root), guierrors.ErrInvalidRequest))
	assert.True(t, errors.Is(child.AddChild(root), guierrors.ErrInvalidRequest))
	assert.True(t, errors.Is(root.AddChild(twin), guierrors.ErrAlreadyExists))
}

func TestAddChildVetoRestoresTree(t *testing.T) {
	m := newTestManager(t)
	a := mustCreate(t, m, TypeDefault, "a")
	b := mustCreate(t, m, TypeDefault, "b")
	x := mustCreate(t, m, TypeDefault, "x")
	y := mustCreate(t, m, TypeDefault, "y")
	require.NoError(t, a.AddChild(x))
	require.NoError(t, a.AddChild(y))

	veto := errors.New("no")
	b.OnBeforeChildAdd(func(_, _ *Window) error { return veto })

	removed := 0
	a.SubscribeEvent(EventChildRemoved, func(event.Args) bool { removed++; return false })

	assert.ErrorIs(t, b.AddChild(x), veto)
	assert.Same(t, a, x.Parent())
	assert.Equal(t, 0, x.ZOrderIndex())
	assert.Zero(t, b.ChildCount())
	assert.Zero(t, removed)
}

func TestAddChildVetoRestoresCapture(t *testing.T) {
	tests := []struct {
		name    string
		capture func(x, leaf *Window) *Window
	}{
		{"moved window", func(x, _ *Window) *Window { return x }},
		{"descendant", func(_, leaf *Window) *Window { return leaf }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			a := mustCreate(t, m, TypeDefault, "a")
			b := mustCreate(t, m, TypeDefault, "b")
			x := mustCreate(t, m, TypeDefault, "x")
			leaf := mustCreate(t, m, TypeDefault, "leaf")
			require.NoError(t, a.AddChild(x))
			require.NoError(t, x.AddChild(leaf))

			holder := tt.capture(x, leaf)
			require.True(t, holder.CaptureInput())
			b.OnBeforeChildAdd(func(_, _ *Window) error { return errors.New("no") })

			require.Error(t, b.AddChild(x))
			assert.Same(t, a, x.Parent())
			assert.Same(t, holder, a.CaptureWindow())
			assert.Nil(t, b.CaptureWindow())
		})
	}
}

func TestChildAddedPanicRestoresTree(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	child := mustCreate(t, m, TypeDefault, "child")
	root.SubscribeEvent(EventChildAdded, func(event.Args) bool { panic("boom") })

	assert.PanicsWithValue(t, "boom", func() { _ = root.AddChild(child) })
	assert.Nil(t, child.Parent())
	assert.Zero(t, root.ChildCount())
}

func TestSingleSlotContainer(t *testing.T) {
	m := newTestManager(t)
	slot := mustCreate(t, m, TypeSlotContainer, "slot")
	require.NoError(t, slot.AddChild(mustCreate(t, m, TypeDefault, "one")))
	err := slot.AddChild(mustCreate(t, m, TypeDefault, "two"))
	assert.True(t, errors.Is(err, guierrors.ErrInvalidRequest))
	assert.Equal(t, 1, slot.ChildCount())
}

func TestChildLookup(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	panel := mustCreate(t, m, TypeDefault, "panel")
	deep := mustCreate(t, m, TypeDefault, "deep")
	require.NoError(t, root.AddChild(panel))
	require.NoError(t, panel.AddChild(deep))

	got, err := root.Child("panel/deep")
	require.NoError(t, err)
	assert.Same(t, deep, got)
	assert.Equal(t, "root/panel/deep", deep.NamePath())
	assert.Same(t, deep, root.ChildRecursive("deep"))
	assert.Nil(t, root.ChildRecursive("missing"))
	assert.True(t, deep.IsAncestor(root))
	assert.False(t, root.IsAncestor(deep))
	assert.True(t, root.IsChild(panel))
	assert.False(t, root.IsChild(deep))
	assert.Same(t, root, deep.Root())

	_, err = root.Child("panel/nope")
	assert.True(t, errors.Is(err, guierrors.ErrUnknownObject))
}

func names(ws []*Window) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Name()
	}
	return out
}

func TestZOrder(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	a := mustCreate(t, m, TypeDefault, "a")
	b := mustCreate(t, m, TypeDefault, "b")
	top := mustCreate(t, m, TypeDefault, "top")
	top.SetAlwaysOnTop(true)
	c := mustCreate(t, m, TypeDefault, "c")
	for _, w := range []*Window{a, top, b, c} {
		require.NoError(t, root.AddChild(w))
	}
	assert.Equal(t, []string{"a", "b", "c", "top"}, names(root.Children()))

	changed := 0
	a.SubscribeEvent(EventZOrderChanged, func(event.Args) bool { changed++; return false })
	a.MoveToFront()
	assert.Equal(t, []string{"b", "c", "a", "top"}, names(root.Children()))
	assert.Equal(t, 1, changed)

	a.MoveToBack()
	assert.Equal(t, []string{"a", "b", "c", "top"}, names(root.Children()))

	require.NoError(t, a.MoveInFront(b))
	assert.Equal(t, []string{"b", "a", "c", "top"}, names(root.Children()))
	require.NoError(t, c.MoveBehind(b))
	assert.Equal(t, []string{"c", "b", "a", "top"}, names(root.Children()))
	assert.Equal(t, 2, a.ZOrderIndex())

	assert.True(t, errors.Is(a.MoveInFront(top), guierrors.ErrInvalidRequest))
	assert.True(t, errors.Is(top.MoveBehind(a), guierrors.ErrInvalidRequest))
	assert.True(t, errors.Is(a.MoveInFront(root), guierrors.ErrInvalidRequest))

	top.SetAlwaysOnTop(false)
	assert.Equal(t, []string{"c", "b", "a", "top"}, names(root.Children()))
	c.SetAlwaysOnTop(true)
	assert.Equal(t, []string{"b", "a", "top", "c"}, names(root.Children()))

	b.SetZOrderChangeEnabled(false)
	b.MoveToFront()
	assert.Equal(t, 0, b.ZOrderIndex())
}

func TestGeometry(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	root.SetArea(fullArea)
	child := mustCreate(t, m, TypeDefault, "child")
	require.NoError(t, root.AddChild(child))

	child.SetArea(graphics.URect{
		Min: graphics.UVector2{X: graphics.Relative(0.25), Y: graphics.Absolute(10)},
		Max: graphics.UVector2{X: graphics.Relative(0.75), Y: graphics.Absolute(110)},
	})
	assert.Equal(t, graphics.Size{Width: 800, Height: 600}, root.PixelSize())
	assert.Equal(t, graphics.RectFromLTWH(200, 10, 400, 100), child.UnclippedOuterRect())
	assert.Equal(t, graphics.Size{Width: 800, Height: 600}, child.ParentPixelSize())

	child.SetPosition(graphics.UVector2{})
	child.SetHorizontalAlignment(AlignCentre)
	child.SetVerticalAlignment(AlignBottom)
	assert.Equal(t, graphics.RectFromLTWH(200, 500, 400, 100), child.UnclippedOuterRect())

	child.SetMaxSize(graphics.USize{Width: graphics.Absolute(300)})
	assert.Equal(t, graphics.Size{Width: 300, Height: 100}, child.PixelSize())
	child.SetMinSize(graphics.USize{Height: graphics.Relative(0.5)})
	assert.Equal(t, graphics.Size{Width: 300, Height: 300}, child.PixelSize())
}

func TestGeometryEvents(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	root.SetArea(fullArea)
	child := mustCreate(t, m, TypeDefault, "child")
	require.NoError(t, root.AddChild(child))
	child.SetArea(graphics.URect{Max: graphics.UVector2{X: graphics.Relative(0.5), Y: graphics.Relative(0.5)}})

	var fired []string
	child.SubscribeEvent(EventSized, func(event.Args) bool { fired = append(fired, "sized"); return false })
	child.SubscribeEvent(EventMoved, func(event.Args) bool { fired = append(fired, "moved"); return false })

	child.SetXPosition(graphics.Absolute(5))
	child.SetWidth(graphics.Relative(0.5))
	child.SetHeight(graphics.Absolute(10))
	assert.Equal(t, []string{"moved", "sized"}, fired)

	root.SetSize(graphics.USize{Width: graphics.Absolute(400), Height: graphics.Absolute(400)})
	assert.Equal(t, graphics.RectFromLTWH(5, 0, 200, 10), child.UnclippedOuterRect(), "cached rects follow the parent")
}

func TestClipping(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	root.SetArea(fullArea)
	frame := mustCreate(t, m, TypeDefault, "frame")
	require.NoError(t, root.AddChild(frame))
	frame.SetArea(absArea(100, 100, 200, 200))
	require.NoError(t, frame.SetWindowRenderer("Stub"))
	frame.renderer.(*stubRenderer).inner = &graphics.Rect{Left: 10, Top: 20, Right: 190, Bottom: 190}
	frame.invalidateRects()

	assert.Equal(t, graphics.Rect{Left: 110, Top: 120, Right: 290, Bottom: 290}, frame.UnclippedInnerRect())

	client := mustCreate(t, m, TypeDefault, "client")
	require.NoError(t, frame.AddChild(client))
	client.SetArea(absArea(-50, -50, 100, 100))
	assert.Equal(t, graphics.RectFromLTWH(60, 70, 100, 100), client.UnclippedOuterRect())
	assert.Equal(t, graphics.Rect{Left: 110, Top: 120, Right: 160, Bottom: 170}, client.PixelRect())

	title := mustCreate(t, m, TypeDefault, "title")
	require.NoError(t, frame.AddChild(title))
	title.SetNonClient(true)
	title.SetArea(absArea(-10, -10, 50, 30))
	assert.Equal(t, graphics.Rect{Left: 100, Top: 100, Right: 140, Bottom: 120}, title.PixelRect())

	client.SetClippedByParent(false)
	assert.Equal(t, client.UnclippedOuterRect(), client.PixelRect())
}

func TestHitTesting(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	root.SetArea(fullArea)
	back := mustCreate(t, m, TypeDefault, "back")
	front := mustCreate(t, m, TypeDefault, "front")
	inner := mustCreate(t, m, TypeDefault, "inner")
	for _, w := range []*Window{back, front} {
		require.NoError(t, root.AddChild(w))
		w.SetArea(absArea(0, 0, 100, 100))
	}
	require.NoError(t, front.AddChild(inner))
	inner.SetArea(absArea(10, 10, 20, 20))

	pt := graphics.Vec2{X: 15, Y: 15}
	assert.Same(t, inner, root.TargetChildAtPosition(pt, false))
	assert.Same(t, front, root.TargetChildAtPosition(graphics.Vec2{X: 50, Y: 50}, false))

	inner.SetMousePassThroughEnabled(true)
	assert.Same(t, front, root.TargetChildAtPosition(pt, false))
	assert.Same(t, inner, root.ChildAtPosition(pt))

	front.Disable()
	assert.Same(t, back, root.TargetChildAtPosition(pt, false))
	assert.Same(t, front, root.TargetChildAtPosition(pt, true))
	assert.False(t, inner.IsHit(pt, false))

	front.Hide()
	back.Hide()
	assert.Nil(t, root.ChildAtPosition(pt))
	assert.Nil(t, root.TargetChildAtPosition(graphics.Vec2{X: 500, Y: 500}, true))
}

func TestStateInheritance(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	child := mustCreate(t, m, TypeDefault, "child")
	require.NoError(t, root.AddChild(child))

	var fired []string
	for _, name := range []string{EventHidden, EventShown, EventDisabled, EventEnabled, EventAlphaChanged} {
		name := name
		root.SubscribeEvent(name, func(event.Args) bool { fired = append(fired, name); return false })
	}

	root.Disable()
	assert.False(t, child.IsDisabled())
	assert.True(t, child.IsEffectiveDisabled())
	root.Enable()
	root.Hide()
	assert.True(t, child.IsVisible())
	assert.False(t, child.IsEffectiveVisible())
	root.Show()

	root.SetAlpha(0.5)
	child.SetAlpha(0.5)
	assert.InDelta(t, 0.25, child.EffectiveAlpha(), 1e-6)
	child.SetInheritsAlpha(false)
	assert.InDelta(t, 0.5, child.EffectiveAlpha(), 1e-6)
	root.SetAlpha(3)
	assert.Equal(t, float32(1), root.Alpha())

	assert.Equal(t, []string{EventDisabled, EventEnabled, EventHidden, EventShown, EventAlphaChanged, EventAlphaChanged}, fired)
}

func TestActivation(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	a := mustCreate(t, m, TypeDefault, "a")
	b := mustCreate(t, m, TypeDefault, "b")
	require.NoError(t, root.AddChild(a))
	require.NoError(t, root.AddChild(b))

	var deactivatedBy *Window
	a.SubscribeEvent(EventDeactivated, func(args event.Args) bool {
		deactivatedBy = args.(*ActivationEventArgs).Other
		return false
	})

	a.Activate()
	assert.True(t, a.IsActive())
	assert.True(t, root.IsActive())
	assert.Same(t, a, root.ActiveChild())
	assert.Equal(t, 1, a.ZOrderIndex())

	b.Activate()
	assert.False(t, a.IsActive())
	assert.Same(t, b, deactivatedBy)
	assert.Same(t, b, root.ActiveChild())
}

func TestInputCapture(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	a := mustCreate(t, m, TypeDefault, "a")
	b := mustCreate(t, m, TypeDefault, "b")
	require.NoError(t, root.AddChild(a))
	require.NoError(t, root.AddChild(b))

	lost := 0
	a.SubscribeEvent(EventInputCaptureLost, func(event.Args) bool { lost++; return false })

	require.True(t, a.CaptureInput())
	assert.Same(t, a, b.CaptureWindow())
	require.True(t, b.CaptureInput())
	assert.Equal(t, 1, lost)
	b.ReleaseInput()
	assert.Nil(t, root.CaptureWindow())

	b.Disable()
	assert.False(t, b.CaptureInput())
	require.True(t, a.CaptureInput())
	root.RemoveChild(a)
	assert.Nil(t, root.CaptureWindow(), "detaching the capture window releases capture")
}

func TestProperties(t *testing.T) {
	m := newTestManager(t)
	w := mustCreate(t, m, TypeDefault, "w")

	tests := []struct {
		name, value string
	}{
		{"Text", "hello"},
		{"Alpha", "0.5"},
		{"Visible", "false"},
		{"Area", "{{0,10},{0,20},{1,0},{1,0}}"},
		{"HorizontalAlignment", "Centre"},
		{"VerticalAlignment", "Bottom"},
		{"AlwaysOnTop", "true"},
		{"TooltipText", "tip"},
		{"ID", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, w.SetProperty(tt.name, tt.value))
			got, err := w.Property(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
	assert.Equal(t, "hello", w.Text())
	assert.Equal(t, AlignCentre, w.HorizontalAlignment())

	assert.Error(t, w.SetProperty("Name", "other"))
	assert.True(t, errors.Is(w.SetProperty("Alpha", "lots"), guierrors.ErrInvalidRequest))
	assert.True(t, errors.Is(w.SetProperty("Font", "NoSuchFont"), guierrors.ErrUnknownObject))
	_, err := w.Property("Bogus")
	assert.True(t, errors.Is(err, guierrors.ErrUnknownObject))

	var changed []string
	w.SubscribeEvent(EventPropertyChanged, func(a event.Args) bool {
		changed = append(changed, a.(*PropertyEventArgs).Property)
		return false
	})
	require.NoError(t, w.SetProperty("Disabled", "true"))
	assert.True(t, w.IsDisabled())
	assert.Equal(t, []string{"Disabled"}, changed)
}

func TestFontRenderSizeInvalidates(t *testing.T) {
	m := newTestManager(t)
	w := mustCreate(t, m, TypeDefault, "w")
	f1, err := font.NewPixmap("one", 13)
	require.NoError(t, err)
	f2, err := font.NewPixmap("two", 13)
	require.NoError(t, err)

	w.SetFont(f1)
	w.dirty = false
	require.NoError(t, f1.SetPointSize(20))
	assert.True(t, w.IsDirty())

	w.SetFont(f2)
	w.dirty = false
	require.NoError(t, f1.SetPointSize(26))
	assert.False(t, w.IsDirty(), "old font no longer notifies the window")

	m.DestroyWindow(w)
	m.CleanDeadPool()
	w.dirty = false
	require.NoError(t, f2.SetPointSize(30))
	assert.False(t, w.IsDirty())
}

func TestDefaultFontResizeInvalidates(t *testing.T) {
	fonts := font.NewManager(nil)
	fixed, err := fonts.CreatePixmap("Fixed", 12)
	require.NoError(t, err)
	other, err := fonts.CreatePixmap("Other", 12)
	require.NoError(t, err)
	require.NoError(t, fonts.SetDefault("Fixed"))

	m := NewManager(Services{Renderer: null.New(graphics.Size{Width: 800, Height: 600}), Fonts: fonts})
	require.NoError(t, RegisterDefaultTypes(m))
	plain := mustCreate(t, m, TypeDefault, "plain")
	own := mustCreate(t, m, TypeDefault, "own")
	own.SetFont(other)

	plain.dirty, own.dirty = false, false
	require.NoError(t, fixed.SetPointSize(24))
	assert.True(t, plain.IsDirty(), "window using the default font")
	assert.False(t, own.IsDirty(), "window with its own font")

	fontChanges := 0
	plain.SubscribeEvent(EventFontChanged, func(event.Args) bool { fontChanges++; return false })
	require.NoError(t, fonts.SetDefault("Other"))
	assert.Equal(t, 1, fontChanges)
	assert.Same(t, other, plain.Font())

	plain.dirty = false
	require.NoError(t, fixed.SetPointSize(30))
	assert.False(t, plain.IsDirty(), "previous default no longer notifies")
	require.NoError(t, other.SetPointSize(30))
	assert.True(t, plain.IsDirty())
}

func TestDestroyWindow(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	owned := mustCreate(t, m, TypeDefault, "owned")
	kept := mustCreate(t, m, TypeDefault, "kept")
	kept.SetDestroyedByParent(false)
	require.NoError(t, root.AddChild(owned))
	require.NoError(t, root.AddChild(kept))

	started := 0
	root.SubscribeEvent(EventDestructionStarted, func(event.Args) bool { started++; return false })

	m.DestroyWindow(root)
	m.DestroyWindow(root)
	assert.Equal(t, 1, started)
	assert.False(t, m.IsAlive(root))
	assert.False(t, m.IsAlive(owned))
	assert.True(t, m.IsAlive(kept))
	assert.Nil(t, kept.Parent())
	assert.Equal(t, 2, m.DeadPoolSize())
	assert.Equal(t, 2, m.CleanDeadPool())
	assert.Zero(t, m.DeadPoolSize())
	assert.Equal(t, []*Window{kept}, m.Windows())
}

func TestRenderRegeneratesOnlyDirtyWindows(t *testing.T) {
	m := newTestManager(t)
	renderer := m.renderer.(*null.Renderer)
	root := mustCreate(t, m, TypeDefault, "root")
	root.SetArea(fullArea)
	require.NoError(t, root.SetWindowRenderer("Stub"))
	child := mustCreate(t, m, TypeDefault, "child")
	require.NoError(t, root.AddChild(child))
	child.SetArea(absArea(10, 10, 50, 50))
	require.NoError(t, child.SetWindowRenderer("Stub"))
	hidden := mustCreate(t, m, TypeDefault, "hidden")
	require.NoError(t, root.AddChild(hidden))
	require.NoError(t, hidden.SetWindowRenderer("Stub"))
	hidden.Hide()

	target := renderer.DefaultRenderTarget()
	root.Render(target)
	calls := renderer.DrawCalls()
	require.Len(t, calls, 2)
	assert.Same(t, root.Geometry(), calls[0].Buffer)
	assert.Same(t, child.Geometry(), calls[1].Buffer)
	assert.Equal(t, graphics.Vec2{X: 10, Y: 10}, calls[1].Translation)
	assert.False(t, root.NeedsRedraw())

	root.Render(target)
	assert.Equal(t, 1, root.renderer.(*stubRenderer).builds)
	child.SetText("changed")
	root.Render(target)
	assert.Equal(t, 1, root.renderer.(*stubRenderer).builds)
	assert.Equal(t, 2, child.renderer.(*stubRenderer).builds)
	assert.Nil(t, hidden.Geometry())
}

func TestInjectBubbles(t *testing.T) {
	m := newTestManager(t)
	root := mustCreate(t, m, TypeDefault, "root")
	child := mustCreate(t, m, TypeDefault, "child")
	require.NoError(t, root.AddChild(child))

	var receivers []string
	root.SubscribeEvent(EventKeyDown, func(a event.Args) bool {
		receivers = append(receivers, a.(*KeyEventArgs).Window.Name())
		return true
	})
	assert.True(t, child.Inject(EventKeyDown, &KeyEventArgs{Key: KeyA}))
	assert.Equal(t, []string{"root"}, receivers)

	assert.False(t, child.Inject(EventMouseEnters, &MouseEventArgs{}))
}

func TestGlobalObserversSeeWindowEvents(t *testing.T) {
	m := newTestManager(t)
	w := mustCreate(t, m, TypeDefault, "w")
	seen := 0
	m.global.SubscribeEvent(EventNamespace+"/"+EventTextChanged, func(event.Args) bool { seen++; return false })
	w.SetText("x")
	assert.Equal(t, 1, seen)
}
