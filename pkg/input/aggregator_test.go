package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/facet/pkg/clipboard"
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/render/null"
	"github.com/go-drift/facet/pkg/window"
)

type scene struct {
	root, pane, button, edit *window.Window
	clip                     *clipboard.Clipboard
	agg                      *Aggregator
}

func rect(x, y, w, h float32) graphics.URect {
	return graphics.URect{
		Min: graphics.UVector2{X: graphics.Absolute(x), Y: graphics.Absolute(y)},
		Max: graphics.UVector2{X: graphics.Absolute(x + w), Y: graphics.Absolute(y + h)},
	}
}

func newScene(t *testing.T, cfg Config) *scene {
	t.Helper()
	clip := clipboard.New()
	m := window.NewManager(window.Services{
		Renderer:  null.New(graphics.Size{Width: 800, Height: 600}),
		Clipboard: clip,
	})
	require.NoError(t, window.RegisterDefaultTypes(m))
	create := func(typ, name string, area graphics.URect, parent *window.Window) *window.Window {
		w, err := m.CreateWindow(typ, name)
		require.NoError(t, err)
		w.SetArea(area)
		if parent != nil {
			require.NoError(t, parent.AddChild(w))
		}
		return w
	}
	s := &scene{clip: clip}
	s.root = create(window.TypeDefault, "root", graphics.URect{
		Max: graphics.UVector2{X: graphics.Relative(1), Y: graphics.Relative(1)},
	}, nil)
	s.pane = create(window.TypeDefault, "pane", rect(300, 300, 100, 100), s.root)
	s.button = create(window.TypeButton, "button", rect(10, 10, 100, 30), s.root)
	s.edit = create(window.TypeEditbox, "edit", rect(10, 100, 200, 30), s.root)
	s.agg = New(func() *window.Window { return s.root }, cfg)
	return s
}

func count(w *window.Window, name string) *[]int {
	var got []int
	w.SubscribeEvent(name, func(a event.Args) bool {
		n := 0
		if ma, ok := a.(*window.MouseEventArgs); ok {
			n = ma.ClickCount
		}
		got = append(got, n)
		return false
	})
	return &got
}

func TestHoverEnterLeave(t *testing.T) {
	s := newScene(t, DefaultConfig())
	enters := count(s.button, window.EventMouseEnters)
	leaves := count(s.button, window.EventMouseLeaves)

	s.agg.InjectMousePosition(20, 20)
	assert.Len(t, *enters, 1)
	assert.Equal(t, s.button, s.agg.HoverWindow())

	s.agg.InjectMouseMove(5, 5)
	assert.Len(t, *enters, 1, "moving within the window does not re-enter")

	s.agg.InjectMousePosition(500, 500)
	assert.Len(t, *leaves, 1)
	assert.Equal(t, s.root, s.agg.HoverWindow())

	assert.False(t, s.agg.InjectMousePosition(500, 500), "no movement is not delivered")
}

func TestClickDetection(t *testing.T) {
	tests := []struct {
		name    string
		cfg     func(*Config)
		between func(a *Aggregator)
		clicks  []int
		doubles int
	}{
		{
			name:    "two quick presses",
			between: func(a *Aggregator) { a.InjectTimePulse(100 * time.Millisecond) },
			clicks:  []int{1, 2},
			doubles: 1,
		},
		{
			name:    "slow second press",
			between: func(a *Aggregator) { a.InjectTimePulse(time.Second) },
			clicks:  []int{1, 1},
		},
		{
			name: "second press moved away",
			between: func(a *Aggregator) {
				a.InjectMouseMove(20, 0)
			},
			clicks: []int{1, 1},
		},
		{
			name:    "custom double click timeout",
			cfg:     func(c *Config) { c.DoubleClickTimeout = 2 * time.Second },
			between: func(a *Aggregator) { a.InjectTimePulse(time.Second) },
			clicks:  []int{1, 2},
			doubles: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			s := newScene(t, cfg)
			clicks := count(s.pane, window.EventMouseClick)
			doubles := count(s.pane, window.EventMouseDoubleClick)

			s.agg.InjectMousePosition(320, 320)
			s.agg.InjectMouseButtonDown(window.LeftButton)
			s.agg.InjectMouseButtonUp(window.LeftButton)
			tt.between(s.agg)
			s.agg.InjectMouseButtonDown(window.LeftButton)
			s.agg.InjectMouseButtonUp(window.LeftButton)

			assert.Equal(t, tt.clicks, *clicks)
			assert.Len(t, *doubles, tt.doubles)
		})
	}
}

func TestClickCancelled(t *testing.T) {
	tests := []struct {
		name   string
		cfg    func(*Config)
		during func(a *Aggregator)
	}{
		{"moved beyond tolerance", nil, func(a *Aggregator) { a.InjectMouseMove(30, 0) }},
		{"held too long", func(c *Config) { c.ClickTimeout = 200 * time.Millisecond },
			func(a *Aggregator) { a.InjectTimePulse(300 * time.Millisecond) }},
		{"released over another window", nil, func(a *Aggregator) { a.InjectMousePosition(500, 500) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			s := newScene(t, cfg)
			clicks := count(s.pane, window.EventMouseClick)

			s.agg.InjectMousePosition(320, 320)
			s.agg.InjectMouseButtonDown(window.LeftButton)
			tt.during(s.agg)
			s.agg.InjectMouseButtonUp(window.LeftButton)
			assert.Empty(t, *clicks)
		})
	}
}

func TestCaptureRoutesMouse(t *testing.T) {
	s := newScene(t, DefaultConfig())
	var clicked int
	s.button.SubscribeEvent(window.EventClicked, func(event.Args) bool {
		clicked++
		return true
	})
	moves := count(s.button, window.EventMouseMove)

	s.agg.InjectMousePosition(20, 20)
	require.True(t, s.agg.InjectMouseButtonDown(window.LeftButton))
	assert.Equal(t, window.ModLeftMouse, s.agg.Modifiers())
	assert.Equal(t, s.button, s.root.CaptureWindow())

	s.agg.InjectMousePosition(500, 500)
	assert.Len(t, *moves, 2, "captured window keeps receiving moves")

	s.agg.InjectMouseButtonUp(window.LeftButton)
	assert.Zero(t, clicked, "release outside the button is not a click")
	assert.Nil(t, s.root.CaptureWindow())
	assert.Zero(t, s.agg.Modifiers())

	s.agg.InjectMousePosition(20, 20)
	s.agg.InjectMouseButtonDown(window.LeftButton)
	s.agg.InjectMouseButtonUp(window.LeftButton)
	assert.Equal(t, 1, clicked)
}

func TestWheelTargetsWindowUnderPointer(t *testing.T) {
	s := newScene(t, DefaultConfig())
	var change float32
	s.pane.SubscribeEvent(window.EventMouseWheel, func(a event.Args) bool {
		change = a.(*window.MouseEventArgs).WheelChange
		return true
	})
	s.agg.InjectMousePosition(350, 350)
	assert.True(t, s.agg.InjectMouseWheel(-2))
	assert.Equal(t, float32(-2), change)
}

func TestKeyboardGoesToActiveWindow(t *testing.T) {
	s := newScene(t, DefaultConfig())
	assert.False(t, s.agg.InjectChar('x'), "nothing is active")

	s.edit.Activate()
	for _, r := range "hello" {
		require.True(t, s.agg.InjectChar(r))
	}
	assert.Equal(t, "hello", s.edit.Text())

	assert.True(t, s.agg.InjectKeyDown(window.KeyBackspace))
	s.agg.InjectKeyUp(window.KeyBackspace)
	assert.Equal(t, "hell", s.edit.Text())
}

func TestModifierKeysTrackBothSides(t *testing.T) {
	s := newScene(t, DefaultConfig())
	s.edit.Activate()

	s.agg.InjectKeyDown(window.KeyLeftShift)
	s.agg.InjectKeyDown(window.KeyRightShift)
	s.agg.InjectKeyDown(window.KeyLeftControl)
	s.agg.InjectKeyUp(window.KeyLeftShift)
	assert.Equal(t, window.ModShift|window.ModControl, s.agg.Modifiers(), "right shift still held")

	s.agg.InjectKeyUp(window.KeyRightShift)
	assert.Equal(t, window.ModControl, s.agg.Modifiers())

	s.agg.InjectMouseButtonDown(window.LeftButton)
	s.agg.InjectKeyUp(window.KeyLeftControl)
	assert.Equal(t, window.ModLeftMouse, s.agg.Modifiers(), "mouse buttons are kept")
}

func TestShortcutsBecomeSemanticActions(t *testing.T) {
	s := newScene(t, DefaultConfig())
	s.edit.SetText("hello")
	s.edit.Activate()
	var actions []string
	s.edit.SubscribeEvent(window.EventSemanticEvent, func(a event.Args) bool {
		actions = append(actions, a.(*window.SemanticEventArgs).Action)
		return false
	})

	s.agg.InjectKeyDown(window.KeyLeftControl)
	assert.Equal(t, window.ModControl, s.agg.Modifiers())
	assert.True(t, s.agg.InjectKeyDown(window.KeyA))
	assert.True(t, s.agg.InjectKeyDown(window.KeyC))
	assert.Equal(t, "hello", s.clip.Text())

	assert.True(t, s.agg.InjectKeyDown(window.KeyX))
	assert.Empty(t, s.edit.Text())
	assert.True(t, s.agg.InjectKeyDown(window.KeyV))
	assert.True(t, s.agg.InjectKeyDown(window.KeyV))
	assert.Equal(t, "hellohello", s.edit.Text())

	assert.False(t, s.agg.InjectKeyDown(window.KeyZ), "undo is not handled by the editbox")
	s.agg.InjectKeyUp(window.KeyLeftControl)
	assert.Zero(t, s.agg.Modifiers())

	assert.Equal(t, []string{
		window.ActionSelectAll, window.ActionCopy, window.ActionCut,
		window.ActionPaste, window.ActionPaste, window.ActionUndo,
	}, actions)

	assert.True(t, s.agg.InjectAction(ActionSelectAll))
	assert.False(t, s.agg.InjectAction(ActionClick))
}

func TestShortcutBinding(t *testing.T) {
	s := newScene(t, DefaultConfig())
	s.edit.SetText("abc")
	s.edit.Activate()

	assert.False(t, s.agg.BindShortcut(Shortcut{Key: window.KeyY}, ActionClick))
	require.True(t, s.agg.BindShortcut(Shortcut{Key: window.KeyY, Modifiers: window.ModControl}, ActionSelectAll))
	s.agg.UnbindShortcut(Shortcut{Key: window.KeyA, Modifiers: window.ModControl})

	s.agg.InjectKeyDown(window.KeyRightControl)
	assert.False(t, s.agg.InjectKeyDown(window.KeyA))
	assert.True(t, s.agg.InjectKeyDown(window.KeyY))
	eb, ok := window.As[*window.EditboxBehavior](s.edit)
	require.True(t, ok)
	assert.Equal(t, "abc", eb.SelectedText())
}

func TestNoRoot(t *testing.T) {
	a := New(func() *window.Window { return nil }, DefaultConfig())
	assert.False(t, a.InjectMousePosition(1, 1))
	assert.False(t, a.InjectMouseButtonDown(window.LeftButton))
	assert.False(t, a.InjectMouseButtonUp(window.LeftButton))
	assert.False(t, a.InjectKeyDown(window.KeyA))
	assert.False(t, a.InjectChar('a'))
	assert.False(t, a.InjectMouseWheel(1))
	assert.True(t, a.InjectTimePulse(time.Second))
	assert.False(t, a.InjectTimePulse(0))
	assert.Equal(t, time.Second, a.Elapsed())
	assert.Equal(t, graphics.Vec2{X: 1, Y: 1}, a.Position())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "DoubleClick", ActionDoubleClick.String())
	assert.Equal(t, "Undo", ActionUndo.String())
	assert.Equal(t, "Unknown", Action(99).String())
}
