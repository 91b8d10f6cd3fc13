package renderers

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/facet/pkg/clipboard"
	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/font"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/imageset"
	"github.com/go-drift/facet/pkg/model"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/render/null"
	"github.com/go-drift/facet/pkg/resource"
	"github.com/go-drift/facet/pkg/skin"
	"github.com/go-drift/facet/pkg/window"
)

const (
	blue  = graphics.Colour(0xFF0000FF)
	green = graphics.Colour(0xFF00FF00)
	grey  = graphics.Colour(0xFF808080)
	red   = graphics.Colour(0xFFFF0000)
)

const testLooks = `<?xml version="1.0" ?>
<Falagard version="7.0.0">
	<WidgetLook name="Test/Button">
		<ImagerySection name="normal">
			<Colours topLeft="FF0000FF" topRight="FF0000FF" bottomLeft="FF0000FF" bottomRight="FF0000FF" />
			<ImageryComponent><Image name="Test/Full" /><VertFormat type="Stretched" /><HorzFormat type="Stretched" /></ImageryComponent>
		</ImagerySection>
		<ImagerySection name="pushed">
			<Colours topLeft="FF00FF00" topRight="FF00FF00" bottomLeft="FF00FF00" bottomRight="FF00FF00" />
			<ImageryComponent><Image name="Test/Full" /><VertFormat type="Stretched" /><HorzFormat type="Stretched" /></ImageryComponent>
		</ImagerySection>
		<ImagerySection name="disabled">
			<Colours topLeft="FF808080" topRight="FF808080" bottomLeft="FF808080" bottomRight="FF808080" />
			<ImageryComponent><Image name="Test/Full" /><VertFormat type="Stretched" /><HorzFormat type="Stretched" /></ImageryComponent>
		</ImagerySection>
		<StateImagery name="EnabledNormal"><Layer><Section section="normal" /></Layer></StateImagery>
		<StateImagery name="EnabledPushed"><Layer><Section section="pushed" /></Layer></StateImagery>
		<StateImagery name="Disabled"><Layer><Section section="disabled" /></Layer></StateImagery>
	</WidgetLook>
	<WidgetLook name="Test/Static">
		<NamedArea name="ClientArea"><Area value="{{0,4},{0,4},{1,-4},{1,-4}}" /></NamedArea>
		<ImagerySection name="back">
			<ImageryComponent><Image name="Test/Full" /><VertFormat type="Stretched" /><HorzFormat type="Stretched" /></ImageryComponent>
		</ImagerySection>
		<StateImagery name="Enabled"><Layer><Section look="Test/Button" section="normal" /></Layer></StateImagery>
		<StateImagery name="EnabledFrame"><Layer><Section section="back" /></Layer></StateImagery>
	</WidgetLook>
	<WidgetLook name="Test/List">
		<NamedArea name="ItemRenderArea"><Area value="{{0,0},{0,2},{1,0},{1,-2}}" /></NamedArea>
		<StateImagery name="Enabled"><Layer><Section look="Test/Button" section="normal" /></Layer></StateImagery>
	</WidgetLook>
	<WidgetLook name="Test/Frame">
		<NamedArea name="ClientArea"><Area value="{{0,4},{0,4},{1,-4},{1,-4}}" /></NamedArea>
		<NamedArea name="ClientWithTitle"><Area value="{{0,4},{0,24},{1,-4},{1,-4}}" /></NamedArea>
		<Child type="DefaultWindow" nameSuffix="__auto_titlebar__">
			<Area value="{{0,0},{0,0},{1,0},{0,20}}" />
		</Child>
		<StateImagery name="Active"><Layer><Section look="Test/Button" section="pushed" /></Layer></StateImagery>
		<StateImagery name="Inactive"><Layer><Section look="Test/Button" section="normal" /></Layer></StateImagery>
		<StateImagery name="Disabled"><Layer><Section look="Test/Button" section="disabled" /></Layer></StateImagery>
	</WidgetLook>
</Falagard>`

type fixture struct {
	m *window.Manager
	r *null.Renderer
	f *font.Font
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := null.New(graphics.Size{Width: 800, Height: 600})
	tex, err := r.CreateTexture("Test")
	require.NoError(t, err)
	require.NoError(t, tex.LoadFromMemory(make([]byte, 64*64*4), graphics.Size{Width: 64, Height: 64}, render.PixelFormatRGBA))

	images := imageset.NewManager(r, resource.NewMemoryProvider())
	for name, area := range map[string]graphics.Rect{
		"Test/Full":  graphics.RectFromLTWH(0, 0, 64, 64),
		"Test/Brush": graphics.RectFromLTWH(0, 0, 4, 4),
		"Test/Caret": graphics.RectFromLTWH(0, 0, 2, 16),
	} {
		_, err := images.Define(name, tex, area, graphics.Vec2{})
		require.NoError(t, err)
	}

	fonts := font.NewManager(resource.NewMemoryProvider())
	f, err := fonts.CreatePixmap("Fixed", 13)
	require.NoError(t, err)
	require.NoError(t, fonts.SetDefault("Fixed"))

	looks := skin.NewManager(resource.NewMemoryProvider())
	_, err = looks.ParseLookNFeel(strings.NewReader(testLooks))
	require.NoError(t, err)

	m := window.NewManager(window.Services{
		Renderer:  r,
		Renderers: NewRegistry(),
		Looks:     looks,
		Images:    images,
		Fonts:     fonts,
		Clipboard: clipboard.New(),
	})
	require.NoError(t, window.RegisterDefaultTypes(m))
	for _, mp := range []struct{ typ, target, renderer, look string }{
		{"Test/Button", window.TypeButton, NameButton, "Test/Button"},
		{"Test/Static", window.TypeStatic, NameStatic, "Test/Static"},
		{"Test/Label", window.TypeStatic, NameStaticText, "Test/Static"},
		{"Test/List", window.TypeItemView, NameItemView, "Test/List"},
		{"Test/Frame", window.TypeFrame, NameFrame, "Test/Frame"},
		{"Test/Edit", window.TypeEditbox, NameEditbox, "Test/Static"},
	} {
		require.NoError(t, m.RegisterFalagardMapping(mp.typ, mp.target, mp.renderer, mp.look))
	}
	return &fixture{m: m, r: r, f: f}
}

func (fx *fixture) create(t *testing.T, typ string, w, h float32) *window.Window {
	t.Helper()
	win, err := fx.m.CreateWindow(typ, "")
	require.NoError(t, err)
	win.SetArea(graphics.URect{
		Max: graphics.UVector2{X: graphics.Absolute(w), Y: graphics.Absolute(h)},
	})
	return win
}

// draw renders w and splits its vertices into image and text geometry.
func (fx *fixture) draw(t *testing.T, w *window.Window) (images, text []render.Vertex) {
	t.Helper()
	w.Render(fx.r.DefaultRenderTarget())
	buf, ok := w.Geometry().(*null.GeometryBuffer)
	require.True(t, ok)
	for _, b := range buf.Batches() {
		if b.Texture == nil {
			text = append(text, b.Vertices...)
		} else {
			images = append(images, b.Vertices...)
		}
	}
	return images, text
}

func coloursOf(vs []render.Vertex) []graphics.Colour {
	seen := map[graphics.Colour]bool{}
	var out []graphics.Colour
	for _, v := range vs {
		if !seen[v.Colour] {
			seen[v.Colour] = true
			out = append(out, v.Colour)
		}
	}
	return out
}

func TestButtonStateFallback(t *testing.T) {
	fx := newFixture(t)
	w := fx.create(t, "Test/Button", 100, 30)
	mouse := func(name string) {
		w.Inject(name, &window.MouseEventArgs{Position: graphics.Vec2{X: 5, Y: 5}, Button: window.LeftButton})
	}

	tests := []struct {
		name   string
		action func()
		want   graphics.Colour
	}{
		{"normal", func() {}, blue},
		{"hover falls back to normal", func() { mouse(window.EventMouseEnters) }, blue},
		{"pushed", func() { mouse(window.EventMouseButtonDown) }, green},
		{"released", func() { mouse(window.EventMouseButtonUp) }, blue},
		{"disabled", func() { w.Disable() }, grey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.action()
			images, _ := fx.draw(t, w)
			require.Len(t, images, 6)
			assert.Equal(t, []graphics.Colour{tt.want}, coloursOf(images))
		})
	}
}

func TestStaticFrameToggle(t *testing.T) {
	fx := newFixture(t)
	w := fx.create(t, "Test/Static", 100, 50)

	images, _ := fx.draw(t, w)
	assert.Len(t, images, 12)
	assert.Equal(t, graphics.Rect{Left: 4, Top: 4, Right: 96, Bottom: 46}, w.UnclippedInnerRect())

	require.NoError(t, w.SetProperty("FrameEnabled", "false"))
	images, _ = fx.draw(t, w)
	assert.Len(t, images, 6)
	assert.Equal(t, graphics.RectFromLTWH(0, 0, 100, 50), w.UnclippedInnerRect())

	require.NoError(t, w.SetWindowRenderer(""))
	_, err := w.Property("FrameEnabled")
	assert.True(t, errors.Is(err, guierrors.ErrUnknownObject), "renderer properties leave with the renderer")
}

func TestStaticTextPlacement(t *testing.T) {
	fx := newFixture(t)
	w := fx.create(t, "Test/Label", 100, 50)
	w.SetText("Hi")

	_, text := fx.draw(t, w)
	require.Len(t, text, 12)
	assert.Equal(t, []graphics.Colour{graphics.ColourWhite}, coloursOf(text))

	require.NoError(t, w.SetProperty("HorzFormatting", "RightAligned"))
	require.NoError(t, w.SetProperty("TextColours", "tl:FFFF0000 tr:FFFF0000 bl:FFFF0000 br:FFFF0000"))
	_, text = fx.draw(t, w)
	var right float32
	for _, v := range text {
		right = max(right, v.Position.X)
	}
	assert.InDelta(t, 96, right, 0.01)
	assert.Equal(t, []graphics.Colour{red}, coloursOf(text))

	assert.True(t, errors.Is(w.SetProperty("HorzFormatting", "Justified"), guierrors.ErrInvalidRequest))

	size := fx.f.TextSize("Hi")
	assert.Equal(t, graphics.Size{Width: size.Width + 8, Height: size.Height + 8}, w.WindowRenderer().ItemPixelSize())
}

func TestItemViewRows(t *testing.T) {
	fx := newFixture(t)
	w := fx.create(t, "Test/List", 100, 100)
	iv, ok := window.As[*window.ItemViewBehavior](w)
	require.True(t, ok)

	lm := model.NewListModel(func(s string) string { return s })
	for _, s := range []string{"a", "bb", "c"} {
		require.NoError(t, lm.Append(s))
	}
	iv.SetModel(lm)
	require.NoError(t, w.SetProperty("SelectionBrush", "Test/Brush"))
	require.NoError(t, w.SetProperty("SelectedTextColour", "FFFF0000"))

	rowHeight := fx.f.LineSpacing()
	require.Equal(t, rowHeight, iv.RowHeight())
	w.Inject(window.EventMouseButtonDown, &window.MouseEventArgs{
		Position: graphics.Vec2{X: 5, Y: 2 + 1.5*rowHeight},
		Button:   window.LeftButton,
	})
	require.Equal(t, []int{1}, iv.Selected())

	images, text := fx.draw(t, w)
	assert.Len(t, images, 12, "state imagery plus one selection brush")
	assert.Len(t, text, 24)
	selected := 0
	for _, v := range text {
		if v.Colour == red {
			selected++
		}
	}
	assert.Equal(t, 12, selected)

	want := graphics.Size{Width: fx.f.TextExtent("bb"), Height: 3*rowHeight + 4}
	assert.Equal(t, want, w.WindowRenderer().ItemPixelSize())
}

func TestFrameStatesAndClientArea(t *testing.T) {
	fx := newFixture(t)
	w := fx.create(t, "Test/Frame", 200, 100)

	images, _ := fx.draw(t, w)
	assert.Equal(t, []graphics.Colour{blue}, coloursOf(images))
	assert.Equal(t, graphics.Rect{Left: 4, Top: 24, Right: 196, Bottom: 96}, w.UnclippedInnerRect())

	w.Activate()
	images, _ = fx.draw(t, w)
	assert.Equal(t, []graphics.Colour{green}, coloursOf(images))

	title, err := w.Child(window.TitlebarName)
	require.NoError(t, err)
	title.Hide()
	w.NotifyClientAreaChanged()
	assert.Equal(t, graphics.Rect{Left: 4, Top: 4, Right: 196, Bottom: 96}, w.UnclippedInnerRect())

	w.Disable()
	images, _ = fx.draw(t, w)
	assert.Equal(t, []graphics.Colour{grey}, coloursOf(images))
}

func TestEditboxSelectionAndCaret(t *testing.T) {
	fx := newFixture(t)
	w := fx.create(t, "Test/Edit", 200, 30)
	eb, ok := window.As[*window.EditboxBehavior](w)
	require.True(t, ok)
	w.SetText("abc")
	eb.SetSelection(1, 2)
	require.NoError(t, w.SetProperty("SelectionBrush", "Test/Brush"))
	require.NoError(t, w.SetProperty("CaretImage", "Test/Caret"))
	require.NoError(t, w.SetProperty("SelectedTextColour", "FFFF0000"))

	images, text := fx.draw(t, w)
	assert.Len(t, images, 12, "inactive editbox has no caret")
	assert.Len(t, text, 18)

	w.Activate()
	images, text = fx.draw(t, w)
	assert.Len(t, images, 18)
	selected := 0
	for _, v := range text {
		if v.Colour == red {
			selected++
		}
	}
	assert.Equal(t, 6, selected)

	require.NoError(t, w.SetProperty("ReadOnly", "true"))
	images, _ = fx.draw(t, w)
	assert.Len(t, images, 12, "read-only editbox hides the caret")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"Button", "Default", "Editbox", "Frame", "ItemView", "Static", "StaticText"}, r.Names())

	err := r.Register(NameButton, NewButton)
	assert.True(t, errors.Is(err, guierrors.ErrAlreadyExists))

	_, err = r.Create("Missing")
	assert.True(t, errors.Is(err, guierrors.ErrUnknownObject))

	require.NoError(t, r.Register("Custom", NewDefault))
	wr, err := r.Create("Custom")
	require.NoError(t, err)
	assert.Equal(t, NameDefault, wr.Name())
	assert.True(t, r.IsRegistered("Custom"))
}

func TestUnknownRendererOnWindow(t *testing.T) {
	fx := newFixture(t)
	w := fx.create(t, window.TypeDefault, 10, 10)
	err := w.SetWindowRenderer("Nope")
	assert.True(t, errors.Is(err, guierrors.ErrUnknownObject))
	assert.Empty(t, w.WindowRendererName())
}
