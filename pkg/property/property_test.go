package property

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/xmlio"
)

type align int

const (
	alignLeft align = iota
	alignCentre
	alignRight
)

var alignCodec = Enum(
	EnumValue[align]{alignLeft, "LeftAligned"},
	EnumValue[align]{alignCentre, "CentreAligned"},
	EnumValue[align]{alignRight, "RightAligned"},
)

type widget struct {
	text      string
	alpha     float32
	visible   bool
	area      graphics.URect
	colour    graphics.Colour
	align     align
	count     int
	overrides map[string]string
}

func (w *widget) PropertyDefault(name string) (string, bool) {
	v, ok := w.overrides[name]
	return v, ok
}

func newWidgetSet(w *widget) *Set {
	s := NewSet(w)
	must := func(p Property) {
		if err := s.Add(p); err != nil {
			panic(err)
		}
	}
	must(New("Text", "Window text.", "", String,
		func(w *widget, v string) { w.text = v }, func(w *widget) string { return w.text }))
	must(New("Alpha", "Alpha.", float32(1), Float,
		func(w *widget, v float32) { w.alpha = v }, func(w *widget) float32 { return w.alpha }))
	must(New("Visible", "Visibility.", true, Bool,
		func(w *widget, v bool) { w.visible = v }, func(w *widget) bool { return w.visible }))
	must(New("Area", "Unified area.", graphics.URect{}, URect,
		func(w *widget, v graphics.URect) { w.area = v }, func(w *widget) graphics.URect { return w.area }))
	must(New("Colour", "Tint.", graphics.ColourWhite, Colour,
		func(w *widget, v graphics.Colour) { w.colour = v }, func(w *widget) graphics.Colour { return w.colour }))
	must(New("Align", "Alignment.", alignLeft, alignCodec,
		func(w *widget, v align) { w.align = v }, func(w *widget) align { return w.align }))
	must(New[*widget, int]("Count", "Read only.", 0, Int, nil, func(w *widget) int { return w.count }))
	return s
}

func defaultWidget() *widget {
	return &widget{alpha: 1, visible: true, colour: graphics.ColourWhite}
}

func TestTypedGetSet(t *testing.T) {
	w := defaultWidget()
	s := newWidgetSet(w)

	require.NoError(t, s.SetValue("Alpha", "0.25"))
	assert.Equal(t, float32(0.25), w.alpha)
	v, err := s.Get("Alpha")
	require.NoError(t, err)
	assert.Equal(t, "0.25", v)

	require.NoError(t, s.SetValue("Align", "RightAligned"))
	assert.Equal(t, alignRight, w.align)

	require.NoError(t, s.SetValue("Area", "{{0,10},{0,20},{1,-10},{0.5,0}}"))
	assert.Equal(t, graphics.UDim{Scale: 0.5}, w.area.Max.Y)
}

func TestSetRejectsMalformedValues(t *testing.T) {
	w := defaultWidget()
	s := newWidgetSet(w)
	tests := []struct{ name, value string }{
		{"Alpha", "opaque"},
		{"Visible", "maybe"},
		{"Area", "{{0,0}}"},
		{"Colour", "red"},
		{"Align", "Justified"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, _ := s.Get(tt.name)
			err := s.SetValue(tt.name, tt.value)
			assert.ErrorIs(t, err, guierrors.ErrInvalidRequest)
			after, _ := s.Get(tt.name)
			assert.Equal(t, before, after)
		})
	}
}

func TestReadOnlyProperty(t *testing.T) {
	w := defaultWidget()
	w.count = 3
	s := newWidgetSet(w)
	p, err := s.Lookup("Count")
	require.NoError(t, err)
	assert.True(t, p.IsReadable())
	assert.False(t, p.IsWritable())
	assert.False(t, p.WritesXML())
	assert.ErrorIs(t, s.SetValue("Count", "4"), guierrors.ErrInvalidRequest)
	v, _ := s.Get("Count")
	assert.Equal(t, "3", v)
}

func TestUnknownProperty(t *testing.T) {
	s := newWidgetSet(defaultWidget())
	_, err := s.Get("Nope")
	assert.ErrorIs(t, err, guierrors.ErrUnknownObject)
	assert.ErrorIs(t, s.SetValue("Nope", "1"), guierrors.ErrUnknownObject)
}

func TestAddDuplicate(t *testing.T) {
	s := newWidgetSet(defaultWidget())
	err := s.Add(New("Text", "", "", String, func(*widget, string) {}, func(*widget) string { return "" }))
	assert.ErrorIs(t, err, guierrors.ErrAlreadyExists)
}

func TestWrongReceiver(t *testing.T) {
	p := New("Text", "", "", String, func(w *widget, v string) { w.text = v }, func(w *widget) string { return w.text })
	_, err := p.Get(struct{}{})
	assert.ErrorIs(t, err, guierrors.ErrInvalidRequest)
}

// Set(r, Get(r)) must not change Get(r) for any property.
func TestSetOfGetIsIdempotent(t *testing.T) {
	w := &widget{
		text:    "héllo, \"world\"\nsecond line",
		alpha:   0.1,
		visible: false,
		area:    graphics.URect{Min: graphics.UVector2{X: graphics.UDim{Scale: 0.333333, Offset: -1.5}}},
		colour:  0x7F123456,
		align:   alignCentre,
	}
	s := newWidgetSet(w)
	for _, name := range s.Names() {
		p, _ := s.Lookup(name)
		if !p.IsWritable() {
			continue
		}
		before, err := p.Get(w)
		require.NoError(t, err)
		require.NoError(t, p.Set(w, before), name)
		after, err := p.Get(w)
		require.NoError(t, err)
		assert.Equal(t, before, after, name)
	}
}

func TestIsDefaultHonoursOverrides(t *testing.T) {
	w := defaultWidget()
	s := newWidgetSet(w)
	def, err := s.IsDefault("Alpha")
	require.NoError(t, err)
	assert.True(t, def)

	w.overrides = map[string]string{"Alpha": "0.5"}
	def, _ = s.IsDefault("Alpha")
	assert.False(t, def)
	w.alpha = 0.5
	def, _ = s.IsDefault("Alpha")
	assert.True(t, def)
	d, _ := s.DefaultOf("Alpha")
	assert.Equal(t, "0.5", d)
}

func TestWriteXMLOnlyNonDefault(t *testing.T) {
	w := defaultWidget()
	s := newWidgetSet(w)
	w.text = "line one\nline two"
	w.alpha = 0.5

	var sb strings.Builder
	ser := xmlio.NewSerializer(&sb, 0)
	n, err := s.WriteXML(ser)
	require.NoError(t, err)
	require.NoError(t, ser.Flush())
	assert.Equal(t, 2, n)
	out := sb.String()
	assert.Contains(t, out, `<Property name="Text">line one`+"\n"+`line two</Property>`)
	assert.Contains(t, out, `<Property name="Alpha" value="0.5" />`)
	assert.NotContains(t, out, "Visible")
	assert.NotContains(t, out, "Count")
}

func TestRemoveAndReplace(t *testing.T) {
	s := newWidgetSet(defaultWidget())
	n := s.Len()
	s.Remove("Text")
	assert.False(t, s.IsPresent("Text"))
	assert.Equal(t, n-1, s.Len())
	s.Replace(New("Alpha", "new help", float32(0), Float, func(*widget, float32) {}, func(*widget) float32 { return 0 }))
	p, _ := s.Lookup("Alpha")
	assert.Equal(t, "new help", p.Help())
	assert.Equal(t, n-1, s.Len())
}
