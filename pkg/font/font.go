// Package font provides text metrics for skins and widgets. Glyph
// rasterization belongs to the renderer backend; a Font only measures text
// and emits one placeholder quad per glyph.
package font

import (
	"fmt"
	"unicode/utf8"

	"github.com/chewxy/math32"
	"github.com/mattn/go-runewidth"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/render"
)

// Kind identifies the font source.
type Kind int

const (
	// KindFreeType fonts are scalable TrueType/OpenType outlines.
	KindFreeType Kind = iota
	// KindPixmap fonts are fixed-cell bitmap fonts.
	KindPixmap
)

// String returns the name used in font XML.
func (k Kind) String() string {
	switch k {
	case KindFreeType:
		return "FreeType"
	case KindPixmap:
		return "Pixmap"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a font XML type attribute.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "FreeType", "":
		return KindFreeType, nil
	case "Pixmap":
		return KindPixmap, nil
	}
	return 0, guierrors.InvalidRequestf("font.ParseKind", s, "unknown font type")
}

// Font event names.
const (
	// EventRenderSizeChanged fires when the font's metrics change.
	EventRenderSizeChanged = "RenderSizeChanged"
	// EventDefaultChanged fires on a Manager when another font becomes
	// the default. Font is the new default, or nil.
	EventDefaultChanged = "DefaultFontChanged"
)

// EventNamespace is the global event namespace for fonts.
const EventNamespace = "Font"

// EventArgs accompanies font events.
type EventArgs struct {
	event.EventArgs
	Font *Font
}

// pixmapCellHeight is the native cell height of the fixed-cell face.
const pixmapCellHeight = 13

// Font measures text at a point size.
type Font struct {
	name   string
	kind   Kind
	size   float32
	otf    *opentype.Font
	face   xfont.Face
	events *event.Set
}

// NewFreeType parses TrueType/OpenType data.
func NewFreeType(name string, data []byte, size float32) (*Font, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, guierrors.InvalidRequest("font.NewFreeType", name, err)
	}
	f := &Font{name: name, kind: KindFreeType, otf: otf, events: newEventSet()}
	if err := f.SetPointSize(size); err != nil {
		return nil, err
	}
	return f, nil
}

// NewPixmap returns a fixed-cell font scaled to size. East Asian wide runes
// occupy two cells.
func NewPixmap(name string, size float32) (*Font, error) {
	f := &Font{name: name, kind: KindPixmap, face: basicfont.Face7x13, events: newEventSet()}
	if err := f.SetPointSize(size); err != nil {
		return nil, err
	}
	return f, nil
}

func newEventSet() *event.Set {
	s := event.NewSet()
	s.AddEvents(EventRenderSizeChanged)
	return s
}

func (f *Font) Name() string       { return f.name }
func (f *Font) Kind() Kind         { return f.kind }
func (f *Font) PointSize() float32 { return f.size }
func (f *Font) Events() *event.Set { return f.events }

// SetPointSize rebuilds the face at size and fires RenderSizeChanged.
func (f *Font) SetPointSize(size float32) error {
	if size <= 0 {
		return guierrors.InvalidRequestf("font.SetPointSize", f.name, "size must be positive, got %g", size)
	}
	if size == f.size {
		return nil
	}
	if f.kind == KindFreeType {
		face, err := opentype.NewFace(f.otf, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: xfont.HintingNone,
		})
		if err != nil {
			return guierrors.InvalidRequest("font.SetPointSize", f.name, err)
		}
		if f.face != nil {
			_ = f.face.Close()
		}
		f.face = face
	}
	changed := f.size != 0
	f.size = size
	if changed {
		f.events.FireEvent(EventRenderSizeChanged, &EventArgs{Font: f}, EventNamespace)
	}
	return nil
}

func (f *Font) scale() float32 {
	if f.kind == KindPixmap {
		return f.size / pixmapCellHeight
	}
	return 1
}

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// Baseline is the distance from the top of a line to the baseline.
func (f *Font) Baseline() float32 {
	return toFloat(f.face.Metrics().Ascent) * f.scale()
}

// Height is ascent plus descent.
func (f *Font) Height() float32 {
	m := f.face.Metrics()
	return toFloat(m.Ascent+m.Descent) * f.scale()
}

// LineSpacing is the recommended distance between baselines.
func (f *Font) LineSpacing() float32 {
	return math32.Ceil(toFloat(f.face.Metrics().Height) * f.scale())
}

// advance returns the horizontal advance of r following prev (-1 for none).
func (f *Font) advance(prev, r rune) float32 {
	if f.kind == KindPixmap {
		cells := runewidth.RuneWidth(r)
		if cells == 0 {
			return 0
		}
		adv, _ := f.face.GlyphAdvance('M')
		return toFloat(adv) * f.scale() * float32(cells)
	}
	adv, ok := f.face.GlyphAdvance(r)
	if !ok {
		adv, _ = f.face.GlyphAdvance(utf8.RuneError)
	}
	w := toFloat(adv)
	if prev >= 0 {
		w += toFloat(f.face.Kern(prev, r))
	}
	return w
}

// TextExtent returns the width of the widest line of text.
func (f *Font) TextExtent(text string) float32 {
	var widest, cur float32
	prev := rune(-1)
	for _, r := range text {
		if r == '\n' {
			widest = math32.Max(widest, cur)
			cur, prev = 0, -1
			continue
		}
		cur += f.advance(prev, r)
		prev = r
	}
	return math32.Max(widest, cur)
}

// TextSize returns the extent and total height of text.
func (f *Font) TextSize(text string) graphics.Size {
	lines := 1
	for _, r := range text {
		if r == '\n' {
			lines++
		}
	}
	h := f.Height() + float32(lines-1)*f.LineSpacing()
	return graphics.Size{Width: f.TextExtent(text), Height: h}
}

// CharAtPixel returns the index (in runes) of the character under pixel
// offset x within a single line, or the rune count when x is past the end.
func (f *Font) CharAtPixel(text string, x float32) int {
	var cur float32
	prev := rune(-1)
	i := 0
	for _, r := range text {
		w := f.advance(prev, r)
		if x < cur+w {
			return i
		}
		cur += w
		prev = r
		i++
	}
	return i
}

// DrawText appends one quad per visible glyph of text starting at pos (top
// left of the first line). It returns the number of vertices appended.
func (f *Font) DrawText(buf render.GeometryBuffer, text string, pos graphics.Vec2, clip *graphics.Rect, colours graphics.ColourRect) int {
	buf.SetActiveTexture(nil)
	n := 0
	x, y := pos.X, pos.Y
	h := f.Height()
	prev := rune(-1)
	unit := graphics.Rect{Right: 1, Bottom: 1}
	for _, r := range text {
		if r == '\n' {
			x = pos.X
			y += f.LineSpacing()
			prev = -1
			continue
		}
		w := f.advance(prev, r)
		prev = r
		if r != ' ' && r != '\t' && w > 0 {
			n += render.AppendQuad(buf, graphics.RectFromLTWH(x, y, w, h), unit, clip, colours)
		}
		x += w
	}
	return n
}

// Close releases the face.
func (f *Font) Close() error {
	f.events.RemoveAllEvents()
	if f.kind == KindFreeType && f.face != nil {
		return f.face.Close()
	}
	return nil
}
