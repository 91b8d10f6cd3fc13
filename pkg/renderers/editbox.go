package renderers

import (
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/property"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/window"
)

const (
	editboxOrigin = "Editbox"

	// StateReadOnly is drawn for read-only editboxes when the look has it.
	StateReadOnly = "ReadOnly"
)

// Editbox draws single line text with its selection and, while the window
// is active and editable, the caret.
type Editbox struct {
	Base
	caretImage     string
	selectionBrush string
	textColour     graphics.Colour
	selectedColour graphics.Colour
}

// NewEditbox creates the renderer registered as "Editbox".
func NewEditbox() window.WindowRenderer {
	e := &Editbox{
		Base:           newBase(NameEditbox),
		textColour:     graphics.ColourWhite,
		selectedColour: graphics.ColourWhite,
	}
	e.addProperties(
		property.New("CaretImage", "Image drawn at the caret.", "", property.String,
			func(w *window.Window, s string) { e.caretImage = s; w.Invalidate(false) },
			func(*window.Window) string { return e.caretImage }).WithOrigin(editboxOrigin),
		property.New("SelectionBrush", "Image drawn behind selected text.", "", property.String,
			func(w *window.Window, s string) { e.selectionBrush = s; w.Invalidate(false) },
			func(*window.Window) string { return e.selectionBrush }).WithOrigin(editboxOrigin),
		property.New("NormalTextColour", "Colour of unselected text.", graphics.ColourWhite, property.Colour,
			func(w *window.Window, c graphics.Colour) { e.textColour = c; w.Invalidate(false) },
			func(*window.Window) graphics.Colour { return e.textColour }).WithOrigin(editboxOrigin),
		property.New("SelectedTextColour", "Colour of selected text.", graphics.ColourWhite, property.Colour,
			func(w *window.Window, c graphics.Colour) { e.selectedColour = c; w.Invalidate(false) },
			func(*window.Window) graphics.Colour { return e.selectedColour }).WithOrigin(editboxOrigin),
	)
	return e
}

// UnclippedInnerRect is the text area; caret placement by mouse uses it.
func (e *Editbox) UnclippedInnerRect() (graphics.Rect, bool) {
	if r, ok := e.namedArea(AreaText); ok {
		return r, true
	}
	return e.namedArea(AreaClient)
}

func (e *Editbox) CreateRenderGeometry(buf render.GeometryBuffer) error {
	eb, ok := window.As[*window.EditboxBehavior](e.w)
	state := e.enabledPrefix()
	if ok && eb.ReadOnly() && !e.w.IsEffectiveDisabled() {
		if look := e.Look(); look != nil && look.IsStateDefined(StateReadOnly) {
			state = StateReadOnly
		}
	}
	if err := e.renderResolvedState(buf, state, ""); err != nil {
		return err
	}
	f := e.w.Font()
	if !ok || f == nil {
		return nil
	}

	area := e.innerLocal()
	text := []rune(e.w.Text())
	start, end := eb.Selection()
	lineHeight := f.LineSpacing()
	y := area.Top + (area.Height()-lineHeight)/2
	x := func(i int) float32 { return area.Left + f.TextExtent(string(text[:i])) }

	if end > start {
		sel := graphics.Rect{Left: x(start), Top: y, Right: x(end), Bottom: y + lineHeight}
		if err := e.brush(buf, e.selectionBrush, sel, &area, graphics.UniformColours(graphics.ColourWhite)); err != nil {
			return err
		}
	}
	segments := []struct {
		from, to int
		colour   graphics.Colour
	}{
		{0, start, e.textColour},
		{start, end, e.selectedColour},
		{end, len(text), e.textColour},
	}
	for _, s := range segments {
		if s.to <= s.from {
			continue
		}
		pos := graphics.Vec2{X: x(s.from), Y: y}
		f.DrawText(buf, string(text[s.from:s.to]), pos, &area, e.colours(graphics.UniformColours(s.colour)))
	}

	if e.w.IsActive() && !eb.ReadOnly() && e.caretImage != "" {
		cx := x(min(eb.CaretIndex(), len(text)))
		width := float32(1)
		if images := e.w.Manager().Images(); images != nil {
			if img, err := images.Get(e.caretImage); err == nil {
				width = max(img.Size().Width, 1)
			}
		}
		caret := graphics.RectFromLTWH(cx, y, width, lineHeight)
		if err := e.brush(buf, e.caretImage, caret, &area, graphics.UniformColours(graphics.ColourWhite)); err != nil {
			return err
		}
	}
	return nil
}

var _ window.WindowRenderer = (*Editbox)(nil)
