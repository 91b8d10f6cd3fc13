package renderers

import (
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/property"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/window"
)

const itemViewOrigin = "ItemView"

// ItemView draws the rows of an item view window inside the look's
// ItemRenderArea. Selected rows get the selection brush behind them.
type ItemView struct {
	Base
	selectionBrush string
	textColour     graphics.Colour
	selectedColour graphics.Colour
}

// NewItemView creates the renderer registered as "ItemView".
func NewItemView() window.WindowRenderer {
	v := &ItemView{
		Base:           newBase(NameItemView),
		textColour:     graphics.ColourWhite,
		selectedColour: graphics.ColourWhite,
	}
	v.addProperties(
		property.New("SelectionBrush", "Image drawn behind selected rows.", "", property.String,
			func(w *window.Window, s string) { v.selectionBrush = s; w.Invalidate(false) },
			func(*window.Window) string { return v.selectionBrush }).WithOrigin(itemViewOrigin),
		property.New("TextColour", "Colour of unselected row text.", graphics.ColourWhite, property.Colour,
			func(w *window.Window, c graphics.Colour) { v.textColour = c; w.Invalidate(false) },
			func(*window.Window) graphics.Colour { return v.textColour }).WithOrigin(itemViewOrigin),
		property.New("SelectedTextColour", "Colour of selected row text.", graphics.ColourWhite, property.Colour,
			func(w *window.Window, c graphics.Colour) { v.selectedColour = c; w.Invalidate(false) },
			func(*window.Window) graphics.Colour { return v.selectedColour }).WithOrigin(itemViewOrigin),
	)
	return v
}

// UnclippedInnerRect is the row area, so that hit testing by row and
// drawing agree.
func (v *ItemView) UnclippedInnerRect() (graphics.Rect, bool) {
	if r, ok := v.namedArea(AreaItems); ok {
		return r, true
	}
	return v.namedArea(AreaClient)
}

func (v *ItemView) CreateRenderGeometry(buf render.GeometryBuffer) error {
	if err := v.renderResolvedState(buf, v.enabledPrefix(), ""); err != nil {
		return err
	}
	iv, ok := window.As[*window.ItemViewBehavior](v.w)
	if !ok {
		return nil
	}
	f := v.w.Font()
	area := v.innerLocal()
	rowHeight := iv.RowHeight()
	for i := 0; i < iv.ItemCount(); i++ {
		row := graphics.RectFromLTWH(area.Left, area.Top+float32(i)*rowHeight, area.Width(), rowHeight)
		if row.Top >= area.Bottom {
			break
		}
		colour := v.textColour
		if iv.IsSelected(i) {
			colour = v.selectedColour
			if err := v.brush(buf, v.selectionBrush, row, &area, graphics.UniformColours(graphics.ColourWhite)); err != nil {
				return err
			}
		}
		if f != nil {
			f.DrawText(buf, iv.ItemText(i), row.Position(), &area, v.colours(graphics.UniformColours(colour)))
		}
	}
	return nil
}

// ItemPixelSize fits every row: the widest row text by the total row
// height, plus the space outside the row area.
func (v *ItemView) ItemPixelSize() graphics.Size {
	iv, ok := window.As[*window.ItemViewBehavior](v.w)
	if !ok {
		return v.w.PixelSize()
	}
	var widest float32
	if f := v.w.Font(); f != nil {
		for i := 0; i < iv.ItemCount(); i++ {
			widest = max(widest, f.TextExtent(iv.ItemText(i)))
		}
	}
	pad := padding(v.w.PixelSize(), v.innerLocal())
	return graphics.Size{
		Width:  widest + pad.Width,
		Height: float32(iv.ItemCount())*iv.RowHeight() + pad.Height,
	}
}

var _ window.WindowRenderer = (*ItemView)(nil)
