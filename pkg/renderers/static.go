package renderers

import (
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/property"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/skin"
	"github.com/go-drift/facet/pkg/window"
)

const staticOrigin = "Static"

// Static draws a state plus optional background and frame states
// ("EnabledBackground", "EnabledFrame" and their Disabled forms).
type Static struct {
	Base
	frame      bool
	background bool
}

// NewStatic creates the renderer registered as "Static".
func NewStatic() window.WindowRenderer {
	s := &Static{Base: newBase(NameStatic)}
	s.init()
	return s
}

func (s *Static) init() {
	s.frame, s.background = true, true
	s.addProperties(
		property.New("FrameEnabled", "Whether the frame imagery is drawn.", true, property.Bool,
			func(w *window.Window, v bool) { s.frame = v; w.NotifyClientAreaChanged() },
			func(*window.Window) bool { return s.frame }).WithOrigin(staticOrigin),
		property.New("BackgroundEnabled", "Whether the background imagery is drawn.", true, property.Bool,
			func(w *window.Window, v bool) { s.background = v; w.Invalidate(false) },
			func(*window.Window) bool { return s.background }).WithOrigin(staticOrigin),
	)
}

func (s *Static) CreateRenderGeometry(buf render.GeometryBuffer) error {
	prefix := s.enabledPrefix()
	if err := s.renderOptionalState(buf, prefix); err != nil {
		return err
	}
	if s.background {
		if err := s.renderOptionalState(buf, prefix+"Background"); err != nil {
			return err
		}
	}
	if s.frame {
		return s.renderOptionalState(buf, prefix+"Frame")
	}
	return nil
}

// UnclippedInnerRect excludes the frame only while it is drawn.
func (s *Static) UnclippedInnerRect() (graphics.Rect, bool) {
	if !s.frame {
		return graphics.Rect{}, false
	}
	return s.namedArea(AreaClient)
}

var horzFormats = property.Enum(
	property.EnumValue[skin.HorzFormat]{Value: skin.HorzLeftAligned, Name: "LeftAligned"},
	property.EnumValue[skin.HorzFormat]{Value: skin.HorzCentreAligned, Name: "CentreAligned"},
	property.EnumValue[skin.HorzFormat]{Value: skin.HorzRightAligned, Name: "RightAligned"},
)

var vertFormats = property.Enum(
	property.EnumValue[skin.VertFormat]{Value: skin.VertCentreAligned, Name: "CentreAligned"},
	property.EnumValue[skin.VertFormat]{Value: skin.VertTopAligned, Name: "TopAligned"},
	property.EnumValue[skin.VertFormat]{Value: skin.VertBottomAligned, Name: "BottomAligned"},
)

// StaticText is a Static that also draws the window text in the look's
// TextArea, or the inner rect when the look has none.
type StaticText struct {
	Static
	horz        skin.HorzFormat
	vert        skin.VertFormat
	textColours graphics.ColourRect
}

// NewStaticText creates the renderer registered as "StaticText".
func NewStaticText() window.WindowRenderer {
	s := &StaticText{
		Static:      Static{Base: newBase(NameStaticText)},
		vert:        skin.VertCentreAligned,
		textColours: graphics.UniformColours(graphics.ColourWhite),
	}
	s.init()
	s.addProperties(
		property.New("HorzFormatting", "Horizontal text placement.", skin.HorzLeftAligned, horzFormats,
			func(w *window.Window, v skin.HorzFormat) { s.horz = v; w.Invalidate(false) },
			func(*window.Window) skin.HorzFormat { return s.horz }).WithOrigin(staticOrigin),
		property.New("VertFormatting", "Vertical text placement.", skin.VertCentreAligned, vertFormats,
			func(w *window.Window, v skin.VertFormat) { s.vert = v; w.Invalidate(false) },
			func(*window.Window) skin.VertFormat { return s.vert }).WithOrigin(staticOrigin),
		property.New("TextColours", "Text colours.", graphics.UniformColours(graphics.ColourWhite), property.ColourRect,
			func(w *window.Window, v graphics.ColourRect) { s.textColours = v; w.Invalidate(false) },
			func(*window.Window) graphics.ColourRect { return s.textColours }).WithOrigin(staticOrigin),
	)
	return s
}

func (s *StaticText) textArea() graphics.Rect {
	if r, ok := s.namedArea(AreaText); ok {
		return r
	}
	return s.innerLocal()
}

func (s *StaticText) CreateRenderGeometry(buf render.GeometryBuffer) error {
	if err := s.Static.CreateRenderGeometry(buf); err != nil {
		return err
	}
	text := s.w.Text()
	f := s.w.Font()
	if text == "" || f == nil {
		return nil
	}
	area := s.textArea()
	size := f.TextSize(text)
	pos := area.Position()
	switch s.horz {
	case skin.HorzCentreAligned:
		pos.X += (area.Width() - size.Width) / 2
	case skin.HorzRightAligned:
		pos.X = area.Right - size.Width
	}
	switch s.vert {
	case skin.VertCentreAligned:
		pos.Y += (area.Height() - size.Height) / 2
	case skin.VertBottomAligned:
		pos.Y = area.Bottom - size.Height
	}
	f.DrawText(buf, text, pos, &area, s.colours(s.textColours))
	return nil
}

// ItemPixelSize is the text extent plus the space the frame takes.
func (s *StaticText) ItemPixelSize() graphics.Size {
	f := s.w.Font()
	if f == nil {
		return s.w.PixelSize()
	}
	size := f.TextSize(s.w.Text())
	pad := padding(s.w.PixelSize(), s.textArea())
	return graphics.Size{Width: size.Width + pad.Width, Height: size.Height + pad.Height}
}

// padding is the part of a window of size outer not covered by inner.
func padding(outer graphics.Size, inner graphics.Rect) graphics.Size {
	return graphics.Size{Width: outer.Width - inner.Width(), Height: outer.Height - inner.Height()}
}

var (
	_ window.WindowRenderer = (*Static)(nil)
	_ window.WindowRenderer = (*StaticText)(nil)
)
