package skin

import (
	"sort"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/font"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/imageset"
	"github.com/go-drift/facet/pkg/render"
)

// Widget is the view of a window the look engine draws from.
type Widget interface {
	Name() string
	PixelSize() graphics.Size
	Text() string
	// Font returns the widget's effective font, which may be nil.
	Font() *font.Font
	Property(name string) (string, error)
}

// DrawContext carries everything needed to turn imagery into geometry.
type DrawContext struct {
	Look   *WidgetLook
	Widget Widget
	Buffer render.GeometryBuffer
	Images *imageset.Manager
	Fonts  *font.Manager
	// Looks resolves sections owned by other looks. It may be nil.
	Looks *Manager
	// Clip limits output, in widget-local pixels. Nil means unclipped.
	Clip *graphics.Rect
	// DisplayClip is used by imagery that is clipped to the display.
	DisplayClip *graphics.Rect
	Alpha       float32
}

func (c *DrawContext) colours(own *graphics.ColourRect, fallback graphics.ColourRect) graphics.ColourRect {
	col := fallback
	if own != nil {
		col = *own
	}
	if c.Alpha < 1 {
		col = col.ModulateAlpha(c.Alpha)
	}
	return col
}

// clipTo intersects area with the context clip.
func (c *DrawContext) clipTo(area graphics.Rect) graphics.Rect {
	if c.Clip == nil {
		return area
	}
	return area.Intersect(*c.Clip)
}

// StateImagery is the layered imagery drawn for one widget state.
type StateImagery struct {
	Name             string
	ClippedToDisplay bool
	Layers           []Layer
}

// AddLayer inserts l keeping layers ordered by priority.
func (s *StateImagery) AddLayer(l Layer) *StateImagery {
	i := sort.Search(len(s.Layers), func(i int) bool { return s.Layers[i].Priority > l.Priority })
	s.Layers = append(s.Layers, Layer{})
	copy(s.Layers[i+1:], s.Layers[i:])
	s.Layers[i] = l
	return s
}

// Render draws every layer, lowest priority first.
func (s *StateImagery) Render(ctx *DrawContext) error {
	if s.ClippedToDisplay {
		c := *ctx
		c.Clip = ctx.DisplayClip
		ctx = &c
	}
	for _, l := range s.Layers {
		for _, spec := range l.Sections {
			if err := spec.render(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// Layer groups section references drawn at the same priority.
type Layer struct {
	Priority int
	Sections []SectionSpec
}

// SectionSpec references an imagery section to draw.
type SectionSpec struct {
	// Owner names the look that defines the section; empty means the
	// look being drawn.
	Owner   string
	Section string
	// ColourOverride replaces every component colour when set.
	ColourOverride *graphics.ColourRect
	// ControlProperty names a boolean property that must be "true" for
	// the section to draw.
	ControlProperty string
}

func (sp SectionSpec) render(ctx *DrawContext) error {
	if sp.ControlProperty != "" {
		v, err := ctx.Widget.Property(sp.ControlProperty)
		if err != nil {
			return err
		}
		if v != "true" {
			return nil
		}
	}
	look := ctx.Look
	if sp.Owner != "" && sp.Owner != look.Name {
		if ctx.Looks == nil {
			return guierrors.UnknownObject("skin.SectionSpec", sp.Owner)
		}
		var err error
		if look, err = ctx.Looks.Get(sp.Owner); err != nil {
			return err
		}
	}
	sec, err := look.Section(sp.Section)
	if err != nil {
		return err
	}
	c := *ctx
	c.Look = look
	return sec.Render(&c, sp.ColourOverride)
}

// ImagerySection is a named collection of frame, image and text
// components.
type ImagerySection struct {
	Name          string
	MasterColours *graphics.ColourRect
	Frames        []FrameComponent
	Images        []ImageryComponent
	Texts         []TextComponent
}

var white = graphics.UniformColours(0xFFFFFFFF)

// Render draws frames, then images, then text. A non-nil override
// replaces all colours.
func (s *ImagerySection) Render(ctx *DrawContext, override *graphics.ColourRect) error {
	master := white
	if s.MasterColours != nil {
		master = *s.MasterColours
	}
	pick := func(own *graphics.ColourRect) graphics.ColourRect {
		if override != nil {
			return ctx.colours(override, master)
		}
		return ctx.colours(own, master)
	}
	for i := range s.Frames {
		if err := s.Frames[i].render(ctx, pick(s.Frames[i].Colours)); err != nil {
			return err
		}
	}
	for i := range s.Images {
		if err := s.Images[i].render(ctx, pick(s.Images[i].Colours)); err != nil {
			return err
		}
	}
	for i := range s.Texts {
		if err := s.Texts[i].render(ctx, pick(s.Texts[i].Colours)); err != nil {
			return err
		}
	}
	return nil
}

// HorzFormat places content horizontally within an area.
type HorzFormat int

const (
	HorzLeftAligned HorzFormat = iota
	HorzCentreAligned
	HorzRightAligned
	HorzStretched
	HorzTiled
)

// VertFormat places content vertically within an area.
type VertFormat int

const (
	VertTopAligned VertFormat = iota
	VertCentreAligned
	VertBottomAligned
	VertStretched
	VertTiled
)

var horzFormatNames = map[string]HorzFormat{
	"LeftAligned":   HorzLeftAligned,
	"CentreAligned": HorzCentreAligned,
	"RightAligned":  HorzRightAligned,
	"Stretched":     HorzStretched,
	"Tiled":         HorzTiled,
}

var vertFormatNames = map[string]VertFormat{
	"TopAligned":    VertTopAligned,
	"CentreAligned": VertCentreAligned,
	"BottomAligned": VertBottomAligned,
	"Stretched":     VertStretched,
	"Tiled":         VertTiled,
}

// ParseHorzFormat parses a HorzFormat name.
func ParseHorzFormat(s string) (HorzFormat, error) {
	f, ok := horzFormatNames[s]
	if !ok {
		return 0, guierrors.InvalidRequestf("skin.ParseHorzFormat", s, "unknown horizontal format")
	}
	return f, nil
}

// ParseVertFormat parses a VertFormat name.
func ParseVertFormat(s string) (VertFormat, error) {
	f, ok := vertFormatNames[s]
	if !ok {
		return 0, guierrors.InvalidRequestf("skin.ParseVertFormat", s, "unknown vertical format")
	}
	return f, nil
}

// span is a run of positions along one axis.
type span struct {
	start, length float32
	count         int
}

func layoutAxis(align int, areaStart, areaLen, imgLen float32) span {
	switch align {
	case 1: // centre
		return span{start: areaStart + (areaLen-imgLen)/2, length: imgLen, count: 1}
	case 2: // far edge
		return span{start: areaStart + areaLen - imgLen, length: imgLen, count: 1}
	case 3: // stretched
		return span{start: areaStart, length: areaLen, count: 1}
	case 4: // tiled
		if imgLen <= 0 {
			return span{}
		}
		n := int(areaLen / imgLen)
		if float32(n)*imgLen < areaLen {
			n++
		}
		return span{start: areaStart, length: imgLen, count: n}
	}
	return span{start: areaStart, length: imgLen, count: 1}
}

// ImageryComponent draws a single image.
type ImageryComponent struct {
	Area          ComponentArea
	Image         string
	ImageProperty string
	HorzFormat    HorzFormat
	VertFormat    VertFormat
	Colours       *graphics.ColourRect
}

func (c *ImageryComponent) image(ctx *DrawContext) (*imageset.Image, error) {
	name := c.Image
	if c.ImageProperty != "" {
		v, err := ctx.Widget.Property(c.ImageProperty)
		if err != nil {
			return nil, err
		}
		name = v
	}
	if name == "" {
		return nil, nil
	}
	return ctx.Images.Get(name)
}

func (c *ImageryComponent) render(ctx *DrawContext, colours graphics.ColourRect) error {
	img, err := c.image(ctx)
	if err != nil || img == nil {
		return err
	}
	area, err := c.Area.Pixel(ctx.Widget, ctx.Look)
	if err != nil {
		return err
	}
	clip := ctx.clipTo(area)
	if clip.IsEmpty() {
		return nil
	}
	size := img.Size()
	xs := layoutAxis(int(c.HorzFormat), area.Left, area.Width(), size.Width)
	ys := layoutAxis(int(c.VertFormat), area.Top, area.Height(), size.Height)
	for row := 0; row < ys.count; row++ {
		for col := 0; col < xs.count; col++ {
			dest := graphics.RectFromLTWH(xs.start+float32(col)*xs.length, ys.start+float32(row)*ys.length, xs.length, ys.length)
			img.Render(ctx.Buffer, dest, &clip, colours)
		}
	}
	return nil
}

// FramePart indexes the images of a FrameComponent.
type FramePart int

const (
	FrameTopLeft FramePart = iota
	FrameTopRight
	FrameBottomLeft
	FrameBottomRight
	FrameLeft
	FrameRight
	FrameTop
	FrameBottom
	FrameBackground
	framePartCount
)

var framePartNames = map[string]FramePart{
	"TopLeftCorner":     FrameTopLeft,
	"TopRightCorner":    FrameTopRight,
	"BottomLeftCorner":  FrameBottomLeft,
	"BottomRightCorner": FrameBottomRight,
	"LeftEdge":          FrameLeft,
	"RightEdge":         FrameRight,
	"TopEdge":           FrameTop,
	"BottomEdge":        FrameBottom,
	"Background":        FrameBackground,
}

// ParseFramePart parses a frame image component name.
func ParseFramePart(s string) (FramePart, error) {
	p, ok := framePartNames[s]
	if !ok {
		return 0, guierrors.InvalidRequestf("skin.ParseFramePart", s, "unknown frame component")
	}
	return p, nil
}

// FrameComponent draws a nine-part frame: four corners at native size,
// stretched edges between them and a stretched background.
type FrameComponent struct {
	Area    ComponentArea
	Images  [framePartCount]string
	Colours *graphics.ColourRect
}

func (c *FrameComponent) render(ctx *DrawContext, colours graphics.ColourRect) error {
	area, err := c.Area.Pixel(ctx.Widget, ctx.Look)
	if err != nil {
		return err
	}
	clip := ctx.clipTo(area)
	if clip.IsEmpty() {
		return nil
	}
	var imgs [framePartCount]*imageset.Image
	for i, name := range c.Images {
		if name == "" {
			continue
		}
		if imgs[i], err = ctx.Images.Get(name); err != nil {
			return err
		}
	}
	width := func(parts ...FramePart) float32 {
		for _, p := range parts {
			if imgs[p] != nil {
				return imgs[p].Size().Width
			}
		}
		return 0
	}
	height := func(parts ...FramePart) float32 {
		for _, p := range parts {
			if imgs[p] != nil {
				return imgs[p].Size().Height
			}
		}
		return 0
	}
	lw := width(FrameTopLeft, FrameLeft, FrameBottomLeft)
	rw := width(FrameTopRight, FrameRight, FrameBottomRight)
	th := height(FrameTopLeft, FrameTop, FrameTopRight)
	bh := height(FrameBottomLeft, FrameBottom, FrameBottomRight)

	dests := [framePartCount]graphics.Rect{
		FrameTopLeft:     graphics.RectFromLTWH(area.Left, area.Top, lw, th),
		FrameTopRight:    graphics.RectFromLTWH(area.Right-rw, area.Top, rw, th),
		FrameBottomLeft:  graphics.RectFromLTWH(area.Left, area.Bottom-bh, lw, bh),
		FrameBottomRight: graphics.RectFromLTWH(area.Right-rw, area.Bottom-bh, rw, bh),
		FrameLeft:        {Left: area.Left, Top: area.Top + th, Right: area.Left + lw, Bottom: area.Bottom - bh},
		FrameRight:       {Left: area.Right - rw, Top: area.Top + th, Right: area.Right, Bottom: area.Bottom - bh},
		FrameTop:         {Left: area.Left + lw, Top: area.Top, Right: area.Right - rw, Bottom: area.Top + th},
		FrameBottom:      {Left: area.Left + lw, Top: area.Bottom - bh, Right: area.Right - rw, Bottom: area.Bottom},
		FrameBackground:  {Left: area.Left + lw, Top: area.Top + th, Right: area.Right - rw, Bottom: area.Bottom - bh},
	}
	// Background first so edges and corners draw over it.
	order := []FramePart{FrameBackground, FrameLeft, FrameRight, FrameTop, FrameBottom,
		FrameTopLeft, FrameTopRight, FrameBottomLeft, FrameBottomRight}
	for _, p := range order {
		if imgs[p] == nil {
			continue
		}
		imgs[p].Render(ctx.Buffer, dests[p], &clip, colours)
	}
	return nil
}

// TextComponent draws text in a font. With neither Text nor TextProperty
// set it draws the widget's own text.
type TextComponent struct {
	Area         ComponentArea
	Text         string
	TextProperty string
	Font         string
	FontProperty string
	HorzFormat   HorzFormat
	VertFormat   VertFormat
	Colours      *graphics.ColourRect
}

func (c *TextComponent) text(ctx *DrawContext) (string, error) {
	switch {
	case c.TextProperty != "":
		return ctx.Widget.Property(c.TextProperty)
	case c.Text != "":
		return c.Text, nil
	}
	return ctx.Widget.Text(), nil
}

func (c *TextComponent) font(ctx *DrawContext) (*font.Font, error) {
	name := c.Font
	if c.FontProperty != "" {
		v, err := ctx.Widget.Property(c.FontProperty)
		if err != nil {
			return nil, err
		}
		name = v
	}
	if name == "" {
		return ctx.Widget.Font(), nil
	}
	if ctx.Fonts == nil {
		return nil, guierrors.UnknownObject("skin.TextComponent", name)
	}
	return ctx.Fonts.Get(name)
}

func (c *TextComponent) render(ctx *DrawContext, colours graphics.ColourRect) error {
	text, err := c.text(ctx)
	if err != nil || text == "" {
		return err
	}
	f, err := c.font(ctx)
	if err != nil || f == nil {
		return err
	}
	area, err := c.Area.Pixel(ctx.Widget, ctx.Look)
	if err != nil {
		return err
	}
	clip := ctx.clipTo(area)
	if clip.IsEmpty() {
		return nil
	}
	size := f.TextSize(text)
	pos := graphics.Vec2{X: area.Left, Y: area.Top}
	switch c.HorzFormat {
	case HorzCentreAligned:
		pos.X += (area.Width() - size.Width) / 2
	case HorzRightAligned:
		pos.X = area.Right - size.Width
	}
	switch c.VertFormat {
	case VertCentreAligned:
		pos.Y += (area.Height() - size.Height) / 2
	case VertBottomAligned:
		pos.Y = area.Bottom - size.Height
	}
	f.DrawText(ctx.Buffer, text, pos, &clip, colours)
	return nil
}
