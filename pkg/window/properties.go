package window

import (
	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/property"
)

const propertyOrigin = "Window"

var horzAlignCodec = property.Enum(
	property.EnumValue[HorizontalAlignment]{Value: AlignLeft, Name: "Left"},
	property.EnumValue[HorizontalAlignment]{Value: AlignCentre, Name: "Centre"},
	property.EnumValue[HorizontalAlignment]{Value: AlignRight, Name: "Right"},
)

var vertAlignCodec = property.Enum(
	property.EnumValue[VerticalAlignment]{Value: AlignTop, Name: "Top"},
	property.EnumValue[VerticalAlignment]{Value: AlignMiddle, Name: "Centre"},
	property.EnumValue[VerticalAlignment]{Value: AlignBottom, Name: "Bottom"},
)

// fallibleProperty is a string property whose setter can fail, for values
// that name other objects.
type fallibleProperty struct {
	name, help string
	get        func(*Window) string
	set        func(*Window, string) error
}

func (p *fallibleProperty) Name() string     { return p.name }
func (p *fallibleProperty) Help() string     { return p.help }
func (p *fallibleProperty) Origin() string   { return propertyOrigin }
func (p *fallibleProperty) Default() string  { return "" }
func (p *fallibleProperty) IsReadable() bool { return true }
func (p *fallibleProperty) IsWritable() bool { return true }
func (p *fallibleProperty) WritesXML() bool  { return true }

func (p *fallibleProperty) window(op string, r property.Receiver) (*Window, error) {
	w, ok := r.(*Window)
	if !ok {
		return nil, guierrors.InvalidRequestf(op, p.name, "receiver %T is not a window", r)
	}
	return w, nil
}

func (p *fallibleProperty) Get(r property.Receiver) (string, error) {
	w, err := p.window("window.property.Get", r)
	if err != nil {
		return "", err
	}
	return p.get(w), nil
}

func (p *fallibleProperty) Set(r property.Receiver, value string) error {
	w, err := p.window("window.property.Set", r)
	if err != nil {
		return err
	}
	return p.set(w, value)
}

func origin[T any](p *property.Typed[*Window, T]) *property.Typed[*Window, T] {
	return p.WithOrigin(propertyOrigin)
}

// addWindowProperties registers the common window property surface. The
// renderer and look come first so that layouts apply them before values
// the look may initialise.
func addWindowProperties(s *property.Set) {
	props := []property.Property{
		&fallibleProperty{
			name: "WindowRenderer", help: "Name of the bound window renderer.",
			get: (*Window).WindowRendererName, set: (*Window).SetWindowRenderer,
		},
		&fallibleProperty{
			name: "LookNFeel", help: "Name of the assigned look.",
			get: (*Window).LookNFeel, set: (*Window).SetLookNFeel,
		},
		origin(property.New("Name", "Window name.", "", property.String, nil, (*Window).Name)),
		origin(property.New("ID", "Client-assigned ID.", uint(0), property.Uint, (*Window).SetID, (*Window).ID)),
		origin(property.New("Text", "Window text.", "", property.String, (*Window).SetText, (*Window).Text)),
		&fallibleProperty{
			name: "Font", help: "Name of the window font; empty selects the default.",
			get: (*Window).fontName, set: (*Window).SetFontByName,
		},
		origin(property.New("Visible", "Whether the window is visible.", true, property.Bool, (*Window).SetVisible, (*Window).IsVisible)),
		origin(property.New("Disabled", "Whether the window is disabled.", false, property.Bool, (*Window).setDisabled, (*Window).IsDisabled)),
		origin(property.New("Alpha", "Window alpha, 0 to 1.", float32(1), property.Float, (*Window).SetAlpha, (*Window).Alpha)),
		origin(property.New("InheritsAlpha", "Whether the parent alpha applies.", true, property.Bool, (*Window).SetInheritsAlpha, (*Window).InheritsAlpha)),
		origin(property.New("ClippedByParent", "Whether the parent clips the window.", true, property.Bool, (*Window).SetClippedByParent, (*Window).ClippedByParent)),
		origin(property.New("NonClient", "Whether the window lives in the parent's non-client area.", false, property.Bool, (*Window).SetNonClient, (*Window).NonClient)),
		origin(property.New("AlwaysOnTop", "Whether the window stays above normal siblings.", false, property.Bool, (*Window).SetAlwaysOnTop, (*Window).AlwaysOnTop)),
		origin(property.New("ZOrderChangeEnabled", "Whether the window can change z-order.", true, property.Bool, (*Window).SetZOrderChangeEnabled, (*Window).ZOrderChangeEnabled)),
		origin(property.New("MousePassThroughEnabled", "Whether mouse input passes through.", false, property.Bool, (*Window).SetMousePassThroughEnabled, (*Window).MousePassThroughEnabled)),
		origin(property.New("DestroyedByParent", "Whether destroying the parent destroys the window.", true, property.Bool, (*Window).SetDestroyedByParent, (*Window).DestroyedByParent)),
		origin(property.New("Area", "Unified area.", graphics.URect{}, property.URect, (*Window).SetArea, (*Window).Area)),
		origin(property.New("Position", "Unified position.", graphics.UVector2{}, property.UVector2, (*Window).SetPosition, (*Window).Position).NoXML()),
		origin(property.New("Size", "Unified size.", graphics.USize{}, property.USize, (*Window).SetSize, (*Window).Size).NoXML()),
		origin(property.New("MinSize", "Unified minimum size.", graphics.USize{}, property.USize, (*Window).SetMinSize, (*Window).MinSize)),
		origin(property.New("MaxSize", "Unified maximum size; zero is unbounded.", graphics.USize{}, property.USize, (*Window).SetMaxSize, (*Window).MaxSize)),
		origin(property.New("HorizontalAlignment", "Horizontal alignment in the parent.", AlignLeft, horzAlignCodec, (*Window).SetHorizontalAlignment, (*Window).HorizontalAlignment)),
		origin(property.New("VerticalAlignment", "Vertical alignment in the parent.", AlignTop, vertAlignCodec, (*Window).SetVerticalAlignment, (*Window).VerticalAlignment)),
		origin(property.New("TooltipText", "Tooltip text.", "", property.String, (*Window).SetTooltipText, (*Window).TooltipText)),
	}
	for _, p := range props {
		s.Replace(p)
	}
}
