package skin

import (
	"io"
	"strings"

	"golang.org/x/mod/semver"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/xmlio"
)

// SupportedVersion is the newest Falagard format version understood.
const SupportedVersion = "7.0.0"

// CheckVersion validates a Falagard version attribute. An empty version is
// accepted; a major version newer than SupportedVersion is not.
func CheckVersion(version string) error {
	if version == "" {
		return nil
	}
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return guierrors.InvalidRequestf("skin.CheckVersion", version, "malformed version")
	}
	if semver.Compare(semver.Major(v), semver.Major("v"+SupportedVersion)) > 0 {
		return guierrors.InvalidRequestf("skin.CheckVersion", version, "unsupported version, newest is %s", SupportedVersion)
	}
	return nil
}

// ParseLooks reads every WidgetLook in Falagard XML.
func ParseLooks(r io.Reader) ([]*WidgetLook, error) {
	root := &falagardHandler{}
	root.chain = xmlio.NewChain(root)
	if err := xmlio.Parse(r, root.chain); err != nil {
		return nil, err
	}
	if !root.seenRoot {
		return nil, guierrors.InvalidRequestf("skin.ParseLooks", "Falagard", "missing root element")
	}
	return root.looks, nil
}

type falagardHandler struct {
	chain    *xmlio.Chain
	looks    []*WidgetLook
	seenRoot bool
}

func (h *falagardHandler) ElementStart(name string, attrs xmlio.Attributes) error {
	switch name {
	case "Falagard":
		h.seenRoot = true
		return CheckVersion(attrs.String("version", ""))
	case "WidgetLook":
		lookName, err := attrs.Required(name, "name")
		if err != nil {
			return err
		}
		look := NewWidgetLook(lookName)
		look.Inherits = attrs.String("inherits", "")
		h.looks = append(h.looks, look)
		h.chain.Push(&lookHandler{chain: h.chain, look: look})
		return nil
	}
	return unexpected(name)
}

func (h *falagardHandler) ElementEnd(string) error { return nil }
func (h *falagardHandler) Text(string) error       { return nil }

func unexpected(name string) error {
	return guierrors.InvalidRequestf("skin.ParseLooks", name, "unexpected element")
}

// lookHandler handles everything inside one WidgetLook.
type lookHandler struct {
	chain *xmlio.Chain
	look  *WidgetLook

	section *ImagerySection
	state   *StateImagery
	layer   *Layer
	spec    *SectionSpec
	link    *PropertyLinkDefinition
	child   *WidgetComponent

	// current component within a section
	image *ImageryComponent
	text  *TextComponent
	frame *FrameComponent

	// area receiving <Area> contents
	area *ComponentArea
	// colours receiving <Colours>
	colours **graphics.ColourRect
}

func (h *lookHandler) ElementStart(name string, attrs xmlio.Attributes) error {
	switch name {
	case "PropertyDefinition":
		d, err := parseDefinition(attrs)
		if err != nil {
			return err
		}
		h.look.Definitions = append(h.look.Definitions, d)
	case "PropertyLinkDefinition":
		d := &PropertyLinkDefinition{}
		var err error
		if d.Name, err = attrs.Required(name, "name"); err != nil {
			return err
		}
		d.Default = attrs.String("initialValue", "")
		d.Help = attrs.String("help", "")
		d.RedrawOnWrite = attrs.Bool("redrawOnWrite", false)
		d.LayoutOnWrite = attrs.Bool("layoutOnWrite", false)
		d.FireEvent = attrs.String("fireEvent", "")
		if attrs.Has("widget") || attrs.Has("targetProperty") {
			d.Targets = append(d.Targets, LinkTarget{WidgetSuffix: attrs.String("widget", ""), Property: attrs.String("targetProperty", "")})
		}
		h.look.Links = append(h.look.Links, d)
		h.link = d
	case "PropertyLinkTarget":
		if h.link == nil {
			return unexpected(name)
		}
		h.link.Targets = append(h.link.Targets, LinkTarget{WidgetSuffix: attrs.String("widget", ""), Property: attrs.String("property", "")})
	case "Property":
		init, err := parseInitialiser(attrs)
		if err != nil {
			return err
		}
		if h.child != nil {
			h.child.Properties = append(h.child.Properties, init)
		} else {
			h.look.Initialisers = append(h.look.Initialisers, init)
		}
	case "NamedArea":
		areaName, err := attrs.Required(name, "name")
		if err != nil {
			return err
		}
		na := &NamedArea{Name: areaName}
		h.look.AddNamedArea(na)
		h.area = &na.Area
	case "Child":
		c := &WidgetComponent{
			NameSuffix: attrs.String("nameSuffix", ""),
			Type:       attrs.String("type", ""),
			Renderer:   attrs.String("renderer", ""),
			Look:       attrs.String("look", ""),
			AutoWindow: attrs.Bool("autoWindow", true),
			Area:       FullArea,
		}
		if c.Type == "" {
			return guierrors.InvalidRequestf("skin.ParseLooks", "Child@type", "missing required attribute")
		}
		h.look.Children = append(h.look.Children, c)
		h.child = c
		h.area = &c.Area
	case "ImagerySection":
		secName, err := attrs.Required(name, "name")
		if err != nil {
			return err
		}
		h.section = &ImagerySection{Name: secName}
		h.look.AddSection(h.section)
		h.colours = &h.section.MasterColours
	case "ImageryComponent":
		if h.section == nil {
			return unexpected(name)
		}
		h.section.Images = append(h.section.Images, ImageryComponent{Area: FullArea})
		h.image = &h.section.Images[len(h.section.Images)-1]
		h.area, h.colours = &h.image.Area, &h.image.Colours
	case "TextComponent":
		if h.section == nil {
			return unexpected(name)
		}
		h.section.Texts = append(h.section.Texts, TextComponent{Area: FullArea})
		h.text = &h.section.Texts[len(h.section.Texts)-1]
		h.area, h.colours = &h.text.Area, &h.text.Colours
	case "FrameComponent":
		if h.section == nil {
			return unexpected(name)
		}
		h.section.Frames = append(h.section.Frames, FrameComponent{Area: FullArea})
		h.frame = &h.section.Frames[len(h.section.Frames)-1]
		h.area, h.colours = &h.frame.Area, &h.frame.Colours
	case "Image":
		return h.imageElement(attrs)
	case "ImageProperty":
		if h.image == nil {
			return unexpected(name)
		}
		h.image.ImageProperty = attrs.String("name", "")
	case "Text":
		if h.text == nil {
			return unexpected(name)
		}
		h.text.Text = attrs.String("string", "")
		h.text.Font = attrs.String("font", "")
	case "TextProperty":
		if h.text == nil {
			return unexpected(name)
		}
		h.text.TextProperty = attrs.String("name", "")
	case "FontProperty":
		if h.text == nil {
			return unexpected(name)
		}
		h.text.FontProperty = attrs.String("name", "")
	case "HorzFormat":
		return h.format(name, attrs, true)
	case "VertFormat":
		return h.format(name, attrs, false)
	case "Colours":
		if h.colours == nil {
			return unexpected(name)
		}
		c, err := parseColours(attrs)
		if err != nil {
			return err
		}
		*h.colours = c
	case "Area":
		if h.area == nil {
			return unexpected(name)
		}
		return h.startArea(attrs)
	case "StateImagery":
		stateName, err := attrs.Required(name, "name")
		if err != nil {
			return err
		}
		h.state = &StateImagery{Name: stateName, ClippedToDisplay: !attrs.Bool("clipped", true)}
		h.look.AddState(h.state)
	case "Layer":
		if h.state == nil {
			return unexpected(name)
		}
		h.layer = &Layer{Priority: attrs.Int("priority", 0)}
	case "Section":
		if h.layer == nil {
			return unexpected(name)
		}
		sec, err := attrs.Required(name, "section")
		if err != nil {
			return err
		}
		h.layer.Sections = append(h.layer.Sections, SectionSpec{
			Owner:           attrs.String("look", ""),
			Section:         sec,
			ControlProperty: attrs.String("controlProperty", ""),
		})
		h.spec = &h.layer.Sections[len(h.layer.Sections)-1]
		h.colours = &h.spec.ColourOverride
	default:
		return unexpected(name)
	}
	return nil
}

func (h *lookHandler) imageElement(attrs xmlio.Attributes) error {
	switch {
	case h.frame != nil:
		part, err := ParseFramePart(attrs.String("component", ""))
		if err != nil {
			return err
		}
		h.frame.Images[part] = attrs.String("name", "")
	case h.image != nil:
		h.image.Image = attrs.String("name", "")
	default:
		return unexpected("Image")
	}
	return nil
}

func (h *lookHandler) format(name string, attrs xmlio.Attributes, horz bool) error {
	typ, err := attrs.Required(name, "type")
	if err != nil {
		return err
	}
	var hf *HorzFormat
	var vf *VertFormat
	switch {
	case h.image != nil:
		hf, vf = &h.image.HorzFormat, &h.image.VertFormat
	case h.text != nil:
		hf, vf = &h.text.HorzFormat, &h.text.VertFormat
	default:
		return unexpected(name)
	}
	if horz {
		*hf, err = ParseHorzFormat(typ)
	} else {
		*vf, err = ParseVertFormat(typ)
	}
	return err
}

func (h *lookHandler) startArea(attrs xmlio.Attributes) error {
	switch {
	case attrs.Has("property"):
		h.area.AreaProperty = attrs.String("property", "")
	case attrs.Has("namedArea"):
		h.area.NamedArea = attrs.String("namedArea", "")
	case attrs.Has("value"):
		r, err := graphics.ParseURect(attrs.String("value", ""))
		if err != nil {
			return err
		}
		h.area.Rect = r
	default:
		h.chain.Push(&areaHandler{area: h.area})
	}
	return nil
}

func (h *lookHandler) ElementEnd(name string) error {
	switch name {
	case "PropertyLinkDefinition":
		h.link = nil
	case "NamedArea":
		h.area = nil
	case "Child":
		h.child, h.area = nil, nil
	case "ImagerySection":
		h.section, h.colours = nil, nil
	case "ImageryComponent", "TextComponent", "FrameComponent":
		h.image, h.text, h.frame = nil, nil, nil
		h.area = nil
		h.colours = &h.section.MasterColours
	case "StateImagery":
		h.state = nil
	case "Layer":
		h.state.AddLayer(*h.layer)
		h.layer = nil
	case "Section":
		h.spec, h.colours = nil, nil
	}
	return nil
}

func (h *lookHandler) Text(string) error { return nil }

// areaHandler reads <Dim> children of an <Area>.
type areaHandler struct {
	area                     *ComponentArea
	left, top, right, bottom graphics.UDim
	width, height            *graphics.UDim
	hasRight, hasBottom      bool
	dimType                  string
}

func (h *areaHandler) ElementStart(name string, attrs xmlio.Attributes) error {
	switch name {
	case "Dim":
		typ, err := attrs.Required(name, "type")
		if err != nil {
			return err
		}
		h.dimType = typ
	case "UnifiedDim":
		return h.setDim(graphics.UDim{Scale: attrs.Float("scale", 0), Offset: attrs.Float("offset", 0)})
	case "AbsoluteDim":
		return h.setDim(graphics.Absolute(attrs.Float("value", 0)))
	default:
		return unexpected(name)
	}
	return nil
}

func (h *areaHandler) setDim(d graphics.UDim) error {
	switch h.dimType {
	case "LeftEdge", "XPosition":
		h.left = d
	case "TopEdge", "YPosition":
		h.top = d
	case "RightEdge":
		h.right, h.hasRight = d, true
	case "BottomEdge":
		h.bottom, h.hasBottom = d, true
	case "Width":
		h.width = &d
	case "Height":
		h.height = &d
	default:
		return guierrors.InvalidRequestf("skin.ParseLooks", h.dimType, "unknown dimension type")
	}
	h.update()
	return nil
}

func (h *areaHandler) update() {
	r := graphics.URect{Min: graphics.UVector2{X: h.left, Y: h.top}}
	r.Max.X = graphics.Relative(1)
	if h.hasRight {
		r.Max.X = h.right
	} else if h.width != nil {
		r.Max.X = h.left.Add(*h.width)
	}
	r.Max.Y = graphics.Relative(1)
	if h.hasBottom {
		r.Max.Y = h.bottom
	} else if h.height != nil {
		r.Max.Y = h.top.Add(*h.height)
	}
	h.area.Rect = r
}

func (h *areaHandler) ElementEnd(name string) error {
	if name == "Dim" {
		h.dimType = ""
	}
	return nil
}

func (h *areaHandler) Text(string) error { return nil }

func parseDefinition(attrs xmlio.Attributes) (*PropertyDefinition, error) {
	name, err := attrs.Required("PropertyDefinition", "name")
	if err != nil {
		return nil, err
	}
	return &PropertyDefinition{
		Name:          name,
		Default:       attrs.String("initialValue", ""),
		Help:          attrs.String("help", ""),
		RedrawOnWrite: attrs.Bool("redrawOnWrite", false),
		LayoutOnWrite: attrs.Bool("layoutOnWrite", false),
		FireEvent:     attrs.String("fireEvent", ""),
	}, nil
}

func parseInitialiser(attrs xmlio.Attributes) (PropertyInitialiser, error) {
	name, err := attrs.Required("Property", "name")
	if err != nil {
		return PropertyInitialiser{}, err
	}
	return PropertyInitialiser{Name: name, Value: attrs.String("value", "")}, nil
}

func parseColours(attrs xmlio.Attributes) (*graphics.ColourRect, error) {
	corners := []string{"topLeft", "topRight", "bottomLeft", "bottomRight"}
	var cs [4]graphics.Colour
	for i, k := range corners {
		v := attrs.String(k, "FFFFFFFF")
		c, err := graphics.ParseColour(v)
		if err != nil {
			return nil, guierrors.InvalidRequest("skin.ParseLooks", "Colours@"+k, err)
		}
		cs[i] = c
	}
	return &graphics.ColourRect{TopLeft: cs[0], TopRight: cs[1], BottomLeft: cs[2], BottomRight: cs[3]}, nil
}
