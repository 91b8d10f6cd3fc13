// Package skin implements look-and-feel composition: widget looks made of
// named imagery sections, layered per-state imagery, named areas, skin
// defined properties and auto-created child widgets. Looks are parsed from
// Falagard XML and shared read-only by every window that uses them.
package skin

import (
	"sort"

	"github.com/jinzhu/copier"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/property"
)

// Well-known state names.
const (
	StateEnabled  = "Enabled"
	StateDisabled = "Disabled"
	StateNormal   = "Normal"
)

// PropertyInitialiser sets a property when the look is applied.
type PropertyInitialiser struct {
	Name  string
	Value string
}

// NamedArea is a component area looked up by name, for example the client
// area of a frame or the text area of an edit box.
type NamedArea struct {
	Name string
	Area ComponentArea
}

// WidgetComponent describes a child widget created with the look.
type WidgetComponent struct {
	NameSuffix string
	Type       string
	Renderer   string
	Look       string
	Area       ComponentArea
	// AutoWindow marks the child as part of its parent's composition.
	AutoWindow bool
	Properties []PropertyInitialiser
}

// WidgetLook is a complete skin definition for one widget type.
type WidgetLook struct {
	Name         string
	Inherits     string
	States       map[string]*StateImagery
	Sections     map[string]*ImagerySection
	NamedAreas   map[string]*NamedArea
	Initialisers []PropertyInitialiser
	Definitions  []*PropertyDefinition
	Links        []*PropertyLinkDefinition
	Children     []*WidgetComponent
}

// NewWidgetLook returns an empty look.
func NewWidgetLook(name string) *WidgetLook {
	return &WidgetLook{
		Name:       name,
		States:     map[string]*StateImagery{},
		Sections:   map[string]*ImagerySection{},
		NamedAreas: map[string]*NamedArea{},
	}
}

// Clone returns a deep copy of l.
func (l *WidgetLook) Clone() (*WidgetLook, error) {
	out := &WidgetLook{}
	if err := copier.CopyWithOption(out, l, copier.Option{DeepCopy: true}); err != nil {
		return nil, guierrors.InvalidRequest("skin.Clone", l.Name, err)
	}
	if out.States == nil {
		out.States = map[string]*StateImagery{}
	}
	if out.Sections == nil {
		out.Sections = map[string]*ImagerySection{}
	}
	if out.NamedAreas == nil {
		out.NamedAreas = map[string]*NamedArea{}
	}
	return out, nil
}

// AddState adds or replaces a state imagery.
func (l *WidgetLook) AddState(s *StateImagery) *WidgetLook {
	l.States[s.Name] = s
	return l
}

// AddSection adds or replaces an imagery section.
func (l *WidgetLook) AddSection(s *ImagerySection) *WidgetLook {
	l.Sections[s.Name] = s
	return l
}

// AddNamedArea adds or replaces a named area.
func (l *WidgetLook) AddNamedArea(a *NamedArea) *WidgetLook {
	l.NamedAreas[a.Name] = a
	return l
}

// State returns the named state imagery.
func (l *WidgetLook) State(name string) (*StateImagery, error) {
	s, ok := l.States[name]
	if !ok {
		return nil, guierrors.UnknownObject("skin.State", l.Name+"/"+name)
	}
	return s, nil
}

// IsStateDefined reports whether the look has the named state.
func (l *WidgetLook) IsStateDefined(name string) bool {
	_, ok := l.States[name]
	return ok
}

// ResolveState picks the imagery for prefix+suffix (for example
// "Enabled"+"Hover"), falling back to prefix+"Normal", then prefix alone,
// then the generic "Enabled" state.
func (l *WidgetLook) ResolveState(prefix, suffix string) (*StateImagery, error) {
	for _, name := range []string{prefix + suffix, prefix + StateNormal, prefix, StateEnabled} {
		if s, ok := l.States[name]; ok {
			return s, nil
		}
	}
	return nil, guierrors.UnknownObject("skin.ResolveState", l.Name+"/"+prefix+suffix)
}

// StateFor resolves the state of a widget that is enabled or not and
// carries the given suffix. Disabled widgets ignore the suffix.
func (l *WidgetLook) StateFor(enabled bool, suffix string) (*StateImagery, error) {
	if !enabled {
		return l.ResolveState(StateDisabled, StateNormal)
	}
	return l.ResolveState(StateEnabled, suffix)
}

// Section returns the named imagery section.
func (l *WidgetLook) Section(name string) (*ImagerySection, error) {
	s, ok := l.Sections[name]
	if !ok {
		return nil, guierrors.UnknownObject("skin.Section", l.Name+"/"+name)
	}
	return s, nil
}

// NamedArea returns the named area.
func (l *WidgetLook) NamedArea(name string) (*NamedArea, error) {
	a, ok := l.NamedAreas[name]
	if !ok {
		return nil, guierrors.UnknownObject("skin.NamedArea", l.Name+"/"+name)
	}
	return a, nil
}

// IsNamedAreaDefined reports whether the look has the named area.
func (l *WidgetLook) IsNamedAreaDefined(name string) bool {
	_, ok := l.NamedAreas[name]
	return ok
}

// StateNames returns the defined state names in sorted order.
func (l *WidgetLook) StateNames() []string {
	names := make([]string, 0, len(l.States))
	for n := range l.States {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefinedProperties returns the skin-defined properties of the look.
func (l *WidgetLook) DefinedProperties() []property.Property {
	out := make([]property.Property, 0, len(l.Definitions)+len(l.Links))
	for _, d := range l.Definitions {
		out = append(out, d.Property(l.Name))
	}
	for _, d := range l.Links {
		out = append(out, d.Property(l.Name))
	}
	return out
}

// PropertyDefault returns the value the look assigns to name, either as an
// initialiser or as the default of a skin-defined property.
func (l *WidgetLook) PropertyDefault(name string) (string, bool) {
	for i := len(l.Initialisers) - 1; i >= 0; i-- {
		if l.Initialisers[i].Name == name {
			return l.Initialisers[i].Value, true
		}
	}
	for _, d := range l.Definitions {
		if d.Name == name {
			return d.Default, true
		}
	}
	for _, d := range l.Links {
		if d.Name == name {
			return d.Default, true
		}
	}
	return "", false
}

// merge overlays l on a copy of base.
func (l *WidgetLook) merge(base *WidgetLook) (*WidgetLook, error) {
	out, err := base.Clone()
	if err != nil {
		return nil, err
	}
	out.Name = l.Name
	out.Inherits = l.Inherits
	for k, v := range l.States {
		out.States[k] = v
	}
	for k, v := range l.Sections {
		out.Sections[k] = v
	}
	for k, v := range l.NamedAreas {
		out.NamedAreas[k] = v
	}
	out.Initialisers = append(out.Initialisers, l.Initialisers...)
	out.Definitions = overlay(out.Definitions, l.Definitions, func(d *PropertyDefinition) string { return d.Name })
	out.Links = overlay(out.Links, l.Links, func(d *PropertyLinkDefinition) string { return d.Name })
	out.Children = overlay(out.Children, l.Children, func(c *WidgetComponent) string { return c.NameSuffix })
	return out, nil
}

func overlay[T any](base, top []T, key func(T) string) []T {
	for _, t := range top {
		replaced := false
		for i, b := range base {
			if key(b) == key(t) {
				base[i] = t
				replaced = true
				break
			}
		}
		if !replaced {
			base = append(base, t)
		}
	}
	return base
}

// ComponentArea is the area a component occupies, relative to the widget.
// It comes from a property holding a URect, a named area of the look, or
// the fixed unified rectangle, in that order.
type ComponentArea struct {
	Rect         graphics.URect
	AreaProperty string
	NamedArea    string
}

// FullArea covers the whole widget.
var FullArea = ComponentArea{Rect: graphics.URect{Max: graphics.UVector2{X: graphics.Relative(1), Y: graphics.Relative(1)}}}

// Pixel resolves the area against w's pixel size.
func (a ComponentArea) Pixel(w Widget, look *WidgetLook) (graphics.Rect, error) {
	switch {
	case a.AreaProperty != "":
		v, err := w.Property(a.AreaProperty)
		if err != nil {
			return graphics.Rect{}, err
		}
		r, err := graphics.ParseURect(v)
		if err != nil {
			return graphics.Rect{}, err
		}
		return r.Resolve(w.PixelSize()), nil
	case a.NamedArea != "" && look != nil:
		na, err := look.NamedArea(a.NamedArea)
		if err != nil {
			return graphics.Rect{}, err
		}
		if na.Area.NamedArea == a.NamedArea {
			return graphics.Rect{}, guierrors.InvalidRequestf("skin.ComponentArea", a.NamedArea, "named area refers to itself")
		}
		return na.Area.Pixel(w, look)
	}
	return a.Rect.Resolve(w.PixelSize()), nil
}
