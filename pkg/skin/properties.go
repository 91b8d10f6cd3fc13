package skin

import (
	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/property"
)

// Host is implemented by receivers of skin-defined properties. Values are
// kept in the receiver's user strings.
type Host interface {
	UserString(name string) (string, bool)
	SetUserString(name, value string)
	Invalidate(recursive bool)
	PerformChildLayout()
	// FirePropertyEvent fires the named event after property was written.
	FirePropertyEvent(eventName, property string)
}

// PropertyHolder reads and writes properties by name.
type PropertyHolder interface {
	Property(name string) (string, error)
	SetProperty(name, value string) error
}

// LinkHost is implemented by receivers of property links.
type LinkHost interface {
	Host
	PropertyHolder
	// LinkTarget returns the child whose name ends in suffix, or the
	// receiver itself for the empty suffix.
	LinkTarget(suffix string) (PropertyHolder, error)
}

// userStringKey is the user string holding a skin-defined property value.
func userStringKey(name string) string {
	return "skin:" + name
}

// PropertyDefinition declares a property stored on the widget itself.
type PropertyDefinition struct {
	Name          string
	Default       string
	Help          string
	RedrawOnWrite bool
	LayoutOnWrite bool
	FireEvent     string
}

// Property returns the property described by d.
func (d *PropertyDefinition) Property(origin string) property.Property {
	return &definedProperty{def: d, origin: origin}
}

type definedProperty struct {
	def    *PropertyDefinition
	origin string
}

func (p *definedProperty) Name() string     { return p.def.Name }
func (p *definedProperty) Help() string     { return p.def.Help }
func (p *definedProperty) Origin() string   { return p.origin }
func (p *definedProperty) Default() string  { return p.def.Default }
func (p *definedProperty) IsReadable() bool { return true }
func (p *definedProperty) IsWritable() bool { return true }
func (p *definedProperty) WritesXML() bool  { return true }

func host(op, name string, r property.Receiver) (Host, error) {
	h, ok := r.(Host)
	if !ok {
		return nil, guierrors.InvalidRequestf(op, name, "receiver %T cannot hold skin properties", r)
	}
	return h, nil
}

func (p *definedProperty) Get(r property.Receiver) (string, error) {
	h, err := host("skin.PropertyDefinition.Get", p.def.Name, r)
	if err != nil {
		return "", err
	}
	if v, ok := h.UserString(userStringKey(p.def.Name)); ok {
		return v, nil
	}
	return p.def.Default, nil
}

func (p *definedProperty) Set(r property.Receiver, value string) error {
	h, err := host("skin.PropertyDefinition.Set", p.def.Name, r)
	if err != nil {
		return err
	}
	h.SetUserString(userStringKey(p.def.Name), value)
	afterWrite(h, p.def.Name, p.def.RedrawOnWrite, p.def.LayoutOnWrite, p.def.FireEvent)
	return nil
}

func afterWrite(h Host, name string, redraw, layout bool, eventName string) {
	if layout {
		h.PerformChildLayout()
	}
	if redraw {
		h.Invalidate(false)
	}
	if eventName != "" {
		h.FirePropertyEvent(eventName, name)
	}
}

// LinkTarget names a property on a child widget.
type LinkTarget struct {
	// WidgetSuffix selects the child by name suffix; empty means the
	// widget itself.
	WidgetSuffix string
	// Property defaults to the link's own name.
	Property string
}

// PropertyLinkDefinition declares a property that forwards to properties
// of child widgets. Reads come from the first target; writes go to all.
// With no targets it behaves like a PropertyDefinition.
type PropertyLinkDefinition struct {
	Name          string
	Default       string
	Help          string
	Targets       []LinkTarget
	RedrawOnWrite bool
	LayoutOnWrite bool
	FireEvent     string
}

// Property returns the property described by d.
func (d *PropertyLinkDefinition) Property(origin string) property.Property {
	return &linkProperty{def: d, origin: origin}
}

type linkProperty struct {
	def    *PropertyLinkDefinition
	origin string
}

func (p *linkProperty) Name() string     { return p.def.Name }
func (p *linkProperty) Help() string     { return p.def.Help }
func (p *linkProperty) Origin() string   { return p.origin }
func (p *linkProperty) Default() string  { return p.def.Default }
func (p *linkProperty) IsReadable() bool { return true }
func (p *linkProperty) IsWritable() bool { return true }
func (p *linkProperty) WritesXML() bool  { return true }

func (p *linkProperty) linkHost(op string, r property.Receiver) (LinkHost, error) {
	h, ok := r.(LinkHost)
	if !ok {
		return nil, guierrors.InvalidRequestf(op, p.def.Name, "receiver %T cannot hold property links", r)
	}
	return h, nil
}

func (p *linkProperty) target(h LinkHost, t LinkTarget) (PropertyHolder, string, error) {
	holder, err := h.LinkTarget(t.WidgetSuffix)
	if err != nil {
		return nil, "", err
	}
	name := t.Property
	if name == "" {
		name = p.def.Name
	}
	return holder, name, nil
}

func (p *linkProperty) Get(r property.Receiver) (string, error) {
	h, err := p.linkHost("skin.PropertyLink.Get", r)
	if err != nil {
		return "", err
	}
	if len(p.def.Targets) == 0 {
		if v, ok := h.UserString(userStringKey(p.def.Name)); ok {
			return v, nil
		}
		return p.def.Default, nil
	}
	holder, name, err := p.target(h, p.def.Targets[0])
	if err != nil {
		return "", err
	}
	return holder.Property(name)
}

func (p *linkProperty) Set(r property.Receiver, value string) error {
	h, err := p.linkHost("skin.PropertyLink.Set", r)
	if err != nil {
		return err
	}
	if len(p.def.Targets) == 0 {
		h.SetUserString(userStringKey(p.def.Name), value)
	}
	type resolved struct {
		holder PropertyHolder
		name   string
		prev   string
		ok     bool
	}
	// Every target must resolve before any of them is written.
	targets := make([]resolved, 0, len(p.def.Targets))
	for _, t := range p.def.Targets {
		holder, name, err := p.target(h, t)
		if err != nil {
			return err
		}
		prev, err := holder.Property(name)
		targets = append(targets, resolved{holder: holder, name: name, prev: prev, ok: err == nil})
	}
	for i, t := range targets {
		if err := t.holder.SetProperty(t.name, value); err != nil {
			for _, done := range targets[:i] {
				if done.ok {
					_ = done.holder.SetProperty(done.name, done.prev)
				}
			}
			return err
		}
	}
	afterWrite(h, p.def.Name, p.def.RedrawOnWrite, p.def.LayoutOnWrite, p.def.FireEvent)
	return nil
}
