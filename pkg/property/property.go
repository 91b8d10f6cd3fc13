// Package property implements named, string-typed attribute access.
//
// A Property is stateless: it knows how to read and write one value on a
// Receiver (usually a window), expressed as the value's canonical string
// form. Typed builds a Property from a Codec and a strongly typed getter and
// setter, so each widget type declares its surface as a table of closures
// instead of a class hierarchy:
//
//	alpha := property.New("Alpha", "Window alpha, 0 to 1.", float32(1), property.Float,
//	    (*Window).SetAlpha, (*Window).Alpha)
//
// A Set binds a registry of properties to one receiver.
package property

import (
	"strings"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/xmlio"
)

// Receiver is the object a Property reads and writes.
type Receiver any

// Property reads and writes one named value on a Receiver as a string.
type Property interface {
	Name() string
	Help() string
	// Origin names the type or skin that introduced the property.
	Origin() string
	// Default is the canonical string form of the default value.
	Default() string
	Get(r Receiver) (string, error)
	Set(r Receiver, value string) error
	IsReadable() bool
	IsWritable() bool
	// WritesXML reports whether the property is persisted by layouts.
	WritesXML() bool
}

// DefaultOverrider is implemented by receivers whose skin can override a
// property's default.
type DefaultOverrider interface {
	PropertyDefault(name string) (string, bool)
}

// DefaultFor returns the effective default of p for r.
func DefaultFor(p Property, r Receiver) string {
	if o, ok := r.(DefaultOverrider); ok {
		if v, ok := o.PropertyDefault(p.Name()); ok {
			return v
		}
	}
	return p.Default()
}

// IsDefault reports whether the current value of p on r equals its
// effective default.
func IsDefault(p Property, r Receiver) (bool, error) {
	v, err := p.Get(r)
	if err != nil {
		return false, err
	}
	return v == DefaultFor(p, r), nil
}

// WriteXML writes p's current value on r as a Property element. Multi-line
// values are written as element text to keep the document well formed.
func WriteXML(p Property, r Receiver, s *xmlio.Serializer) error {
	v, err := p.Get(r)
	if err != nil {
		return err
	}
	s.OpenTag("Property").Attribute("name", p.Name())
	if strings.ContainsAny(v, "\n\r") {
		s.Text(v)
	} else {
		s.Attribute("value", v)
	}
	s.CloseTag()
	return s.Err()
}

// Codec converts a typed value to and from its canonical string form.
type Codec[T any] struct {
	Parse  func(string) (T, error)
	Format func(T) string
}

// Typed is a Property backed by a getter and setter on receivers of type R.
type Typed[R any, T any] struct {
	name   string
	help   string
	origin string
	def    T
	codec  Codec[T]
	get    func(R) T
	set    func(R, T)
	noXML  bool
}

// New creates a typed property. A nil set makes the property read-only; a
// nil get makes it write-only.
func New[R any, T any](name, help string, def T, codec Codec[T], set func(R, T), get func(R) T) *Typed[R, T] {
	return &Typed[R, T]{name: name, help: help, def: def, codec: codec, get: get, set: set}
}

// WithOrigin sets the origin tag and returns p.
func (p *Typed[R, T]) WithOrigin(origin string) *Typed[R, T] {
	p.origin = origin
	return p
}

// NoXML excludes the property from layouts and returns p.
func (p *Typed[R, T]) NoXML() *Typed[R, T] {
	p.noXML = true
	return p
}

func (p *Typed[R, T]) Name() string    { return p.name }
func (p *Typed[R, T]) Help() string    { return p.help }
func (p *Typed[R, T]) Origin() string  { return p.origin }
func (p *Typed[R, T]) Default() string { return p.codec.Format(p.def) }
func (p *Typed[R, T]) IsReadable() bool {
	return p.get != nil
}
func (p *Typed[R, T]) IsWritable() bool {
	return p.set != nil
}
func (p *Typed[R, T]) WritesXML() bool {
	return !p.noXML && p.get != nil && p.set != nil
}

func (p *Typed[R, T]) receiver(op string, r Receiver) (R, error) {
	recv, ok := r.(R)
	if !ok {
		var zero R
		return zero, guierrors.InvalidRequestf(op, p.name, "receiver %T does not carry this property", r)
	}
	return recv, nil
}

// Get returns the receiver's value in canonical string form.
func (p *Typed[R, T]) Get(r Receiver) (string, error) {
	if p.get == nil {
		return "", guierrors.InvalidRequestf("property.Typed.Get", p.name, "property is not readable")
	}
	recv, err := p.receiver("property.Typed.Get", r)
	if err != nil {
		return "", err
	}
	return p.codec.Format(p.get(recv)), nil
}

// Set parses value and assigns it on the receiver. Unparseable text fails
// with InvalidRequest and leaves the receiver unchanged.
func (p *Typed[R, T]) Set(r Receiver, value string) error {
	if p.set == nil {
		return guierrors.InvalidRequestf("property.Typed.Set", p.name, "property is not writable")
	}
	recv, err := p.receiver("property.Typed.Set", r)
	if err != nil {
		return err
	}
	v, err := p.codec.Parse(value)
	if err != nil {
		return guierrors.InvalidRequest("property.Typed.Set", p.name, err)
	}
	p.set(recv, v)
	return nil
}

// TypedValue returns the receiver's value without string conversion.
func (p *Typed[R, T]) TypedValue(r R) T {
	return p.get(r)
}
