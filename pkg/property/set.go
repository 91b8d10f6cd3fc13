package property

import (
	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/xmlio"
)

// Set is a registry of properties bound to one receiver.
type Set struct {
	receiver Receiver
	props    map[string]Property
	order    []string
}

// NewSet creates an empty set for receiver.
func NewSet(receiver Receiver) *Set {
	return &Set{receiver: receiver, props: make(map[string]Property)}
}

// Receiver returns the object the set reads and writes.
func (s *Set) Receiver() Receiver {
	return s.receiver
}

// Add registers p. It fails with AlreadyExists if the name is taken.
func (s *Set) Add(p Property) error {
	if _, ok := s.props[p.Name()]; ok {
		return guierrors.AlreadyExists("property.Set.Add", p.Name())
	}
	s.props[p.Name()] = p
	s.order = append(s.order, p.Name())
	return nil
}

// Replace registers p, replacing any property with the same name.
func (s *Set) Replace(p Property) {
	if _, ok := s.props[p.Name()]; !ok {
		s.order = append(s.order, p.Name())
	}
	s.props[p.Name()] = p
}

// Remove unregisters name.
func (s *Set) Remove(name string) {
	if _, ok := s.props[name]; !ok {
		return
	}
	delete(s.props, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// IsPresent reports whether name is registered.
func (s *Set) IsPresent(name string) bool {
	_, ok := s.props[name]
	return ok
}

// Lookup returns the named property or UnknownObject.
func (s *Set) Lookup(name string) (Property, error) {
	p, ok := s.props[name]
	if !ok {
		return nil, guierrors.UnknownObject("property.Set.Lookup", name)
	}
	return p, nil
}

// Get returns the named property's value.
func (s *Set) Get(name string) (string, error) {
	p, err := s.Lookup(name)
	if err != nil {
		return "", err
	}
	return p.Get(s.receiver)
}

// SetValue assigns the named property from its string form.
func (s *Set) SetValue(name, value string) error {
	p, err := s.Lookup(name)
	if err != nil {
		return err
	}
	return p.Set(s.receiver, value)
}

// DefaultOf returns the effective default of the named property.
func (s *Set) DefaultOf(name string) (string, error) {
	p, err := s.Lookup(name)
	if err != nil {
		return "", err
	}
	return DefaultFor(p, s.receiver), nil
}

// IsDefault reports whether the named property holds its effective default.
func (s *Set) IsDefault(name string) (bool, error) {
	p, err := s.Lookup(name)
	if err != nil {
		return false, err
	}
	return IsDefault(p, s.receiver)
}

// Names returns the registered names in registration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of registered properties.
func (s *Set) Len() int {
	return len(s.order)
}

// WriteXML writes every persisted property that differs from its default and
// returns how many were written. skip lists names left out.
func (s *Set) WriteXML(ser *xmlio.Serializer, skip ...string) (int, error) {
	n := 0
	for _, name := range s.order {
		if contains(skip, name) {
			continue
		}
		p := s.props[name]
		if !p.WritesXML() {
			continue
		}
		def, err := IsDefault(p, s.receiver)
		if err != nil {
			return n, err
		}
		if def {
			continue
		}
		if err := WriteXML(p, s.receiver, ser); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
