package skin

import (
	"bytes"
	"io"
	"log/slog"
	"sort"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/resource"
)

// Manager owns widget looks and resolves inheritance.
type Manager struct {
	provider resource.Provider
	looks    map[string]*WidgetLook
	resolved map[string]*WidgetLook
}

// NewManager returns an empty manager loading files through p.
func NewManager(p resource.Provider) *Manager {
	return &Manager{provider: p, looks: map[string]*WidgetLook{}, resolved: map[string]*WidgetLook{}}
}

// Add registers look. It fails with AlreadyExists if the name is taken.
func (m *Manager) Add(look *WidgetLook) error {
	if _, ok := m.looks[look.Name]; ok {
		return guierrors.AlreadyExists("skin.Add", look.Name)
	}
	m.Replace(look)
	return nil
}

// Replace registers look, replacing any look of the same name.
func (m *Manager) Replace(look *WidgetLook) {
	m.looks[look.Name] = look
	clear(m.resolved)
}

// Get returns the named look with inheritance applied. The result is
// shared and must not be modified.
func (m *Manager) Get(name string) (*WidgetLook, error) {
	if l, ok := m.resolved[name]; ok {
		return l, nil
	}
	l, err := m.resolve(name, map[string]bool{})
	if err != nil {
		return nil, err
	}
	m.resolved[name] = l
	return l, nil
}

func (m *Manager) resolve(name string, seen map[string]bool) (*WidgetLook, error) {
	l, ok := m.looks[name]
	if !ok {
		return nil, guierrors.UnknownObject("skin.Get", name)
	}
	if l.Inherits == "" {
		return l, nil
	}
	if seen[name] {
		return nil, guierrors.InvalidRequestf("skin.Get", name, "inheritance cycle")
	}
	seen[name] = true
	base, err := m.resolve(l.Inherits, seen)
	if err != nil {
		return nil, err
	}
	return l.merge(base)
}

// IsDefined reports whether name is registered.
func (m *Manager) IsDefined(name string) bool {
	_, ok := m.looks[name]
	return ok
}

// Erase removes the named look.
func (m *Manager) Erase(name string) {
	delete(m.looks, name)
	clear(m.resolved)
}

// EraseAll removes every look.
func (m *Manager) EraseAll() {
	clear(m.looks)
	clear(m.resolved)
}

// Names returns the registered look names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.looks))
	for n := range m.looks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadFile parses a look-and-feel file from the resource group.
func (m *Manager) LoadFile(filename, group string) ([]string, error) {
	var names []string
	err := resource.WithData(m.provider, filename, group, func(data []byte) error {
		var err error
		names, err = m.ParseLookNFeel(bytes.NewReader(data))
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("looknfeel loaded", "resource", filename, "group", group, "looks", len(names))
	return names, nil
}

// ParseLookNFeel reads Falagard XML and registers its looks, replacing
// looks of the same name. Nothing is registered if parsing fails.
func (m *Manager) ParseLookNFeel(r io.Reader) ([]string, error) {
	looks, err := ParseLooks(r)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(looks))
	for _, l := range looks {
		m.Replace(l)
		names = append(names, l.Name)
	}
	return names, nil
}
