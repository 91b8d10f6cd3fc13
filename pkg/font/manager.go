package font

import (
	"bytes"
	"io"
	"sort"

	"golang.org/x/image/font/gofont/goregular"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/resource"
	"github.com/go-drift/facet/pkg/xmlio"
)

// DefaultPointSize is used when font XML omits a size.
const DefaultPointSize = 10

// Manager owns every named font.
type Manager struct {
	provider    resource.Provider
	fonts       map[string]*Font
	defaultName string
	events      *event.Set
}

// NewManager returns an empty manager loading files through p.
func NewManager(p resource.Provider) *Manager {
	events := event.NewSet()
	events.AddEvents(EventDefaultChanged)
	return &Manager{provider: p, fonts: map[string]*Font{}, events: events}
}

// Events returns the manager's event set.
func (m *Manager) Events() *event.Set { return m.events }

func (m *Manager) setDefaultName(name string) {
	if name == m.defaultName {
		return
	}
	m.defaultName = name
	m.events.FireEvent(EventDefaultChanged, &EventArgs{Font: m.fonts[name]}, EventNamespace)
}

func (m *Manager) add(f *Font) (*Font, error) {
	if _, ok := m.fonts[f.name]; ok {
		_ = f.Close()
		return nil, guierrors.AlreadyExists("font.Create", f.name)
	}
	m.fonts[f.name] = f
	return f, nil
}

// Create defines a FreeType font from data. Nil data selects the built-in
// Go Regular face.
func (m *Manager) Create(name string, data []byte, size float32) (*Font, error) {
	if _, ok := m.fonts[name]; ok {
		return nil, guierrors.AlreadyExists("font.Create", name)
	}
	if data == nil {
		data = goregular.TTF
	}
	f, err := NewFreeType(name, data, size)
	if err != nil {
		return nil, err
	}
	return m.add(f)
}

// CreatePixmap defines a fixed-cell font.
func (m *Manager) CreatePixmap(name string, size float32) (*Font, error) {
	if _, ok := m.fonts[name]; ok {
		return nil, guierrors.AlreadyExists("font.CreatePixmap", name)
	}
	f, err := NewPixmap(name, size)
	if err != nil {
		return nil, err
	}
	return m.add(f)
}

// CreateFromFile defines a FreeType font from a resource file.
func (m *Manager) CreateFromFile(name, filename, group string, size float32) (*Font, error) {
	var f *Font
	err := resource.WithData(m.provider, filename, group, func(data []byte) error {
		var err error
		f, err = m.Create(name, data, size)
		return err
	})
	return f, err
}

// Get returns the named font.
func (m *Manager) Get(name string) (*Font, error) {
	f, ok := m.fonts[name]
	if !ok {
		return nil, guierrors.UnknownObject("font.Get", name)
	}
	return f, nil
}

// IsDefined reports whether name is defined.
func (m *Manager) IsDefined(name string) bool {
	_, ok := m.fonts[name]
	return ok
}

// Destroy removes and closes the named font.
func (m *Manager) Destroy(name string) {
	f, ok := m.fonts[name]
	if !ok {
		return
	}
	if m.defaultName == name {
		m.setDefaultName("")
	}
	delete(m.fonts, name)
	_ = f.Close()
}

// DestroyAll removes every font.
func (m *Manager) DestroyAll() {
	for name := range m.fonts {
		m.Destroy(name)
	}
}

// Names returns the defined font names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.fonts))
	for n := range m.fonts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetDefault selects the font used by windows without one.
func (m *Manager) SetDefault(name string) error {
	if name != "" && !m.IsDefined(name) {
		return guierrors.UnknownObject("font.SetDefault", name)
	}
	m.setDefaultName(name)
	return nil
}

// Default returns the default font, or nil if none is set.
func (m *Manager) Default() *Font {
	return m.fonts[m.defaultName]
}

// LoadFontFile loads font XML from the resource group and returns the names
// of the fonts it defined.
func (m *Manager) LoadFontFile(filename, group string) ([]string, error) {
	var names []string
	err := resource.WithData(m.provider, filename, group, func(data []byte) error {
		var err error
		names, err = m.ParseFonts(bytes.NewReader(data), group)
		return err
	})
	return names, err
}

// ParseFonts reads font XML: one or more <Font name filename type size
// resourceGroup/> elements, optionally wrapped in <Fonts>.
func (m *Manager) ParseFonts(r io.Reader, group string) ([]string, error) {
	h := &fontHandler{m: m, group: group}
	if err := xmlio.Parse(r, h); err != nil {
		for _, n := range h.defined {
			m.Destroy(n)
		}
		return nil, err
	}
	return h.defined, nil
}

type fontHandler struct {
	m       *Manager
	group   string
	defined []string
}

func (h *fontHandler) ElementStart(name string, attrs xmlio.Attributes) error {
	switch name {
	case "Fonts":
		return nil
	case "Font":
	default:
		return guierrors.InvalidRequestf("font.ParseFonts", name, "unexpected element")
	}
	fontName, err := attrs.Required("Font", "name")
	if err != nil {
		return err
	}
	kind, err := ParseKind(attrs.String("type", ""))
	if err != nil {
		return err
	}
	size := attrs.Float("size", DefaultPointSize)
	var f *Font
	switch {
	case kind == KindPixmap:
		f, err = h.m.CreatePixmap(fontName, size)
	case attrs.String("filename", "") == "":
		f, err = h.m.Create(fontName, nil, size)
	default:
		f, err = h.m.CreateFromFile(fontName, attrs.String("filename", ""), attrs.String("resourceGroup", h.group), size)
	}
	if err != nil {
		return err
	}
	h.defined = append(h.defined, f.Name())
	return nil
}

func (h *fontHandler) ElementEnd(string) error { return nil }
func (h *fontHandler) Text(string) error       { return nil }
