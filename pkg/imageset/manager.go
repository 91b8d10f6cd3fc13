package imageset

import (
	"bytes"
	"io"
	"log/slog"
	"sort"
	"strings"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/resource"
	"github.com/go-drift/facet/pkg/xmlio"
)

// Manager owns every named image.
type Manager struct {
	renderer render.Renderer
	provider resource.Provider
	images   map[string]*Image
	// textures created for loaded imagesets, keyed by imageset name
	owned map[string]string
}

// NewManager returns an empty manager.
func NewManager(r render.Renderer, p resource.Provider) *Manager {
	return &Manager{renderer: r, provider: p, images: map[string]*Image{}, owned: map[string]string{}}
}

// Define adds a named image.
func (m *Manager) Define(name string, tex render.Texture, area graphics.Rect, offset graphics.Vec2) (*Image, error) {
	if _, ok := m.images[name]; ok {
		return nil, guierrors.AlreadyExists("imageset.Define", name)
	}
	img := NewImage(name, tex, area, offset)
	m.images[name] = img
	return img, nil
}

// Get returns the named image.
func (m *Manager) Get(name string) (*Image, error) {
	img, ok := m.images[name]
	if !ok {
		return nil, guierrors.UnknownObject("imageset.Get", name)
	}
	return img, nil
}

// IsDefined reports whether name is defined.
func (m *Manager) IsDefined(name string) bool {
	_, ok := m.images[name]
	return ok
}

// Destroy removes the named image. Unknown names are ignored.
func (m *Manager) Destroy(name string) {
	delete(m.images, name)
}

// DestroyImageCollection removes every image named "<prefix>/..." and the
// texture loaded for that imageset.
func (m *Manager) DestroyImageCollection(prefix string) {
	p := prefix + "/"
	for name := range m.images {
		if strings.HasPrefix(name, p) {
			delete(m.images, name)
		}
	}
	if tex, ok := m.owned[prefix]; ok {
		m.renderer.DestroyTexture(tex)
		delete(m.owned, prefix)
	}
}

// DestroyAll removes every image and loaded texture.
func (m *Manager) DestroyAll() {
	for set := range m.owned {
		m.DestroyImageCollection(set)
	}
	clear(m.images)
}

// Names returns the defined image names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.images))
	for n := range m.images {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of defined images.
func (m *Manager) Len() int {
	return len(m.images)
}

// LoadImageset loads an imageset file from the resource group.
func (m *Manager) LoadImageset(filename, group string) (string, error) {
	data, err := m.provider.Load(filename, group)
	if err != nil {
		return "", err
	}
	defer m.provider.Unload(data)
	return m.ParseImageset(bytes.NewReader(data), group)
}

// ParseImageset reads imageset XML, creating its texture and images. It
// returns the imageset name. On failure nothing stays defined.
func (m *Manager) ParseImageset(r io.Reader, group string) (string, error) {
	h := &imagesetHandler{m: m, group: group}
	if err := xmlio.Parse(r, h); err != nil {
		h.rollback()
		return "", err
	}
	if h.name == "" {
		return "", guierrors.InvalidRequestf("imageset.ParseImageset", "", "missing <Imageset> element")
	}
	slog.Debug("imageset loaded", "imageset", h.name, "images", len(h.defined))
	return h.name, nil
}

// Imageset XML element and attribute names.
const (
	elemImageset = "Imageset"
	elemImage    = "Image"
)

type imagesetHandler struct {
	m       *Manager
	group   string
	name    string
	texture render.Texture
	defined []string
}

func (h *imagesetHandler) ElementStart(name string, attrs xmlio.Attributes) error {
	switch name {
	case elemImageset:
		return h.startImageset(attrs)
	case elemImage:
		return h.startImage(attrs)
	}
	return guierrors.InvalidRequestf("imageset.ParseImageset", name, "unexpected element")
}

func (h *imagesetHandler) startImageset(attrs xmlio.Attributes) error {
	if h.name != "" {
		return guierrors.InvalidRequestf("imageset.ParseImageset", elemImageset, "nested imageset")
	}
	name, err := attrs.Required(elemImageset, "name")
	if err != nil {
		return err
	}
	file, err := attrs.Required(elemImageset, "imagefile")
	if err != nil {
		return err
	}
	group := attrs.String("resourceGroup", h.group)
	tex, err := h.m.renderer.CreateTextureFromFile(name, file, group)
	if err != nil {
		return err
	}
	h.name = name
	h.texture = tex
	h.m.owned[name] = name
	return nil
}

func (h *imagesetHandler) startImage(attrs xmlio.Attributes) error {
	if h.texture == nil {
		return guierrors.InvalidRequestf("imageset.ParseImageset", elemImage, "image outside imageset")
	}
	short, err := attrs.Required(elemImage, "name")
	if err != nil {
		return err
	}
	area := graphics.RectFromLTWH(
		attrs.Float("xPos", 0), attrs.Float("yPos", 0),
		attrs.Float("width", 0), attrs.Float("height", 0))
	offset := graphics.Vec2{X: attrs.Float("xOffset", 0), Y: attrs.Float("yOffset", 0)}
	full := h.name + "/" + short
	if _, err := h.m.Define(full, h.texture, area, offset); err != nil {
		return err
	}
	h.defined = append(h.defined, full)
	return nil
}

func (h *imagesetHandler) ElementEnd(string) error { return nil }
func (h *imagesetHandler) Text(string) error       { return nil }

func (h *imagesetHandler) rollback() {
	for _, n := range h.defined {
		h.m.Destroy(n)
	}
	if h.name != "" {
		h.m.renderer.DestroyTexture(h.name)
		delete(h.m.owned, h.name)
	}
}
