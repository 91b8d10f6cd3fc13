package renderers

import (
	"sort"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/window"
)

// Names of the built-in renderers.
const (
	NameDefault    = "Default"
	NameButton     = "Button"
	NameStatic     = "Static"
	NameStaticText = "StaticText"
	NameItemView   = "ItemView"
	NameFrame      = "Frame"
	NameEditbox    = "Editbox"
)

// BaseSet names the built-in renderers as a set in scheme files.
const BaseSet = "FacetBase"

// Factory creates a fresh renderer instance.
type Factory func() window.WindowRenderer

// Registry maps renderer names to factories. It implements
// window.RendererFactory.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in renderers.
func NewRegistry() *Registry {
	r := &Registry{factories: map[string]Factory{}}
	for name, f := range map[string]Factory{
		NameDefault:    NewDefault,
		NameButton:     NewButton,
		NameStatic:     NewStatic,
		NameStaticText: NewStaticText,
		NameItemView:   NewItemView,
		NameFrame:      NewFrame,
		NameEditbox:    NewEditbox,
	} {
		r.factories[name] = f
	}
	return r
}

// Register adds a renderer factory. Names are unique.
func (r *Registry) Register(name string, f Factory) error {
	if _, ok := r.factories[name]; ok {
		return guierrors.AlreadyExists("renderers.Registry.Register", name)
	}
	r.factories[name] = f
	return nil
}

// IsRegistered reports whether name has a factory.
func (r *Registry) IsRegistered(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Create instantiates the named renderer.
func (r *Registry) Create(name string) (window.WindowRenderer, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, guierrors.UnknownObject("renderers.Registry.Create", name)
	}
	return f(), nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var _ window.RendererFactory = (*Registry)(nil)
