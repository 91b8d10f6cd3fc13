package window

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/go-drift/facet/pkg/clipboard"
	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/font"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/imageset"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/resource"
	"github.com/go-drift/facet/pkg/skin"
)

// AutoNamePrefix starts the names generated for unnamed windows.
const AutoNamePrefix = "__auto_"

// Factory creates the behavior of a new window. It may return nil for
// windows without type-specific state.
type Factory func() Behavior

// FalagardMapping binds a window type name to a base type, renderer and
// look.
type FalagardMapping struct {
	Type     string
	Target   string
	Renderer string
	Look     string
}

// Services are the shared objects windows draw on. Any of them may be nil
// in tests that do not need them.
type Services struct {
	Renderer  render.Renderer
	Renderers RendererFactory
	Provider  resource.Provider
	Looks     *skin.Manager
	Images    *imageset.Manager
	Fonts     *font.Manager
	Clipboard *clipboard.Clipboard
	// Global observes every window event as "Window/<event>".
	Global *event.Set
	Logger *slog.Logger
}

// Manager registers window types and owns window lifetime.
type Manager struct {
	renderer  render.Renderer
	renderers RendererFactory
	provider  resource.Provider
	looks     *skin.Manager
	images    *imageset.Manager
	fonts     *font.Manager
	clipboard *clipboard.Clipboard
	global    *event.Set
	logger    *slog.Logger

	factories map[string]Factory
	aliases   map[string]string
	mappings  map[string]FalagardMapping

	alive       map[*Window]struct{}
	dead        []*Window
	displaySize graphics.Size

	defaultFontSub *event.Connection
}

// NewManager creates a manager with no registered types.
func NewManager(s Services) *Manager {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		renderer:  s.Renderer,
		renderers: s.Renderers,
		provider:  s.Provider,
		looks:     s.Looks,
		images:    s.Images,
		fonts:     s.Fonts,
		clipboard: s.Clipboard,
		global:    s.Global,
		logger:    logger,
		factories: map[string]Factory{},
		aliases:   map[string]string{},
		mappings:  map[string]FalagardMapping{},
		alive:     map[*Window]struct{}{},
	}
	if m.fonts != nil {
		m.fonts.Events().SubscribeEvent(font.EventDefaultChanged, func(event.Args) bool {
			m.watchDefaultFont()
			m.NotifyDefaultFontChanged()
			return false
		})
		m.watchDefaultFont()
	}
	return m
}

// watchDefaultFont follows RenderSizeChanged of the current default font
// so windows without a font of their own redraw when it is resized.
func (m *Manager) watchDefaultFont() {
	if m.defaultFontSub != nil {
		m.defaultFontSub.Disconnect()
		m.defaultFontSub = nil
	}
	f := m.fonts.Default()
	if f == nil {
		return
	}
	m.defaultFontSub = f.Events().SubscribeEvent(font.EventRenderSizeChanged, func(event.Args) bool {
		for w := range m.alive {
			if w.font == nil {
				w.Invalidate(false)
				w.PerformChildLayout()
			}
		}
		return false
	})
}

// Looks returns the look manager.
func (m *Manager) Looks() *skin.Manager { return m.looks }

// Images returns the image manager.
func (m *Manager) Images() *imageset.Manager { return m.images }

// Fonts returns the font manager.
func (m *Manager) Fonts() *font.Manager { return m.fonts }

// Clipboard returns the shared clipboard, which may be nil.
func (m *Manager) Clipboard() *clipboard.Clipboard { return m.clipboard }

// DisplaySize returns the renderer's display size, or the size last set
// with SetDisplaySize when there is no renderer.
func (m *Manager) DisplaySize() graphics.Size {
	if m.renderer != nil {
		return m.renderer.DisplaySize()
	}
	return m.displaySize
}

// SetDisplaySize records a display size for managers without a renderer
// and relayouts every root window.
func (m *Manager) SetDisplaySize(size graphics.Size) {
	m.displaySize = size
	m.NotifyDisplaySizeChanged()
}

// NotifyDisplaySizeChanged invalidates every root window after the
// display was resized.
func (m *Manager) NotifyDisplaySizeChanged() {
	for w := range m.alive {
		if w.parent != nil {
			continue
		}
		w.invalidateRects()
		w.PerformChildLayout()
		w.fireSimple(EventSized)
	}
}

// NotifyDefaultFontChanged redraws every window that uses the default
// font.
func (m *Manager) NotifyDefaultFontChanged() {
	for w := range m.alive {
		if w.font != nil {
			continue
		}
		w.Invalidate(false)
		w.PerformChildLayout()
		w.fireSimple(EventFontChanged)
	}
}

// RegisterFactory adds a window type.
func (m *Manager) RegisterFactory(typ string, f Factory) error {
	const op = "window.Manager.RegisterFactory"
	if _, ok := m.factories[typ]; ok {
		return guierrors.AlreadyExists(op, typ)
	}
	if _, ok := m.mappings[typ]; ok {
		return guierrors.AlreadyExists(op, typ)
	}
	m.factories[typ] = f
	return nil
}

// RegisterAlias makes alias create windows of target. An existing alias is
// replaced; a concrete type cannot be aliased over.
func (m *Manager) RegisterAlias(alias, target string) error {
	const op = "window.Manager.RegisterAlias"
	if _, ok := m.factories[alias]; ok {
		return guierrors.AlreadyExists(op, alias)
	}
	if alias == target {
		return guierrors.InvalidRequestf(op, alias, "alias refers to itself")
	}
	m.aliases[alias] = target
	return nil
}

// RemoveAlias drops an alias.
func (m *Manager) RemoveAlias(alias string) {
	delete(m.aliases, alias)
}

// RegisterFalagardMapping makes typ create a window of target with the
// given renderer and look. The target must be a registered factory.
func (m *Manager) RegisterFalagardMapping(typ, target, renderer, look string) error {
	const op = "window.Manager.RegisterFalagardMapping"
	if _, ok := m.factories[typ]; ok {
		return guierrors.AlreadyExists(op, typ)
	}
	if _, ok := m.factories[target]; !ok {
		return guierrors.UnknownObject(op, target)
	}
	m.mappings[typ] = FalagardMapping{Type: typ, Target: target, Renderer: renderer, Look: look}
	return nil
}

// Mapping returns the falagard mapping for typ.
func (m *Manager) Mapping(typ string) (FalagardMapping, bool) {
	fm, ok := m.mappings[typ]
	return fm, ok
}

// Mappings returns every falagard mapping sorted by type.
func (m *Manager) Mappings() []FalagardMapping {
	out := make([]FalagardMapping, 0, len(m.mappings))
	for _, fm := range m.mappings {
		out = append(out, fm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// IsTypeRegistered reports whether typ names a factory, alias or mapping.
func (m *Manager) IsTypeRegistered(typ string) bool {
	_, err := m.resolveAlias(typ)
	return err == nil
}

// Types returns the registered factory and mapping names, sorted.
func (m *Manager) Types() []string {
	out := make([]string, 0, len(m.factories)+len(m.mappings))
	for t := range m.factories {
		out = append(out, t)
	}
	for t := range m.mappings {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (m *Manager) resolveAlias(typ string) (string, error) {
	const op = "window.Manager.CreateWindow"
	seen := map[string]bool{}
	for {
		if _, ok := m.factories[typ]; ok {
			return typ, nil
		}
		if _, ok := m.mappings[typ]; ok {
			return typ, nil
		}
		target, ok := m.aliases[typ]
		if !ok {
			return "", guierrors.UnknownObject(op, typ)
		}
		if seen[typ] {
			return "", guierrors.InvalidRequestf(op, typ, "alias cycle")
		}
		seen[typ] = true
		typ = target
	}
}

// CreateWindow creates a parentless window of typ. An empty name is
// replaced by a generated unique one.
func (m *Manager) CreateWindow(typ, name string) (*Window, error) {
	resolved, err := m.resolveAlias(typ)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = AutoNamePrefix + uuid.NewString()
	}
	mapping, mapped := m.mappings[resolved]
	base := resolved
	if mapped {
		base = mapping.Target
	}
	factory, ok := m.factories[base]
	if !ok {
		return nil, guierrors.UnknownObject("window.Manager.CreateWindow", base)
	}

	w := newWindow(m, typ, name)
	m.alive[w] = struct{}{}
	if factory != nil {
		w.setBehavior(factory())
	}
	if mapped {
		if err := w.SetWindowRenderer(mapping.Renderer); err != nil {
			m.DestroyWindow(w)
			return nil, err
		}
		if err := w.SetLookNFeel(mapping.Look); err != nil {
			m.DestroyWindow(w)
			return nil, err
		}
	}
	m.logger.Debug("window created", slog.String("type", typ), slog.String("name", name))
	return w, nil
}

// IsAlive reports whether w was created by m and not yet destroyed.
func (m *Manager) IsAlive(w *Window) bool {
	_, ok := m.alive[w]
	return ok
}

// Windows returns every live window ordered by name path.
func (m *Manager) Windows() []*Window {
	out := make([]*Window, 0, len(m.alive))
	for w := range m.alive {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NamePath() < out[j].NamePath() })
	return out
}

// DestroyWindow detaches w from the tree and marks it dead. Children
// destroyed by their parent go with it; others become roots. Resources
// are released by CleanDeadPool, so w may still be referenced by an event
// dispatch in progress.
func (m *Manager) DestroyWindow(w *Window) {
	if w == nil || w.dead {
		return
	}
	if _, ok := m.alive[w]; !ok {
		return
	}
	w.fireSimple(EventDestructionStarted)
	w.ReleaseInput()
	if w.parent != nil {
		w.parent.RemoveChild(w)
	}
	w.dead = true
	delete(m.alive, w)
	for _, c := range w.Children() {
		if c.destroyedByParent {
			m.DestroyWindow(c)
		} else {
			w.RemoveChild(c)
		}
	}
	m.dead = append(m.dead, w)
}

// DestroyAll destroys every live window.
func (m *Manager) DestroyAll() {
	for _, w := range m.Windows() {
		m.DestroyWindow(w)
	}
}

// DeadPoolSize returns the number of windows awaiting cleanup.
func (m *Manager) DeadPoolSize() int { return len(m.dead) }

// CleanDeadPool releases the resources of destroyed windows and returns
// how many were cleaned.
func (m *Manager) CleanDeadPool() int {
	n := len(m.dead)
	for _, w := range m.dead {
		w.release()
	}
	m.dead = nil
	return n
}

func (w *Window) release() {
	w.setBehavior(nil)
	if w.renderer != nil {
		w.renderer.Detach()
		w.renderer = nil
	}
	if w.fontSub != nil {
		w.fontSub.Disconnect()
		w.fontSub = nil
	}
	if w.geometry != nil && w.manager.renderer != nil {
		w.manager.renderer.DestroyGeometryBuffer(w.geometry)
	}
	w.geometry = nil
	w.events.RemoveAllEvents()
	w.children = nil
}
