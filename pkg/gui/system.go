// Package gui ties the toolkit together. A System owns the renderer, the
// resource managers and the window manager; Contexts pair a root window
// with a render target and an input aggregator.
package gui

import (
	"log/slog"
	"time"

	"github.com/go-drift/facet/pkg/clipboard"
	"github.com/go-drift/facet/pkg/config"
	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/font"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/imagecodec"
	"github.com/go-drift/facet/pkg/imageset"
	"github.com/go-drift/facet/pkg/input"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/render/null"
	"github.com/go-drift/facet/pkg/renderers"
	"github.com/go-drift/facet/pkg/resource"
	"github.com/go-drift/facet/pkg/skin"
	"github.com/go-drift/facet/pkg/window"
)

// System event names, fired in EventNamespace.
const (
	EventNamespace          = "System"
	EventDisplaySizeChanged = "DisplaySizeChanged"
	EventDefaultFontChanged = "DefaultFontChanged"
)

// DefaultDisplaySize is used for the null renderer when Options gives
// no size.
var DefaultDisplaySize = graphics.Size{Width: 800, Height: 600}

// DisplayEventArgs accompanies DisplaySizeChanged.
type DisplayEventArgs struct {
	event.EventArgs
	Size graphics.Size
}

// FontEventArgs accompanies DefaultFontChanged.
type FontEventArgs struct {
	event.EventArgs
	Font *font.Font
}

// Options configures New. Zero values select the defaults.
type Options struct {
	// Renderer defaults to a null renderer of DisplaySize.
	Renderer    render.Renderer
	DisplaySize graphics.Size
	// Provider defaults to an empty in-memory provider.
	Provider resource.Provider
	// Codec decodes textures for the default renderer.
	Codec     imagecodec.Codec
	Logger    *slog.Logger
	Input     input.Config
	Clipboard clipboard.NativeProvider
}

// System is the explicit toolkit context: every manager hangs off it.
type System struct {
	renderer  render.Renderer
	provider  resource.Provider
	logger    *slog.Logger
	global    *event.Set
	events    *event.Set
	images    *imageset.Manager
	fonts     *font.Manager
	looks     *skin.Manager
	renderers *renderers.Registry
	windows   *window.Manager
	clipboard *clipboard.Clipboard
	inputCfg  input.Config

	contexts  []*Context
	schemes   map[string]*Scheme
	lookFiles map[string]string
	watcher   *resource.Watcher
	closers   []func() error
	closed    bool
}

// New builds a System and its default context.
func New(opts Options) (*System, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	provider := opts.Provider
	if provider == nil {
		provider = resource.NewMemoryProvider()
	}
	r := opts.Renderer
	if r == nil {
		size := opts.DisplaySize
		if size.Width <= 0 || size.Height <= 0 {
			size = DefaultDisplaySize
		}
		nopts := []null.Option{null.WithProvider(provider)}
		if opts.Codec != nil {
			nopts = append(nopts, null.WithCodec(opts.Codec))
		}
		r = null.New(size, nopts...)
	}
	inputCfg := opts.Input
	if inputCfg == (input.Config{}) {
		inputCfg = input.DefaultConfig()
	}
	if inputCfg.Logger == nil {
		inputCfg.Logger = logger
	}

	s := &System{
		renderer:  r,
		provider:  provider,
		logger:    logger,
		global:    event.NewGlobalSet(),
		events:    event.NewSet(),
		images:    imageset.NewManager(r, provider),
		fonts:     font.NewManager(provider),
		looks:     skin.NewManager(provider),
		renderers: renderers.NewRegistry(),
		clipboard: clipboard.New(),
		inputCfg:  inputCfg,
		schemes:   map[string]*Scheme{},
		lookFiles: map[string]string{},
	}
	if opts.Clipboard != nil {
		s.clipboard.SetNativeProvider(opts.Clipboard)
	}
	s.events.SetGlobal(s.global)
	s.events.AddEvents(EventDisplaySizeChanged, EventDefaultFontChanged)
	s.windows = window.NewManager(window.Services{
		Renderer:  r,
		Renderers: s.renderers,
		Provider:  provider,
		Looks:     s.looks,
		Images:    s.images,
		Fonts:     s.fonts,
		Clipboard: s.clipboard,
		Global:    s.global,
		Logger:    logger,
	})
	if err := window.RegisterDefaultTypes(s.windows); err != nil {
		return nil, err
	}
	s.CreateContext(r.DefaultRenderTarget())
	logger.Debug("system created", "renderer", r.Identifier(), "display", r.DisplaySize())
	return s, nil
}

// NewFromConfig builds a System from resolved configuration: resource
// groups become directories, schemes are loaded and the default font is
// selected. With Watch set, resource directories are watched for changes
// that Poll applies.
func NewFromConfig(cfg *config.Resolved, opts Options) (*System, error) {
	const op = "gui.NewFromConfig"
	var closeLog func() error
	if opts.Logger == nil {
		logger, closeFn, err := cfg.Logger()
		if err != nil {
			return nil, err
		}
		opts.Logger, closeLog = logger, closeFn
	}
	dirs := resource.NewDirProvider(cfg.Root)
	for group, dir := range cfg.Groups {
		dirs.SetGroupDirectory(group, dir)
	}
	dirs.SetDefaultGroup(cfg.DefaultGroup)
	if opts.Provider == nil {
		opts.Provider = dirs
	}
	opts.Input.ClickTimeout = cfg.ClickTimeout
	opts.Input.DoubleClickTimeout = cfg.DoubleClickTimeout
	opts.Input.MouseMoveTolerance = cfg.MouseMoveTolerance

	s, err := New(opts)
	if err != nil {
		if closeLog != nil {
			_ = closeLog()
		}
		return nil, err
	}
	if closeLog != nil {
		s.closers = append(s.closers, closeLog)
	}
	fail := func(err error) (*System, error) {
		_ = s.Close()
		return nil, err
	}
	for _, file := range cfg.Schemes {
		if _, err := s.LoadScheme(file, ""); err != nil {
			return fail(err)
		}
	}
	if cfg.DefaultFont != "" {
		if err := s.SetDefaultFont(cfg.DefaultFont); err != nil {
			return fail(guierrors.InvalidRequest(op, "default_font", err))
		}
	}
	if cfg.DefaultTooltip != "" && !s.windows.IsTypeRegistered(cfg.DefaultTooltip) {
		return fail(guierrors.UnknownObject(op, cfg.DefaultTooltip))
	}
	if cfg.Watch {
		w, err := resource.NewWatcher(dirs)
		if err != nil {
			return fail(err)
		}
		s.watcher = w
		s.closers = append(s.closers, w.Close)
	}
	return s, nil
}

// Renderer returns the renderer.
func (s *System) Renderer() render.Renderer { return s.renderer }

// Provider returns the resource provider.
func (s *System) Provider() resource.Provider { return s.provider }

// Logger returns the system logger.
func (s *System) Logger() *slog.Logger { return s.logger }

// Events returns the system event set.
func (s *System) Events() *event.Set { return s.events }

// GlobalEvents returns the set that observes every window and system
// event under "<namespace>/<event>".
func (s *System) GlobalEvents() *event.Set { return s.global }

// Images returns the image manager.
func (s *System) Images() *imageset.Manager { return s.images }

// Fonts returns the font manager.
func (s *System) Fonts() *font.Manager { return s.fonts }

// Looks returns the widget look manager.
func (s *System) Looks() *skin.Manager { return s.looks }

// Renderers returns the window renderer registry.
func (s *System) Renderers() *renderers.Registry { return s.renderers }

// Windows returns the window manager.
func (s *System) Windows() *window.Manager { return s.windows }

// Clipboard returns the shared clipboard.
func (s *System) Clipboard() *clipboard.Clipboard { return s.clipboard }

// DefaultFont returns the font used by windows without one, or nil.
func (s *System) DefaultFont() *font.Font { return s.fonts.Default() }

// SetDefaultFont selects the named font as default. The window manager
// follows the font manager and redraws windows that use it. The empty name
// clears the default.
func (s *System) SetDefaultFont(name string) error {
	prev := s.fonts.Default()
	if err := s.fonts.SetDefault(name); err != nil {
		return err
	}
	f := s.fonts.Default()
	if f == prev {
		return nil
	}
	s.events.FireEvent(EventDefaultFontChanged, &FontEventArgs{Font: f}, EventNamespace)
	return nil
}

// NotifyDisplaySizeChanged resizes the renderer display and relayouts
// every context.
func (s *System) NotifyDisplaySizeChanged(size graphics.Size) {
	if size == s.renderer.DisplaySize() {
		return
	}
	s.renderer.SetDisplaySize(size)
	s.windows.NotifyDisplaySizeChanged()
	for _, c := range s.contexts {
		c.MarkAsDirty()
	}
	s.events.FireEvent(EventDisplaySizeChanged, &DisplayEventArgs{Size: size}, EventNamespace)
}

// RenderAllContexts cleans up destroyed windows and draws every context
// in one renderer frame.
func (s *System) RenderAllContexts() {
	if n := s.windows.CleanDeadPool(); n > 0 {
		s.logger.Debug("dead windows released", "count", n)
	}
	s.renderer.BeginRendering()
	for _, c := range s.contexts {
		c.Render()
	}
	s.renderer.EndRendering()
}

// InjectTimePulse advances every context's input clock.
func (s *System) InjectTimePulse(d time.Duration) {
	for _, c := range s.contexts {
		c.injector.InjectTimePulse(d)
	}
}

// Close releases every window, look, font, image and context, in the
// reverse order of creation. It is safe to call twice.
func (s *System) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	for _, c := range s.contexts {
		c.detach()
	}
	s.contexts = nil
	s.windows.DestroyAll()
	s.windows.CleanDeadPool()
	s.looks.EraseAll()
	s.fonts.DestroyAll()
	s.images.DestroyAll()
	s.schemes = map[string]*Scheme{}

	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	if len(errs) > 0 {
		return guierrors.FileIO("gui.System.Close", "", errs[0])
	}
	return nil
}
