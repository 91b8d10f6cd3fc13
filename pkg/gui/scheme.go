package gui

import (
	"bytes"
	"errors"
	"io"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/renderers"
	"github.com/go-drift/facet/pkg/resource"
	"github.com/go-drift/facet/pkg/window"
	"github.com/go-drift/facet/pkg/xmlio"
)

// Scheme XML element names.
const (
	elemScheme      = "GUIScheme"
	elemImageset    = "Imageset"
	elemFont        = "Font"
	elemLookNFeel   = "LookNFeel"
	elemRendererSet = "WindowRendererSet"
	elemMapping     = "FalagardMapping"
	elemAlias       = "WindowAlias"
)

// SchemeFile is a resource referenced by a scheme. An empty Group means
// the group the scheme was loaded from.
type SchemeFile struct {
	Filename string
	Group    string
}

// Alias maps a window type name to another type.
type Alias struct {
	Alias  string
	Target string
}

// Scheme bundles the resources and type registrations of one skin.
type Scheme struct {
	Name         string
	Imagesets    []SchemeFile
	Fonts        []SchemeFile
	LookNFeels   []SchemeFile
	RendererSets []string
	Mappings     []window.FalagardMapping
	Aliases      []Alias
}

// ParseScheme reads a GUIScheme document.
func ParseScheme(r io.Reader) (*Scheme, error) {
	h := &schemeHandler{}
	if err := xmlio.Parse(r, h); err != nil {
		return nil, err
	}
	if h.scheme == nil {
		return nil, guierrors.InvalidRequestf("gui.ParseScheme", "", "missing <%s> element", elemScheme)
	}
	return h.scheme, nil
}

type schemeHandler struct {
	scheme *Scheme
}

func (h *schemeHandler) ElementStart(name string, attrs xmlio.Attributes) error {
	const op = "gui.ParseScheme"
	if name == elemScheme {
		if h.scheme != nil {
			return guierrors.InvalidRequestf(op, name, "nested scheme")
		}
		schemeName, err := attrs.Required(name, "name")
		if err != nil {
			return err
		}
		h.scheme = &Scheme{Name: schemeName}
		return nil
	}
	if h.scheme == nil {
		return guierrors.InvalidRequestf(op, name, "element outside <%s>", elemScheme)
	}
	s := h.scheme
	switch name {
	case elemImageset, elemFont, elemLookNFeel:
		file, err := attrs.Required(name, "filename")
		if err != nil {
			return err
		}
		f := SchemeFile{Filename: file, Group: attrs.String("resourceGroup", "")}
		switch name {
		case elemImageset:
			s.Imagesets = append(s.Imagesets, f)
		case elemFont:
			s.Fonts = append(s.Fonts, f)
		default:
			s.LookNFeels = append(s.LookNFeels, f)
		}
	case elemRendererSet:
		set, err := attrs.Required(name, "filename")
		if err != nil {
			return err
		}
		s.RendererSets = append(s.RendererSets, set)
	case elemMapping:
		fm := window.FalagardMapping{}
		for _, field := range []struct {
			attr string
			dst  *string
		}{
			{"windowType", &fm.Type},
			{"targetType", &fm.Target},
			{"renderer", &fm.Renderer},
			{"lookNFeel", &fm.Look},
		} {
			v, err := attrs.Required(name, field.attr)
			if err != nil {
				return err
			}
			*field.dst = v
		}
		s.Mappings = append(s.Mappings, fm)
	case elemAlias:
		alias, err := attrs.Required(name, "alias")
		if err != nil {
			return err
		}
		target, err := attrs.Required(name, "target")
		if err != nil {
			return err
		}
		s.Aliases = append(s.Aliases, Alias{Alias: alias, Target: target})
	default:
		return guierrors.InvalidRequestf(op, name, "unexpected element")
	}
	return nil
}

func (h *schemeHandler) ElementEnd(string) error { return nil }
func (h *schemeHandler) Text(string) error       { return nil }

// LoadScheme reads a scheme from the resource group and applies it. A
// scheme already loaded under the same name is returned as is.
func (s *System) LoadScheme(filename, group string) (*Scheme, error) {
	var sc *Scheme
	err := resource.WithData(s.provider, filename, group, func(data []byte) error {
		var err error
		sc, err = ParseScheme(bytes.NewReader(data))
		return err
	})
	if err != nil {
		return nil, err
	}
	if prev, ok := s.schemes[sc.Name]; ok {
		s.logger.Debug("scheme already loaded", "scheme", sc.Name, "resource", filename)
		return prev, nil
	}
	if err := s.ApplyScheme(sc, group); err != nil {
		return nil, err
	}
	return sc, nil
}

// ApplyScheme loads the scheme's resources and registers its types.
// Resources that are already defined are kept.
func (s *System) ApplyScheme(sc *Scheme, group string) error {
	const op = "gui.System.ApplyScheme"
	pick := func(f SchemeFile) string {
		if f.Group != "" {
			return f.Group
		}
		return group
	}
	for _, f := range sc.Imagesets {
		if _, err := s.images.LoadImageset(f.Filename, pick(f)); err != nil && !errors.Is(err, guierrors.ErrAlreadyExists) {
			return err
		}
	}
	for _, f := range sc.Fonts {
		if _, err := s.fonts.LoadFontFile(f.Filename, pick(f)); err != nil && !errors.Is(err, guierrors.ErrAlreadyExists) {
			return err
		}
	}
	for _, f := range sc.LookNFeels {
		if _, err := s.looks.LoadFile(f.Filename, pick(f)); err != nil {
			return err
		}
		s.lookFiles[f.Filename] = pick(f)
	}
	for _, set := range sc.RendererSets {
		if set != renderers.BaseSet {
			return guierrors.UnknownObject(op, set)
		}
	}
	for _, a := range sc.Aliases {
		if err := s.windows.RegisterAlias(a.Alias, a.Target); err != nil {
			return err
		}
	}
	for _, fm := range sc.Mappings {
		if !s.renderers.IsRegistered(fm.Renderer) {
			return guierrors.UnknownObject(op, fm.Renderer)
		}
		if err := s.windows.RegisterFalagardMapping(fm.Type, fm.Target, fm.Renderer, fm.Look); err != nil {
			return err
		}
	}
	s.schemes[sc.Name] = sc
	s.logger.Info("scheme loaded", "scheme", sc.Name,
		"looks", len(sc.LookNFeels), "mappings", len(sc.Mappings), "aliases", len(sc.Aliases))
	return nil
}

// Scheme returns a loaded scheme.
func (s *System) Scheme(name string) (*Scheme, error) {
	sc, ok := s.schemes[name]
	if !ok {
		return nil, guierrors.UnknownObject("gui.System.Scheme", name)
	}
	return sc, nil
}
