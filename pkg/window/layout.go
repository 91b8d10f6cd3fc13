package window

import (
	"io"
	"log/slog"
	"strings"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/resource"
	"github.com/go-drift/facet/pkg/xmlio"
)

// LayoutVersion is the layout document version read and written.
const LayoutVersion = "4"

// LoadLayoutFile loads a layout through the manager's resource provider.
func (m *Manager) LoadLayoutFile(filename, group string) (*Window, error) {
	const op = "window.Manager.LoadLayoutFile"
	if m.provider == nil {
		return nil, guierrors.InvalidRequestf(op, filename, "no resource provider")
	}
	var root *Window
	err := resource.WithData(m.provider, filename, group, func(data []byte) error {
		var err error
		root, err = m.LoadLayout(strings.NewReader(string(data)))
		return err
	})
	if err != nil {
		return nil, err
	}
	m.logger.Debug("layout loaded", slog.String("file", filename), slog.String("root", root.NamePath()))
	return root, nil
}

// LoadLayout builds a window tree from a layout document and returns its
// root. On failure every window created so far is destroyed.
func (m *Manager) LoadLayout(r io.Reader) (*Window, error) {
	h := &layoutHandler{m: m}
	if err := xmlio.Parse(r, h); err != nil {
		h.rollback()
		return nil, err
	}
	if h.root == nil {
		return nil, guierrors.InvalidRequestf("window.Manager.LoadLayout", "", "layout has no root window")
	}
	return h.root, nil
}

type pendingProperty struct {
	name  string
	value strings.Builder
	// attr is set when the value came from the value attribute; element
	// text is then ignored.
	attr bool
}

type layoutHandler struct {
	m       *Manager
	root    *Window
	stack   []*Window
	created []*Window
	prop    *pendingProperty
}

func (h *layoutHandler) top() *Window {
	if len(h.stack) == 0 {
		return nil
	}
	return h.stack[len(h.stack)-1]
}

func (h *layoutHandler) ElementStart(name string, attrs xmlio.Attributes) error {
	const op = "window.Manager.LoadLayout"
	switch name {
	case "GUILayout":
		if v := attrs.String("version", ""); v != LayoutVersion {
			return guierrors.InvalidRequestf(op, v, "unsupported layout version, want %s", LayoutVersion)
		}
	case "Window":
		return h.startWindow(attrs)
	case "AutoWindow":
		path, err := attrs.Required(name, "namePath")
		if err != nil {
			return err
		}
		parent := h.top()
		if parent == nil {
			return guierrors.InvalidRequestf(op, path, "AutoWindow outside a Window")
		}
		w, err := parent.Child(path)
		if err != nil {
			return err
		}
		h.stack = append(h.stack, w)
	case "Property":
		pname, err := attrs.Required(name, "name")
		if err != nil {
			return err
		}
		if h.top() == nil {
			return guierrors.InvalidRequestf(op, pname, "Property outside a Window")
		}
		h.prop = &pendingProperty{name: pname}
		if v, ok := attrs.Lookup("value"); ok {
			h.prop.value.WriteString(v)
			h.prop.attr = true
		}
	case "Event":
		h.m.logger.Warn("layout event bindings are not supported",
			slog.String("event", attrs.String("name", "")), slog.String("function", attrs.String("function", "")))
	default:
		return guierrors.InvalidRequestf(op, name, "unexpected element")
	}
	return nil
}

func (h *layoutHandler) startWindow(attrs xmlio.Attributes) error {
	const op = "window.Manager.LoadLayout"
	typ, err := attrs.Required("Window", "type")
	if err != nil {
		return err
	}
	parent := h.top()
	if parent == nil && h.root != nil {
		return guierrors.InvalidRequestf(op, typ, "layout has more than one root window")
	}
	w, err := h.m.CreateWindow(typ, attrs.String("name", ""))
	if err != nil {
		return err
	}
	h.created = append(h.created, w)
	if parent == nil {
		h.root = w
	} else if err := parent.AddChild(w); err != nil {
		return err
	}
	h.stack = append(h.stack, w)
	return nil
}

func (h *layoutHandler) ElementEnd(name string) error {
	switch name {
	case "Window", "AutoWindow":
		h.stack = h.stack[:len(h.stack)-1]
	case "Property":
		p := h.prop
		h.prop = nil
		if err := h.top().SetProperty(p.name, p.value.String()); err != nil {
			return err
		}
	}
	return nil
}

func (h *layoutHandler) Text(text string) error {
	if h.prop != nil && !h.prop.attr {
		h.prop.value.WriteString(text)
	}
	return nil
}

func (h *layoutHandler) rollback() {
	for i := len(h.created) - 1; i >= 0; i-- {
		h.m.DestroyWindow(h.created[i])
	}
	h.root = nil
}

// WriteLayout writes w and its subtree as a layout document. Only
// writable properties that differ from their defaults are written.
// Windows created by a look are written as AutoWindow elements.
func (m *Manager) WriteLayout(w *Window, out io.Writer) error {
	ser := xmlio.NewSerializer(out, 4)
	ser.OpenTag("GUILayout").Attribute("version", LayoutVersion)
	if err := writeWindow(ser, w); err != nil {
		return err
	}
	ser.CloseTag()
	return ser.Flush()
}

func writeWindow(ser *xmlio.Serializer, w *Window) error {
	var skip []string
	if w.lookChild {
		ser.OpenTag("AutoWindow").Attribute("namePath", w.name)
		// the parent's look positions its components
		skip = []string{"Area"}
	} else {
		ser.OpenTag("Window").Attribute("type", w.typ).Attribute("name", w.name)
	}
	if _, err := w.props.WriteXML(ser, skip...); err != nil {
		return err
	}
	for _, c := range w.children {
		if err := writeWindow(ser, c); err != nil {
			return err
		}
	}
	ser.CloseTag()
	return ser.Err()
}
