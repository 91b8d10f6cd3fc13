package renderers

import (
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/window"
)

// Button draws Enabled<suffix> where the suffix comes from the window's
// behavior (Normal, Hover or Pushed). Missing states fall back to
// EnabledNormal, then Enabled.
type Button struct {
	Base
}

// NewButton creates the renderer registered as "Button".
func NewButton() window.WindowRenderer { return &Button{Base: newBase(NameButton)} }

func (b *Button) CreateRenderGeometry(buf render.GeometryBuffer) error {
	look := b.Look()
	if look == nil {
		return nil
	}
	s, err := look.StateFor(!b.w.IsEffectiveDisabled(), b.w.StateSuffix())
	if err != nil {
		return err
	}
	return s.Render(b.DrawContext(buf))
}

var _ window.WindowRenderer = (*Button)(nil)
