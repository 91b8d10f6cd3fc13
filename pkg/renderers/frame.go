package renderers

import (
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/render"
	"github.com/go-drift/facet/pkg/skin"
	"github.com/go-drift/facet/pkg/window"
)

// Frame states and areas.
const (
	StateActive   = "Active"
	StateInactive = "Inactive"

	AreaClientWithTitle = "ClientWithTitle"
)

// Frame draws a frame window as Active, Inactive or Disabled. Its inner
// rect leaves room for the title bar while one is shown.
type Frame struct {
	Base
}

// NewFrame creates the renderer registered as "Frame".
func NewFrame() window.WindowRenderer { return &Frame{Base: newBase(NameFrame)} }

func (f *Frame) CreateRenderGeometry(buf render.GeometryBuffer) error {
	state := StateInactive
	switch {
	case f.w.IsEffectiveDisabled():
		state = skin.StateDisabled
	case f.w.IsActive():
		state = StateActive
	}
	return f.renderResolvedState(buf, state, "")
}

func (f *Frame) UnclippedInnerRect() (graphics.Rect, bool) {
	if tb, err := f.w.Child(window.TitlebarName); err == nil && tb.IsVisible() {
		if r, ok := f.namedArea(AreaClientWithTitle); ok {
			return r, true
		}
	}
	return f.namedArea(AreaClient)
}

var _ window.WindowRenderer = (*Frame)(nil)
