package window

import (
	"slices"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/model"
)

// ItemViewBehavior shows the top-level items of a model as rows and keeps
// a selection of rows that follows insertions and removals.
type ItemViewBehavior struct {
	// MultiSelect lets Ctrl-click add rows to the selection.
	MultiSelect bool

	w        *Window
	model    model.ItemModel
	conns    event.ConnectionList
	selected []int
}

func (v *ItemViewBehavior) Attach(w *Window) {
	v.w = w
	w.events.AddEvents(EventSelectionChanged)
}

func (v *ItemViewBehavior) Detach(w *Window) {
	v.conns.DisconnectAll()
	w.events.RemoveEvent(EventSelectionChanged)
	v.w = nil
}

// Model returns the bound model, or nil.
func (v *ItemViewBehavior) Model() model.ItemModel { return v.model }

// SetModel binds m, clearing the selection. Nil unbinds.
func (v *ItemViewBehavior) SetModel(m model.ItemModel) {
	v.conns.DisconnectAll()
	v.model = m
	v.selected = nil
	if m != nil {
		ev := m.Events()
		v.conns.Add(ev.SubscribeEvent(model.EventChildrenAdded, v.onAdded))
		v.conns.Add(ev.SubscribeEvent(model.EventChildrenRemoved, v.onRemoved))
		v.conns.Add(ev.SubscribeEvent(model.EventChildrenDataChanged, v.onChanged))
	}
	v.changed()
}

func (v *ItemViewBehavior) changed() {
	if v.w == nil {
		return
	}
	v.w.Invalidate(false)
	v.w.PerformChildLayout()
}

// ItemCount returns the number of rows.
func (v *ItemViewBehavior) ItemCount() int {
	if v.model == nil {
		return 0
	}
	return v.model.ChildCount(v.model.RootIndex())
}

// ItemText returns the text of row i.
func (v *ItemViewBehavior) ItemText(i int) string {
	if v.model == nil {
		return ""
	}
	return v.model.Data(v.model.MakeIndex(i, v.model.RootIndex()), model.RoleText)
}

// Selected returns the selected rows in ascending order.
func (v *ItemViewBehavior) Selected() []int { return slices.Clone(v.selected) }

// IsSelected reports whether row is selected.
func (v *ItemViewBehavior) IsSelected(row int) bool {
	_, ok := slices.BinarySearch(v.selected, row)
	return ok
}

// SetSelected selects or deselects row.
func (v *ItemViewBehavior) SetSelected(row int, selected bool) error {
	if row < 0 || row >= v.ItemCount() {
		return guierrors.InvalidRequestf("window.ItemViewBehavior.SetSelected", "", "row %d out of range", row)
	}
	i, found := slices.BinarySearch(v.selected, row)
	switch {
	case selected && !found:
		v.selected = slices.Insert(v.selected, i, row)
	case !selected && found:
		v.selected = slices.Delete(v.selected, i, i+1)
	default:
		return nil
	}
	v.selectionChanged()
	return nil
}

// ClearSelection deselects every row.
func (v *ItemViewBehavior) ClearSelection() {
	if len(v.selected) == 0 {
		return
	}
	v.selected = nil
	v.selectionChanged()
}

func (v *ItemViewBehavior) selectionChanged() {
	if v.w == nil {
		return
	}
	v.w.Invalidate(false)
	v.w.fireSimple(EventSelectionChanged)
}

func (v *ItemViewBehavior) topLevel(a event.Args) (*model.ModelEventArgs, bool) {
	args := a.(*model.ModelEventArgs)
	return args, v.model.IsRootIndex(args.Parent)
}

func (v *ItemViewBehavior) onAdded(a event.Args) bool {
	if args, ok := v.topLevel(a); ok {
		for i, row := range v.selected {
			if row >= args.Start {
				v.selected[i] = row + args.Count
			}
		}
	}
	v.changed()
	return false
}

func (v *ItemViewBehavior) onRemoved(a event.Args) bool {
	args, ok := v.topLevel(a)
	if !ok {
		v.changed()
		return false
	}
	end := args.Start + args.Count
	kept := v.selected[:0]
	dropped := false
	for _, row := range v.selected {
		switch {
		case row < args.Start:
			kept = append(kept, row)
		case row >= end:
			kept = append(kept, row-args.Count)
		default:
			dropped = true
		}
	}
	v.selected = kept
	v.changed()
	if dropped {
		v.selectionChanged()
	}
	return false
}

func (v *ItemViewBehavior) onChanged(event.Args) bool {
	v.changed()
	return false
}

// RowHeight returns the height of one row: the line spacing of the
// window font.
func (v *ItemViewBehavior) RowHeight() float32 {
	if v.w != nil {
		if f := v.w.Font(); f != nil && f.LineSpacing() > 0 {
			return f.LineSpacing()
		}
	}
	return 1
}

// RowAt returns the row under the screen point pt, or -1.
func (v *ItemViewBehavior) RowAt(pt graphics.Vec2) int {
	if v.w == nil {
		return -1
	}
	inner := v.w.UnclippedInnerRect()
	if !inner.Contains(pt) {
		return -1
	}
	row := int((pt.Y - inner.Top) / v.RowHeight())
	if row >= v.ItemCount() {
		return -1
	}
	return row
}

func (v *ItemViewBehavior) HandleInput(w *Window, name string, args WindowArgs) bool {
	if name != EventMouseButtonDown {
		return false
	}
	ma := args.(*MouseEventArgs)
	if ma.Button != LeftButton {
		return false
	}
	row := v.RowAt(ma.Position)
	if row < 0 {
		return false
	}
	if v.MultiSelect && ma.Modifiers&ModControl != 0 {
		_ = v.SetSelected(row, !v.IsSelected(row))
		return true
	}
	if len(v.selected) == 1 && v.selected[0] == row {
		return true
	}
	v.selected = []int{row}
	v.selectionChanged()
	return true
}

var _ InputHandler = (*ItemViewBehavior)(nil)
