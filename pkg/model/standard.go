package model

import (
	"slices"

	guierrors "github.com/go-drift/facet/pkg/errors"
)

// Item is a node of a StandardModel.
type Item struct {
	Text    string
	Icon    string
	Tooltip string
	User    map[string]string

	parent   *Item
	children []*Item
}

// NewItem returns a detached item with the given text.
func NewItem(text string) *Item {
	return &Item{Text: text}
}

// Parent returns the parent item; top-level items return the model root.
func (i *Item) Parent() *Item { return i.parent }

// Children returns the child items.
func (i *Item) Children() []*Item { return slices.Clone(i.children) }

// ChildCount returns the number of children.
func (i *Item) ChildCount() int { return len(i.children) }

func (i *Item) row() int {
	if i.parent == nil {
		return 0
	}
	return slices.Index(i.parent.children, i)
}

// path returns the child positions from the root down to i.
func (i *Item) path() []int {
	if i.parent == nil {
		return nil
	}
	return append(i.parent.path(), i.row())
}

// StandardModel is a tree of Items.
type StandardModel struct {
	notifier
	root *Item
}

// NewStandardModel returns an empty model.
func NewStandardModel() *StandardModel {
	return &StandardModel{notifier: newNotifier(), root: &Item{}}
}

// Root returns the invisible root item.
func (m *StandardModel) Root() *Item { return m.root }

// IndexOf returns the index addressing item.
func (m *StandardModel) IndexOf(item *Item) Index {
	if item == nil {
		return InvalidIndex
	}
	return Index{Row: item.row(), Column: 0, Data: item}
}

// ItemAt returns the item idx addresses, or nil.
func (m *StandardModel) ItemAt(idx Index) *Item {
	if !idx.IsValid() {
		return nil
	}
	item, _ := idx.Data.(*Item)
	return item
}

func (m *StandardModel) IsValidIndex(idx Index) bool {
	return m.ItemAt(idx) != nil
}

func (m *StandardModel) MakeIndex(child int, parent Index) Index {
	p := m.ItemAt(parent)
	if p == nil || child < 0 || child >= len(p.children) {
		return InvalidIndex
	}
	return Index{Row: child, Column: 0, Data: p.children[child]}
}

func (m *StandardModel) AreIndicesEqual(a, b Index) bool {
	return m.ItemAt(a) != nil && m.ItemAt(a) == m.ItemAt(b)
}

func (m *StandardModel) CompareIndices(a, b Index) int {
	ia, ib := m.ItemAt(a), m.ItemAt(b)
	if ia == nil || ib == nil {
		return 0
	}
	return slices.Compare(ia.path(), ib.path())
}

func (m *StandardModel) ParentIndex(idx Index) Index {
	item := m.ItemAt(idx)
	if item == nil || item.parent == nil {
		return InvalidIndex
	}
	return m.IndexOf(item.parent)
}

func (m *StandardModel) ChildID(idx Index) int {
	item := m.ItemAt(idx)
	if item == nil {
		return -1
	}
	return item.row()
}

func (m *StandardModel) RootIndex() Index { return m.IndexOf(m.root) }

func (m *StandardModel) IsRootIndex(idx Index) bool { return m.ItemAt(idx) == m.root }

func (m *StandardModel) ChildCount(parent Index) int {
	if p := m.ItemAt(parent); p != nil {
		return len(p.children)
	}
	return 0
}

func (m *StandardModel) Data(idx Index, role Role) string {
	item := m.ItemAt(idx)
	if item == nil {
		return ""
	}
	switch role {
	case RoleText:
		return item.Text
	case RoleIcon:
		return item.Icon
	case RoleTooltip:
		return item.Tooltip
	}
	return ""
}

func (m *StandardModel) parentOrRoot(p *Item) *Item {
	if p == nil {
		return m.root
	}
	return p
}

func (m *StandardModel) owns(item *Item) bool {
	for p := item; p != nil; p = p.parent {
		if p == m.root {
			return true
		}
	}
	return false
}

// AddItem appends item to the top level.
func (m *StandardModel) AddItem(item *Item) error {
	return m.InsertItem(nil, len(m.root.children), item)
}

// InsertItem inserts item as the pos-th child of parent; a nil parent is
// the root.
func (m *StandardModel) InsertItem(parent *Item, pos int, item *Item) error {
	const op = "model.StandardModel.InsertItem"
	parent = m.parentOrRoot(parent)
	switch {
	case item == nil:
		return guierrors.InvalidRequestf(op, "", "nil item")
	case item.parent != nil || item == m.root:
		return guierrors.InvalidRequestf(op, item.Text, "item already belongs to a model")
	case !m.owns(parent):
		return guierrors.InvalidRequestf(op, parent.Text, "parent is not in this model")
	case pos < 0 || pos > len(parent.children):
		return guierrors.InvalidRequestf(op, item.Text, "position %d out of range", pos)
	}
	return m.added(op, m, m.IndexOf(parent), pos, 1, func() {
		parent.children = slices.Insert(parent.children, pos, item)
		item.parent = parent
	})
}

// RemoveItem removes item and its subtree.
func (m *StandardModel) RemoveItem(item *Item) error {
	const op = "model.StandardModel.RemoveItem"
	if item == nil || item == m.root || !m.owns(item) {
		return guierrors.InvalidRequestf(op, "", "item is not in this model")
	}
	return m.RemoveRange(item.parent, item.row(), 1)
}

// RemoveRange removes count children of parent starting at start.
func (m *StandardModel) RemoveRange(parent *Item, start, count int) error {
	const op = "model.StandardModel.RemoveRange"
	parent = m.parentOrRoot(parent)
	if !m.owns(parent) {
		return guierrors.InvalidRequestf(op, parent.Text, "parent is not in this model")
	}
	if start < 0 || count < 0 || start+count > len(parent.children) {
		return guierrors.InvalidRequestf(op, parent.Text, "range [%d,%d) out of bounds", start, start+count)
	}
	if count == 0 {
		return nil
	}
	return m.removed(op, m, m.IndexOf(parent), start, count, func() {
		for _, c := range parent.children[start : start+count] {
			c.parent = nil
		}
		parent.children = slices.Delete(parent.children, start, start+count)
	})
}

// MoveItem moves item to position pos under newParent, counted after the
// item was removed.
func (m *StandardModel) MoveItem(item, newParent *Item, pos int) error {
	const op = "model.StandardModel.MoveItem"
	newParent = m.parentOrRoot(newParent)
	if item == nil || item == m.root || !m.owns(item) || !m.owns(newParent) {
		return guierrors.InvalidRequestf(op, "", "item is not in this model")
	}
	for p := newParent; p != nil; p = p.parent {
		if p == item {
			return guierrors.InvalidRequestf(op, item.Text, "cannot move an item below itself")
		}
	}
	oldParent := item.parent
	limit := len(newParent.children)
	if newParent == oldParent {
		limit--
	}
	if pos < 0 || pos > limit {
		return guierrors.InvalidRequestf(op, item.Text, "position %d out of range", pos)
	}
	if err := m.RemoveRange(oldParent, item.row(), 1); err != nil {
		return err
	}
	return m.InsertItem(newParent, pos, item)
}

// SetItemText replaces the text of item.
func (m *StandardModel) SetItemText(item *Item, text string) error {
	const op = "model.StandardModel.SetItemText"
	if item == nil || item == m.root || !m.owns(item) {
		return guierrors.InvalidRequestf(op, "", "item is not in this model")
	}
	return m.changed(op, m, m.IndexOf(item.parent), item.row(), 1, func() {
		item.Text = text
	})
}

// Clear removes every item.
func (m *StandardModel) Clear() error {
	return m.RemoveRange(m.root, 0, len(m.root.children))
}

var _ ItemModel = (*StandardModel)(nil)
