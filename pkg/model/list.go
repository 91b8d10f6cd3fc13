package model

import (
	"slices"

	guierrors "github.com/go-drift/facet/pkg/errors"
)

// ListModel is a flat model over values of T. Text supplies RoleText.
type ListModel[T any] struct {
	notifier
	items []T
	text  func(T) string
}

// NewListModel returns an empty list whose items display as text(item).
func NewListModel[T any](text func(T) string) *ListModel[T] {
	return &ListModel[T]{notifier: newNotifier(), text: text}
}

// Len returns the number of items.
func (l *ListModel[T]) Len() int { return len(l.items) }

// At returns the i-th item.
func (l *ListModel[T]) At(i int) T { return l.items[i] }

// Items returns a copy of the items.
func (l *ListModel[T]) Items() []T { return slices.Clone(l.items) }

// Append adds v at the end.
func (l *ListModel[T]) Append(v T) error {
	return l.Insert(len(l.items), v)
}

// Insert adds v at position pos.
func (l *ListModel[T]) Insert(pos int, v T) error {
	const op = "model.ListModel.Insert"
	if pos < 0 || pos > len(l.items) {
		return guierrors.InvalidRequestf(op, "", "position %d out of range", pos)
	}
	return l.added(op, l, l.RootIndex(), pos, 1, func() {
		l.items = slices.Insert(l.items, pos, v)
	})
}

// Remove deletes the item at pos.
func (l *ListModel[T]) Remove(pos int) error {
	const op = "model.ListModel.Remove"
	if pos < 0 || pos >= len(l.items) {
		return guierrors.InvalidRequestf(op, "", "position %d out of range", pos)
	}
	return l.removed(op, l, l.RootIndex(), pos, 1, func() {
		l.items = slices.Delete(l.items, pos, pos+1)
	})
}

// Set replaces the item at pos.
func (l *ListModel[T]) Set(pos int, v T) error {
	const op = "model.ListModel.Set"
	if pos < 0 || pos >= len(l.items) {
		return guierrors.InvalidRequestf(op, "", "position %d out of range", pos)
	}
	return l.changed(op, l, l.RootIndex(), pos, 1, func() {
		l.items[pos] = v
	})
}

func (l *ListModel[T]) isRoot(idx Index) bool {
	m, ok := idx.Data.(*ListModel[T])
	return ok && m == l
}

func (l *ListModel[T]) IsValidIndex(idx Index) bool {
	return l.isRoot(idx) || (idx.Data == nil && idx.IsValid() && idx.Row < len(l.items))
}

func (l *ListModel[T]) MakeIndex(child int, parent Index) Index {
	if !l.isRoot(parent) || child < 0 || child >= len(l.items) {
		return InvalidIndex
	}
	return Index{Row: child, Column: 0}
}

func (l *ListModel[T]) AreIndicesEqual(a, b Index) bool {
	return l.IsValidIndex(a) && a == b
}

func (l *ListModel[T]) CompareIndices(a, b Index) int {
	switch {
	case l.isRoot(a) && l.isRoot(b):
		return 0
	case l.isRoot(a):
		return -1
	case l.isRoot(b):
		return 1
	}
	return compareInts(a.Row, b.Row)
}

func (l *ListModel[T]) ParentIndex(idx Index) Index {
	if l.isRoot(idx) || !l.IsValidIndex(idx) {
		return InvalidIndex
	}
	return l.RootIndex()
}

func (l *ListModel[T]) ChildID(idx Index) int {
	if l.isRoot(idx) || !l.IsValidIndex(idx) {
		return -1
	}
	return idx.Row
}

func (l *ListModel[T]) RootIndex() Index { return Index{Row: 0, Column: 0, Data: l} }

func (l *ListModel[T]) IsRootIndex(idx Index) bool { return l.isRoot(idx) }

func (l *ListModel[T]) ChildCount(parent Index) int {
	if l.isRoot(parent) {
		return len(l.items)
	}
	return 0
}

func (l *ListModel[T]) Data(idx Index, role Role) string {
	if role != RoleText || l.isRoot(idx) || !l.IsValidIndex(idx) {
		return ""
	}
	return l.text(l.items[idx.Row])
}

var _ ItemModel = (*ListModel[string])(nil)
