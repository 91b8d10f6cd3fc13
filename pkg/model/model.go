// Package model defines the item model abstraction item views display,
// and two implementations: a tree of items and a flat typed list.
//
// Every mutation is bracketed by a "will" and a "did" event so views can
// remap their state. A mutation started from inside a will handler is
// rejected.
package model

import (
	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/event"
)

// EventNamespace is the global event namespace for models.
const EventNamespace = "ItemModel"

// Model event names.
const (
	EventChildrenWillBeAdded    = "ChildrenWillBeAdded"
	EventChildrenAdded          = "ChildrenAdded"
	EventChildrenWillBeRemoved  = "ChildrenWillBeRemoved"
	EventChildrenRemoved        = "ChildrenRemoved"
	EventChildrenDataWillChange = "ChildrenDataWillChange"
	EventChildrenDataChanged    = "ChildrenDataChanged"
)

// Role selects which datum of an item Data returns.
type Role int

const (
	RoleText Role = iota
	RoleIcon
	RoleTooltip
	RoleUser
)

// Index addresses an item. Data is private to the model that made it.
type Index struct {
	Row    int
	Column int
	Data   any
}

// InvalidIndex addresses nothing.
var InvalidIndex = Index{Row: -1, Column: -1}

// IsValid reports whether the index has a position. Row and column 0 are
// valid.
func (i Index) IsValid() bool {
	return i.Row >= 0 && i.Column >= 0
}

// ItemModel is the data source of an item view.
type ItemModel interface {
	IsValidIndex(idx Index) bool
	// MakeIndex returns the index of the child-th child of parent, or
	// InvalidIndex.
	MakeIndex(child int, parent Index) Index
	AreIndicesEqual(a, b Index) bool
	// CompareIndices orders indices in depth-first item order.
	CompareIndices(a, b Index) int
	ParentIndex(idx Index) Index
	// ChildID returns the position of idx among its siblings.
	ChildID(idx Index) int
	RootIndex() Index
	IsRootIndex(idx Index) bool
	ChildCount(parent Index) int
	Data(idx Index, role Role) string
	Events() *event.Set
}

// ModelEventArgs accompanies every model event: Count children starting
// at Start under Parent are affected.
type ModelEventArgs struct {
	event.EventArgs
	Model  ItemModel
	Parent Index
	Start  int
	Count  int
}

// notifier brackets mutations with will/did events.
type notifier struct {
	events *event.Set
	inWill bool
}

func newNotifier() notifier {
	s := event.NewSet()
	s.AddEvents(
		EventChildrenWillBeAdded, EventChildrenAdded,
		EventChildrenWillBeRemoved, EventChildrenRemoved,
		EventChildrenDataWillChange, EventChildrenDataChanged,
	)
	return notifier{events: s}
}

// Events returns the model's event set.
func (n *notifier) Events() *event.Set { return n.events }

func (n *notifier) bracket(op, will, did string, args ModelEventArgs, apply func()) error {
	if n.inWill {
		return guierrors.InvalidRequestf(op, will, "model mutated from inside a will handler")
	}
	func() {
		n.inWill = true
		defer func() { n.inWill = false }()
		willArgs := args
		n.events.FireEvent(will, &willArgs, EventNamespace)
	}()
	apply()
	n.events.FireEvent(did, &args, EventNamespace)
	return nil
}

func (n *notifier) added(op string, m ItemModel, parent Index, start, count int, apply func()) error {
	return n.bracket(op, EventChildrenWillBeAdded, EventChildrenAdded,
		ModelEventArgs{Model: m, Parent: parent, Start: start, Count: count}, apply)
}

func (n *notifier) removed(op string, m ItemModel, parent Index, start, count int, apply func()) error {
	return n.bracket(op, EventChildrenWillBeRemoved, EventChildrenRemoved,
		ModelEventArgs{Model: m, Parent: parent, Start: start, Count: count}, apply)
}

func (n *notifier) changed(op string, m ItemModel, parent Index, start, count int, apply func()) error {
	return n.bracket(op, EventChildrenDataWillChange, EventChildrenDataChanged,
		ModelEventArgs{Model: m, Parent: parent, Start: start, Count: count}, apply)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
