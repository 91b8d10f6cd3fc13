package event

import (
	"math"
	"sort"
)

// Group orders subscriptions within an Event. Lower groups run first.
type Group int

// Ungrouped is the group used by Subscribe. It sorts before every explicit
// group, so ungrouped subscribers always run first.
const Ungrouped Group = math.MinInt

// Args is implemented by every event argument type through embedding
// EventArgs.
type Args interface {
	Base() *EventArgs
}

// EventArgs is the common part of all event arguments.
type EventArgs struct {
	// Handled counts the subscribers that reported handling the event.
	Handled int
}

// Base returns a.
func (a *EventArgs) Base() *EventArgs { return a }

// Subscriber receives an event. Returning true marks the event as handled.
type Subscriber func(Args) bool

type binding struct {
	group Group
	fn    Subscriber
	event *Event
}

// Event is a named, ordered multi-subscriber callback channel.
//
// Event is NOT thread-safe; all use must happen on the GUI thread.
type Event struct {
	name     string
	bindings []*binding
	// pending holds subscriptions made while dispatching. They are merged
	// into bindings when the outermost dispatch returns.
	pending    []*binding
	depth      int
	tombstones bool
}

// New creates an Event with no subscribers.
func New(name string) *Event {
	return &Event{name: name}
}

// Name returns the event name.
func (e *Event) Name() string {
	return e.name
}

// Subscribe adds fn in the Ungrouped group.
func (e *Event) Subscribe(fn Subscriber) *Connection {
	return e.SubscribeGroup(Ungrouped, fn)
}

// SubscribeGroup adds fn in the given group. Subscribers of the same group
// run in subscription order.
func (e *Event) SubscribeGroup(group Group, fn Subscriber) *Connection {
	b := &binding{group: group, fn: fn, event: e}
	if e.depth > 0 {
		e.pending = append(e.pending, b)
	} else {
		e.insert(b)
	}
	return &Connection{b: b}
}

// insert places b after every binding whose group is <= b.group.
func (e *Event) insert(b *binding) {
	i := sort.Search(len(e.bindings), func(i int) bool {
		return e.bindings[i].group > b.group
	})
	e.bindings = append(e.bindings, nil)
	copy(e.bindings[i+1:], e.bindings[i:])
	e.bindings[i] = b
}

// Unsubscribe disconnects c. It is equivalent to c.Disconnect().
func (e *Event) Unsubscribe(c *Connection) {
	if c != nil && c.b != nil && c.b.event == e {
		c.Disconnect()
	}
}

// Invoke calls every live subscriber once, in group then insertion order,
// and returns args. Subscribers added during the call do not run until the
// next Invoke; subscribers disconnected during the call are skipped if they
// have not run yet.
func (e *Event) Invoke(args Args) Args {
	if len(e.bindings) == 0 {
		return args
	}
	base := args.Base()
	e.depth++
	defer e.endDispatch()
	// bindings is never restructured while depth > 0, so indices are stable.
	for i := 0; i < len(e.bindings); i++ {
		b := e.bindings[i]
		if b.fn == nil {
			continue
		}
		if b.fn(args) {
			base.Handled++
		}
	}
	return args
}

func (e *Event) endDispatch() {
	e.depth--
	if e.depth > 0 {
		return
	}
	if e.tombstones {
		live := e.bindings[:0]
		for _, b := range e.bindings {
			if b.fn != nil {
				live = append(live, b)
			}
		}
		clear(e.bindings[len(live):])
		e.bindings = live
		e.tombstones = false
	}
	if len(e.pending) > 0 {
		pending := e.pending
		e.pending = nil
		for _, b := range pending {
			if b.fn != nil {
				e.insert(b)
			}
		}
	}
}

func (e *Event) remove(b *binding) {
	b.fn = nil
	if e.depth > 0 {
		e.tombstones = true
		return
	}
	for i, x := range e.bindings {
		if x == b {
			e.bindings = append(e.bindings[:i], e.bindings[i+1:]...)
			return
		}
	}
}

// Len returns the number of live subscriptions.
func (e *Event) Len() int {
	n := 0
	for _, b := range e.bindings {
		if b.fn != nil {
			n++
		}
	}
	for _, b := range e.pending {
		if b.fn != nil {
			n++
		}
	}
	return n
}

// Dispatching reports whether Invoke is running on this Event.
func (e *Event) Dispatching() bool {
	return e.depth > 0
}

// Clear disconnects every subscription. Every Connection obtained from e
// reports Connected() == false afterwards.
func (e *Event) Clear() {
	for _, b := range e.bindings {
		b.fn = nil
		b.event = nil
	}
	for _, b := range e.pending {
		b.fn = nil
		b.event = nil
	}
	e.pending = nil
	if e.depth == 0 {
		e.bindings = nil
	} else {
		e.tombstones = true
	}
}

// Connection is a capability handle for one subscription.
type Connection struct {
	b *binding
}

// Connected reports whether the subscription is still live.
func (c *Connection) Connected() bool {
	return c != nil && c.b != nil && c.b.fn != nil && c.b.event != nil
}

// Disconnect removes the subscription. Disconnecting an already
// disconnected Connection is a no-op.
func (c *Connection) Disconnect() {
	if !c.Connected() {
		return
	}
	ev := c.b.event
	ev.remove(c.b)
	c.b.event = nil
}
