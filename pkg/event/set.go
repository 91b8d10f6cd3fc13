package event

import (
	"log/slog"
	"sort"

	guierrors "github.com/go-drift/facet/pkg/errors"
)

// Set owns a mapping of event names to Events.
//
// Set is NOT thread-safe; all use must happen on the GUI thread.
type Set struct {
	events map[string]*Event
	muted  bool
	global *Set
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{events: make(map[string]*Event)}
}

// NewGlobalSet creates a Set intended to observe fires of other sets.
// Subscribers use "<namespace>/<event>" names, e.g. "Window/Clicked".
func NewGlobalSet() *Set {
	return NewSet()
}

// SetGlobal attaches (or with nil, detaches) the global observer set.
func (s *Set) SetGlobal(g *Set) {
	if g == s {
		return
	}
	s.global = g
}

// Global returns the attached global set, if any.
func (s *Set) Global() *Set {
	return s.global
}

// AddEvent registers name. It fails with AlreadyExists if name is taken.
func (s *Set) AddEvent(name string) error {
	if _, ok := s.events[name]; ok {
		return guierrors.AlreadyExists("event.Set.AddEvent", name)
	}
	s.events[name] = New(name)
	return nil
}

// AddEvents registers every name that is not already present.
func (s *Set) AddEvents(names ...string) {
	for _, n := range names {
		if _, ok := s.events[n]; !ok {
			s.events[n] = New(n)
		}
	}
}

// RemoveEvent removes name and disconnects its subscribers.
func (s *Set) RemoveEvent(name string) {
	if ev, ok := s.events[name]; ok {
		ev.Clear()
		delete(s.events, name)
	}
}

// RemoveAllEvents removes every event. All connections obtained from this
// set become permanently disconnected.
func (s *Set) RemoveAllEvents() {
	for _, ev := range s.events {
		ev.Clear()
	}
	clear(s.events)
}

// IsEventPresent reports whether name is registered.
func (s *Set) IsEventPresent(name string) bool {
	_, ok := s.events[name]
	return ok
}

// Event returns the named Event, or nil.
func (s *Set) Event(name string) *Event {
	return s.events[name]
}

// EventNames returns the registered names in sorted order.
func (s *Set) EventNames() []string {
	names := make([]string, 0, len(s.events))
	for n := range s.events {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Set) eventFor(name string) *Event {
	ev, ok := s.events[name]
	if !ok {
		ev = New(name)
		s.events[name] = ev
	}
	return ev
}

// SubscribeEvent subscribes fn to name, creating the event if needed.
func (s *Set) SubscribeEvent(name string, fn Subscriber) *Connection {
	return s.eventFor(name).Subscribe(fn)
}

// SubscribeEventGroup subscribes fn to name in group, creating the event if
// needed.
func (s *Set) SubscribeEventGroup(name string, group Group, fn Subscriber) *Connection {
	return s.eventFor(name).SubscribeGroup(group, fn)
}

// UnsubscribeAll disconnects every subscriber of the given events, or of
// all events when no name is given. The events stay registered.
func (s *Set) UnsubscribeAll(names ...string) {
	if len(names) == 0 {
		for _, ev := range s.events {
			ev.Clear()
		}
		return
	}
	for _, n := range names {
		if ev, ok := s.events[n]; ok {
			ev.Clear()
		}
	}
}

// SetMuted enables or disables firing.
func (s *Set) SetMuted(muted bool) {
	s.muted = muted
}

// Muted reports whether firing is suppressed.
func (s *Set) Muted() bool {
	return s.muted
}

// FireEvent fires name with args. When a global set is attached and
// namespace is not empty, the global set is notified first under
// "namespace/name". Firing an unknown name is a no-op locally; it is not
// created. A muted set fires nothing.
func (s *Set) FireEvent(name string, args Args, namespace string) {
	if s.muted {
		return
	}
	if s.global != nil && namespace != "" {
		s.fireGlobal(namespace+"/"+name, args)
	}
	if ev := s.events[name]; ev != nil {
		ev.Invoke(args)
	}
}

// FireRegisteredEvent is FireEvent for names that must exist. It fails
// with UnknownObject when name is not registered.
func (s *Set) FireRegisteredEvent(name string, args Args, namespace string) error {
	if _, ok := s.events[name]; !ok {
		return guierrors.UnknownObject("event.Set.FireRegisteredEvent", name)
	}
	s.FireEvent(name, args, namespace)
	return nil
}

// fireGlobal notifies global observers. A panicking global observer is
// reported and does not prevent the local dispatch.
func (s *Set) fireGlobal(qualified string, args Args) {
	defer guierrors.RecoverWithCallback("event.Set.fireGlobal", func(r any) {
		slog.Warn("global event observer panicked", slog.String("event", qualified), slog.Any("value", r))
	})
	if s.global.muted {
		return
	}
	if ev := s.global.events[qualified]; ev != nil {
		ev.Invoke(args)
	}
}
