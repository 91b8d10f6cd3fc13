// Package event implements named, ordered multi-subscriber callback channels.
//
// An Event holds subscriptions ordered by Group and, within a group, by
// insertion. Invoke runs every live subscriber exactly once; a Subscriber
// returning true increments the Handled count carried by the arguments, but
// never stops propagation.
//
// Subscriptions are represented by a *Connection. Disconnecting during a
// dispatch is safe: the binding is tombstoned and physically removed when the
// outermost dispatch of that Event returns.
//
//	conn := set.SubscribeEvent("Clicked", func(a event.Args) bool {
//	    conn.Disconnect() // one-shot
//	    return true
//	})
//
// A Set maps names to Events. Windows, models and render targets each own one.
// A Set may be attached to a global Set, which observes every fire under
// "<namespace>/<name>" before the local subscribers run.
package event
