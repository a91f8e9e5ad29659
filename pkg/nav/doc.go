// Package nav maintains the logical navigation history of a client.
//
// The session provides:
//   - An ordered history of locations with a cursor
//   - Push, replace and cursor movement with browser-like semantics
//   - Synchronous, ordered, re-entrant-safe listener notification
//   - Monotonic sequence numbers for ordering entries
//
// # Model
//
// A Session owns a list of Location entries and a cursor into it. The
// list is never empty: construction seeds it with one entry. Push
// discards the forward entries past the cursor before appending, the
// way a browser discards its forward stack.
//
// # Events
//
// Every committed change emits one Event to all subscribed listeners,
// synchronously and in registration order. The physical navigation side
// effect (address bar, window history) is just another listener; the
// session only maintains the logical model.
//
//	s := nav.NewSession(nav.Location{Path: "/"})
//	defer s.Subscribe(func(ev nav.Event) {
//	    log.Printf("%s -> %s", ev.Action, ev.Location.Path)
//	})()
//
//	s.Push(nav.Location{Path: "/users/42"})
//	s.Back()
//
// Listeners may call back into the session; state is fully committed
// before any listener runs, so re-entrant pushes observe a consistent
// history.
package nav
