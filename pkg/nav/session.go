package nav

import (
	"log/slog"
	"sync"
)

// Session owns an ordered history of locations and a cursor into it.
//
// All mutations serialize under an internal mutex, so concurrent call
// sites see one Push, Replace or Go complete before the next begins.
// Listeners run outside the mutex: a listener may call back into the
// session without deadlocking, and each notification carries a snapshot
// taken at commit time.
type Session struct {
	mu      sync.Mutex
	entries []Location
	cursor  int
	nextSeq uint64

	// subMu protects the listener list separately, so subscribing from
	// inside a listener does not contend with a mutation in progress.
	subMu     sync.RWMutex
	subs      []subscription
	nextSubID uint64

	logger *slog.Logger
}

type subscription struct {
	id uint64
	fn Listener
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. nil falls back to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates a session seeded with the initial location at
// cursor 0. An empty initial path becomes "/". The seed entry takes
// sequence 0; the caller's Seq value is ignored.
func NewSession(initial Location, opts ...Option) *Session {
	if initial.Path == "" {
		initial.Path = "/"
	}
	initial.Seq = 0

	s := &Session{
		entries: []Location{initial},
		nextSeq: 1,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "nav")
	return s
}

// Push discards the entries past the cursor, appends loc with the next
// sequence number, moves the cursor to it and emits ActionPush. The
// caller's Seq value is overwritten.
func (s *Session) Push(loc Location) {
	s.mu.Lock()
	loc.Seq = s.nextSeq
	s.nextSeq++

	s.entries = append(s.entries[:s.cursor+1], loc)
	s.cursor = len(s.entries) - 1

	ev := Event{Action: ActionPush, Location: loc, Cursor: s.cursor, Length: len(s.entries)}
	s.mu.Unlock()

	s.logger.Debug("push", "path", loc.Path, "seq", loc.Seq, "cursor", ev.Cursor)
	s.notify(ev)
}

// Replace overwrites the entry at the cursor in place and emits
// ActionReplace. The entry keeps the sequence number it replaces, so
// ordering by Seq is unaffected.
func (s *Session) Replace(loc Location) {
	s.mu.Lock()
	loc.Seq = s.entries[s.cursor].Seq
	s.entries[s.cursor] = loc

	ev := Event{Action: ActionReplace, Location: loc, Cursor: s.cursor, Length: len(s.entries)}
	s.mu.Unlock()

	s.logger.Debug("replace", "path", loc.Path, "seq", loc.Seq, "cursor", ev.Cursor)
	s.notify(ev)
}

// Go moves the cursor by delta and emits ActionPop. A delta that would
// leave the valid range moves nothing and emits nothing, like a browser
// ignoring an out-of-range history jump; Go(0) is likewise silent.
func (s *Session) Go(delta int) {
	s.mu.Lock()
	target := s.cursor + delta
	if target == s.cursor || target < 0 || target >= len(s.entries) {
		s.mu.Unlock()
		return
	}
	s.cursor = target

	ev := Event{Action: ActionPop, Location: s.entries[target], Cursor: target, Length: len(s.entries)}
	s.mu.Unlock()

	s.logger.Debug("go", "delta", delta, "cursor", ev.Cursor, "path", ev.Location.Path)
	s.notify(ev)
}

// Back moves the cursor one entry back.
func (s *Session) Back() {
	s.Go(-1)
}

// Forward moves the cursor one entry forward.
func (s *Session) Forward() {
	s.Go(1)
}

// Subscribe registers a listener and returns its unsubscribe function.
// Listeners are invoked synchronously in registration order, once per
// event, strictly after the change is committed. Unsubscribing twice is
// harmless. A nil listener is ignored.
func (s *Session) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}

	s.subMu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// notify delivers ev to the listeners registered at call time. The list
// is copied first, so listeners may subscribe or unsubscribe during
// delivery; a listener added mid-event first sees the next one.
func (s *Session) notify(ev Event) {
	s.subMu.RLock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.fn(ev)
	}
}

// Current returns the entry at the cursor.
func (s *Session) Current() Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.cursor]
}

// Cursor returns the cursor position.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Length returns the number of history entries.
func (s *Session) Length() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// CanGoBack reports whether the cursor can move back.
func (s *Session) CanGoBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

// CanGoForward reports whether the cursor can move forward.
func (s *Session) CanGoForward() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor < len(s.entries)-1
}

// History returns a copy of the entries and the cursor, read atomically
// so the pair is consistent. The copy shares nothing with the session
// except the opaque State values.
func (s *Session) History() ([]Location, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Location, len(s.entries))
	copy(entries, s.entries)
	return entries, s.cursor
}
