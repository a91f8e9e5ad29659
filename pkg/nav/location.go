package nav

// Action identifies which session operation produced an event.
type Action int

const (
	// ActionPush is emitted when a new location is pushed.
	ActionPush Action = iota

	// ActionReplace is emitted when the current location is replaced.
	ActionReplace

	// ActionPop is emitted when the cursor moves within the history.
	ActionPop
)

// String returns the action name used in logs and wire frames.
func (a Action) String() string {
	switch a {
	case ActionPush:
		return "push"
	case ActionReplace:
		return "replace"
	case ActionPop:
		return "pop"
	default:
		return "unknown"
	}
}

// Location is one history entry.
type Location struct {
	// Path is the location's path, always starting with "/".
	Path string `json:"path"`

	// Query is the query string without the leading "?".
	Query string `json:"query,omitempty"`

	// State is an opaque value carried with the entry. The session
	// stores it as given; sharing mutable state across entries is the
	// caller's concern.
	State any `json:"state,omitempty"`

	// Seq orders entries by creation. Assigned by the session on Push;
	// Replace keeps the sequence of the entry it overwrites.
	Seq uint64 `json:"seq"`
}

// Event carries one committed session change.
type Event struct {
	// Action is the operation that produced the event.
	Action Action

	// Location is the entry at the cursor after the change.
	Location Location

	// Cursor is the cursor position after the change.
	Cursor int

	// Length is the history length after the change.
	Length int
}

// Listener receives session events.
type Listener func(Event)
