package archive

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/callmeskyy111/wayfind/pkg/nav"
)

// ErrNotFound is returned when a snapshot doesn't exist.
var ErrNotFound = errors.New("archive: snapshot not found")

// ErrInvalidID is returned for snapshot IDs that could not name a
// storage object.
var ErrInvalidID = errors.New("archive: invalid snapshot id")

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// validID reports whether id is safe to use as a file or object name.
func validID(id string) bool {
	return idPattern.MatchString(id) && id != "." && id != ".."
}

// Snapshot captures one navigation session at a point in time.
type Snapshot struct {
	// ID identifies the snapshot within its store.
	ID string `json:"id"`

	// TakenAt is when the snapshot was captured.
	TakenAt time.Time `json:"taken_at"`

	// Cursor is the active entry position at capture time.
	Cursor int `json:"cursor"`

	// Entries is the session history, oldest first.
	Entries []nav.Location `json:"entries"`
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Save persists a snapshot under its ID, replacing any previous
	// snapshot with the same ID.
	Save(ctx context.Context, snap *Snapshot) error

	// Load retrieves a snapshot by ID.
	Load(ctx context.Context, id string) (*Snapshot, error)

	// List returns the IDs of all stored snapshots, sorted.
	List(ctx context.Context) ([]string, error)

	// Delete removes a snapshot. Deleting a missing snapshot is not
	// an error.
	Delete(ctx context.Context, id string) error
}

// Take captures the current state of a session as a snapshot.
func Take(id string, s *nav.Session) *Snapshot {
	entries, cursor := s.History()
	return &Snapshot{
		ID:      id,
		TakenAt: time.Now().UTC(),
		Cursor:  cursor,
		Entries: entries,
	}
}

// Restore rebuilds a session from a snapshot. The entries and cursor
// position are preserved; sequence numbers are reassigned.
func Restore(snap *Snapshot, opts ...nav.Option) (*nav.Session, error) {
	if len(snap.Entries) == 0 {
		return nil, fmt.Errorf("archive: snapshot %q has no entries", snap.ID)
	}
	if snap.Cursor < 0 || snap.Cursor >= len(snap.Entries) {
		return nil, fmt.Errorf("archive: snapshot %q cursor %d out of range", snap.ID, snap.Cursor)
	}

	s := nav.NewSession(snap.Entries[0], opts...)
	for _, e := range snap.Entries[1:] {
		s.Push(e)
	}
	if delta := snap.Cursor - (len(snap.Entries) - 1); delta != 0 {
		s.Go(delta)
	}
	return s, nil
}
