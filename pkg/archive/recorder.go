package archive

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/callmeskyy111/wayfind/pkg/nav"
)

// Recorder tails a navigation session and keeps its snapshot in a
// store up to date. Saves run on a single background goroutine; under
// pressure intermediate snapshots are dropped and the latest wins.
type Recorder struct {
	store   Store
	sess    *nav.Session
	id      string
	logger  *slog.Logger
	actions map[nav.Action]bool

	mu     sync.Mutex
	closed bool

	snaps       chan *Snapshot
	done        chan struct{}
	unsubscribe func()
	closeOnce   sync.Once
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithActions restricts recording to the given actions. Without it,
// every navigation event is recorded.
func WithActions(actions ...nav.Action) RecorderOption {
	return func(r *Recorder) {
		r.actions = make(map[nav.Action]bool, len(actions))
		for _, a := range actions {
			r.actions[a] = true
		}
	}
}

// WithLogger sets the logger for save failures. Nil loggers are ignored.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Record starts persisting the session to the store under the given
// snapshot ID. Close stops recording.
func Record(sess *nav.Session, store Store, id string, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:  store,
		sess:   sess,
		id:     id,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		snaps:  make(chan *Snapshot, 1),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "archive")

	r.unsubscribe = sess.Subscribe(r.observe)
	go r.loop()
	return r
}

// observe runs inside the session's notify path and must not block.
func (r *Recorder) observe(ev nav.Event) {
	if len(r.actions) > 0 && !r.actions[ev.Action] {
		return
	}

	snap := Take(r.id, r.sess)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	select {
	case r.snaps <- snap:
	default:
		// Full: replace the queued snapshot with this one.
		select {
		case <-r.snaps:
		default:
		}
		select {
		case r.snaps <- snap:
		default:
		}
	}
}

func (r *Recorder) loop() {
	for snap := range r.snaps {
		if err := r.store.Save(context.Background(), snap); err != nil {
			r.logger.Error("snapshot save failed", "snapshot", snap.ID, "err", err)
		}
	}
	close(r.done)
}

// Close detaches from the session, flushes any pending snapshot and
// waits for the background save to finish.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		r.unsubscribe()

		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()

		close(r.snaps)
		<-r.done
	})
}
