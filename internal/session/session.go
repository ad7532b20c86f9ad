package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dreamware/clipd/internal/client"
	"github.com/dreamware/clipd/internal/clipboard"
)

const (
	// DefaultSaveDelay is the quiet period after the last edit before an
	// auto-save fires. Short enough that a shared clipboard feels live,
	// long enough that typing doesn't produce a request per keystroke.
	DefaultSaveDelay = 500 * time.Millisecond

	// DefaultSaveTimeout bounds a single save request.
	DefaultSaveTimeout = 5 * time.Second
)

// SaveState describes where the session's content stands relative to the
// server.
type SaveState string

const (
	// StateSaved means the server holds the latest local content
	StateSaved SaveState = "saved"
	// StatePending means edits are staged and the debounce timer is armed
	StatePending SaveState = "pending"
	// StateSaving means a save request is in flight
	StateSaving SaveState = "saving"
	// StateError means the last save failed; staged content is retained
	StateError SaveState = "error"
)

// Status is a snapshot of the session's save state for UI surfaces.
type Status struct {
	LastSaved time.Time // When the server last confirmed a save
	Err       error     // Last save error, nil outside StateError
	State     SaveState
}

// SaveFunc persists content to the remote clipboard and returns the stored
// record. Sessions default to client.Update; tests substitute their own.
type SaveFunc func(ctx context.Context, content string) (*clipboard.Clipboard, error)

// Session binds a local editor buffer to one remote clipboard, auto-saving
// on a debounce timer. SetContent stages text and (re)arms the timer;
// after the quiet period the latest staged content is pushed via the
// client. Rapid edits collapse into a single save.
//
// Thread-safe: the editor goroutine, the debounce timer goroutine, and
// status readers may call concurrently.
type Session struct {
	logger      *zap.Logger
	saveFunc    SaveFunc
	deb         *Debouncer
	onStatus    func(Status)
	id          string
	saveTimeout time.Duration

	// saveMu serializes save requests so two in-flight PUTs can't land
	// on the server out of order
	saveMu sync.Mutex

	mu      sync.Mutex
	content string
	remote  *clipboard.Clipboard // Last record confirmed by the server
	status  Status
}

// New binds a session to an already-fetched clipboard record.
func New(c *client.Client, clip *clipboard.Clipboard, delay time.Duration, logger *zap.Logger) *Session {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}

	s := &Session{
		id:          clip.ID,
		logger:      logger,
		deb:         NewDebouncer(delay),
		saveTimeout: DefaultSaveTimeout,
		content:     clip.Content,
		remote:      clip.Clone(),
		status:      Status{State: StateSaved, LastSaved: clip.UpdatedAt},
	}
	s.saveFunc = func(ctx context.Context, content string) (*clipboard.Clipboard, error) {
		return c.Update(ctx, clip.ID, content)
	}
	return s
}

// Open fetches the clipboard with the given ID and binds a session to it.
// Returns client.ErrNotFound if the ID is unknown.
func Open(ctx context.Context, c *client.Client, id string, delay time.Duration, logger *zap.Logger) (*Session, error) {
	clip, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return New(c, clip, delay, logger), nil
}

// Create makes a fresh empty clipboard on the server and binds a session
// to it, retrying creation to ride out server startup.
func Create(ctx context.Context, c *client.Client, delay time.Duration, logger *zap.Logger) (*Session, error) {
	clip, err := c.CreateWithRetry(ctx, "", 10, 400*time.Millisecond)
	if err != nil {
		return nil, err
	}
	return New(c, clip, delay, logger), nil
}

// SetOnStatus sets the callback invoked after every status change.
// The callback runs on whichever goroutine caused the change; keep it
// fast or hand off.
func (s *Session) SetOnStatus(fn func(Status)) {
	s.mu.Lock()
	s.onStatus = fn
	s.mu.Unlock()
}

// SetSaveFunc overrides how content is persisted. Used by tests.
func (s *Session) SetSaveFunc(fn SaveFunc) {
	s.mu.Lock()
	s.saveFunc = fn
	s.mu.Unlock()
}

// ID returns the remote clipboard's identifier.
func (s *Session) ID() string {
	return s.id
}

// Content returns the current local content, which may not be saved yet.
func (s *Session) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// Status returns a snapshot of the session's save state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Remote returns the last record the server confirmed, or nil before any
// save has completed for a session built without one.
func (s *Session) Remote() *clipboard.Clipboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remote == nil {
		return nil
	}
	return s.remote.Clone()
}

// SetContent stages new editor content and arms the debounce timer.
// Setting content identical to the last confirmed save is a no-op, so
// cursor-only events don't generate traffic.
func (s *Session) SetContent(text string) {
	s.mu.Lock()
	if text == s.content && s.status.State == StateSaved {
		s.mu.Unlock()
		return
	}
	s.content = text
	notify := s.setStatusLocked(Status{State: StatePending, LastSaved: s.status.LastSaved})
	s.mu.Unlock()

	notify()
	s.deb.Trigger(s.save)
}

// Flush pushes any staged content immediately, skipping the remaining
// debounce delay. This is the page-leave path: content must not be lost
// because the timer hadn't fired yet.
func (s *Session) Flush() {
	s.deb.Flush()
}

// Close flushes staged content and cancels the timer. The session must
// not be used afterwards.
func (s *Session) Close() {
	s.deb.Flush()
	s.deb.Cancel()
}

// save pushes the latest staged content to the server. Runs on the
// debounce timer goroutine, or on the caller's goroutine via Flush.
func (s *Session) save() {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	content := s.content
	saveFunc := s.saveFunc
	notify := s.setStatusLocked(Status{State: StateSaving, LastSaved: s.status.LastSaved})
	s.mu.Unlock()
	notify()

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	clip, err := saveFunc(ctx, content)
	cancel()

	s.mu.Lock()
	if err != nil {
		s.logger.Warn("auto-save failed", zap.String("id", s.id), zap.Error(err))
		notify = s.setStatusLocked(Status{State: StateError, LastSaved: s.status.LastSaved, Err: err})
		s.mu.Unlock()
		notify()
		return
	}

	s.remote = clip.Clone()

	if s.content != content {
		// Newer edits arrived while this save was in flight. The timer is
		// already re-armed; report pending rather than saved so the UI
		// doesn't claim a state the server doesn't hold.
		notify = s.setStatusLocked(Status{State: StatePending, LastSaved: clip.UpdatedAt})
	} else {
		notify = s.setStatusLocked(Status{State: StateSaved, LastSaved: clip.UpdatedAt})
	}
	s.mu.Unlock()
	notify()
}

// setStatusLocked updates the status and returns the callback delivery,
// to be invoked after releasing s.mu. Delivering outside the lock keeps
// status callbacks ordered and lets them call back into the session.
func (s *Session) setStatusLocked(status Status) func() {
	s.status = status
	fn := s.onStatus
	if fn == nil {
		return func() {}
	}
	return func() { fn(status) }
}
