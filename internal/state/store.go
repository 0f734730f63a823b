package state

import (
	"context"
	"errors"
	"sync"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/logger"
)

// Persister writes a committed snapshot. Failures are reported, not rolled back.
type Persister interface {
	Persist(ctx context.Context, st *domain.PlayerState) error
}

// PersistFunc adapts a function to Persister
type PersistFunc func(ctx context.Context, st *domain.PlayerState) error

// Persist calls f
func (f PersistFunc) Persist(ctx context.Context, st *domain.PlayerState) error {
	return f(ctx, st)
}

// Store owns the single player state. All mutations run under one lock:
// the mutation is applied to a copy and committed only if it succeeds, then
// the committed snapshot is persisted before the lock is released. Save
// failures are reported to the OnPersistError callback after unlocking.
type Store struct {
	mu        sync.Mutex
	state     *domain.PlayerState
	persister Persister
	revision  uint64
	dirty     bool
	onError   func(ctx context.Context, err error)
}

// NewStore wraps an initial state. persister may be nil.
func NewStore(initial *domain.PlayerState, persister Persister) *Store {
	return &Store{
		state:     initial,
		persister: persister,
	}
}

// OnPersistError registers a callback for failed saves. It runs after the
// store lock is released, so it may read the Store.
func (s *Store) OnPersistError(fn func(ctx context.Context, err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = fn
}

// Update applies fn atomically. If fn returns an error nothing is committed.
// Returning ErrNoChange commits nothing and skips persistence without error.
func (s *Store) Update(ctx context.Context, fn func(st *domain.PlayerState) error) error {
	return s.apply(ctx, fn, true)
}

// UpdateDeferred is Update without the synchronous save. The state is marked
// dirty and written by the next FlushIfDirty or persisting Update.
func (s *Store) UpdateDeferred(ctx context.Context, fn func(st *domain.PlayerState) error) error {
	return s.apply(ctx, fn, false)
}

func (s *Store) apply(ctx context.Context, fn func(st *domain.PlayerState) error, persist bool) error {
	s.mu.Lock()

	next := s.state.Clone()
	if err := fn(next); err != nil {
		s.mu.Unlock()
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		return err
	}

	s.state = next
	s.revision++
	var failed error
	if persist {
		failed = s.persistLocked(ctx)
	} else {
		s.dirty = true
	}
	s.mu.Unlock()

	s.report(ctx, failed)
	return nil
}

// Replace swaps in a whole new state, as done by imports
func (s *Store) Replace(ctx context.Context, st *domain.PlayerState) {
	s.mu.Lock()
	s.state = st.Clone()
	s.revision++
	failed := s.persistLocked(ctx)
	s.mu.Unlock()

	s.report(ctx, failed)
}

// View runs fn with read access under the lock. fn must not retain st.
func (s *Store) View(fn func(st *domain.PlayerState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() *domain.PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Revision counts committed mutations
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Flush persists the current state regardless of changes
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Persist(ctx, s.state); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// FlushIfDirty persists only when deferred updates are pending.
// It reports whether a save was attempted.
func (s *Store) FlushIfDirty(ctx context.Context) bool {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return false
	}
	failed := s.persistLocked(ctx)
	s.mu.Unlock()

	s.report(ctx, failed)
	return true
}

// Dirty reports whether deferred updates are waiting to be saved
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// persistLocked saves the committed state. Caller holds mu and passes the
// returned error to report once mu is released.
func (s *Store) persistLocked(ctx context.Context) error {
	if s.persister == nil {
		s.dirty = false
		return nil
	}
	if err := s.persister.Persist(ctx, s.state); err != nil {
		s.dirty = true
		logger.FromContext(ctx).Error("Failed to persist state", "error", err, "revision", s.revision)
		return err
	}
	s.dirty = false
	return nil
}

// report hands a failed save to the registered callback. Caller must not hold mu.
func (s *Store) report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	fn := s.onError
	s.mu.Unlock()
	if fn != nil {
		fn(ctx, err)
	}
}
