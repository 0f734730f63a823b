package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/testing/fixtures"
)

type recordingPersister struct {
	mu    sync.Mutex
	saved []*domain.PlayerState
	err   error
}

func (r *recordingPersister) Persist(_ context.Context, st *domain.PlayerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, st.Clone())
	return r.err
}

func TestStore_UpdateCommitsAndPersists(t *testing.T) {
	p := &recordingPersister{}
	s := NewStore(NewDefault(fixtures.Catalog()), p)

	err := s.Update(context.Background(), func(st *domain.PlayerState) error {
		st.Coins = 50
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), s.Snapshot().Coins)
	assert.Equal(t, uint64(1), s.Revision())
	require.Len(t, p.saved, 1)
	assert.Equal(t, int64(50), p.saved[0].Coins)
}

func TestStore_UpdateErrorRollsBack(t *testing.T) {
	p := &recordingPersister{}
	s := NewStore(NewDefault(fixtures.Catalog()), p)
	boom := errors.New("boom")

	err := s.Update(context.Background(), func(st *domain.PlayerState) error {
		st.Coins = 999
		st.Skills[fixtures.SkillChopping].XP = 1e9
		return boom
	})

	assert.ErrorIs(t, err, boom)
	snap := s.Snapshot()
	assert.Equal(t, int64(0), snap.Coins)
	assert.Equal(t, 0.0, snap.Skills[fixtures.SkillChopping].XP)
	assert.Empty(t, p.saved)
	assert.Equal(t, uint64(0), s.Revision())
}

func TestStore_ErrNoChangeSkipsCommit(t *testing.T) {
	p := &recordingPersister{}
	s := NewStore(NewDefault(fixtures.Catalog()), p)

	err := s.Update(context.Background(), func(st *domain.PlayerState) error {
		st.Coins = 5
		return ErrNoChange
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), s.Snapshot().Coins)
	assert.Empty(t, p.saved)
}

func TestStore_PersistFailureReported(t *testing.T) {
	p := &recordingPersister{err: errors.New("disk full")}
	s := NewStore(NewDefault(fixtures.Catalog()), p)

	var reported error
	s.OnPersistError(func(_ context.Context, err error) { reported = err })

	err := s.Update(context.Background(), func(st *domain.PlayerState) error {
		st.Coins = 1
		return nil
	})

	assert.NoError(t, err, "persistence is best effort")
	assert.EqualError(t, reported, "disk full")
	assert.Equal(t, int64(1), s.Snapshot().Coins)
}

func TestStore_PersistFailureCallbackMayReadStore(t *testing.T) {
	p := &recordingPersister{err: errors.New("db down")}
	s := NewStore(NewDefault(fixtures.Catalog()), p)

	var coinsSeen []int64
	s.OnPersistError(func(context.Context, error) {
		s.View(func(st *domain.PlayerState) { coinsSeen = append(coinsSeen, st.Coins) })
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Update(context.Background(), func(st *domain.PlayerState) error {
			st.Coins = 3
			return nil
		})
		s.Replace(context.Background(), s.Snapshot())
		_ = s.UpdateDeferred(context.Background(), func(st *domain.PlayerState) error {
			st.Coins = 4
			return nil
		})
		s.FlushIfDirty(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("store blocked while reporting a failed save")
	}
	assert.Equal(t, []int64{3, 3, 4}, coinsSeen)
	assert.True(t, s.Dirty())
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	s := NewStore(NewDefault(fixtures.Catalog()), nil)

	snap := s.Snapshot()
	snap.Coins = 1000
	snap.Skills[fixtures.SkillChopping].Level = 50

	s.View(func(st *domain.PlayerState) {
		assert.Equal(t, int64(0), st.Coins)
		assert.Equal(t, 1, st.Skills[fixtures.SkillChopping].Level)
	})
}

func TestStore_ReplaceAndFlush(t *testing.T) {
	p := &recordingPersister{}
	s := NewStore(NewDefault(fixtures.Catalog()), p)

	next := NewDefault(fixtures.Catalog())
	next.Coins = 3
	s.Replace(context.Background(), next)
	next.Coins = 4

	assert.Equal(t, int64(3), s.Snapshot().Coins)
	require.NoError(t, s.Flush(context.Background()))
	assert.Len(t, p.saved, 2)
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := NewStore(NewDefault(fixtures.Catalog()), nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(context.Background(), func(st *domain.PlayerState) error {
				st.Coins++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), s.Snapshot().Coins)
}

func TestStore_DeferredUpdatesFlushOnce(t *testing.T) {
	p := &recordingPersister{}
	s := NewStore(NewDefault(fixtures.Catalog()), p)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.UpdateDeferred(context.Background(), func(st *domain.PlayerState) error {
			st.Coins++
			return nil
		}))
	}

	assert.Empty(t, p.saved)
	assert.True(t, s.Dirty())

	assert.True(t, s.FlushIfDirty(context.Background()))
	assert.False(t, s.FlushIfDirty(context.Background()))
	require.Len(t, p.saved, 1)
	assert.Equal(t, int64(3), p.saved[0].Coins)
	assert.False(t, s.Dirty())
}

func TestStore_FailedFlushStaysDirty(t *testing.T) {
	p := &recordingPersister{err: errors.New("locked")}
	s := NewStore(NewDefault(fixtures.Catalog()), p)

	require.NoError(t, s.UpdateDeferred(context.Background(), func(st *domain.PlayerState) error {
		st.Coins = 9
		return nil
	}))

	assert.True(t, s.FlushIfDirty(context.Background()))
	assert.True(t, s.Dirty(), "a failed save is retried on the next flush")
}
