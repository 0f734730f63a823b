package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/engine"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/leveling"
	"github.com/osse101/IdleTracker_Go/internal/notify"
	"github.com/osse101/IdleTracker_Go/internal/profile"
	"github.com/osse101/IdleTracker_Go/internal/state"
	"github.com/osse101/IdleTracker_Go/internal/testing/fixtures"
	"github.com/osse101/IdleTracker_Go/internal/validation"
)

// newNoticeRig wires a notification center over the profile service the way
// cmd/app does, on a store whose saves always fail.
func newNoticeRig(t *testing.T) (*state.Store, *notify.Center) {
	t.Helper()

	cat := fixtures.Catalog()
	curve := leveling.Default()
	failing := state.PersistFunc(func(context.Context, *domain.PlayerState) error {
		return errors.New("db down")
	})
	store := state.NewStore(state.NewDefault(cat), failing)
	bus := event.NewMemoryBus()
	schemas, err := validation.NewSchemaValidator()
	require.NoError(t, err)

	eng := engine.NewService(store, cat, curve, bus, fixtures.NewClock().Now)
	prof := profile.NewService(store, cat, curve, eng, bus, schemas)
	center := notify.NewCenter(10, notify.DefaultMaxTTL, prof, bus)

	WatchSaveFailures(store, center)
	return store, center
}

func messages(c *notify.Center) []string {
	var out []string
	for _, n := range c.Recent() {
		out = append(out, n.Message)
	}
	return out
}

func TestWatchSaveFailures_RaisesNotice(t *testing.T) {
	store, center := newNoticeRig(t)

	done := make(chan error, 1)
	go func() {
		done <- store.Update(context.Background(), func(st *domain.PlayerState) error {
			st.Coins = 10
			return nil
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("store update did not return after a failed save")
	}

	assert.Equal(t, []string{NoticeSaveFailed}, messages(center))
	assert.Equal(t, int64(10), store.Snapshot().Coins)
	assert.True(t, store.Dirty())
}

func TestWatchSaveFailures_DeferredFlush(t *testing.T) {
	store, center := newNoticeRig(t)

	require.NoError(t, store.UpdateDeferred(context.Background(), func(st *domain.PlayerState) error {
		st.Coins = 1
		return nil
	}))
	assert.Empty(t, center.Recent())

	assert.True(t, store.FlushIfDirty(context.Background()))
	assert.Equal(t, []string{NoticeSaveFailed}, messages(center))
}

func TestReportRejectedSave(t *testing.T) {
	_, center := newNoticeRig(t)

	ReportRejectedSave(context.Background(), center, errors.New("bad json"))

	require.Len(t, center.Recent(), 1)
	assert.Equal(t, NoticeSaveRejected, center.Recent()[0].Message)
	assert.Equal(t, notify.LevelError, center.Recent()[0].Level)
}
