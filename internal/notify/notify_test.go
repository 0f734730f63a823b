package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/testing/fixtures"
)

type fixedSettings struct{ s domain.Settings }

func (f fixedSettings) Settings(context.Context) domain.Settings { return f.s }

func newCenter(settings SettingsSource, bus event.Bus) (*Center, *fixtures.Clock) {
	clock := fixtures.NewClock()
	c := NewCenter(10, time.Minute, settings, bus)
	c.now = clock.Now
	return c, clock
}

func TestCenter_RaiseAndExpire(t *testing.T) {
	c, clock := newCenter(fixedSettings{domain.Settings{NotificationDuration: 2000, NotificationShowName: true}}, nil)

	n := c.Raise(context.Background(), LevelInfo, "hello", "")
	assert.Len(t, n.ID, 36)
	assert.Equal(t, fixtures.Epoch.Add(2*time.Second), n.ExpiresAt)
	require.Len(t, c.Recent(), 1)

	clock.Advance(1999 * time.Millisecond)
	assert.Len(t, c.Recent(), 1)
	clock.Advance(time.Millisecond)
	assert.Empty(t, c.Recent())
}

func TestCenter_OrderAndDismiss(t *testing.T) {
	c, clock := newCenter(nil, nil)

	first := c.Raise(context.Background(), LevelInfo, "first", "")
	clock.Advance(time.Millisecond)
	c.Raise(context.Background(), LevelError, "second", IconBlocked)

	recent := c.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "first", recent[0].Message)
	assert.Equal(t, "second", recent[1].Message)

	assert.True(t, c.Dismiss(first.ID))
	assert.False(t, c.Dismiss(first.ID))
	assert.Len(t, c.Recent(), 1)

	c.Clear()
	assert.Empty(t, c.Recent())
}

func TestCenter_CapacityBounded(t *testing.T) {
	c, _ := newCenter(nil, nil)
	for i := 0; i < 25; i++ {
		c.Raise(context.Background(), LevelInfo, "spam", "")
	}
	assert.Len(t, c.Recent(), 10)
}

func TestCenter_PublishesNotificationEvent(t *testing.T) {
	bus := event.NewMemoryBus()
	var got []event.Event
	bus.Subscribe(event.NotificationRaised, func(_ context.Context, evt event.Event) error {
		got = append(got, evt)
		return nil
	})

	c, _ := newCenter(nil, bus)
	c.Raise(context.Background(), LevelError, "Save failed", IconBlocked)

	require.Len(t, got, 1)
	payload, err := event.DecodePayload[event.NotificationPayloadV1](got[0])
	require.NoError(t, err)
	assert.Equal(t, "Save failed", payload.Message)
	assert.Equal(t, LevelError, payload.Level)
}

func TestSubscriber_LevelUpMessages(t *testing.T) {
	tests := []struct {
		name     string
		showName bool
		want     string
	}{
		{"full", true, "Chopping level up! Reached level 4."},
		{"compact", false, "Level Up! 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := event.NewMemoryBus()
			c, _ := newCenter(fixedSettings{domain.Settings{NotificationDuration: 3000, NotificationShowName: tt.showName}}, nil)
			NewSubscriber(c, fixtures.Catalog()).Subscribe(bus)

			require.NoError(t, bus.Publish(context.Background(), event.NewLevelUpEvent(fixtures.SkillChopping, 4, event.SourceAccrual, fixtures.Epoch)))

			recent := c.Recent()
			require.Len(t, recent, 1)
			assert.Equal(t, tt.want, recent[0].Message)
		})
	}
}

func TestSubscriber_DomainEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	c, _ := newCenter(nil, nil)
	NewSubscriber(c, fixtures.Catalog()).Subscribe(bus)
	ctx := context.Background()

	report := domain.RewardReport{Skill: fixtures.SkillChopping, XPGained: 1300, CoinsGained: 2}
	require.NoError(t, bus.Publish(ctx, event.NewRewardEvent(report, event.SourceTask, fixtures.TaskPickStick, fixtures.Epoch)))
	require.NoError(t, bus.Publish(ctx, event.NewTitleEvent(event.TitlePurchased, domain.TitleDefinition{ID: "badge", Name: "The Badge"}, fixtures.Epoch)))
	require.NoError(t, bus.Publish(ctx, event.NewSimpleEvent(event.StateImported, map[string]interface{}{"reset": true})))
	require.NoError(t, bus.Publish(ctx, event.NewSimpleEvent(event.StateImported, "odd payload")))

	var messages []string
	for _, n := range c.Recent() {
		messages = append(messages, n.Message)
	}
	assert.Equal(t, []string{
		"Task completed: Pick a stick!",
		"Purchased the title: The Badge",
		"Game reset.",
		"Game Loaded Successfully!",
	}, messages)
}

func TestCenter_ConcurrentRaise(t *testing.T) {
	c := NewCenter(100, time.Minute, nil, nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Raise(context.Background(), LevelInfo, "x", "")
		}()
	}
	wg.Wait()
	assert.Len(t, c.Recent(), 20)
}
