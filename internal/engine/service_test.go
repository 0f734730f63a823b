package engine

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/leveling"
	"github.com/osse101/IdleTracker_Go/internal/state"
	"github.com/osse101/IdleTracker_Go/internal/testing/fixtures"
)

type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) handle(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recorder) ofType(t event.Type) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type harness struct {
	svc   Service
	store *state.Store
	clock *fixtures.Clock
	rec   *recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cat := fixtures.Catalog()
	store := state.NewStore(state.NewDefault(cat), nil)
	clock := fixtures.NewClock()
	bus := event.NewMemoryBus()
	rec := &recorder{}
	event.SubscribeAll(bus, rec.handle)

	return &harness{
		svc:   NewService(store, cat, leveling.Default(), bus, clock.Now),
		store: store,
		clock: clock,
		rec:   rec,
	}
}

func (h *harness) start(t *testing.T, skill, action string) {
	t.Helper()
	_, err := h.svc.StartAction(context.Background(), skill, action)
	require.NoError(t, err)
}

func TestAccrue_ThreeSecondScenario(t *testing.T) {
	h := newHarness(t)
	curve := leveling.Default()
	h.start(t, fixtures.SkillChopping, fixtures.ActionChop)

	h.clock.Advance(3000 * time.Millisecond)
	report, err := h.svc.Accrue(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)

	wantXP := curve.MaxXP() / 1000 * (3000.0 / 3_600_000)
	assert.Equal(t, int64(1), report.Completions)
	assert.Equal(t, int64(5), report.CoinsGained)
	assert.InDelta(t, wantXP, report.XPGained, 1e-9)

	st := h.store.Snapshot()
	assert.Equal(t, int64(5), st.Coins)
	assert.Equal(t, int64(1), st.Stats[fixtures.SkillChopping]["logsChopped"])
	assert.InDelta(t, wantXP, st.Skills[fixtures.SkillChopping].XP, 1e-9)
	assert.Equal(t, fixtures.Epoch.Add(3*time.Second).UnixMilli(), st.ActiveAction.StartTime)
}

func TestAccrue_Idempotent(t *testing.T) {
	h := newHarness(t)
	h.start(t, fixtures.SkillChopping, fixtures.ActionChop)
	h.clock.Advance(7500 * time.Millisecond)

	first, err := h.svc.Accrue(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first)
	after := h.store.Snapshot()
	rev := h.store.Revision()

	second, err := h.svc.Accrue(context.Background())
	require.NoError(t, err)
	assert.Nil(t, second)
	assert.Equal(t, after, h.store.Snapshot())
	assert.Equal(t, rev, h.store.Revision(), "a no-op accrual commits nothing")
}

func TestAccrue_NoActiveActionIsNoop(t *testing.T) {
	h := newHarness(t)
	report, err := h.svc.Accrue(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, report)
	assert.Equal(t, uint64(0), h.store.Revision())
}

func TestAccrue_ClockSkewIsNoop(t *testing.T) {
	h := newHarness(t)
	h.start(t, fixtures.SkillChopping, fixtures.ActionChop)

	report, err := h.svc.AccrueAt(context.Background(), fixtures.Epoch.Add(-time.Minute))
	assert.NoError(t, err)
	assert.Nil(t, report)
}

func TestAccrue_SplitIntervalMatchesSingleInterval(t *testing.T) {
	total := 10 * time.Second
	splits := []time.Duration{time.Millisecond, 2999 * time.Millisecond, 3 * time.Second, 4200 * time.Millisecond, 9999 * time.Millisecond}

	single := newHarness(t)
	single.start(t, fixtures.SkillChopping, fixtures.ActionChop)
	single.clock.Advance(total)
	_, err := single.svc.Accrue(context.Background())
	require.NoError(t, err)
	want := single.store.Snapshot()

	for _, split := range splits {
		t.Run(split.String(), func(t *testing.T) {
			h := newHarness(t)
			h.start(t, fixtures.SkillChopping, fixtures.ActionChop)

			h.clock.Advance(split)
			_, err := h.svc.Accrue(context.Background())
			require.NoError(t, err)
			h.clock.Advance(total - split)
			_, err = h.svc.Accrue(context.Background())
			require.NoError(t, err)

			got := h.store.Snapshot()
			assert.Equal(t, want.Coins, got.Coins)
			assert.Equal(t, want.Stats, got.Stats)
			assert.Equal(t, want.ActiveAction.StartTime, got.ActiveAction.StartTime)
			assert.InDelta(t, want.Skills[fixtures.SkillChopping].XP, got.Skills[fixtures.SkillChopping].XP, 1e-6)
		})
	}
}

func TestAccrue_ExperienceIsTimeProportional(t *testing.T) {
	h := newHarness(t)
	h.start(t, fixtures.SkillReading, fixtures.ActionReadPage)

	const calls = 400
	step := 37 * time.Millisecond
	for i := 0; i < calls; i++ {
		h.clock.Advance(step)
		_, err := h.svc.Accrue(context.Background())
		require.NoError(t, err)
	}

	want := leveling.Default().XPForDuration((calls * step).Milliseconds(), domain.ModeNormal)
	got := h.store.Snapshot()
	assert.InDelta(t, want, got.Skills[fixtures.SkillReading].XP, want*1e-9)
	assert.Equal(t, int64(calls*37/1000), got.Stats[fixtures.SkillReading]["pagesRead"])
}

func TestAccrue_OfflineGapIsUnbounded(t *testing.T) {
	h := newHarness(t)
	h.start(t, fixtures.SkillChopping, fixtures.ActionChop)

	gap := 72*time.Hour + 1234*time.Millisecond
	h.clock.Advance(gap)
	report, err := h.svc.Accrue(context.Background())
	require.NoError(t, err)

	wantCompletions := gap.Milliseconds() / 3000
	assert.Equal(t, wantCompletions, report.Completions)
	assert.Equal(t, wantCompletions*5, report.CoinsGained)
	assert.NotEmpty(t, report.LevelUps)

	st := h.store.Snapshot()
	assert.Equal(t, leveling.Default().LevelFor(st.Skills[fixtures.SkillChopping].XP), st.Skills[fixtures.SkillChopping].Level)
	assert.Len(t, h.rec.ofType(event.SkillLeveledUp), len(report.LevelUps))
}

func TestAccrue_HardModeIsTenTimesSlower(t *testing.T) {
	normal := newHarness(t)
	hard := newHarness(t)
	require.NoError(t, hard.store.Update(context.Background(), func(st *domain.PlayerState) error {
		st.Settings.HardMode = true
		return nil
	}))

	for _, h := range []*harness{normal, hard} {
		h.start(t, fixtures.SkillReading, fixtures.ActionReadPage)
		h.clock.Advance(time.Hour)
		_, err := h.svc.Accrue(context.Background())
		require.NoError(t, err)
	}

	n := normal.store.Snapshot().Skills[fixtures.SkillReading].XP
	d := hard.store.Snapshot().Skills[fixtures.SkillReading].XP
	assert.InDelta(t, n/10, d, 1e-6)
}

func TestAccrue_DanglingActionCleared(t *testing.T) {
	h := newHarness(t)
	st := h.store.Snapshot()
	st.ActiveAction = &domain.ActiveAction{SkillName: "alchemy", ActionName: "brew", StartTime: fixtures.Epoch.UnixMilli()}
	h.store.Replace(context.Background(), st)

	h.clock.Advance(time.Minute)
	report, err := h.svc.Accrue(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, report)
	assert.Nil(t, h.store.Snapshot().ActiveAction)
}

func TestStartAction_MidCycleSwitchFlushesExperienceOnly(t *testing.T) {
	h := newHarness(t)
	h.start(t, fixtures.SkillChopping, fixtures.ActionChop)

	h.clock.Advance(1500 * time.Millisecond)
	report, err := h.svc.StartAction(context.Background(), fixtures.SkillReading, fixtures.ActionReadPage)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Zero(t, report.Completions)

	st := h.store.Snapshot()
	assert.InDelta(t, leveling.Default().XPForDuration(1500, domain.ModeNormal), st.Skills[fixtures.SkillChopping].XP, 1e-9)
	assert.Zero(t, st.Stats[fixtures.SkillChopping]["logsChopped"])
	assert.Zero(t, st.Coins)

	require.NotNil(t, st.ActiveAction)
	assert.Equal(t, fixtures.SkillReading, st.ActiveAction.SkillName)
	assert.Equal(t, h.clock.Now().UnixMilli(), st.ActiveAction.StartTime)

	assert.Len(t, h.rec.ofType(event.ActionStopped), 1)
	assert.Len(t, h.rec.ofType(event.ActionStarted), 2)
}

func TestStartAction_DanglingActionIsNotReportedStopped(t *testing.T) {
	h := newHarness(t)
	st := h.store.Snapshot()
	st.ActiveAction = &domain.ActiveAction{SkillName: "alchemy", ActionName: "brew", StartTime: fixtures.Epoch.UnixMilli()}
	h.store.Replace(context.Background(), st)

	h.clock.Advance(time.Minute)
	report, err := h.svc.StartAction(context.Background(), fixtures.SkillChopping, fixtures.ActionChop)
	require.NoError(t, err)
	assert.Nil(t, report)

	assert.Empty(t, h.rec.ofType(event.ActionStopped))
	assert.Len(t, h.rec.ofType(event.ActionStarted), 1)
	require.NotNil(t, h.store.Snapshot().ActiveAction)
	assert.Equal(t, fixtures.SkillChopping, h.store.Snapshot().ActiveAction.SkillName)
}

func TestStartAction_SameActionKeepsProgress(t *testing.T) {
	h := newHarness(t)
	h.start(t, fixtures.SkillChopping, fixtures.ActionChop)

	h.clock.Advance(4 * time.Second)
	report, err := h.svc.StartAction(context.Background(), fixtures.SkillChopping, fixtures.ActionChop)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.Completions)

	st := h.store.Snapshot()
	assert.Equal(t, fixtures.Epoch.Add(3*time.Second).UnixMilli(), st.ActiveAction.StartTime, "partial cycle is kept")
	assert.Len(t, h.rec.ofType(event.ActionStarted), 1)
}

func TestStartAction_Rejections(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.StartAction(context.Background(), "alchemy", "brew")
	assert.ErrorIs(t, err, domain.ErrSkillNotFound)

	_, err = h.svc.StartAction(context.Background(), fixtures.SkillChopping, "juggle")
	assert.ErrorIs(t, err, domain.ErrActionNotFound)

	_, err = h.svc.StartAction(context.Background(), fixtures.SkillChopping, fixtures.ActionChopOak)
	assert.ErrorIs(t, err, domain.ErrActionLocked)

	require.NoError(t, h.store.Update(context.Background(), func(st *domain.PlayerState) error {
		st.UnlockedSkills = []string{fixtures.SkillReading}
		return nil
	}))
	_, err = h.svc.StartAction(context.Background(), fixtures.SkillChopping, fixtures.ActionChop)
	assert.ErrorIs(t, err, domain.ErrSkillLocked)

	assert.Nil(t, h.store.Snapshot().ActiveAction)
}

func TestStopAction(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.StopAction(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveAction)

	h.start(t, fixtures.SkillReading, fixtures.ActionReadPage)
	h.clock.Advance(2500 * time.Millisecond)

	report, err := h.svc.StopAction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.Completions)

	st := h.store.Snapshot()
	assert.Nil(t, st.ActiveAction)
	assert.Equal(t, int64(2), st.Stats[fixtures.SkillReading]["pagesRead"])
	assert.Len(t, h.rec.ofType(event.ActionStopped), 1)
}

func TestToggleAction(t *testing.T) {
	h := newHarness(t)

	running, _, err := h.svc.ToggleAction(context.Background(), fixtures.SkillChopping, fixtures.ActionChop)
	require.NoError(t, err)
	assert.True(t, running)

	h.clock.Advance(time.Second)
	running, report, err := h.svc.ToggleAction(context.Background(), fixtures.SkillChopping, fixtures.ActionChop)
	require.NoError(t, err)
	assert.False(t, running)
	assert.NotNil(t, report)
	assert.Nil(t, h.store.Snapshot().ActiveAction)
}

func TestToggleAction_ConcurrentTogglesAlternate(t *testing.T) {
	h := newHarness(t)

	const toggles = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		started int
	)
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			running, _, err := h.svc.ToggleAction(context.Background(), fixtures.SkillChopping, fixtures.ActionChop)
			assert.NoError(t, err)
			if running {
				mu.Lock()
				started++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, toggles/2, started)
	assert.Nil(t, h.store.Snapshot().ActiveAction)
	assert.Len(t, h.rec.ofType(event.ActionStarted), toggles/2)
	assert.Len(t, h.rec.ofType(event.ActionStopped), toggles/2)
}

func TestToggleAction_SwitchesFromOtherAction(t *testing.T) {
	h := newHarness(t)
	h.start(t, fixtures.SkillReading, fixtures.ActionReadPage)

	h.clock.Advance(time.Second)
	running, _, err := h.svc.ToggleAction(context.Background(), fixtures.SkillChopping, fixtures.ActionChop)
	require.NoError(t, err)
	assert.True(t, running)

	st := h.store.Snapshot()
	require.NotNil(t, st.ActiveAction)
	assert.Equal(t, fixtures.SkillChopping, st.ActiveAction.SkillName)
	require.Len(t, h.rec.ofType(event.ActionStopped), 1)
}

func TestToggleAction_RejectedStartLeavesStateAlone(t *testing.T) {
	h := newHarness(t)

	running, report, err := h.svc.ToggleAction(context.Background(), fixtures.SkillChopping, fixtures.ActionChopOak)
	assert.ErrorIs(t, err, domain.ErrActionLocked)
	assert.False(t, running)
	assert.Nil(t, report)
	assert.Nil(t, h.store.Snapshot().ActiveAction)
	assert.Empty(t, h.rec.ofType(event.ActionStarted))
}

func TestManualEntry_MatchesTimedAccrual(t *testing.T) {
	manual := newHarness(t)
	_, err := manual.svc.ManualEntry(context.Background(), fixtures.SkillChopping, 60*time.Minute)
	require.NoError(t, err)

	timed := newHarness(t)
	timed.start(t, fixtures.SkillChopping, fixtures.ActionChop)
	timed.clock.Advance(3_600_000 * time.Millisecond)
	_, err = timed.svc.Accrue(context.Background())
	require.NoError(t, err)

	m := manual.store.Snapshot().Skills[fixtures.SkillChopping]
	a := timed.store.Snapshot().Skills[fixtures.SkillChopping]
	assert.InDelta(t, a.XP, m.XP, 1e-9)
	assert.Equal(t, a.Level, m.Level)
	assert.Len(t, manual.rec.ofType(event.ManualEntry), 1)
}

func TestManualEntry_PromotesThroughSeveralLevels(t *testing.T) {
	h := newHarness(t)

	report, err := h.svc.ManualEntryHours(context.Background(), fixtures.SkillReading, 2)
	require.NoError(t, err)
	require.Greater(t, len(report.LevelUps), 1)

	for i, lu := range report.LevelUps {
		assert.Equal(t, i+2, lu.NewLevel, "levels are emitted in order without gaps")
	}
	assert.Len(t, h.rec.ofType(event.SkillLeveledUp), len(report.LevelUps))
}

func TestManualEntry_InvalidInput(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name  string
		skill string
		hours float64
	}{
		{"zero", fixtures.SkillReading, 0},
		{"negative", fixtures.SkillReading, -1},
		{"nan", fixtures.SkillReading, math.NaN()},
		{"inf", fixtures.SkillReading, math.Inf(1)},
		{"empty skill", "", 1},
		{"unknown skill", "alchemy", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.ManualEntryHours(context.Background(), tt.skill, tt.hours)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, uint64(0), h.store.Revision())
}

func TestCompleteTask(t *testing.T) {
	h := newHarness(t)

	report, err := h.svc.CompleteTask(context.Background(), fixtures.SkillChopping, fixtures.TaskPickStick)
	require.NoError(t, err)
	assert.Equal(t, 1300.0, report.XPGained)
	assert.Equal(t, int64(2), report.CoinsGained)

	st := h.store.Snapshot()
	assert.True(t, st.HasCompletedTask(fixtures.SkillChopping, fixtures.TaskPickStick))
	assert.Equal(t, int64(2), st.Coins)
	assert.Equal(t, leveling.Default().LevelFor(1300), st.Skills[fixtures.SkillChopping].Level)
	assert.Len(t, h.rec.ofType(event.TaskCompleted), 1)

	_, err = h.svc.CompleteTask(context.Background(), fixtures.SkillChopping, fixtures.TaskPickStick)
	assert.ErrorIs(t, err, domain.ErrTaskAlreadyCompleted)
	assert.Equal(t, int64(2), h.store.Snapshot().Coins)
}

func TestCompleteTask_Rejections(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.CompleteTask(context.Background(), fixtures.SkillReading, fixtures.TaskSharpenAxe)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = h.svc.CompleteTask(context.Background(), fixtures.SkillChopping, fixtures.TaskSharpenAxe)
	assert.ErrorIs(t, err, domain.ErrRequirementNotMet)
	assert.False(t, h.store.Snapshot().HasCompletedTask(fixtures.SkillChopping, fixtures.TaskSharpenAxe))
}

func TestTick_DefersPersistence(t *testing.T) {
	cat := fixtures.Catalog()
	saves := 0
	store := state.NewStore(state.NewDefault(cat), state.PersistFunc(func(context.Context, *domain.PlayerState) error {
		saves++
		return nil
	}))
	clock := fixtures.NewClock()
	svc := NewService(store, cat, nil, nil, clock.Now)

	_, err := svc.StartAction(context.Background(), fixtures.SkillReading, fixtures.ActionReadPage)
	require.NoError(t, err)
	require.Equal(t, 1, saves)

	for i := 0; i < 5; i++ {
		clock.Advance(250 * time.Millisecond)
		require.NoError(t, svc.Tick(context.Background()))
	}
	assert.Equal(t, 1, saves)
	assert.True(t, store.Dirty())
	assert.Equal(t, int64(1), store.Snapshot().Stats[fixtures.SkillReading]["pagesRead"])
}

func TestSnapshot_AccruesFirst(t *testing.T) {
	h := newHarness(t)
	h.start(t, fixtures.SkillReading, fixtures.ActionReadPage)
	h.clock.Advance(3 * time.Second)

	st, err := h.svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.Coins)
}
