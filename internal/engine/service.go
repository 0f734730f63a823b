// Package engine runs the time-accrual simulation against the player store.
package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/leveling"
	"github.com/osse101/IdleTracker_Go/internal/logger"
	"github.com/osse101/IdleTracker_Go/internal/state"
)

// Service defines the accrual engine operations
type Service interface {
	// Accrual
	Accrue(ctx context.Context) (*domain.RewardReport, error)
	AccrueAt(ctx context.Context, now time.Time) (*domain.RewardReport, error)
	Tick(ctx context.Context) error

	// Active action lifecycle
	StartAction(ctx context.Context, skill, action string) (*domain.RewardReport, error)
	StopAction(ctx context.Context) (*domain.RewardReport, error)
	ToggleAction(ctx context.Context, skill, action string) (running bool, report *domain.RewardReport, err error)

	// Direct grants
	ManualEntry(ctx context.Context, skill string, d time.Duration) (*domain.RewardReport, error)
	ManualEntryHours(ctx context.Context, skill string, hours float64) (*domain.RewardReport, error)
	CompleteTask(ctx context.Context, skill, task string) (*domain.RewardReport, error)

	// Reads
	Snapshot(ctx context.Context) (*domain.PlayerState, error)
	Now() time.Time
}

type service struct {
	store   *state.Store
	catalog *catalog.Catalog
	curve   *leveling.Curve
	bus     event.Bus
	now     func() time.Time
}

// NewService creates the engine. now defaults to time.Now and bus may be nil.
func NewService(store *state.Store, cat *catalog.Catalog, curve *leveling.Curve, bus event.Bus, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	if curve == nil {
		curve = leveling.Default()
	}
	return &service{
		store:   store,
		catalog: cat,
		curve:   curve,
		bus:     bus,
		now:     now,
	}
}

func (s *service) Now() time.Time {
	return s.now()
}

// Accrue flushes the active action up to the current time and saves
func (s *service) Accrue(ctx context.Context) (*domain.RewardReport, error) {
	return s.AccrueAt(ctx, s.now())
}

// AccrueAt flushes the active action up to now and saves
func (s *service) AccrueAt(ctx context.Context, now time.Time) (*domain.RewardReport, error) {
	report, err := s.accrue(ctx, now, s.store.Update)
	if err != nil {
		return nil, err
	}
	s.publishReport(ctx, report, event.SourceAccrual, "", now)
	return report, nil
}

// Tick is the scheduled accrual. It does not save; the save job flushes.
func (s *service) Tick(ctx context.Context) error {
	now := s.now()
	report, err := s.accrue(ctx, now, s.store.UpdateDeferred)
	if err != nil {
		return err
	}
	s.publishReport(ctx, report, event.SourceAccrual, "", now)
	return nil
}

type updateFunc func(ctx context.Context, fn func(st *domain.PlayerState) error) error

func (s *service) accrue(ctx context.Context, now time.Time, update updateFunc) (*domain.RewardReport, error) {
	var report *domain.RewardReport
	err := update(ctx, func(st *domain.PlayerState) error {
		dangling := st.ActiveAction
		r, changed := Apply(st, now, s.catalog, s.curve)
		if !changed {
			return state.ErrNoChange
		}
		if r == nil && dangling != nil {
			logger.FromContext(ctx).Warn("Dropped active action missing from catalog",
				"skill", dangling.SkillName, "action", dangling.ActionName)
		}
		report = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to accrue: %w", err)
	}
	return report, nil
}

// transition is what one start/stop mutation did, published once the store
// has committed it.
type transition struct {
	report  *domain.RewardReport
	stopped *domain.ActiveAction
	started bool
	resumed bool
}

// begin makes skill/action active on st. A running action is flushed first;
// if it is the same action it is only flushed.
func (s *service) begin(st *domain.PlayerState, now time.Time, skill, action string) (transition, error) {
	var t transition
	def, err := s.catalog.Action(skill, action)
	if err != nil {
		return t, err
	}
	if !st.IsUnlocked(skill) {
		return t, fmt.Errorf("%w: %s", domain.ErrSkillLocked, skill)
	}
	if level := skillLevel(st, skill); level < def.RequiredLevel {
		return t, fmt.Errorf("%w: %s requires level %d, have %d", domain.ErrActionLocked, action, def.RequiredLevel, level)
	}

	if st.ActiveAction != nil {
		prev := *st.ActiveAction
		t.report, _ = Apply(st, now, s.catalog, s.curve)
		if st.ActiveAction != nil && prev.SkillName == skill && prev.ActionName == action {
			t.resumed = true
			return t, nil
		}
		// Apply drops an action missing from the catalog without a report;
		// nothing was running from the player's point of view.
		if t.report != nil || st.ActiveAction != nil {
			t.stopped = &prev
		}
	}

	nowMS := now.UnixMilli()
	st.ActiveAction = &domain.ActiveAction{
		SkillName:   skill,
		ActionName:  action,
		StartTime:   nowMS,
		LastAccrued: nowMS,
	}
	t.started = true
	return t, nil
}

// halt flushes and clears the active action on st
func (s *service) halt(st *domain.PlayerState, now time.Time) (transition, error) {
	var t transition
	if st.ActiveAction == nil {
		return t, domain.ErrNoActiveAction
	}
	stopped := *st.ActiveAction
	t.stopped = &stopped
	t.report, _ = Apply(st, now, s.catalog, s.curve)
	st.ActiveAction = nil
	return t, nil
}

func (s *service) announce(ctx context.Context, t transition, skill, action string, now time.Time) {
	s.publishReport(ctx, t.report, event.SourceAccrual, "", now)
	if t.resumed {
		return
	}
	if t.stopped != nil {
		s.publish(ctx, event.NewActionEvent(event.ActionStopped, t.stopped.SkillName, t.stopped.ActionName, now))
		if !t.started {
			logger.FromContext(ctx).Info("Action stopped", "skill", t.stopped.SkillName, "action", t.stopped.ActionName)
		}
	}
	if t.started {
		s.publish(ctx, event.NewActionEvent(event.ActionStarted, skill, action, now))
		logger.FromContext(ctx).Info("Action started", "skill", skill, "action", action)
	}
}

// StartAction makes skill/action the active action. A running action is
// flushed first; starting the action that is already running only flushes it.
func (s *service) StartAction(ctx context.Context, skill, action string) (*domain.RewardReport, error) {
	now := s.now()
	var t transition
	err := s.store.Update(ctx, func(st *domain.PlayerState) (err error) {
		t, err = s.begin(st, now, skill, action)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.announce(ctx, t, skill, action, now)
	return t.report, nil
}

// StopAction flushes and clears the active action
func (s *service) StopAction(ctx context.Context) (*domain.RewardReport, error) {
	now := s.now()
	var t transition
	err := s.store.Update(ctx, func(st *domain.PlayerState) (err error) {
		t, err = s.halt(st, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.announce(ctx, t, "", "", now)
	return t.report, nil
}

// ToggleAction stops skill/action when it is running and starts it otherwise.
// The check and the change happen in one store update.
func (s *service) ToggleAction(ctx context.Context, skill, action string) (bool, *domain.RewardReport, error) {
	now := s.now()
	var t transition
	err := s.store.Update(ctx, func(st *domain.PlayerState) (err error) {
		if a := st.ActiveAction; a != nil && a.SkillName == skill && a.ActionName == action {
			t, err = s.halt(st, now)
		} else {
			t, err = s.begin(st, now, skill, action)
		}
		return err
	})
	if err != nil {
		return false, nil, err
	}

	s.announce(ctx, t, skill, action, now)
	return t.started, t.report, nil
}

// ManualEntry converts real time spent outside the tracker into experience
func (s *service) ManualEntry(ctx context.Context, skill string, d time.Duration) (*domain.RewardReport, error) {
	return s.ManualEntryHours(ctx, skill, d.Hours())
}

// ManualEntryHours is ManualEntry with a fractional hour count
func (s *service) ManualEntryHours(ctx context.Context, skill string, hours float64) (*domain.RewardReport, error) {
	if skill == "" || !s.catalog.HasSkill(skill) {
		return nil, fmt.Errorf("%w: unknown skill %q", domain.ErrInvalidInput, skill)
	}
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return nil, fmt.Errorf("%w: duration must be a positive number", domain.ErrInvalidInput)
	}

	now := s.now()
	var report *domain.RewardReport
	err := s.store.Update(ctx, func(st *domain.PlayerState) error {
		xp := s.curve.XPForHours(hours, st.Settings.Mode())
		report = &domain.RewardReport{
			Skill:    skill,
			XPGained: xp,
			LevelUps: grantExperience(st, skill, xp, s.curve),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishReport(ctx, report, event.SourceManual, "", now)
	logger.FromContext(ctx).Info("Manual time entered", "skill", skill, "hours", hours, "xp", report.XPGained)
	return report, nil
}

// CompleteTask claims a one-time task reward
func (s *service) CompleteTask(ctx context.Context, skill, task string) (*domain.RewardReport, error) {
	def, err := s.catalog.Task(skill, task)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var report *domain.RewardReport
	err = s.store.Update(ctx, func(st *domain.PlayerState) error {
		if st.HasCompletedTask(skill, task) {
			return fmt.Errorf("%w: %s", domain.ErrTaskAlreadyCompleted, task)
		}
		if level := skillLevel(st, skill); level < def.RequiredLevel {
			return fmt.Errorf("%w: %s requires level %d, have %d", domain.ErrRequirementNotMet, task, def.RequiredLevel, level)
		}

		if st.CompletedTasks == nil {
			st.CompletedTasks = make(map[string][]string)
		}
		st.CompletedTasks[skill] = append(st.CompletedTasks[skill], task)
		st.Coins += def.Coins

		xp := float64(def.XP)
		report = &domain.RewardReport{
			Skill:       skill,
			XPGained:    xp,
			CoinsGained: def.Coins,
			LevelUps:    grantExperience(st, skill, xp, s.curve),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishReport(ctx, report, event.SourceTask, task, now)
	logger.FromContext(ctx).Info("Task completed", "skill", skill, "task", task)
	return report, nil
}

// Snapshot brings the state up to date and returns a copy of it
func (s *service) Snapshot(ctx context.Context) (*domain.PlayerState, error) {
	now := s.now()
	report, err := s.accrue(ctx, now, s.store.UpdateDeferred)
	if err != nil {
		return nil, err
	}
	s.publishReport(ctx, report, event.SourceAccrual, "", now)
	return s.store.Snapshot(), nil
}

func skillLevel(st *domain.PlayerState, skill string) int {
	if p := st.Skills[skill]; p != nil {
		return p.Level
	}
	return 1
}
