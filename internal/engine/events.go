package engine

import (
	"context"
	"time"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/logger"
)

// publishReport emits the reward event and one event per level gained.
// Events are published after the store lock is released.
func (s *service) publishReport(ctx context.Context, report *domain.RewardReport, source, taskID string, at time.Time) {
	if report == nil || (report.XPGained <= 0 && report.Completions == 0 && source == event.SourceAccrual) {
		return
	}

	s.publish(ctx, event.NewRewardEvent(*report, source, taskID, at))
	for _, lu := range report.LevelUps {
		s.publish(ctx, event.NewLevelUpEvent(lu.Skill, lu.NewLevel, source, at))
	}
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "type", evt.Type, "error", err)
	}
}
