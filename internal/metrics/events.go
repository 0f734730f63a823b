package metrics

import (
	"context"

	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	event.SubscribeAll(bus, e.HandleEvent)
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.RewardAccrued, event.ManualEntry, event.TaskCompleted:
		err = recordReward(evt)
	case event.SkillLeveledUp:
		var p event.LevelUpPayloadV1
		if p, err = event.DecodePayload[event.LevelUpPayloadV1](evt); err == nil {
			LevelUps.WithLabelValues(p.Skill).Inc()
			SkillLevel.WithLabelValues(p.Skill).Set(float64(p.NewLevel))
		}
	case event.ActionStarted, event.ActionStopped:
		var p event.ActionPayloadV1
		if p, err = event.DecodePayload[event.ActionPayloadV1](evt); err == nil {
			if evt.Type == event.ActionStarted {
				ActiveAction.Reset()
				ActiveAction.WithLabelValues(p.Skill, p.Action).Set(1)
			} else {
				ActiveAction.DeleteLabelValues(p.Skill, p.Action)
			}
		}
	case event.TitlePurchased:
		var p event.TitlePayloadV1
		if p, err = event.DecodePayload[event.TitlePayloadV1](evt); err == nil {
			TitlesPurchased.WithLabelValues(p.TitleID).Inc()
			CoinsSpent.Add(float64(p.Cost))
		}
	case event.StateImported:
		ActiveAction.Reset()
	}

	if err != nil {
		log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func recordReward(evt event.Event) error {
	p, err := event.DecodePayload[event.RewardPayloadV1](evt)
	if err != nil {
		return err
	}
	r := p.Report

	if r.XPGained > 0 {
		XPGained.WithLabelValues(r.Skill, p.Source).Add(r.XPGained)
	}
	if r.CoinsGained > 0 {
		CoinsEarned.WithLabelValues(p.Source).Add(float64(r.CoinsGained))
	}
	if r.Completions > 0 {
		ActionCompletions.WithLabelValues(r.Skill, r.Action).Add(float64(r.Completions))
	}
	if evt.Type == event.TaskCompleted {
		TasksCompleted.WithLabelValues(r.Skill).Inc()
	}
	return nil
}
