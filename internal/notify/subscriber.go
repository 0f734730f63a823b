package notify

import (
	"context"
	"fmt"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/event"
)

// Icons used for generated notices
const (
	IconCelebrate = "🎉"
	IconSparkles  = "✨"
	IconBlocked   = "⛔"
	IconSave      = "💾"
)

// Subscriber turns domain events into notices
type Subscriber struct {
	center  *Center
	catalog *catalog.Catalog
}

// NewSubscriber creates a subscriber
func NewSubscriber(center *Center, cat *catalog.Catalog) *Subscriber {
	return &Subscriber{center: center, catalog: cat}
}

// Subscribe registers the handlers on bus
func (s *Subscriber) Subscribe(bus event.Bus) {
	bus.Subscribe(event.SkillLeveledUp, s.handleLevelUp)
	bus.Subscribe(event.TaskCompleted, s.handleTaskCompleted)
	bus.Subscribe(event.ManualEntry, s.handleManualEntry)
	bus.Subscribe(event.TitlePurchased, s.handleTitlePurchased)
	bus.Subscribe(event.StateImported, s.handleStateImported)
}

func (s *Subscriber) handleLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.LevelUpPayloadV1](evt)
	if err != nil {
		return fmt.Errorf("failed to decode level up payload: %w", err)
	}

	name, icon := p.Skill, ""
	if def, err := s.catalog.Skill(p.Skill); err == nil {
		name, icon = def.DisplayName, def.Icon
	}
	s.center.raise(ctx, LevelSuccess,
		fmt.Sprintf("%s level up! Reached level %d.", name, p.NewLevel),
		fmt.Sprintf("Level Up! %d", p.NewLevel),
		icon)
	return nil
}

func (s *Subscriber) handleTaskCompleted(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.RewardPayloadV1](evt)
	if err != nil {
		return fmt.Errorf("failed to decode task payload: %w", err)
	}

	name := p.TaskID
	if task, err := s.catalog.Task(p.Report.Skill, p.TaskID); err == nil {
		name = task.Name
	}
	s.center.Raise(ctx, LevelSuccess, fmt.Sprintf("Task completed: %s!", name), IconCelebrate)
	return nil
}

func (s *Subscriber) handleManualEntry(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.RewardPayloadV1](evt)
	if err != nil {
		return fmt.Errorf("failed to decode manual entry payload: %w", err)
	}

	name := p.Report.Skill
	if def, err := s.catalog.Skill(name); err == nil {
		name = def.DisplayName
	}
	s.center.Raise(ctx, LevelSuccess, fmt.Sprintf("Added %.0f XP to %s.", p.Report.XPGained, name), IconCelebrate)
	return nil
}

func (s *Subscriber) handleTitlePurchased(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.TitlePayloadV1](evt)
	if err != nil {
		return fmt.Errorf("failed to decode title payload: %w", err)
	}
	s.center.Raise(ctx, LevelSuccess, fmt.Sprintf("Purchased the title: %s", p.TitleName), IconSparkles)
	return nil
}

func (s *Subscriber) handleStateImported(ctx context.Context, evt event.Event) error {
	if m, ok := evt.Payload.(map[string]interface{}); ok && m["reset"] == true {
		s.center.Raise(ctx, LevelInfo, "Game reset.", IconSave)
		return nil
	}
	s.center.Raise(ctx, LevelInfo, "Game Loaded Successfully!", IconSave)
	return nil
}
