package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/IdleTracker_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types published by the tracker
const (
	RewardAccrued      Type = domain.EventTypeRewardAccrued
	SkillLeveledUp     Type = domain.EventTypeSkillLeveledUp
	TaskCompleted      Type = domain.EventTypeTaskCompleted
	ManualEntry        Type = domain.EventTypeManualEntry
	ActionStarted      Type = domain.EventTypeActionStarted
	ActionStopped      Type = domain.EventTypeActionStopped
	TitlePurchased     Type = domain.EventTypeTitlePurchased
	TitleEquipped      Type = domain.EventTypeTitleEquipped
	StateImported      Type = domain.EventTypeStateImported
	SettingsUpdated    Type = domain.EventTypeSettingsUpdated
	NotificationRaised Type = domain.EventTypeNotificationRaised
)

// AllTypes lists every event type, used by subscribers that observe everything
var AllTypes = []Type{
	RewardAccrued,
	SkillLeveledUp,
	TaskCompleted,
	ManualEntry,
	ActionStarted,
	ActionStopped,
	TitlePurchased,
	TitleEquipped,
	StateImported,
	SettingsUpdated,
	NotificationRaised,
}

// Typed event payloads for type safety

// RewardPayloadV1 is the payload of reward, manual entry and task events
type RewardPayloadV1 struct {
	Report    domain.RewardReport `json:"report"`
	Source    string              `json:"source"` // "accrual", "manual", "task"
	TaskID    string              `json:"task_id,omitempty"`
	Timestamp int64               `json:"timestamp"`
}

// LevelUpPayloadV1 is the payload of level-up events
type LevelUpPayloadV1 struct {
	Skill     string `json:"skill"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"`
}

// ActionPayloadV1 is the payload of action start/stop events
type ActionPayloadV1 struct {
	Skill     string `json:"skill"`
	Action    string `json:"action"`
	Timestamp int64  `json:"timestamp"`
}

// TitlePayloadV1 is the payload of shop events
type TitlePayloadV1 struct {
	TitleID   string `json:"title_id"`
	TitleName string `json:"title_name"`
	Cost      int64  `json:"cost"`
	Timestamp int64  `json:"timestamp"`
}

// NotificationPayloadV1 is the payload of user-facing notices
type NotificationPayloadV1 struct {
	Level     string `json:"level"` // "info", "success", "error"
	Message   string `json:"message"`
	Icon      string `json:"icon,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// NewRewardEvent wraps a reward report. Source selects the event type.
func NewRewardEvent(report domain.RewardReport, source, taskID string, at time.Time) Event {
	t := RewardAccrued
	switch source {
	case SourceManual:
		t = ManualEntry
	case SourceTask:
		t = TaskCompleted
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: RewardPayloadV1{
			Report:    report,
			Source:    source,
			TaskID:    taskID,
			Timestamp: at.Unix(),
		},
		Metadata: map[string]interface{}{"source": source},
	}
}

// NewLevelUpEvent creates a level-up event
func NewLevelUpEvent(skill string, newLevel int, source string, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SkillLeveledUp,
		Payload: LevelUpPayloadV1{
			Skill:     skill,
			OldLevel:  newLevel - 1,
			NewLevel:  newLevel,
			Source:    source,
			Timestamp: at.Unix(),
		},
		Metadata: map[string]interface{}{"source": source},
	}
}

// NewActionEvent creates an action started or stopped event
func NewActionEvent(t Type, skill, action string, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: ActionPayloadV1{Skill: skill, Action: action, Timestamp: at.Unix()},
	}
}

// NewTitleEvent creates a title purchased or equipped event
func NewTitleEvent(t Type, title domain.TitleDefinition, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: TitlePayloadV1{TitleID: title.ID, TitleName: title.Name, Cost: title.Cost, Timestamp: at.Unix()},
	}
}

// NewNotificationEvent creates a user-facing notice
func NewNotificationEvent(level, message, icon string, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    NotificationRaised,
		Payload: NotificationPayloadV1{Level: level, Message: message, Icon: icon, Timestamp: at.Unix()},
	}
}

// NewSimpleEvent creates an event with an arbitrary payload
func NewSimpleEvent(t Type, payload interface{}) Event {
	return Event{Version: EventSchemaVersion, Type: t, Payload: payload}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish delivers the event to every subscriber synchronously, in
// subscription order. Handler errors are collected, not short-circuited.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes a handler to every known event type
func SubscribeAll(bus Bus, handler Handler) {
	for _, t := range AllTypes {
		bus.Subscribe(t, handler)
	}
}
