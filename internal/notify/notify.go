// Package notify keeps a short-lived list of user-facing notices, the
// server-side counterpart of toast messages.
package notify

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/logger"
)

// Notice levels
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelError   = "error"
)

// Defaults
const (
	DefaultCapacity = 50
	// DefaultMaxTTL is the longest selectable notification duration
	DefaultMaxTTL = 5 * time.Second
)

// Notification is one notice
type Notification struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Compact   string    `json:"compact,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SettingsSource provides the current notification preferences
type SettingsSource interface {
	Settings(ctx context.Context) domain.Settings
}

// Center stores recent notices. Entries leave after the player's chosen
// duration, and the cache itself evicts by size and a hard TTL.
type Center struct {
	lru      *expirable.LRU[string, Notification]
	settings SettingsSource
	bus      event.Bus
	now      func() time.Time
}

// NewCenter creates a notification center. settings and bus may be nil.
func NewCenter(capacity int, maxTTL time.Duration, settings SettingsSource, bus event.Bus) *Center {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if maxTTL <= 0 {
		maxTTL = DefaultMaxTTL
	}
	return &Center{
		lru:      expirable.NewLRU[string, Notification](capacity, nil, maxTTL),
		settings: settings,
		bus:      bus,
		now:      time.Now,
	}
}

func (c *Center) preferences(ctx context.Context) domain.Settings {
	if c.settings == nil {
		return domain.Settings{NotificationDuration: domain.DefaultNotificationDuration, NotificationShowName: true}
	}
	return c.settings.Settings(ctx)
}

// Raise records a notice and publishes it on the bus
func (c *Center) Raise(ctx context.Context, level, message, icon string) Notification {
	return c.raise(ctx, level, message, "", icon)
}

func (c *Center) raise(ctx context.Context, level, message, compact, icon string) Notification {
	prefs := c.preferences(ctx)
	if compact != "" && !prefs.NotificationShowName {
		message = compact
	}

	duration := time.Duration(prefs.NotificationDuration) * time.Millisecond
	if duration <= 0 {
		duration = time.Duration(domain.DefaultNotificationDuration) * time.Millisecond
	}

	now := c.now()
	n := Notification{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		Compact:   compact,
		Icon:      icon,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
	}
	c.lru.Add(n.ID, n)

	logger.FromContext(ctx).Debug("Notification raised", "level", level, "message", message)
	if c.bus != nil {
		if err := c.bus.Publish(ctx, event.NewNotificationEvent(level, message, icon, now)); err != nil {
			logger.FromContext(ctx).Warn("Failed to publish notification", "error", err)
		}
	}
	return n
}

// Recent returns unexpired notices, oldest first
func (c *Center) Recent() []Notification {
	now := c.now()
	out := make([]Notification, 0, c.lru.Len())
	for _, n := range c.lru.Values() {
		if n.ExpiresAt.After(now) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Dismiss removes a notice
func (c *Center) Dismiss(id string) bool {
	return c.lru.Remove(id)
}

// Clear drops every notice
func (c *Center) Clear() {
	c.lru.Purge()
}
