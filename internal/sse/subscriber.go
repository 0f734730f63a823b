package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/IdleTracker_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// Subscribe forwards every tracker event type to the hub
func (s *Subscriber) Subscribe(bus event.Bus) {
	event.SubscribeAll(bus, s.forward)
	slog.Info("SSE subscriber registered", "types", len(event.AllTypes))
}

func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "clients", s.hub.ClientCount())
	return nil
}
