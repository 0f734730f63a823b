package bootstrap

import (
	"log/slog"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/metrics"
	"github.com/osse101/IdleTracker_Go/internal/notify"
	"github.com/osse101/IdleTracker_Go/internal/sse"
)

// EventHandlerDependencies holds what the bus subscribers need
type EventHandlerDependencies struct {
	EventBus event.Bus
	Notify   *notify.Center
	Catalog  *catalog.Catalog
	Hub      *sse.Hub // optional
}

// RegisterEventHandlers subscribes the metrics collector, the notification
// subscriber that turns domain events into notices, and the SSE forwarder.
func RegisterEventHandlers(deps EventHandlerDependencies) {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	notify.NewSubscriber(deps.Notify, deps.Catalog).Subscribe(deps.EventBus)
	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub).Subscribe(deps.EventBus)
	}

	slog.Info(LogMsgEventHandlersRegistered, "sse", deps.Hub != nil)
}
