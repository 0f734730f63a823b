package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/server"
	"github.com/osse101/IdleTracker_Go/internal/sse"
	"github.com/osse101/IdleTracker_Go/internal/state"
)

// Stopper is anything with a blocking Stop, such as the scheduler and the worker pool
type Stopper interface {
	Stop()
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          Stopper
	WorkerPool         Stopper
	Store              *state.Store
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	Storage            *Storage
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and workers (no more ticks or background saves)
// 3. Final save of the tracker state
// 4. SSE hub and event publisher (flush pending events)
// 5. Save storage
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.Store != nil {
		if err := c.Store.Flush(ctx); err != nil {
			slog.Error(LogMsgFinalSaveFailed, "error", err)
		}
	}

	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.ResilientPublisher != nil {
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Storage != nil {
		if err := c.Storage.Close(); err != nil {
			slog.Error(LogMsgStorageCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
