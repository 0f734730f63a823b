package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/IdleTracker_Go/internal/config"
	"github.com/osse101/IdleTracker_Go/internal/event"
)

// InitializeEventSystem creates the in-memory bus and wraps it in a resilient
// publisher. Services publish through the publisher; failed deliveries are
// retried with backoff and end up in the dead-letter file.
func InitializeEventSystem(cfg *config.Config) (*event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	if err := os.MkdirAll(filepath.Dir(cfg.EventDeadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(bus, cfg.EventMaxRetries, cfg.EventRetryDelay, cfg.EventDeadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	reportDeadLetters(cfg.EventDeadLetterPath)

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", cfg.EventMaxRetries,
		"retry_delay", cfg.EventRetryDelay,
		"deadletter_path", cfg.EventDeadLetterPath)

	return publisher, nil
}

// reportDeadLetters warns about events left undelivered by earlier runs
func reportDeadLetters(path string) {
	entries, err := event.ReadDeadLetters(path)
	if err != nil {
		slog.Warn(LogMsgDeadLettersUnreadable, "path", path, "error", err)
		return
	}
	if len(entries) > 0 {
		slog.Warn(LogMsgDeadLettersPending, "path", path, "count", len(entries),
			"oldest", entries[0].Timestamp, "newest", entries[len(entries)-1].Timestamp)
	}
}
