package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/IdleTracker_Go/internal/metrics"
	"github.com/osse101/IdleTracker_Go/internal/notify"
	"github.com/osse101/IdleTracker_Go/internal/state"
)

// WatchSaveFailures counts every failed save and raises a notice for it
func WatchSaveFailures(store *state.Store, center *notify.Center) {
	store.OnPersistError(func(ctx context.Context, _ error) {
		metrics.SaveFailures.Inc()
		center.Raise(ctx, notify.LevelError, NoticeSaveFailed, notify.IconSave)
	})
}

// ReportRejectedSave tells the player their stored save was replaced
func ReportRejectedSave(ctx context.Context, center *notify.Center, loadErr error) {
	slog.Warn(LogMsgSaveRejected, "error", loadErr)
	center.Raise(ctx, notify.LevelError, NoticeSaveRejected, notify.IconBlocked)
}
