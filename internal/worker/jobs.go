package worker

import (
	"context"
	"fmt"

	"github.com/osse101/IdleTracker_Go/internal/logger"
)

// Ticker advances accrual without forcing a save
type Ticker interface {
	Tick(ctx context.Context) error
}

// Flusher persists pending state
type Flusher interface {
	FlushIfDirty(ctx context.Context) bool
}

// TickJob runs one accrual tick
type TickJob struct {
	engine Ticker
}

// NewTickJob creates a TickJob
func NewTickJob(engine Ticker) *TickJob {
	return &TickJob{engine: engine}
}

// Name identifies the job in logs and the scheduler
func (j *TickJob) Name() string { return JobNameTick }

// Process implements Job
func (j *TickJob) Process(ctx context.Context) error {
	if err := j.engine.Tick(ctx); err != nil {
		return fmt.Errorf("%s: %w", LogMsgTickFailed, err)
	}
	return nil
}

// SaveJob writes the state if anything changed since the last save
type SaveJob struct {
	store Flusher
}

// NewSaveJob creates a SaveJob
func NewSaveJob(store Flusher) *SaveJob {
	return &SaveJob{store: store}
}

// Name identifies the job in logs and the scheduler
func (j *SaveJob) Name() string { return JobNameSave }

// Process implements Job
func (j *SaveJob) Process(ctx context.Context) error {
	if j.store.FlushIfDirty(ctx) {
		logger.FromContext(ctx).Debug(LogMsgSaveFlushed)
	}
	return nil
}
