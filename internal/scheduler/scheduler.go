package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/IdleTracker_Go/internal/worker"
)

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

type named interface {
	Name() string
}

// Scheduler feeds jobs to a worker pool at fixed intervals
type Scheduler struct {
	workerPool Enqueuer
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule runs job every interval until Stop. A tick that finds the pool
// queue full is skipped; the next tick catches up since accrual is
// time-based.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	name := "job"
	if n, ok := job.(named); ok {
		name = n.Name()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.workerPool.TryEnqueue(job) {
					slog.Debug(worker.LogMsgQueueFull, "job", name)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.wg.Wait()
	})
}
