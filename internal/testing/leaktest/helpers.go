// Package leaktest checks that background goroutines started by a test have
// exited by the time it finishes.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = time.Second
	pollInterval  = 10 * time.Millisecond
)

// GoroutineChecker records a baseline goroutine count
type GoroutineChecker struct {
	t        testing.TB
	baseline int
	timeout  time.Duration
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	return &GoroutineChecker{t: t, baseline: settledCount(), timeout: settleTimeout}
}

// Check fails the test unless the goroutine count drops back to within
// tolerance of the baseline before the settle timeout. Goroutines that are
// shutting down get until the deadline to exit.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(g.timeout)
	current := runtime.NumGoroutine()
	for current-g.baseline > tolerance && time.Now().Before(deadline) {
		time.Sleep(pollInterval)
		current = runtime.NumGoroutine()
	}

	if leaked := current - g.baseline; leaked > tolerance {
		buf := make([]byte, 1<<16)
		n := runtime.Stack(buf, true)
		g.t.Errorf("goroutine leak: baseline=%d now=%d tolerance=%d\n%s",
			g.baseline, current, tolerance, buf[:n])
	}
}

// settledCount yields so goroutines from earlier tests can finish first
func settledCount() int {
	runtime.Gosched()
	time.Sleep(pollInterval)
	return runtime.NumGoroutine()
}
