package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/IdleTracker_Go/internal/logger"
)

const (
	readinessTimeout = 2 * time.Second

	statusOK          = "ok"
	statusUnavailable = "unavailable"

	// checkSaves names the save storage probe in readiness responses
	checkSaves = "saves"
)

// HealthResponse is the body of the liveness and readiness probes
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Pinger is a storage backend that can report connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealthz answers as long as the process serves HTTP
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: statusOK})
	}
}

// HandleReadyz pings save storage within readinessTimeout
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(storage Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		started := time.Now()
		err := storage.Ping(ctx)
		elapsed := time.Since(started)

		if err != nil {
			logger.FromContext(r.Context()).Error("Readiness check failed", "check", checkSaves, "elapsed", elapsed, "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: statusUnavailable,
				Checks: map[string]string{checkSaves: statusUnavailable},
			})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{
			Status: statusOK,
			Checks: map[string]string{checkSaves: elapsed.Round(time.Microsecond).String()},
		})
	}
}
