package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/repository"
)

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	HandleHealthz().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{"storage reachable", nil, http.StatusOK, `"status":"ok"`},
		{"storage failed", assert.AnError, http.StatusServiceUnavailable, `"saves":"unavailable"`},
		{"storage timeout", context.DeadlineExceeded, http.StatusServiceUnavailable, `"status":"unavailable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saves := &repository.MockSaves{}
			saves.On("Ping", mock.Anything).Return(tt.pingErr)

			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			w := httptest.NewRecorder()
			HandleReadyz(saves).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			saves.AssertExpectations(t)
		})
	}
}

func TestHandleVersion(t *testing.T) {
	t.Setenv("VERSION", "1.2.3")

	w := httptest.NewRecorder()
	HandleVersion(domain.SchemaVersion).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	info := decodeBody[VersionInfo](t, w)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, domain.SchemaVersion, info.SchemaVersion)
	assert.NotEmpty(t, info.GoVersion)
}

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{fmt.Errorf("buy: %w", domain.ErrInsufficientFunds), http.StatusPaymentRequired, ErrMsgNotEnoughCoinsError},
		{fmt.Errorf("%w: chopOak", domain.ErrRequirementNotMet), http.StatusForbidden, ErrMsgRequirementError},
		{domain.ErrTaskAlreadyCompleted, http.StatusConflict, ErrMsgTaskDoneError},
		{fmt.Errorf("%w: %w", domain.ErrInvalidSave, errors.New("missing skills")), http.StatusBadRequest, ErrMsgInvalidSaveError},
		{domain.ErrUnknownSchema, http.StatusUnprocessableEntity, ErrMsgUnknownSchemaError},
		{domain.ErrTooManySkills, http.StatusUnprocessableEntity, ErrMsgTooManySkillsError},
		{fmt.Errorf("save: %w", domain.ErrDatabaseError), http.StatusInternalServerError, ErrMsgGenericServerError},
		{errors.New("disk on fire"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
