package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/logger"
	"github.com/osse101/IdleTracker_Go/internal/notify"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Notifier surfaces a failed request to the player as a transient notice
type Notifier interface {
	Raise(ctx context.Context, level, message, icon string) notify.Notification
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed operation, maps it to a status code and
// user message, and raises the message as a notice when notes is set.
func respondServiceError(w http.ResponseWriter, r *http.Request, notes Notifier, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}

	if notes != nil {
		notes.Raise(r.Context(), notify.LevelError, msg, "")
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages the player can act on.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrSkillNotFound):
		return http.StatusNotFound, ErrMsgSkillNotFoundError
	case errors.Is(err, domain.ErrActionNotFound):
		return http.StatusNotFound, ErrMsgActionNotFoundError
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, ErrMsgTaskNotFoundError
	case errors.Is(err, domain.ErrTitleNotFound):
		return http.StatusNotFound, ErrMsgTitleNotFoundError
	case errors.Is(err, domain.ErrGroupNotFound):
		return http.StatusNotFound, ErrMsgGroupNotFoundError
	case errors.Is(err, domain.ErrRequirementNotMet):
		return http.StatusForbidden, ErrMsgRequirementError
	case errors.Is(err, domain.ErrActionLocked):
		return http.StatusForbidden, ErrMsgActionLockedError
	case errors.Is(err, domain.ErrSkillLocked):
		return http.StatusForbidden, ErrMsgSkillLockedError
	case errors.Is(err, domain.ErrTaskAlreadyCompleted):
		return http.StatusConflict, ErrMsgTaskDoneError
	case errors.Is(err, domain.ErrTitleAlreadyOwned):
		return http.StatusConflict, ErrMsgTitleOwnedError
	case errors.Is(err, domain.ErrGroupExists):
		return http.StatusConflict, ErrMsgGroupExistsError
	case errors.Is(err, domain.ErrSkillTraining):
		return http.StatusConflict, ErrMsgSkillTrainingError
	case errors.Is(err, domain.ErrNoActiveAction):
		return http.StatusConflict, ErrMsgNoActiveActionError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, ErrMsgNotEnoughCoinsError
	case errors.Is(err, domain.ErrTitleNotOwned):
		return http.StatusForbidden, ErrMsgTitleNotOwnedError
	case errors.Is(err, domain.ErrTooManySkills):
		return http.StatusUnprocessableEntity, ErrMsgTooManySkillsError
	case errors.Is(err, domain.ErrSkillNotUnlocked):
		return http.StatusUnprocessableEntity, ErrMsgSkillNotUnlockedError
	case errors.Is(err, domain.ErrUnknownSchema):
		return http.StatusUnprocessableEntity, ErrMsgUnknownSchemaError
	case errors.Is(err, domain.ErrInvalidSave):
		return http.StatusBadRequest, ErrMsgInvalidSaveError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
