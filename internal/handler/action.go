package handler

import (
	"net/http"
	"time"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/engine"
	"github.com/osse101/IdleTracker_Go/internal/logger"
)

// StartActionRequest selects the action to train
type StartActionRequest struct {
	Skill  string `json:"skill" validate:"required,catalogid"`
	Action string `json:"action" validate:"required,catalogid"`
}

// ManualEntryRequest credits time spent outside the tracker. Exactly one of
// Minutes and Hours is set.
type ManualEntryRequest struct {
	Skill   string   `json:"skill" validate:"required,catalogid"`
	Minutes *float64 `json:"minutes,omitempty" validate:"omitempty,gt=0,lte=1440000"`
	Hours   *float64 `json:"hours,omitempty" validate:"omitempty,gt=0,lte=24000"`
}

// CompleteTaskRequest claims a one-time task
type CompleteTaskRequest struct {
	Skill string `json:"skill" validate:"required,catalogid"`
	Task  string `json:"task" validate:"required,catalogid"`
}

// ActionResponse reports the progress credited by an action call
type ActionResponse struct {
	Running bool                 `json:"running"`
	Report  *domain.RewardReport `json:"report,omitempty"`
}

// ActionHandler serves the accrual engine endpoints
type ActionHandler struct {
	engine engine.Service
	notes  Notifier
}

// NewActionHandler creates the engine handlers. notes may be nil.
func NewActionHandler(svc engine.Service, notes Notifier) *ActionHandler {
	return &ActionHandler{engine: svc, notes: notes}
}

// HandleGetState brings progress up to date and returns the save
// @Summary Current state
// @Tags tracker
// @Produce json
// @Success 200 {object} domain.PlayerState
// @Failure 500 {object} ErrorResponse
// @Router /state [get]
func (h *ActionHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	st, err := h.engine.Snapshot(r.Context())
	if err != nil {
		respondServiceError(w, r, h.notes, "Get state", err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// HandleStartAction makes an action the active one
// @Summary Start action
// @Tags tracker
// @Accept json
// @Produce json
// @Param request body StartActionRequest true "Action"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /action/start [post]
func (h *ActionHandler) HandleStartAction(w http.ResponseWriter, r *http.Request) {
	var req StartActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start action"); err != nil {
		return
	}

	report, err := h.engine.StartAction(r.Context(), req.Skill, req.Action)
	if err != nil {
		respondServiceError(w, r, h.notes, "Start action", err)
		return
	}
	respondJSON(w, http.StatusOK, ActionResponse{Running: true, Report: report})
}

// HandleToggleAction stops the action when it is running and starts it otherwise
// @Summary Toggle action
// @Tags tracker
// @Accept json
// @Produce json
// @Param request body StartActionRequest true "Action"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} ErrorResponse
// @Router /action/toggle [post]
func (h *ActionHandler) HandleToggleAction(w http.ResponseWriter, r *http.Request) {
	var req StartActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Toggle action"); err != nil {
		return
	}

	running, report, err := h.engine.ToggleAction(r.Context(), req.Skill, req.Action)
	if err != nil {
		respondServiceError(w, r, h.notes, "Toggle action", err)
		return
	}
	respondJSON(w, http.StatusOK, ActionResponse{Running: running, Report: report})
}

// HandleStopAction flushes and clears the active action
// @Summary Stop action
// @Tags tracker
// @Produce json
// @Success 200 {object} ActionResponse
// @Failure 409 {object} ErrorResponse
// @Router /action/stop [post]
func (h *ActionHandler) HandleStopAction(w http.ResponseWriter, r *http.Request) {
	report, err := h.engine.StopAction(r.Context())
	if err != nil {
		respondServiceError(w, r, h.notes, "Stop action", err)
		return
	}
	respondJSON(w, http.StatusOK, ActionResponse{Running: false, Report: report})
}

// HandleManualEntry converts external time into experience
// @Summary Manual time entry
// @Tags tracker
// @Accept json
// @Produce json
// @Param request body ManualEntryRequest true "Skill and duration"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} ErrorResponse
// @Router /manual [post]
func (h *ActionHandler) HandleManualEntry(w http.ResponseWriter, r *http.Request) {
	var req ManualEntryRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Manual entry"); err != nil {
		return
	}
	if (req.Minutes == nil) == (req.Hours == nil) {
		respondError(w, http.StatusBadRequest, ErrMsgDurationRequired)
		return
	}

	var (
		report *domain.RewardReport
		err    error
	)
	if req.Hours != nil {
		report, err = h.engine.ManualEntryHours(r.Context(), req.Skill, *req.Hours)
	} else {
		report, err = h.engine.ManualEntry(r.Context(), req.Skill, time.Duration(*req.Minutes*float64(time.Minute)))
	}
	if err != nil {
		respondServiceError(w, r, h.notes, "Manual entry", err)
		return
	}

	logger.FromContext(r.Context()).Debug("Manual entry credited", "skill", req.Skill, "xp", report.XPGained)
	respondJSON(w, http.StatusOK, ActionResponse{Report: report})
}

// HandleCompleteTask claims a one-time task reward
// @Summary Complete task
// @Tags tracker
// @Accept json
// @Produce json
// @Param request body CompleteTaskRequest true "Task"
// @Success 200 {object} ActionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /tasks/complete [post]
func (h *ActionHandler) HandleCompleteTask(w http.ResponseWriter, r *http.Request) {
	var req CompleteTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Complete task"); err != nil {
		return
	}

	report, err := h.engine.CompleteTask(r.Context(), req.Skill, req.Task)
	if err != nil {
		respondServiceError(w, r, h.notes, "Complete task", err)
		return
	}
	respondJSON(w, http.StatusOK, ActionResponse{Report: report})
}
