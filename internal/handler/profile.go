package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/IdleTracker_Go/internal/logger"
	"github.com/osse101/IdleTracker_Go/internal/profile"
)

// exportFilename is the download name of an exported save
const exportFilename = "idle-tracker-save.json"

// SkillRequest names a skill
type SkillRequest struct {
	Skill string `json:"skill" validate:"required,catalogid"`
}

// GroupRequest names a skill group
type GroupRequest struct {
	Name string `json:"name" validate:"required,max=32"`
}

// AssignSkillRequest moves a skill into a group. An empty group ungroups it.
type AssignSkillRequest struct {
	Skill string `json:"skill" validate:"required,catalogid"`
	Group string `json:"group" validate:"max=32"`
}

// UnlockedSkillsResponse lists unlocked skills in catalog order
type UnlockedSkillsResponse struct {
	UnlockedSkills []string `json:"unlocked_skills"`
}

// CollapsedResponse reports a group's sidebar state
type CollapsedResponse struct {
	Group     string `json:"group"`
	Collapsed bool   `json:"collapsed"`
}

// ProfileHandler serves settings, skill management and save transfer
type ProfileHandler struct {
	profile profile.Service
	notes   Notifier
}

// NewProfileHandler creates the profile handlers. notes may be nil.
func NewProfileHandler(svc profile.Service, notes Notifier) *ProfileHandler {
	return &ProfileHandler{profile: svc, notes: notes}
}

// HandleGetSettings returns the current settings
// @Summary Get settings
// @Tags profile
// @Produce json
// @Success 200 {object} domain.Settings
// @Router /settings [get]
func (h *ProfileHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.profile.Settings(r.Context()))
}

// HandleUpdateSettings applies a partial settings patch
// @Summary Update settings
// @Tags profile
// @Accept json
// @Produce json
// @Param request body profile.SettingsPatch true "Changed settings"
// @Success 200 {object} domain.Settings
// @Failure 400 {object} ErrorResponse
// @Router /settings [put]
func (h *ProfileHandler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch profile.SettingsPatch
	if err := DecodeAndValidateRequest(r, w, &patch, "Update settings"); err != nil {
		return
	}
	if patch.Empty() {
		respondError(w, http.StatusBadRequest, ErrMsgEmptySettingsPatch)
		return
	}

	settings, err := h.profile.UpdateSettings(r.Context(), patch)
	if err != nil {
		respondServiceError(w, r, h.notes, "Update settings", err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// HandleUnlockSkill adds a skill to the unlocked list
// @Summary Unlock skill
// @Tags skills
// @Accept json
// @Produce json
// @Param request body SkillRequest true "Skill"
// @Success 200 {object} UnlockedSkillsResponse
// @Failure 422 {object} ErrorResponse
// @Router /skills/unlock [post]
func (h *ProfileHandler) HandleUnlockSkill(w http.ResponseWriter, r *http.Request) {
	var req SkillRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Unlock skill"); err != nil {
		return
	}

	unlocked, err := h.profile.UnlockSkill(r.Context(), req.Skill)
	if err != nil {
		respondServiceError(w, r, h.notes, "Unlock skill", err)
		return
	}
	respondJSON(w, http.StatusOK, UnlockedSkillsResponse{UnlockedSkills: unlocked})
}

// HandleLockSkill removes a skill from the unlocked list
// @Summary Lock skill
// @Tags skills
// @Accept json
// @Produce json
// @Param request body SkillRequest true "Skill"
// @Success 200 {object} UnlockedSkillsResponse
// @Failure 409 {object} ErrorResponse
// @Router /skills/lock [post]
func (h *ProfileHandler) HandleLockSkill(w http.ResponseWriter, r *http.Request) {
	var req SkillRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Lock skill"); err != nil {
		return
	}

	unlocked, err := h.profile.LockSkill(r.Context(), req.Skill)
	if err != nil {
		respondServiceError(w, r, h.notes, "Lock skill", err)
		return
	}
	respondJSON(w, http.StatusOK, UnlockedSkillsResponse{UnlockedSkills: unlocked})
}

// HandleCreateGroup adds an empty skill group
// @Summary Create group
// @Tags groups
// @Accept json
// @Produce json
// @Param request body GroupRequest true "Group"
// @Success 201 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /groups [post]
func (h *ProfileHandler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req GroupRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create group"); err != nil {
		return
	}

	if err := h.profile.CreateGroup(r.Context(), req.Name); err != nil {
		respondServiceError(w, r, h.notes, "Create group", err)
		return
	}
	respondJSON(w, http.StatusCreated, SuccessResponse{Message: MsgGroupCreated})
}

// HandleDeleteGroup removes a group; its skills become ungrouped
// @Summary Delete group
// @Tags groups
// @Produce json
// @Param name path string true "Group name"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /groups/{name} [delete]
func (h *ProfileHandler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.profile.DeleteGroup(r.Context(), name); err != nil {
		respondServiceError(w, r, h.notes, "Delete group", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGroupDeleted})
}

// HandleAssignSkill moves a skill into a group
// @Summary Assign skill to group
// @Tags groups
// @Accept json
// @Produce json
// @Param request body AssignSkillRequest true "Assignment"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /groups/assign [post]
func (h *ProfileHandler) HandleAssignSkill(w http.ResponseWriter, r *http.Request) {
	var req AssignSkillRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Assign skill"); err != nil {
		return
	}

	if err := h.profile.AssignSkill(r.Context(), req.Skill, req.Group); err != nil {
		respondServiceError(w, r, h.notes, "Assign skill", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSkillAssigned})
}

// HandleToggleGroup flips a group's collapsed state
// @Summary Toggle group
// @Tags groups
// @Produce json
// @Param name path string true "Group name"
// @Success 200 {object} CollapsedResponse
// @Failure 404 {object} ErrorResponse
// @Router /groups/{name}/toggle [post]
func (h *ProfileHandler) HandleToggleGroup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	collapsed, err := h.profile.ToggleGroupCollapsed(r.Context(), name)
	if err != nil {
		respondServiceError(w, r, h.notes, "Toggle group", err)
		return
	}
	respondJSON(w, http.StatusOK, CollapsedResponse{Group: name, Collapsed: collapsed})
}

// HandleExport downloads the save document
// @Summary Export save
// @Tags saves
// @Produce json
// @Success 200 {object} domain.PlayerState
// @Router /export [get]
func (h *ProfileHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.profile.Export(r.Context())
	if err != nil {
		respondServiceError(w, r, h.notes, "Export", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.FromContext(r.Context()).Error("Failed to write export", "error", err)
	}
}

// HandleImport replaces the save with the uploaded document
// @Summary Import save
// @Tags saves
// @Accept json
// @Produce json
// @Param request body domain.PlayerState true "Save document"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /import [post]
func (h *ProfileHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Failed to read import body", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgReadBodyFailed)
		return
	}

	st, err := h.profile.Import(r.Context(), data)
	if err != nil {
		respondServiceError(w, r, h.notes, "Import", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgSaveImported, Data: st})
}

// HandleReset wipes the save back to a new profile
// @Summary Reset save
// @Tags saves
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /reset [post]
func (h *ProfileHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.profile.Reset(r.Context()); err != nil {
		respondServiceError(w, r, h.notes, "Reset", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSaveReset})
}
