package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/IdleTracker_Go/internal/stats"
)

// StatsHandler serves the read-only progress views
type StatsHandler struct {
	stats stats.Service
}

// NewStatsHandler creates the view handlers
func NewStatsHandler(svc stats.Service) *StatsHandler {
	return &StatsHandler{stats: svc}
}

// HandleGetStats lists stat counters
// @Summary Stats
// @Description Counters for one skill, or every skill when skill is omitted or "all"
// @Tags stats
// @Produce json
// @Param skill query string false "Skill id or all"
// @Success 200 {object} stats.StatsView
// @Failure 404 {object} ErrorResponse
// @Router /stats [get]
func (h *StatsHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	skill := GetOptionalQueryParam(r, "skill", stats.SkillAll)

	view, err := h.stats.Stats(r.Context(), skill)
	if err != nil {
		respondServiceError(w, r, nil, "Get stats", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleGetSummary totals progress across all skills
// @Summary Account summary
// @Tags stats
// @Produce json
// @Success 200 {object} stats.Summary
// @Router /stats/summary [get]
func (h *StatsHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.stats.Summary(r.Context())
	if err != nil {
		respondServiceError(w, r, nil, "Get summary", err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

// HandleGetSkills lists every skill with its formatted progress
// @Summary Skills
// @Tags skills
// @Produce json
// @Success 200 {array} stats.SkillView
// @Router /skills [get]
func (h *StatsHandler) HandleGetSkills(w http.ResponseWriter, r *http.Request) {
	views, err := h.stats.Skills(r.Context())
	if err != nil {
		respondServiceError(w, r, nil, "Get skills", err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// HandleGetSkill returns one skill
// @Summary Skill
// @Tags skills
// @Produce json
// @Param skill path string true "Skill id"
// @Success 200 {object} stats.SkillView
// @Failure 404 {object} ErrorResponse
// @Router /skills/{skill} [get]
func (h *StatsHandler) HandleGetSkill(w http.ResponseWriter, r *http.Request) {
	view, err := h.stats.Skill(r.Context(), chi.URLParam(r, "skill"))
	if err != nil {
		respondServiceError(w, r, nil, "Get skill", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
