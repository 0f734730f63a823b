package handler

import (
	"net/http"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/leveling"
)

// CatalogResponse is the static game data a client renders from
type CatalogResponse struct {
	*catalog.Catalog
	XPThresholds []float64 `json:"xp_thresholds"`
}

// HandleGetCatalog returns skills, titles, backgrounds and the level table
// @Summary Catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /catalog [get]
func HandleGetCatalog(cat *catalog.Catalog, curve *leveling.Curve) http.HandlerFunc {
	resp := CatalogResponse{Catalog: cat, XPThresholds: curve.Thresholds()}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, resp)
	}
}
