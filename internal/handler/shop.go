package handler

import (
	"net/http"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/economy"
)

// TitleRequest names a shop title
type TitleRequest struct {
	Title string `json:"title" validate:"required,catalogid"`
}

// ShopResponse returns the title with the balance after the operation
type ShopResponse struct {
	Message string                  `json:"message"`
	Title   *domain.TitleDefinition `json:"title"`
	Coins   int64                   `json:"coins"`
}

// ShopHandler serves the title shop
type ShopHandler struct {
	economy economy.Service
	notes   Notifier
}

// NewShopHandler creates the shop handlers. notes may be nil.
func NewShopHandler(svc economy.Service, notes Notifier) *ShopHandler {
	return &ShopHandler{economy: svc, notes: notes}
}

// HandleListTitles lists every title with ownership and affordability
// @Summary List titles
// @Tags shop
// @Produce json
// @Success 200 {array} economy.TitleListing
// @Router /shop/titles [get]
func (h *ShopHandler) HandleListTitles(w http.ResponseWriter, r *http.Request) {
	titles, err := h.economy.ListTitles(r.Context())
	if err != nil {
		respondServiceError(w, r, h.notes, "List titles", err)
		return
	}
	respondJSON(w, http.StatusOK, titles)
}

// HandleBuyTitle purchases a title
// @Summary Buy title
// @Tags shop
// @Accept json
// @Produce json
// @Param request body TitleRequest true "Title"
// @Success 200 {object} ShopResponse
// @Failure 402 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shop/buy [post]
func (h *ShopHandler) HandleBuyTitle(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy title"); err != nil {
		return
	}

	title, err := h.economy.BuyTitle(r.Context(), req.Title)
	if err != nil {
		respondServiceError(w, r, h.notes, "Buy title", err)
		return
	}
	h.respondWithBalance(w, r, "Purchased the title: "+title.Name, title)
}

// HandleEquipTitle equips an owned title
// @Summary Equip title
// @Tags shop
// @Accept json
// @Produce json
// @Param request body TitleRequest true "Title"
// @Success 200 {object} ShopResponse
// @Failure 403 {object} ErrorResponse
// @Router /shop/equip [post]
func (h *ShopHandler) HandleEquipTitle(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Equip title"); err != nil {
		return
	}

	title, err := h.economy.EquipTitle(r.Context(), req.Title)
	if err != nil {
		respondServiceError(w, r, h.notes, "Equip title", err)
		return
	}
	h.respondWithBalance(w, r, MsgTitleEquipped, title)
}

func (h *ShopHandler) respondWithBalance(w http.ResponseWriter, r *http.Request, msg string, title *domain.TitleDefinition) {
	coins, err := h.economy.Balance(r.Context())
	if err != nil {
		respondServiceError(w, r, h.notes, "Get balance", err)
		return
	}
	respondJSON(w, http.StatusOK, ShopResponse{Message: msg, Title: title, Coins: coins})
}
