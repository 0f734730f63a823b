package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/IdleTracker_Go/internal/notify"
)

// NotificationCenter is the notice store behind the notifications endpoints
type NotificationCenter interface {
	Recent() []notify.Notification
	Dismiss(id string) bool
	Clear()
}

// HandleGetNotifications lists unexpired notices, oldest first
// @Summary Notifications
// @Tags notifications
// @Produce json
// @Success 200 {array} notify.Notification
// @Router /notifications [get]
func HandleGetNotifications(center NotificationCenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, center.Recent())
	}
}

// HandleDismissNotification removes one notice
// @Summary Dismiss notification
// @Tags notifications
// @Produce json
// @Param id path string true "Notification id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{id} [delete]
func HandleDismissNotification(center NotificationCenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !center.Dismiss(chi.URLParam(r, "id")) {
			respondError(w, http.StatusNotFound, ErrMsgNotificationNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleClearNotifications drops every notice
// @Summary Clear notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /notifications [delete]
func HandleClearNotifications(center NotificationCenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		center.Clear()
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNotificationsClear})
	}
}
