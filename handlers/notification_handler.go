package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"campusnet/repositories"
)

// NotificationHandler serves the notification inbox.
type NotificationHandler struct {
	Notifications repositories.NotificationRepository
	Users         repositories.UserRepository
}

// NewNotificationHandler initializes a new NotificationHandler.
func NewNotificationHandler(notifications repositories.NotificationRepository, users repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications, Users: users}
}

// GetNotifications returns the user's notifications, newest first.
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(mux.Vars(r)["userId"])
	if !ok {
		writeError(w, http.StatusBadRequest, KindValidation, "Invalid user id")
		return
	}

	if _, err := h.Users.FindByID(r.Context(), id); err != nil {
		if repositories.IsNotFound(err) {
			writeError(w, http.StatusNotFound, KindNotFound, "User not found")
			return
		}
		writeServiceError(w, err)
		return
	}

	notifications, err := h.Notifications.GetByReceiver(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}
