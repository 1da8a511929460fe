package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"campusnet/monitoring"
	"campusnet/repositories"
	"campusnet/services"
)

// FollowHandler exposes the follow transition over HTTP.
type FollowHandler struct {
	Service *services.FollowService
}

// NewFollowHandler initializes a new FollowHandler.
func NewFollowHandler(service *services.FollowService) *FollowHandler {
	return &FollowHandler{Service: service}
}

// Follow handles POST /profile/{userId}/follow with body {"followId": "..."}.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	actorID, ok := parseObjectID(mux.Vars(r)["userId"])
	if !ok {
		writeError(w, http.StatusBadRequest, KindValidation, "Invalid user id")
		monitoring.FollowFailure.WithLabelValues("bad_id").Inc()
		return
	}

	var body struct {
		FollowID string `json:"followId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.FollowID == "" {
		writeError(w, http.StatusBadRequest, KindValidation, "followId is required")
		monitoring.FollowFailure.WithLabelValues("bad_body").Inc()
		return
	}
	targetID, ok := parseObjectID(body.FollowID)
	if !ok {
		writeError(w, http.StatusBadRequest, KindValidation, "Invalid followId")
		monitoring.FollowFailure.WithLabelValues("bad_id").Inc()
		return
	}

	result, err := h.Service.Follow(r.Context(), actorID, targetID)
	if err != nil {
		writeServiceError(w, err)
		monitoring.FollowFailure.WithLabelValues(followFailureReason(err)).Inc()
		return
	}

	monitoring.FollowSuccess.Inc()
	if result.NotificationPending {
		monitoring.NotificationEmitFailure.Inc()
		writeJSON(w, http.StatusOK, map[string]string{"message": "User followed, notification pending"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User followed and notification sent"})
}

// Unfollow handles POST /profile/{userId}/unfollow with body {"unfollowId": "..."}.
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	actorID, ok := parseObjectID(mux.Vars(r)["userId"])
	if !ok {
		writeError(w, http.StatusBadRequest, KindValidation, "Invalid user id")
		return
	}

	var body struct {
		UnfollowID string `json:"unfollowId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UnfollowID == "" {
		writeError(w, http.StatusBadRequest, KindValidation, "unfollowId is required")
		return
	}
	targetID, ok := parseObjectID(body.UnfollowID)
	if !ok {
		writeError(w, http.StatusBadRequest, KindValidation, "Invalid unfollowId")
		return
	}

	if err := h.Service.Unfollow(r.Context(), actorID, targetID); err != nil {
		writeServiceError(w, err)
		return
	}

	monitoring.UnfollowSuccess.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"message": "User unfollowed"})
}

func followFailureReason(err error) string {
	switch {
	case errors.Is(err, services.ErrSelfFollow):
		return "self_follow"
	case repositories.IsNotFound(err):
		return "not_found"
	case repositories.IsAlreadyFollowing(err):
		return "already_following"
	default:
		return "store"
	}
}
