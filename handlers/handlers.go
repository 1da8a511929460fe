package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusnet/repositories"
	"campusnet/services"
)

// Stable error kinds exposed to clients.
const (
	KindValidation       = "validation"
	KindNotFound         = "not_found"
	KindAlreadyFollowing = "already_following"
	KindNotFollowing     = "not_following"
	KindInvalidOperation = "invalid_operation"
	KindConflict         = "conflict"
	KindUnavailable      = "unavailable"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	logrus.WithFields(logrus.Fields{"kind": kind, "status": status}).Info(message)
	writeJSON(w, status, errorBody{Kind: kind, Message: message})
}

// writeServiceError maps the service/repository taxonomy onto the HTTP
// surface. Unknown errors are reported as unavailable without leaking
// internals.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSelfFollow):
		writeError(w, http.StatusBadRequest, KindInvalidOperation, "You cannot follow yourself")
	case repositories.IsNotFound(err):
		writeError(w, http.StatusNotFound, KindNotFound, err.Error())
	case repositories.IsAlreadyFollowing(err):
		writeError(w, http.StatusBadRequest, KindAlreadyFollowing, "Already following this user")
	case repositories.IsNotFollowing(err):
		writeError(w, http.StatusBadRequest, KindNotFollowing, "Not following this user")
	case repositories.IsDuplicateEmail(err):
		writeError(w, http.StatusConflict, KindConflict, "Email is already registered")
	case repositories.IsUnavailable(err):
		writeError(w, http.StatusServiceUnavailable, KindUnavailable, "Temporarily unavailable, please retry")
	default:
		logrus.WithError(err).Error("Unhandled error")
		writeError(w, http.StatusServiceUnavailable, KindUnavailable, "Temporarily unavailable, please retry")
	}
}

func parseObjectID(raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	return id, err == nil
}
