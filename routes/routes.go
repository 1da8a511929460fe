package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campusnet/handlers"
	"campusnet/monitoring"
)

// SetupRoutes initializes all the application routes.
// The routing logic is isolated here.
func SetupRoutes(profileHandler *handlers.ProfileHandler, followHandler *handlers.FollowHandler, notificationHandler *handlers.NotificationHandler, requestTimeout time.Duration) http.Handler {
	router := mux.NewRouter()

	// Profile routes
	router.HandleFunc("/profile", profileHandler.Register).Methods("POST")
	router.HandleFunc("/profile/{userId}", profileHandler.GetProfile).Methods("GET")
	router.HandleFunc("/profile/{userId}/update", profileHandler.UpdateProfile).Methods("POST")

	// Follow routes
	router.HandleFunc("/profile/{userId}/follow", followHandler.Follow).Methods("POST")
	router.HandleFunc("/profile/{userId}/unfollow", followHandler.Unfollow).Methods("POST")

	// Notification inbox
	router.HandleFunc("/profile/{userId}/notifications", notificationHandler.GetNotifications).Methods("GET")

	// Add metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return monitoring.InstrumentHandler(withTimeout(requestTimeout, router))
}

// withTimeout bounds every request so a stalled store read cannot hold
// a handler forever; repositories map the deadline to a retryable error.
func withTimeout(d time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
