package monitoring

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RegisterSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "register_success_total",
		Help: "Total successful registrations",
	})

	RegisterFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "register_failure_total",
		Help: "Total failed registrations",
	}, []string{"reason"})

	FollowSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "follow_success_total",
		Help: "Total successful follow transitions",
	})

	FollowFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "follow_failure_total",
		Help: "Total rejected or failed follow attempts",
	}, []string{"reason"})

	UnfollowSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "unfollow_success_total",
		Help: "Total successful unfollow transitions",
	})

	NotificationEmitFailure = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_emit_failure_total",
		Help: "Total follow notifications lost after a successful edge write",
	})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RegisterSuccess)
	prometheus.MustRegister(RegisterFailure)
	prometheus.MustRegister(FollowSuccess)
	prometheus.MustRegister(FollowFailure)
	prometheus.MustRegister(UnfollowSuccess)
	prometheus.MustRegister(NotificationEmitFailure)
}

// Middleware to track request timing and status code
type statusRecordingWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecordingWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusRecordingWriter{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		route := r.URL.Path
		method := r.Method
		status := fmt.Sprintf("%d", rw.statusCode)

		RequestDuration.WithLabelValues(method, route, status).Observe(duration)
	})
}
