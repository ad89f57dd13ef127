package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_uploads_total",
			Help: "Total number of lead file uploads by outcome",
		},
		[]string{"outcome"},
	)

	leadsDistributed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_distributed_total",
			Help: "Total number of leads assigned to agents",
		},
	)

	rowsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_rows_rejected_total",
			Help: "Total number of uploaded rows rejected for an invalid phone",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern keeps path parameters out of metric labels.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// RecordUpload counts one upload. outcome is "success" or an error code.
func RecordUpload(outcome string, accepted, rejected int) {
	uploadsTotal.WithLabelValues(outcome).Inc()
	if accepted > 0 {
		leadsDistributed.Add(float64(accepted))
	}
	if rejected > 0 {
		rowsRejected.Add(float64(rejected))
	}
}
