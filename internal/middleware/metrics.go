package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"southern-cross/frms/internal/logging"
	"southern-cross/frms/internal/metrics"

	"github.com/go-chi/chi/v5"
)

// MetricsMiddleware records HTTP metrics for each request
func MetricsMiddleware(metricsReg *metrics.MetricsRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get the route pattern from chi context
			routePattern := chi.RouteContext(r.Context()).RoutePattern()
			if routePattern == "" {
				routePattern = "unknown"
			}

			metricsReg.HTTPRequestsInFlight.WithLabelValues(routePattern).Inc()
			defer metricsReg.HTTPRequestsInFlight.WithLabelValues(routePattern).Dec()

			start := time.Now()

			// Wrap response writer to capture status code
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: 200}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			statusCode := strconv.Itoa(wrapped.statusCode)

			metricsReg.HTTPRequestsTotal.WithLabelValues(
				routePattern,
				r.Method,
				statusCode,
			).Inc()

			metricsReg.HTTPRequestDuration.WithLabelValues(
				routePattern,
				r.Method,
			).Observe(duration)

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = "req-" + time.Now().Format("20060102150405")
			}

			logging.Info("HTTP request completed",
				"request_id", requestID,
				"method", r.Method,
				"endpoint", routePattern,
				"status_code", wrapped.statusCode,
				"duration_ms", int(duration*1000),
			)
		})
	}
}

// RequestIDMiddleware adds a request ID to the context if not present
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = "req-" + time.Now().Format("20060102150405")
		}

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)

		// Add to response header for tracing
		w.Header().Add("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type requestIDKey struct{}

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.statusCode = code
		r.written = true
		r.ResponseWriter.WriteHeader(code)
	}
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.written {
		r.statusCode = 200
		r.written = true
	}
	return r.ResponseWriter.Write(b)
}
