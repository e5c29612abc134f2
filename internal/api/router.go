package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/wonny/trendlens/internal/api/handlers"
	"github.com/wonny/trendlens/pkg/logger"
)

// NewRouter creates and configures the HTTP router. Every analytics route
// hangs off /api and addresses an uploaded dataset by ID; uploads share one
// rate limiter.
func NewRouter(datasets *handlers.DatasetHandler, charts *handlers.ChartHandler, uploads *rate.Limiter, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Dataset lifecycle
	api.Handle("/datasets", rateLimitMiddleware(uploads, log)(http.HandlerFunc(datasets.Upload))).Methods("POST")
	api.HandleFunc("/datasets/{id}", datasets.Get).Methods("GET")
	api.HandleFunc("/datasets/{id}", datasets.Delete).Methods("DELETE")

	// Chart sections
	api.HandleFunc("/datasets/{id}/dashboard", charts.Dashboard).Methods("GET")
	api.HandleFunc("/datasets/{id}/trends", charts.Trends).Methods("GET")
	api.HandleFunc("/datasets/{id}/resample", charts.Resample).Methods("GET")
	api.HandleFunc("/datasets/{id}/correlation", charts.Correlation).Methods("GET")
	api.HandleFunc("/datasets/{id}/peaks", charts.Peaks).Methods("GET")
	api.HandleFunc("/datasets/{id}/moving-average", charts.MovingAverage).Methods("GET")
	api.HandleFunc("/datasets/{id}/rolling-correlation", charts.RollingCorrelation).Methods("GET")
	api.HandleFunc("/datasets/{id}/histogram", charts.Histogram).Methods("GET")
	api.HandleFunc("/datasets/{id}/regions", charts.Regions).Methods("GET")
	api.HandleFunc("/datasets/{id}/related", charts.Related).Methods("GET")
	api.HandleFunc("/datasets/{id}/report", charts.Report).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "trendlens-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware rejects requests once the shared limiter runs dry.
func rateLimitMiddleware(limiter *rate.Limiter, log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.WithField("path", r.URL.Path).Warn("Upload rate limit exceeded")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "too many uploads, slow down",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
