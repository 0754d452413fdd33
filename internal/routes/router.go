package routes

import (
	"net/http"
	"time"

	"southern-cross/frms/internal/api"
	"southern-cross/frms/internal/db"
	"southern-cross/frms/internal/logging"
	"southern-cross/frms/internal/metrics"
	"southern-cross/frms/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	RegisterAPIRoutes(r, handlers, deps)

	return r
}
