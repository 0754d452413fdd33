package routes

import (
	"southern-cross/frms/internal/api"
	"southern-cross/frms/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies) {

	// Public routes: presigned report links need no API key
	r.Group(func(public chi.Router) {
		public.Get("/public/report", handlers.PublicReport())
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(&deps.Repo.Keys))

		v1.Route("/frms", func(frms chi.Router) {
			frms.Post("/totals", handlers.GetTotals())
			frms.Post("/max-next-duty", handlers.GetMaxNextDuty())
			frms.Post("/mbtt", handlers.GetMBTT())
			frms.Post("/compliance", handlers.CheckCompliance())
			frms.Post("/what-if", handlers.CheckWhatIf())
		})

		v1.Post("/duties/import", handlers.ImportSectors())
		v1.Get("/pilots/{pilot_id}/duties", handlers.GetPilotDuties())
		v1.Post("/pilots/{pilot_id}/report-link", handlers.GenerateReportLink())

		v1.Get("/airports/{code}/timezone", handlers.GetAirportTimezone())

		// Airport data management
		v1.Post("/admin/data/sync-airports", api.SyncAirportsHandler(deps.Services.AirportLoader))
	})
}
