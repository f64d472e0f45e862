package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
)

// RouterOptions configures the cross-cutting middleware.
type RouterOptions struct {
	// Registry receives the HTTP metrics and is served at /metrics. Nil disables metrics.
	Registry *prometheus.Registry
	// RateLimit is the number of requests a client may make per RateLimitWindow. 0 disables it.
	RateLimit       int
	RateLimitWindow time.Duration
}

// NewRouter wires every API route to h.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		middleware.RequestID,
		middleware.AccessLog,
	)
	if opts.Registry != nil {
		r.Use(middleware.NewMetrics(opts.Registry).Instrument)
	}
	r.Use(middleware.NewRateLimiter().Limit(opts.RateLimit, opts.RateLimitWindow))

	r.Get("/health", h.Health)
	if opts.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", h.ListVehicles)
			r.Post("/", h.CreateVehicle)
			r.Get("/{id}", h.GetVehicle)
			r.Put("/{id}", h.UpdateVehicle)
			r.Delete("/{id}", h.DeleteVehicle)
			r.Get("/{id}/maintenance", h.VehicleHistory)
			r.Post("/{id}/maintenance", h.CreateMaintenance)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", h.ListItems)
			r.Post("/", h.CreateItem)
			r.Put("/{id}", h.UpdateItem)
			r.Delete("/{id}", h.DeleteItem)
		})

		r.Route("/records", func(r chi.Router) {
			r.Get("/", h.ListRecords)
			r.Get("/export", h.ExportRecords)
			r.Get("/technicians", h.RecordTechnicians)
			r.Get("/{id}", h.GetRecord)
			r.Put("/{id}", h.UpdateRecord)
			r.Delete("/{id}", h.DeleteRecord)
		})

		r.Route("/technicians", func(r chi.Router) {
			r.Get("/", h.ListTechnicians)
			r.Post("/", h.CreateTechnician)
			r.Put("/{id}", h.UpdateTechnician)
			r.Delete("/{id}", h.DeleteTechnician)
		})

		r.Route("/statistics", func(r chi.Router) {
			r.Get("/", h.Statistics)
			r.Get("/export", h.ExportStatistics)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.UpdateSettings)
			r.Delete("/", h.ResetSettings)
			r.Get("/export", h.ExportSettings)
			r.Post("/import", h.ImportSettings)
			r.Post("/logo", h.UploadLogo)
			r.Delete("/logo", h.ClearLogo)
		})
	})

	return r
}
