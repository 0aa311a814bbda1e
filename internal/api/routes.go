package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes builds the router for all endpoints.
func SetupRoutes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(instrument)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if h.health != nil {
		r.Get("/health", h.health.HandleHealth)
		r.Get("/health/live", h.health.HandleLiveness)
		r.Get("/health/ready", h.health.HandleReadiness)
	}
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/categories", h.ListCategories)
			r.Post("/import", h.ImportProducts)
			r.Get("/{id}", h.GetProduct)
			r.Put("/{id}/description", h.UpdateProductDescription)
			r.Get("/{id}/description.html", h.ProductDescriptionHTML)
		})

		r.Route("/descriptions", func(r chi.Router) {
			r.Post("/generate", h.GenerateDescriptions)
			r.Post("/bulk", h.BulkGenerate)
			r.Get("/history", h.DescriptionHistory)
			r.Get("/status", h.GenerationStatus)
			r.Delete("/status", h.CancelGeneration)
			r.Get("/{id}", h.GetVariant)
			r.Patch("/{id}", h.EditVariantContent)
			r.Patch("/{id}/seo", h.EditVariantSEO)
			r.Post("/{id}/regenerate", h.RegenerateDescription)
		})

		r.Post("/analyze", h.AnalyzeDescription)

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.ListTemplates)
			r.Post("/", h.CreateTemplate)
			r.Get("/facets", h.TemplateFacets)
			r.Get("/{id}", h.GetTemplate)
			r.Put("/{id}", h.UpdateTemplate)
			r.Delete("/{id}", h.DeleteTemplate)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.ListCampaigns)
			r.Post("/", h.CreateCampaign)
			r.Post("/generate", h.GenerateCampaignContent)
			r.Get("/{id}", h.GetCampaign)
			r.Put("/{id}", h.UpdateCampaign)
			r.Delete("/{id}", h.DeleteCampaign)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.SaveSettings)
			r.Post("/files", h.UploadBrandFile)
			r.Delete("/files/{fileID}", h.RemoveBrandFile)
			r.Post("/test-connection", h.TestConnection)
		})
	})

	return r
}
