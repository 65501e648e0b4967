package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/whisper-web/backend/internal/api/handlers"
	"github.com/whisper-web/backend/internal/api/middleware"
	"github.com/whisper-web/backend/internal/config"
	"github.com/whisper-web/backend/internal/media"
	"github.com/whisper-web/backend/internal/transcribe"
	"github.com/whisper-web/backend/internal/web"
)

func NewRouter(cfg *config.Config, normalizer *media.Normalizer, engine transcribe.Engine) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	transcribeHandler := handlers.NewTranscribeHandler(normalizer, engine, cfg.MaxUploadMB<<20)
	exportHandler := handlers.NewExportHandler()
	catalogHandler := handlers.NewCatalogHandler()

	uploadLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, time.Minute)

	// The form page
	r.Get("/", web.Index)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		// Catalogs
		r.Get("/models", catalogHandler.ListModels)
		r.Get("/languages", catalogHandler.ListLanguages)

		// Pipeline
		r.Group(func(r chi.Router) {
			r.Use(uploadLimiter.Handler)
			r.Post("/transcribe", transcribeHandler.Transcribe)
		})

		// Exports
		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBodySize(10 << 20))
			r.Post("/export/{format}", exportHandler.Export)
		})
	})

	return r
}
