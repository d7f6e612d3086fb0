package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	for _, middleware := range SetupMiddleware(requestTimeout) {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/world", handler.GetWorld)
		r.Get("/tiles/{x}/{y}", handler.GetTile)
		r.Get("/path", handler.FindPath)

		r.Route("/chunks/{x}/{y}", func(r chi.Router) {
			r.Get("/", handler.GetChunk)
			r.Get("/save", handler.GetChunkSave)
			r.Put("/save", handler.PutChunkSave)
		})
	})

	return r
}
