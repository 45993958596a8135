// Package api assembles the HTTP router for the gallery service.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/shaadination/gallery-api/internal/auth"
	"github.com/shaadination/gallery-api/internal/gallery"
	"github.com/shaadination/gallery-api/internal/middleware"
	"github.com/shaadination/gallery-api/internal/response"
)

// NewRouter wires every route of the service. CORS headers are attached by
// middleware so they appear on successes, errors, and the 404 fallback alike;
// OPTIONS preflights are answered before routing.
func NewRouter(allowedOrigins []string, galleryHandler *gallery.Handler, authHandler *auth.Handler, verifier *auth.Verifier) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at /swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Raw image bytes; the key is the full object store key.
	r.Get("/images/*", galleryHandler.Serve)

	r.Route("/api", func(r chi.Router) {
		r.Get("/images", galleryHandler.List)
		r.Get("/images/{category}", galleryHandler.ListByCategory)
		r.Post("/auth/validate", authHandler.Validate)

		// Mutations require a verified bearer token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(verifier))
			r.Post("/upload", galleryHandler.Upload)
			r.Delete("/delete", galleryHandler.Delete)
		})
	})

	notFound := func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not Found")
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}
