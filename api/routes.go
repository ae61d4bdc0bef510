package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every public endpoint.
func setupRoutes(r chi.Router, handlers *routeHandlers, startupTime time.Time) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Content endpoints
		r.Get("/posts", handlers.contentHandler.listDocuments("posts"))
		r.Get("/posts/slugs", handlers.contentHandler.listSlugs("posts"))
		r.Get("/posts/{slug}", handlers.contentHandler.getDocument("posts"))
		r.Get("/projects", handlers.contentHandler.listDocuments("projects"))
		r.Get("/projects/slugs", handlers.contentHandler.listSlugs("projects"))
		r.Get("/projects/{slug}", handlers.contentHandler.getDocument("projects"))

		// Intake endpoints
		r.Post("/contact", handlers.intakeHandler.submitContact())
		r.Post("/subscribe", handlers.intakeHandler.subscribe())

		// Utility endpoints
		r.Post("/hash", handlers.hashHandler.hashText())
		r.Get("/health", healthCheck(startupTime))
	})
}

func healthCheck(startupTime time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(loggerFor("healthCheck"))
		responder.WriteJSON(w, map[string]any{
			"status": "ok",
			"uptime": time.Since(startupTime).String(),
		})
	}
}
