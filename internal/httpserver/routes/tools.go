package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/httpserver/handlers"
)

func init() { Register(registerTools) }

func registerTools(r chi.Router, d deps.Deps) {
	r.Route("/api/tools", func(r chi.Router) {
		r.Get("/", handlers.ListTools(d))
		r.Post("/", handlers.AddTool(d))
		r.Post("/dedupe", handlers.DedupeTools(d))
		r.Get("/{id}", handlers.GetTool(d))
		r.Delete("/{id}", handlers.DeleteTool(d))
	})
}
