package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/httpserver/handlers"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	r.Route("/api/tools/{id}/links", func(r chi.Router) {
		r.Get("/", handlers.ListLinks(d))
		r.Post("/", handlers.AddLink(d))
		r.Delete("/{linkID}", handlers.DeleteLink(d))
	})
}
