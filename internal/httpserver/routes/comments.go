package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/httpserver/handlers"
)

func init() { Register(registerComments) }

func registerComments(r chi.Router, d deps.Deps) {
	r.Route("/api/tools/{id}/comments", func(r chi.Router) {
		r.Get("/", handlers.ListComments(d))
		r.Post("/", handlers.AddComment(d))
		r.Delete("/{commentID}", handlers.DeleteComment(d))
	})

	// Likes address a comment by its ID alone.
	r.Post("/api/comments/{commentID}/like", handlers.LikeComment(d))
}
