package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/httpserver/handlers"
)

func init() { Register(registerExchange) }

func registerExchange(r chi.Router, d deps.Deps) {
	r.Get("/api/export", handlers.ExportCatalog(d))
	r.Post("/api/import", handlers.ImportCatalog(d))
}
