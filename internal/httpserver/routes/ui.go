package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/httpserver/ui"
)

func init() { Register(registerUI) }

func registerUI(r chi.Router, _ deps.Deps) {
	r.Get("/", ui.Handler())
}
