package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
)

// Registrar mounts one group of routes on the router.
type Registrar func(r chi.Router, d deps.Deps)

var registrars []Registrar

// Register queues a registrar. Each route file calls this from init,
// so the table assembles itself from whatever is compiled in.
func Register(reg Registrar) {
	registrars = append(registrars, reg)
}

// RegisterAll mounts every queued registrar. Called once from
// httpserver.New. Guards covering single routes or groups are applied
// inside the registrars with r.With.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, reg := range registrars {
		reg(r, d)
	}
}
