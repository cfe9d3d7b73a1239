package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/httpserver/handlers"
	"github.com/M3lvz/toolsorter/internal/httpserver/mw"
)

func init() { Register(registerSync) }

// Push and pull shell out to git, so the whole group sits behind the
// CIDR allowlist when one is configured.
func registerSync(r chi.Router, d deps.Deps) {
	r.Route("/api/sync", func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Post("/push", handlers.PushSync(d))
		r.Post("/pull", handlers.PullSync(d))
		r.Get("/status", handlers.SyncStatus(d))
		r.Put("/auto", handlers.SetAutoSync(d))
	})
}
