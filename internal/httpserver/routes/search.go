package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/httpserver/handlers"
	"github.com/M3lvz/toolsorter/internal/httpserver/mw"
)

func init() { Register(registerSearch) }

// The AI phase of search burns OpenAI credit per request, so this is the one
// route that carries the rate limiter.
func registerSearch(r chi.Router, d deps.Deps) {
	r.With(
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.AIRateBurst,
			RefillPerIPPerMin: d.AIRatePerMin,
			TrustProxy:        d.TrustProxy,
		}),
	).Get("/api/search", handlers.Search(d))
}
