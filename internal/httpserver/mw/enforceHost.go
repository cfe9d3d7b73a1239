package mw

import (
	"net/http"
	"strings"

	"github.com/M3lvz/toolsorter/internal/logger"
	"github.com/M3lvz/toolsorter/internal/utils"
)

// EnforceHost rejects requests whose Host header matches none of the
// allowed patterns. Patterns are plain hosts or "*.example.com"
// wildcards, compared case-insensitively and without the port. An
// empty list is a passthrough.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	patterns := make([]string, 0, len(allowedHosts))
	for _, p := range allowedHosts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(utils.StripPort(r.Host))
			for _, p := range patterns {
				if hostMatches(host, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Debug("host rejected", logger.String("host", r.Host))
			w.WriteHeader(http.StatusForbidden)
		})
	}
}

// hostMatches assumes both sides are lowercased and portless. A
// wildcard pattern covers subdomains, never the apex itself.
func hostMatches(host, pattern string) bool {
	if host == pattern {
		return true
	}
	if rest, ok := strings.CutPrefix(pattern, "*."); ok {
		return strings.HasSuffix(host, "."+rest)
	}
	return false
}
