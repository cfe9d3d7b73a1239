package handlers

import (
	"net/http"
	"os"

	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz probes the only hard dependency this app has: a writable data
// directory. Every store mutation goes through a temp-file rename, so
// a failed probe here means every write path is down.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		probe, err := os.CreateTemp(d.DataDir, ".readyz-*")
		if err != nil {
			d.Logger.Warn("readiness probe failed",
				logger.String("dir", d.DataDir),
				logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{
				Ready: false,
				Error: "data directory is not writable",
			})
			return
		}
		name := probe.Name()
		_ = probe.Close()
		_ = os.Remove(name)

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
