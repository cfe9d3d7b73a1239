package handlers

import (
	"net/http"
	"time"

	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
)

type healthzResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

// Healthz is pure liveness plus build identity. Anything that can
// actually fail lives in readyz.
func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:    "ok",
			Uptime:    time.Since(start).Round(time.Second).String(),
			Version:   d.Version,
			Commit:    d.Commit,
			BuildDate: d.BuildDate,
			GoVersion: d.GoVersion,
		})
	}
}
