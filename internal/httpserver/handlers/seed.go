package handlers

import (
	"net/http"

	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/logger"
)

type seedReloadResponse struct {
	Added int `json:"added"`
	Total int `json:"total"`
}

// ReloadSeed re-applies the configured seed file through the standard
// additive merge. Useful after editing the file without a restart.
func ReloadSeed(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Seeder == nil {
			writeError(w, http.StatusNotFound, "no seed file configured")
			return
		}

		added, err := d.Seeder.Apply()
		if err != nil {
			d.Logger.Warn("manual seed reload failed",
				logger.String("remote_ip", r.RemoteAddr),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "seed reload failed: "+err.Error())
			return
		}

		d.Logger.Info("manual seed reload",
			logger.Int("added", added),
			logger.String("remote_ip", r.RemoteAddr))
		writeJSON(w, http.StatusOK, seedReloadResponse{
			Added: added,
			Total: d.Catalog.Count(),
		})
	}
}
