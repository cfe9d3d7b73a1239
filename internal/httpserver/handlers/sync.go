package handlers

import (
	"net/http"

	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
)

type autoSyncRequest struct {
	Enabled bool `json:"enabled"`
}

// PushSync runs one push cycle right now. The outcome is always 200:
// failures are data, reported in the result and the sync status.
func PushSync(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Syncer.Push(r.Context()))
	}
}

// PullSync fetches the remote state and merges the sync file.
func PullSync(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Syncer.Pull(r.Context()))
	}
}

// SyncStatus reports the current synchronization state record.
func SyncStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.SyncStatus.Snapshot())
	}
}

// SetAutoSync toggles the periodic background synchronization.
func SetAutoSync(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req autoSyncRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		d.SyncStatus.SetEnabled(req.Enabled)
		writeJSON(w, http.StatusOK, d.SyncStatus.Snapshot())
	}
}
