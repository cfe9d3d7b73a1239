package handlers

import (
	"net/http"

	"github.com/M3lvz/toolsorter/internal/gitsync"
	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
)

type componentStatus struct {
	OK     bool   `json:"ok"`
	Count  *int   `json:"count,omitempty"`
	Detail string `json:"detail,omitempty"`
	Impact string `json:"impact,omitempty"`
}

type statsResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Stats reports a per-component rollup for the UI header: store counts,
// AI readiness and the sync state, condensed into an overall mode.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tools := d.Catalog.Count()
		comments := d.Comments.Count()
		links := d.Links.Count()
		settings := d.Settings.Get()
		sync := d.SyncStatus.Snapshot()

		components := map[string]componentStatus{
			"catalog": {
				OK:    true,
				Count: &tools,
			},
			"comments": {
				OK:    true,
				Count: &comments,
			},
			"links": {
				OK:    true,
				Count: &links,
			},
			"ai": checkAI(settings.AIReady(), settings.EffectiveModel()),
			"sync": {
				OK:     sync.State != gitsync.StateError,
				Detail: string(sync.State),
				Impact: syncImpact(sync.Enabled),
			},
		}

		writeJSON(w, http.StatusOK, statsResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func checkAI(ready bool, model string) componentStatus {
	if !ready {
		return componentStatus{
			OK:     false,
			Impact: "enrichment and AI search disabled",
		}
	}
	return componentStatus{
		OK:     true,
		Detail: model,
		Impact: "enrichment and AI search enabled",
	}
}

func syncImpact(enabled bool) string {
	if enabled {
		return "periodic push enabled"
	}
	return "manual sync only"
}

// determineMode condenses the component states into one label.
func determineMode(components map[string]componentStatus) string {
	if sync, exists := components["sync"]; exists && !sync.OK {
		return "degraded"
	}
	if ai, exists := components["ai"]; exists && !ai.OK {
		return "manual"
	}
	return "assisted"
}
