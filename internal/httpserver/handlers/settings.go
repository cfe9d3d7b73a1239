package handlers

import (
	"net/http"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/logger"
)

// updateSettingsRequest uses pointers so callers can change one field
// without resending the other. The stored API key is never echoed back,
// so a wholesale replace would wipe it on every model change.
type updateSettingsRequest struct {
	APIKey    *string `json:"api_key"`
	ModelName *string `json:"model_name"`
}

// settingsResponse is the public view of the settings document. The
// key itself stays server-side: APIKeySet reports a stored key,
// AIReady also counts the OPENAI_API_KEY environment fallback.
type settingsResponse struct {
	ModelName string `json:"model_name"`
	APIKeySet bool   `json:"api_key_set"`
	AIReady   bool   `json:"ai_ready"`
}

func settingsView(s domain.Settings) settingsResponse {
	return settingsResponse{
		ModelName: s.EffectiveModel(),
		APIKeySet: s.APIKey != "",
		AIReady:   s.AIReady(),
	}
}

// GetSettings returns the masked settings view.
func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, settingsView(d.Settings.Get()))
	}
}

// UpdateSettings merges the provided fields into the settings document.
// An explicit empty api_key clears the stored key.
func UpdateSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateSettingsRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		settings := d.Settings.Get()
		if req.APIKey != nil {
			settings.APIKey = *req.APIKey
		}
		if req.ModelName != nil {
			settings.ModelName = *req.ModelName
		}

		updated, err := d.Settings.Update(settings)
		if err != nil {
			d.Logger.Error("failed to save settings", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save the settings")
			return
		}

		writeJSON(w, http.StatusOK, settingsView(updated))
	}
}
