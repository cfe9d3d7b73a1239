package domain

import (
	"os"
	"strings"
)

// DefaultModelName is used when no model is configured.
const DefaultModelName = "gpt-4o-mini"

// Settings holds the user-editable AI configuration. It lives in its
// own JSON document and is deliberately tiny: everything operational
// (ports, paths, intervals) comes from the environment instead.
type Settings struct {
	// APIKey is the OpenAI API key. Empty means "use the
	// OPENAI_API_KEY environment variable, if any".
	APIKey string `json:"api_key"`

	// ModelName selects the chat-completion model.
	ModelName string `json:"model_name"`
}

// DefaultSettings returns the document written on first start.
func DefaultSettings() Settings {
	return Settings{
		APIKey:    "",
		ModelName: DefaultModelName,
	}
}

// EffectiveAPIKey resolves the key to use: the stored key wins, the
// OPENAI_API_KEY environment variable is the fallback.
func (s Settings) EffectiveAPIKey() string {
	if key := strings.TrimSpace(s.APIKey); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
}

// EffectiveModel resolves the model to use, falling back to the
// default when unset.
func (s Settings) EffectiveModel() string {
	if model := strings.TrimSpace(s.ModelName); model != "" {
		return model
	}
	return DefaultModelName
}

// AIReady reports whether enrichment and AI search can run at all.
func (s Settings) AIReady() bool {
	return s.EffectiveAPIKey() != ""
}
