package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/logger"
)

// Settings persists the AI configuration document. Unlike the data
// stores it never feeds the sync trigger: credentials are local and
// must not race to a shared repository on every edit.
type Settings struct {
	mu     sync.RWMutex
	path   string
	logger logger.Logger
}

// NewSettings creates a settings store backed by dir/config.json.
func NewSettings(dir string, log logger.Logger) *Settings {
	return &Settings{
		path:   filepath.Join(dir, SettingsFile),
		logger: log,
	}
}

// Get returns the current settings, seeding the default document on
// first use and resetting it when unreadable.
func (s *Settings) Get() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load()
}

// Update trims and stores new settings, returning the stored value.
func (s *Settings) Update(settings domain.Settings) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings.APIKey = strings.TrimSpace(settings.APIKey)
	settings.ModelName = strings.TrimSpace(settings.ModelName)
	if settings.ModelName == "" {
		settings.ModelName = domain.DefaultModelName
	}

	if err := writeDocumentAtomic(s.path, settings); err != nil {
		return domain.Settings{}, err
	}

	s.logger.Info("settings updated",
		logger.String("model", settings.ModelName),
		logger.Bool("api_key_set", settings.APIKey != ""))
	return settings, nil
}

func (s *Settings) load() domain.Settings {
	var settings domain.Settings
	err := readDocument(s.path, &settings)
	switch {
	case err == nil:
		// fine
	case errors.Is(err, os.ErrNotExist):
		settings = domain.DefaultSettings()
		if werr := writeDocumentAtomic(s.path, settings); werr != nil {
			s.logger.Warn("failed to seed settings document", logger.Error(werr))
		}
	default:
		s.logger.Warn("settings document unreadable, resetting to default",
			logger.String("path", s.path),
			logger.Error(err))
		settings = domain.DefaultSettings()
		if werr := writeDocumentAtomic(s.path, settings); werr != nil {
			s.logger.Warn("failed to reset settings document", logger.Error(werr))
		}
	}

	if strings.TrimSpace(settings.ModelName) == "" {
		settings.ModelName = domain.DefaultModelName
	}
	return settings
}
