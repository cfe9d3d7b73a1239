package seed

import (
	"fmt"

	"github.com/M3lvz/toolsorter/internal/logger"
	"github.com/M3lvz/toolsorter/internal/store"
)

// Seeder merges the optional starter catalog into the store on
// startup. Seeding is best-effort from the application's point of
// view: the caller logs failures and keeps going.
type Seeder struct {
	loader  *Loader
	mapper  *Mapper
	catalog *store.Catalog
	logger  logger.Logger
}

// NewSeeder creates a seeder for the given seed file
func NewSeeder(filePath string, catalog *store.Catalog, log logger.Logger) *Seeder {
	return &Seeder{
		loader:  NewLoader(filePath),
		mapper:  NewMapper(),
		catalog: catalog,
		logger:  log,
	}
}

// Apply loads the seed file and merges its tools additively.
// Returns how many entries were actually new.
func (s *Seeder) Apply() (int, error) {
	config, err := s.loader.Load()
	if err != nil {
		return 0, fmt.Errorf("loading seed catalog: %w", err)
	}

	tools := s.mapper.MapTools(config)
	if len(tools) == 0 {
		s.logger.Info("seed catalog holds no entries")
		return 0, nil
	}

	added, err := s.catalog.Merge(tools)
	if err != nil {
		return 0, fmt.Errorf("merging seed catalog: %w", err)
	}

	s.logger.Info("seed catalog merged",
		logger.Int("added", added),
		logger.Int("total", len(tools)))
	return added, nil
}
