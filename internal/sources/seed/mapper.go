package seed

import (
	"github.com/M3lvz/toolsorter/internal/domain"
)

// Mapper converts seed config entries to domain tools
type Mapper struct{}

// NewMapper creates a new seed mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapTools converts the seed config to normalized domain tools.
// Entries without a name and a link carry no identity and are
// skipped. An empty result is not an error: seeding is additive and
// a fully-merged seed is the steady state.
func (m *Mapper) MapTools(config Config) []domain.Tool {
	tools := make([]domain.Tool, 0, len(config.Tools))

	for _, entry := range config.Tools {
		tool := domain.Tool{
			Name:        entry.Name,
			Link:        entry.Link,
			Description: entry.Description,
			Category:    entry.Category,
			Keywords:    entry.Keywords,
			Price:       entry.Price,
		}
		tool.Normalize()
		if tool.Name == "" && tool.Link == "" {
			continue
		}
		tools = append(tools, tool)
	}

	return tools
}
