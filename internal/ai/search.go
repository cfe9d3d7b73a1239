package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/logger"
	"github.com/M3lvz/toolsorter/internal/store"
)

const searchTemperature = 0.3

// Searcher asks the model to pick the most relevant catalog entries
// for a free-text query. It only ever supplements search: callers fall
// back to fuzzy matching whenever it errors or recommends nothing.
type Searcher struct {
	client   *Client
	settings *store.Settings
	logger   logger.Logger
}

// NewSearcher wires the AI search phase.
func NewSearcher(client *Client, settings *store.Settings, log logger.Logger) *Searcher {
	return &Searcher{
		client:   client,
		settings: settings,
		logger:   log,
	}
}

// Recommendation pairs a recommended entry with the model's reason.
type Recommendation struct {
	Tool   domain.Tool `json:"tool"`
	Reason string      `json:"reason"`
}

// Result carries the model's analysis and its resolved picks.
type Result struct {
	Analysis        string
	Recommendations []Recommendation
}

// projectedTool is the catalog projection shared with the model: no
// prices, timestamps or enrichment provenance, just what is needed to
// judge relevance.
type projectedTool struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
	Link        string   `json:"link"`
}

// rawResult is the shape the model must answer with.
type rawResult struct {
	Analysis        string `json:"analysis"`
	Recommendations []struct {
		ID     string `json:"id"`
		Reason string `json:"reason"`
	} `json:"recommendations"`
}

// Search runs one completion over the whole catalog and resolves the
// recommended IDs back to entries. Unknown IDs are dropped silently;
// a missing key or any call failure is an error the caller must treat
// as "use fuzzy instead".
func (s *Searcher) Search(ctx context.Context, query string, tools []domain.Tool) (*Result, error) {
	settings := s.settings.Get()
	if !settings.AIReady() {
		return nil, fmt.Errorf("no API key configured")
	}

	var raw rawResult
	err := s.client.CompleteJSON(ctx,
		settings.EffectiveAPIKey(),
		settings.EffectiveModel(),
		searchTemperature,
		searchPrompt(query, tools),
		&raw,
	)
	if err != nil {
		return nil, fmt.Errorf("AI search failed: %w", err)
	}

	byID := make(map[string]domain.Tool, len(tools))
	for _, t := range tools {
		byID[t.ID] = t
	}

	result := &Result{Analysis: strings.TrimSpace(raw.Analysis)}
	for _, rec := range raw.Recommendations {
		tool, ok := byID[rec.ID]
		if !ok {
			s.logger.Debug("AI recommended unknown entry",
				logger.String("id", rec.ID))
			continue
		}
		result.Recommendations = append(result.Recommendations, Recommendation{
			Tool:   tool,
			Reason: strings.TrimSpace(rec.Reason),
		})
	}

	s.logger.Info("AI search finished",
		logger.String("query", query),
		logger.Int("recommended", len(result.Recommendations)))
	return result, nil
}

// searchPrompt builds the completion prompt from the query and the
// projected catalog.
func searchPrompt(query string, tools []domain.Tool) string {
	projected := make([]projectedTool, 0, len(tools))
	for _, t := range tools {
		projected = append(projected, projectedTool{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Category:    t.Category,
			Keywords:    t.Keywords,
			Link:        t.Link,
		})
	}
	catalogJSON, _ := json.MarshalIndent(projected, "", "  ")

	var b strings.Builder
	b.WriteString("You are an expert on AI tools. The user is looking for: ")
	b.WriteString(fmt.Sprintf("%q\n\n", query))
	b.WriteString("Here is the catalog of available tools:\n")
	b.Write(catalogJSON)
	b.WriteString("\n\nFind the 3-5 most relevant tools for this query. Answer as JSON:\n")
	b.WriteString("{\n")
	b.WriteString("  \"analysis\": \"Short analysis of the query\",\n")
	b.WriteString("  \"recommendations\": [\n")
	b.WriteString("    {\"id\": \"tool_id\", \"reason\": \"Why this tool is recommended\"}\n")
	b.WriteString("  ]\n")
	b.WriteString("}\n")
	return b.String()
}
