package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/logger"
	"github.com/M3lvz/toolsorter/internal/store"
	"github.com/M3lvz/toolsorter/internal/websearch"
)

const (
	enrichTemperature = 0.2

	// NoteNotConfigured marks entries whose enrichment was skipped
	// because no API key is available.
	NoteNotConfigured = "OpenAI not configured"

	// NoteEnriched marks successfully enriched entries.
	NoteEnriched = "Enriched with web-assisted AI analysis"

	// snippetMaxChars truncates web snippets fed into the prompt.
	snippetMaxChars = 200
)

// Enricher rewrites an entry's description, keywords and category with
// a chat-completion call, backed by best-effort web snippets. It NEVER
// fails the caller: an entry always comes back, annotated with what
// happened.
type Enricher struct {
	client      *Client
	search      *websearch.Client
	settings    *store.Settings
	maxSnippets int
	logger      logger.Logger
}

// NewEnricher wires the enrichment pipeline.
func NewEnricher(client *Client, search *websearch.Client, settings *store.Settings, maxSnippets int, log logger.Logger) *Enricher {
	return &Enricher{
		client:      client,
		search:      search,
		settings:    settings,
		maxSnippets: maxSnippets,
		logger:      log,
	}
}

// enrichment is the shape the model must answer with.
type enrichment struct {
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Category    string   `json:"category"`
}

// Enrich returns the tool with an improved description, up to
// MaxKeywords deduplicated lowercase keywords and a refined category.
// Identity fields (name, link, price, added_at) are never touched.
// Without a configured key, or on any call failure, the original tool
// comes back with AIEnriched=false and an explanatory note.
func (e *Enricher) Enrich(ctx context.Context, tool domain.Tool) domain.Tool {
	settings := e.settings.Get()
	if !settings.AIReady() {
		tool.AIEnriched = false
		tool.AINote = NoteNotConfigured
		return tool
	}

	snippets := e.search.Snippets(ctx, tool.Name+" "+tool.Link, e.maxSnippets)

	var result enrichment
	err := e.client.CompleteJSON(ctx,
		settings.EffectiveAPIKey(),
		settings.EffectiveModel(),
		enrichTemperature,
		enrichPrompt(tool, snippets),
		&result,
	)
	if err != nil {
		e.logger.Warn("enrichment failed, keeping entry as-is",
			logger.String("name", tool.Name),
			logger.Error(err))
		tool.AIEnriched = false
		tool.AINote = fmt.Sprintf("AI error: %v", err)
		return tool
	}

	if desc := strings.TrimSpace(result.Description); desc != "" {
		tool.Description = desc
	}
	if cat := strings.TrimSpace(result.Category); cat != "" {
		tool.Category = cat
	}
	if kws := cleanKeywords(result.Keywords); len(kws) > 0 {
		tool.Keywords = kws
	}
	tool.AIEnriched = true
	tool.AINote = NoteEnriched

	e.logger.Info("entry enriched",
		logger.String("name", tool.Name),
		logger.Int("keywords", len(tool.Keywords)),
		logger.Int("snippets", len(snippets)))
	return tool
}

// cleanKeywords lowercases, trims, deduplicates and caps the model's
// keyword list.
func cleanKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
		if len(out) == domain.MaxKeywords {
			break
		}
	}
	return out
}

// enrichPrompt builds the completion prompt from the entry and the
// gathered web context.
func enrichPrompt(tool domain.Tool, snippets []websearch.Snippet) string {
	toolJSON, _ := json.MarshalIndent(tool, "", "  ")

	var b strings.Builder
	b.WriteString("You are an expert at cataloging AI tools. Analyze this tool and enrich it thoroughly.\n\n")
	b.WriteString("TOOL TO ANALYZE:\n")
	b.Write(toolJSON)
	b.WriteString("\n\nINSTRUCTIONS:\n")
	b.WriteString("1. Keep ALL existing fields (name, link, description, category, keywords, price)\n")
	b.WriteString("2. Improve the description so it is precise and complete\n")
	b.WriteString("3. Consider EVERY plausible usage angle of this tool\n")
	b.WriteString(fmt.Sprintf("4. Generate up to %d relevant and varied keywords\n", domain.MaxKeywords))
	b.WriteString("5. Categorize precisely\n\n")
	b.WriteString("Answer STRICTLY as JSON:\n")
	b.WriteString("{\n")
	b.WriteString("  \"description\": \"Improved, precise description\",\n")
	b.WriteString("  \"keywords\": [\"keyword1\", \"keyword2\", ...],\n")
	b.WriteString("  \"category\": \"Precise category\"\n")
	b.WriteString("}\n")

	if len(snippets) > 0 {
		b.WriteString("\nWeb context found:\n")
		for _, s := range snippets {
			text := s.Snippet
			if len(text) > snippetMaxChars {
				text = text[:snippetMaxChars] + "..."
			}
			b.WriteString(fmt.Sprintf("- %s: %s\n", s.Title, text))
		}
	}

	return b.String()
}
