package handlers

import (
	"net/http"
	"strings"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/logger"
)

// searchResult is one row of a search response. Reason is only set in
// AI mode, Score only in fuzzy mode.
type searchResult struct {
	Tool   domain.Tool `json:"tool"`
	Reason string      `json:"reason,omitempty"`
	Score  float64     `json:"score,omitempty"`
}

type searchResponse struct {
	Query    string         `json:"query"`
	Mode     string         `json:"mode"`
	Analysis string         `json:"analysis,omitempty"`
	Results  []searchResult `json:"results"`
}

// Search resolves a query in up to three phases: exact substring
// matching first, then AI recommendations when the caller asked for
// them, then fuzzy ranking. The AI phase never fails a search: any
// breakage falls back to fuzzy.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		useAI := r.URL.Query().Get("ai") == "true"

		tools := d.Catalog.All()

		// Empty query: the whole catalog, unranked.
		if query == "" {
			writeJSON(w, http.StatusOK, searchResponse{
				Query:   query,
				Mode:    "exact",
				Results: plainResults(tools),
			})
			return
		}

		d.Logger.Info("search request",
			logger.String("query", query),
			logger.Bool("ai", useAI))

		if matches := domain.ExactSearch(tools, query); len(matches) > 0 {
			writeJSON(w, http.StatusOK, searchResponse{
				Query:   query,
				Mode:    "exact",
				Results: plainResults(matches),
			})
			return
		}

		if useAI {
			if resp, ok := aiSearch(r, query, tools, d); ok {
				writeJSON(w, http.StatusOK, resp)
				return
			}
		}

		candidates := domain.FuzzySearch(tools, query)
		results := make([]searchResult, 0, len(candidates))
		for _, c := range candidates {
			results = append(results, searchResult{Tool: c.Tool, Score: c.Score})
		}
		writeJSON(w, http.StatusOK, searchResponse{
			Query:   query,
			Mode:    "fuzzy",
			Results: results,
		})
	}
}

// aiSearch runs the AI phase. ok is false whenever fuzzy should take
// over instead: the model failed or recommended nothing usable.
func aiSearch(r *http.Request, query string, tools []domain.Tool, d deps.Deps) (searchResponse, bool) {
	result, err := d.Searcher.Search(r.Context(), query, tools)
	if err != nil {
		d.Logger.Warn("AI search unavailable, falling back to fuzzy",
			logger.String("query", query),
			logger.Error(err))
		return searchResponse{}, false
	}
	if len(result.Recommendations) == 0 {
		d.Logger.Debug("AI recommended nothing, falling back to fuzzy",
			logger.String("query", query))
		return searchResponse{}, false
	}

	results := make([]searchResult, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		results = append(results, searchResult{Tool: rec.Tool, Reason: rec.Reason})
	}
	return searchResponse{
		Query:    query,
		Mode:     "ai",
		Analysis: result.Analysis,
		Results:  results,
	}, true
}

func plainResults(tools []domain.Tool) []searchResult {
	results := make([]searchResult, 0, len(tools))
	for _, t := range tools {
		results = append(results, searchResult{Tool: t})
	}
	return results
}
