package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/logger"
)

type addToolRequest struct {
	Name        string `json:"name"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Keywords    string `json:"keywords"` // free text, comma or semicolon separated
	Price       int    `json:"price"`
	Enrich      bool   `json:"enrich"`
}

type addToolResponse struct {
	Tool    domain.Tool `json:"tool"`
	Warning string      `json:"warning,omitempty"`
}

type toolListResponse struct {
	Tools []domain.Tool `json:"tools"`
	Total int           `json:"total"`
}

// ListTools returns the whole catalog in document order.
func ListTools(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tools := d.Catalog.All()
		writeJSON(w, http.StatusOK, toolListResponse{Tools: tools, Total: len(tools)})
	}
}

// AddTool inserts a new catalog entry, optionally enriched first.
// Duplicates are reported as a warning with the existing entry, not
// as a hard failure.
func AddTool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addToolRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		tool := domain.Tool{
			Name:        req.Name,
			Link:        req.Link,
			Description: req.Description,
			Category:    req.Category,
			Keywords:    domain.SplitKeywords(req.Keywords),
			Price:       req.Price,
		}
		tool.Normalize()

		if tool.Name == "" && tool.Link == "" {
			writeError(w, http.StatusBadRequest, "a tool needs at least a name or a link")
			return
		}

		// Check the identity before paying for enrichment.
		if existing, ok := d.Catalog.Get(tool.ID); ok {
			writeJSON(w, http.StatusConflict, addToolResponse{
				Tool:    existing,
				Warning: "this tool is already in the catalog",
			})
			return
		}

		if req.Enrich {
			tool = d.Enricher.Enrich(r.Context(), tool)
		}

		saved, added, err := d.Catalog.Add(tool)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "saving tool: "+err.Error())
			return
		}
		if !added {
			writeJSON(w, http.StatusConflict, addToolResponse{
				Tool:    saved,
				Warning: "this tool is already in the catalog",
			})
			return
		}
		writeJSON(w, http.StatusCreated, addToolResponse{Tool: saved})
	}
}

// GetTool returns one catalog entry by ID.
func GetTool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		tool, ok := d.Catalog.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "tool not found")
			return
		}
		writeJSON(w, http.StatusOK, tool)
	}
}

// DeleteTool removes one catalog entry. Its comments and links stay:
// annotation history survives catalog churn.
func DeleteTool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		removed, err := d.Catalog.Remove(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "removing tool: "+err.Error())
			return
		}
		if !removed {
			writeError(w, http.StatusNotFound, "tool not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

type dedupeResponse struct {
	Removed int `json:"removed"`
	Total   int `json:"total"`
}

// DedupeTools collapses entries sharing an identity, keeping the
// first occurrence of each.
func DedupeTools(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := d.Catalog.All()
		deduped := domain.Dedupe(all)
		removed := len(all) - len(deduped)

		if removed > 0 {
			if err := d.Catalog.ReplaceAll(deduped); err != nil {
				writeError(w, http.StatusInternalServerError, "saving catalog: "+err.Error())
				return
			}
			d.Logger.Info("catalog deduplicated", logger.Int("removed", removed))
		}
		writeJSON(w, http.StatusOK, dedupeResponse{Removed: removed, Total: len(deduped)})
	}
}
