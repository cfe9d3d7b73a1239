package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/logger"
)

type addLinkRequest struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type linkListResponse struct {
	Links []domain.ExternalLink `json:"links"`
	Total int                   `json:"total"`
}

// ListLinks returns the external resources attached to one catalog
// entry, empty for unknown IDs.
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links := d.Links.List(chi.URLParam(r, "id"))
		writeJSON(w, http.StatusOK, linkListResponse{
			Links: links,
			Total: len(links),
		})
	}
}

// AddLink attaches an external resource to an existing catalog entry.
// Unknown link types are coerced to the default in the store.
func AddLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req addLinkRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.URL) == "" {
			writeError(w, http.StatusBadRequest, "a link needs a title and a URL")
			return
		}

		if _, ok := d.Catalog.Get(id); !ok {
			writeError(w, http.StatusNotFound, "tool not found")
			return
		}

		link, err := d.Links.Add(id, req.Title, req.URL, req.Type, req.Description)
		if err != nil {
			d.Logger.Error("failed to save link",
				logger.String("entry", id),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save the link")
			return
		}

		writeJSON(w, http.StatusCreated, link)
	}
}

// DeleteLink removes one external resource from an entry.
func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		linkID := chi.URLParam(r, "linkID")

		removed, err := d.Links.Delete(id, linkID)
		if err != nil {
			d.Logger.Error("failed to delete link",
				logger.String("entry", id),
				logger.String("link", linkID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete the link")
			return
		}
		if !removed {
			writeError(w, http.StatusNotFound, "link not found")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}
