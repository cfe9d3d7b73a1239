package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/logger"
)

type addCommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

type commentListResponse struct {
	Comments []domain.Comment `json:"comments"`
	Total    int              `json:"total"`
}

// ListComments returns the comments attached to one catalog entry.
// Unknown entry IDs just yield an empty list: comment documents may
// legitimately outlive their tool.
func ListComments(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comments := d.Comments.List(chi.URLParam(r, "id"))
		writeJSON(w, http.StatusOK, commentListResponse{
			Comments: comments,
			Total:    len(comments),
		})
	}
}

// AddComment attaches a comment to an existing catalog entry.
func AddComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req addCommentRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if strings.TrimSpace(req.Author) == "" || strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "a comment needs an author and some content")
			return
		}

		if _, ok := d.Catalog.Get(id); !ok {
			writeError(w, http.StatusNotFound, "tool not found")
			return
		}

		comment, err := d.Comments.Add(id, req.Author, req.Content, req.Rating)
		if err != nil {
			d.Logger.Error("failed to save comment",
				logger.String("entry", id),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save the comment")
			return
		}

		writeJSON(w, http.StatusCreated, comment)
	}
}

// DeleteComment removes one comment from an entry.
func DeleteComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		commentID := chi.URLParam(r, "commentID")

		removed, err := d.Comments.Delete(id, commentID)
		if err != nil {
			d.Logger.Error("failed to delete comment",
				logger.String("entry", id),
				logger.String("comment", commentID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete the comment")
			return
		}
		if !removed {
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

// LikeComment bumps the like counter of a comment, addressed by its ID
// alone.
func LikeComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID := chi.URLParam(r, "commentID")

		comment, found, err := d.Comments.IncrementLikes(commentID)
		if err != nil {
			d.Logger.Error("failed to record like",
				logger.String("comment", commentID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to record the like")
			return
		}
		if !found {
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}

		writeJSON(w, http.StatusOK, comment)
	}
}
