package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/logger"
)

// Comments persists per-entry comment lists as a single JSON document
// mapping entry IDs to comment lists. Entry IDs that no longer exist
// in the catalog are tolerated and never pruned: removing a tool must
// not destroy its discussion history.
type Comments struct {
	mu      sync.RWMutex
	path    string
	logger  logger.Logger
	trigger chan<- struct{}
}

// NewComments creates a comment store backed by dir/comments.json.
func NewComments(dir string, log logger.Logger, trigger chan<- struct{}) *Comments {
	return &Comments{
		path:    filepath.Join(dir, CommentsFile),
		logger:  log,
		trigger: trigger,
	}
}

// List returns the comments attached to one entry, empty when none.
func (c *Comments) List(entryID string) []domain.Comment {
	c.mu.RLock()
	defer c.mu.RUnlock()

	comments := c.load()[entryID]
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments
}

// All returns the whole document, for exports.
func (c *Comments) All() map[string][]domain.Comment {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.load()
}

// Count returns the total number of comments across all entries.
func (c *Comments) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, list := range c.load() {
		total += len(list)
	}
	return total
}

// Add appends a new comment to an entry with a derived ID, a clamped
// rating and a creation timestamp.
func (c *Comments) Add(entryID, author, content string, rating int) (domain.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	comment := domain.NewComment(entryID, author, content, rating)

	doc := c.load()
	doc[entryID] = append(doc[entryID], comment)
	if err := c.save(doc); err != nil {
		return domain.Comment{}, err
	}

	c.logger.Info("comment added",
		logger.String("entry", entryID),
		logger.String("comment", comment.ID))
	return comment, nil
}

// Delete removes one comment from an entry. The bool reports whether
// anything was deleted.
func (c *Comments) Delete(entryID, commentID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.load()
	list, ok := doc[entryID]
	if !ok {
		return false, nil
	}

	kept := make([]domain.Comment, 0, len(list))
	removed := false
	for _, cm := range list {
		if cm.ID == commentID {
			removed = true
			continue
		}
		kept = append(kept, cm)
	}
	if !removed {
		return false, nil
	}

	doc[entryID] = kept
	if err := c.save(doc); err != nil {
		return false, err
	}

	c.logger.Info("comment deleted",
		logger.String("entry", entryID),
		logger.String("comment", commentID))
	return true, nil
}

// IncrementLikes bumps the like counter of a comment, located by its
// ID alone: the caller does not need to know which entry it belongs
// to. The bool reports whether the comment was found.
func (c *Comments) IncrementLikes(commentID string) (domain.Comment, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.load()
	for entryID, list := range doc {
		for i := range list {
			if list[i].ID != commentID {
				continue
			}
			list[i].Likes++
			doc[entryID] = list
			if err := c.save(doc); err != nil {
				return domain.Comment{}, false, err
			}
			return list[i], true, nil
		}
	}
	return domain.Comment{}, false, nil
}

// ReplaceAll swaps the whole document. Used by imports, which merge
// outside the store.
func (c *Comments) ReplaceAll(doc map[string][]domain.Comment) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if doc == nil {
		doc = map[string][]domain.Comment{}
	}
	return c.save(doc)
}

func (c *Comments) load() map[string][]domain.Comment {
	doc := map[string][]domain.Comment{}
	err := readDocument(c.path, &doc)
	switch {
	case err == nil:
		// fine
	case errors.Is(err, os.ErrNotExist):
		if werr := writeDocumentAtomic(c.path, doc); werr != nil {
			c.logger.Warn("failed to seed comments document", logger.Error(werr))
		}
	default:
		c.logger.Warn("comments document unreadable, resetting to empty",
			logger.String("path", c.path),
			logger.Error(err))
		doc = map[string][]domain.Comment{}
		if werr := writeDocumentAtomic(c.path, doc); werr != nil {
			c.logger.Warn("failed to reset comments document", logger.Error(werr))
		}
	}
	return doc
}

func (c *Comments) save(doc map[string][]domain.Comment) error {
	if err := writeDocumentAtomic(c.path, doc); err != nil {
		return err
	}
	notifySync(c.trigger)
	return nil
}
