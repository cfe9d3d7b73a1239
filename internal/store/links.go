package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/logger"
)

// Links persists per-entry external resources as a single JSON
// document mapping entry IDs to link lists, mirroring the comment
// store. Orphaned entry IDs are tolerated here too.
type Links struct {
	mu      sync.RWMutex
	path    string
	logger  logger.Logger
	trigger chan<- struct{}
}

// NewLinks creates a link store backed by dir/external_links.json.
func NewLinks(dir string, log logger.Logger, trigger chan<- struct{}) *Links {
	return &Links{
		path:    filepath.Join(dir, LinksFile),
		logger:  log,
		trigger: trigger,
	}
}

// List returns the links attached to one entry, empty when none.
func (l *Links) List(entryID string) []domain.ExternalLink {
	l.mu.RLock()
	defer l.mu.RUnlock()

	links := l.load()[entryID]
	if links == nil {
		links = []domain.ExternalLink{}
	}
	return links
}

// All returns the whole document, for exports.
func (l *Links) All() map[string][]domain.ExternalLink {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.load()
}

// Count returns the total number of links across all entries.
func (l *Links) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := 0
	for _, list := range l.load() {
		total += len(list)
	}
	return total
}

// Add appends a new external link to an entry with a derived ID and a
// coerced type.
func (l *Links) Add(entryID, title, url, linkType, description string) (domain.ExternalLink, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	link := domain.NewExternalLink(entryID, title, url, linkType, description)

	doc := l.load()
	doc[entryID] = append(doc[entryID], link)
	if err := l.save(doc); err != nil {
		return domain.ExternalLink{}, err
	}

	l.logger.Info("external link added",
		logger.String("entry", entryID),
		logger.String("link", link.ID),
		logger.String("type", link.Type))
	return link, nil
}

// Delete removes one link from an entry. The bool reports whether
// anything was deleted.
func (l *Links) Delete(entryID, linkID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc := l.load()
	list, ok := doc[entryID]
	if !ok {
		return false, nil
	}

	kept := make([]domain.ExternalLink, 0, len(list))
	removed := false
	for _, lk := range list {
		if lk.ID == linkID {
			removed = true
			continue
		}
		kept = append(kept, lk)
	}
	if !removed {
		return false, nil
	}

	doc[entryID] = kept
	if err := l.save(doc); err != nil {
		return false, err
	}

	l.logger.Info("external link deleted",
		logger.String("entry", entryID),
		logger.String("link", linkID))
	return true, nil
}

// ReplaceAll swaps the whole document. Used by imports.
func (l *Links) ReplaceAll(doc map[string][]domain.ExternalLink) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if doc == nil {
		doc = map[string][]domain.ExternalLink{}
	}
	return l.save(doc)
}

func (l *Links) load() map[string][]domain.ExternalLink {
	doc := map[string][]domain.ExternalLink{}
	err := readDocument(l.path, &doc)
	switch {
	case err == nil:
		// fine
	case errors.Is(err, os.ErrNotExist):
		if werr := writeDocumentAtomic(l.path, doc); werr != nil {
			l.logger.Warn("failed to seed links document", logger.Error(werr))
		}
	default:
		l.logger.Warn("links document unreadable, resetting to empty",
			logger.String("path", l.path),
			logger.Error(err))
		doc = map[string][]domain.ExternalLink{}
		if werr := writeDocumentAtomic(l.path, doc); werr != nil {
			l.logger.Warn("failed to reset links document", logger.Error(werr))
		}
	}
	return doc
}

func (l *Links) save(doc map[string][]domain.ExternalLink) error {
	if err := writeDocumentAtomic(l.path, doc); err != nil {
		return err
	}
	notifySync(l.trigger)
	return nil
}
