package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/logger"
)

// Catalog persists the tool catalog as a single JSON document
// ({"tools": [...]}) and guards its read-modify-write cycles with a
// mutex. Each operation re-reads the document, so external edits to
// the file are picked up on the next call.
type Catalog struct {
	mu      sync.RWMutex
	path    string
	logger  logger.Logger
	trigger chan<- struct{}
}

type catalogDocument struct {
	Tools []domain.Tool `json:"tools"`
}

// NewCatalog creates a catalog store backed by dir/tools.json.
// trigger may be nil; when set, every successful save performs a
// non-blocking send on it (the auto-sync worker listens there).
func NewCatalog(dir string, log logger.Logger, trigger chan<- struct{}) *Catalog {
	return &Catalog{
		path:    filepath.Join(dir, CatalogFile),
		logger:  log,
		trigger: trigger,
	}
}

// All returns every catalog entry in document order.
func (c *Catalog) All() []domain.Tool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.load().Tools
}

// Get retrieves one entry by ID.
func (c *Catalog) Get(id string) (domain.Tool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, t := range c.load().Tools {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Tool{}, false
}

// Count returns the number of catalog entries.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.load().Tools)
}

// Add normalizes the entry and appends it unless its ID already
// exists. The bool reports whether the entry was actually added;
// a duplicate is not an error, just a refused insert.
func (c *Catalog) Add(tool domain.Tool) (domain.Tool, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tool.Normalize()

	doc := c.load()
	for _, existing := range doc.Tools {
		if existing.ID == tool.ID {
			c.logger.Info("refused duplicate catalog entry",
				logger.String("id", tool.ID),
				logger.String("name", tool.Name))
			return tool, false, nil
		}
	}

	doc.Tools = append(doc.Tools, tool)
	if err := c.save(doc); err != nil {
		return tool, false, err
	}

	c.logger.Info("catalog entry added",
		logger.String("id", tool.ID),
		logger.String("name", tool.Name))
	return tool, true, nil
}

// Remove deletes one entry by ID. The bool reports whether the entry
// existed. Comments and links attached to the entry are left alone;
// the annotation stores tolerate orphaned entry ids.
func (c *Catalog) Remove(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.load()
	kept := make([]domain.Tool, 0, len(doc.Tools))
	removed := false
	for _, t := range doc.Tools {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}

	if !removed {
		return false, nil
	}

	doc.Tools = kept
	if err := c.save(doc); err != nil {
		return false, err
	}

	c.logger.Info("catalog entry removed", logger.String("id", id))
	return true, nil
}

// Merge normalizes a batch of entries and appends the ones whose
// identity is not in the catalog yet, in one read-modify-write cycle.
// Returns how many were actually appended. The seed catalog goes
// through here; imports keep their own merge because they must not
// re-normalize foreign data.
func (c *Catalog) Merge(tools []domain.Tool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.load()
	seen := make(map[string]struct{}, len(doc.Tools))
	for _, t := range doc.Tools {
		seen[t.ID] = struct{}{}
	}

	added := 0
	for _, tool := range tools {
		tool.Normalize()
		if _, dup := seen[tool.ID]; dup {
			continue
		}
		seen[tool.ID] = struct{}{}
		doc.Tools = append(doc.Tools, tool)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	if err := c.save(doc); err != nil {
		return 0, err
	}
	c.logger.Info("catalog entries merged", logger.Int("count", added))
	return added, nil
}

// ReplaceAll swaps the whole catalog content. Used by the duplicate
// cleanup operation and by imports, which compute the merged list
// outside the store.
func (c *Catalog) ReplaceAll(tools []domain.Tool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tools == nil {
		tools = []domain.Tool{}
	}
	return c.save(catalogDocument{Tools: tools})
}

// load reads the document, seeding an empty one when the file is
// missing and resetting it when it cannot be decoded. Either way the
// catalog starts over with an empty document rather than refusing to
// serve.
func (c *Catalog) load() catalogDocument {
	var doc catalogDocument
	err := readDocument(c.path, &doc)
	switch {
	case err == nil:
		// fine
	case errors.Is(err, os.ErrNotExist):
		doc = catalogDocument{Tools: []domain.Tool{}}
		if werr := writeDocumentAtomic(c.path, doc); werr != nil {
			c.logger.Warn("failed to seed catalog document", logger.Error(werr))
		}
	default:
		c.logger.Warn("catalog document unreadable, resetting to empty",
			logger.String("path", c.path),
			logger.Error(err))
		doc = catalogDocument{Tools: []domain.Tool{}}
		if werr := writeDocumentAtomic(c.path, doc); werr != nil {
			c.logger.Warn("failed to reset catalog document", logger.Error(werr))
		}
	}

	if doc.Tools == nil {
		doc.Tools = []domain.Tool{}
	}
	return doc
}

func (c *Catalog) save(doc catalogDocument) error {
	if err := writeDocumentAtomic(c.path, doc); err != nil {
		return err
	}
	notifySync(c.trigger)
	return nil
}
