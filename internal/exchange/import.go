package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/logger"
	"github.com/M3lvz/toolsorter/internal/store"
)

// Result reports what a merge actually changed. Errors are non-fatal
// by construction: whatever could be merged has been merged.
type Result struct {
	ToolsImported    int      `json:"tools_imported"`
	CommentsImported int      `json:"comments_imported"`
	LinksImported    int      `json:"links_imported"`
	Errors           []string `json:"errors"`
}

// Importer merges unified documents into the stores. The merge is
// additive-only: existing records are never overwritten or deleted,
// and replaying the same document is a no-op.
type Importer struct {
	catalog  *store.Catalog
	comments *store.Comments
	links    *store.Links
	logger   logger.Logger
}

func NewImporter(catalog *store.Catalog, comments *store.Comments, links *store.Links, log logger.Logger) *Importer {
	return &Importer{
		catalog:  catalog,
		comments: comments,
		links:    links,
		logger:   log,
	}
}

// importDocument is the lenient read-side counterpart of Document.
// Sections stay raw so one malformed record cannot poison the rest.
type importDocument struct {
	Version       *string                      `json:"version"`
	Tools         []json.RawMessage            `json:"tools"`
	Comments      map[string][]json.RawMessage `json:"comments"`
	ExternalLinks map[string][]json.RawMessage `json:"external_links"`
}

// toolPayload is the whitelist of tool fields taken from a document.
// Everything else, enrichment provenance included, is dropped and
// rebuilt locally.
type toolPayload struct {
	Name        string       `json:"name"`
	Link        string       `json:"link"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Keywords    looseStrings `json:"keywords"`
	Price       looseInt     `json:"price"`
	AddedAt     string       `json:"added_at"`
}

// looseStrings keeps only the string elements of a JSON array.
// Any other shape counts as empty.
type looseStrings []string

func (s *looseStrings) UnmarshalJSON(data []byte) error {
	*s = looseStrings{}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	out := make(looseStrings, 0, len(raw))
	for _, item := range raw {
		var str string
		if err := json.Unmarshal(item, &str); err == nil {
			out = append(out, str)
		}
	}
	*s = out
	return nil
}

// looseInt reads JSON numbers and numeric strings.
// Anything else counts as zero.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	*n = 0

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = looseInt(int(f))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*n = looseInt(v)
		}
	}
	return nil
}

// Import merges a raw unified document into the stores and reports
// the outcome. It never fails outward: decode problems, version
// mismatches and save failures all land in Result.Errors while every
// section that could be processed stays processed.
func (im *Importer) Import(data []byte) Result {
	result := Result{Errors: []string{}}

	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			result.Errors = append(result.Errors, fmt.Sprintf("invalid document: %v", err))
			return result
		}
		// A type mismatch only skips the offending field; the rest of
		// the document decoded, so the merge proceeds with that.
		result.Errors = append(result.Errors, fmt.Sprintf("partially unreadable document: %v", err))
	}

	if doc.Version != nil && *doc.Version != FormatVersion {
		result.Errors = append(result.Errors, fmt.Sprintf("unsupported document version: %q", *doc.Version))
	}

	im.mergeTools(doc.Tools, &result)
	im.mergeComments(doc.Comments, &result)
	im.mergeLinks(doc.ExternalLinks, &result)

	im.logger.Info("import merged",
		logger.Int("tools", result.ToolsImported),
		logger.Int("comments", result.CommentsImported),
		logger.Int("links", result.LinksImported),
		logger.Int("errors", len(result.Errors)))
	return result
}

// mergeTools rebuilds each incoming tool from the whitelisted fields,
// recomputes its identity and appends the ones the catalog does not
// already hold.
func (im *Importer) mergeTools(raw []json.RawMessage, result *Result) {
	if len(raw) == 0 {
		return
	}

	merged := im.catalog.All()
	seen := make(map[string]struct{}, len(merged))
	for _, t := range merged {
		seen[t.ID] = struct{}{}
	}

	added := 0
	for _, entry := range raw {
		// Best-effort decode: wrong-typed fields stay zero and the
		// name-or-link requirement filters hopeless entries.
		var payload toolPayload
		_ = json.Unmarshal(entry, &payload)

		tool := domain.Tool{
			Name:        strings.TrimSpace(payload.Name),
			Link:        strings.TrimSpace(payload.Link),
			Description: strings.TrimSpace(payload.Description),
			Category:    strings.TrimSpace(payload.Category),
			Keywords:    []string(payload.Keywords),
			Price:       domain.ClampPrice(int(payload.Price)),
			AddedAt:     strings.TrimSpace(payload.AddedAt),
		}
		if tool.Name == "" && tool.Link == "" {
			continue
		}
		if tool.Keywords == nil {
			tool.Keywords = []string{}
		}
		if tool.AddedAt == "" {
			tool.AddedAt = domain.NowUTC()
		}
		tool.ID = domain.ToolID(tool.Name, tool.Link)

		if _, dup := seen[tool.ID]; dup {
			continue
		}
		seen[tool.ID] = struct{}{}
		merged = append(merged, tool)
		added++
	}

	if added == 0 {
		return
	}
	result.ToolsImported = added
	if err := im.catalog.ReplaceAll(merged); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("saving catalog: %v", err))
	}
}

// mergeComments appends foreign comments under their entry key,
// deduplicated on the comment's own ID. Author and content are
// required; everything else is taken as-is.
func (im *Importer) mergeComments(raw map[string][]json.RawMessage, result *Result) {
	if len(raw) == 0 {
		return
	}

	doc := im.comments.All()
	added := 0
	for entryID, items := range raw {
		seen := make(map[string]struct{}, len(doc[entryID]))
		for _, c := range doc[entryID] {
			seen[c.ID] = struct{}{}
		}
		for _, item := range items {
			var comment domain.Comment
			_ = json.Unmarshal(item, &comment)
			if comment.Author == "" || comment.Content == "" {
				continue
			}
			if _, dup := seen[comment.ID]; dup {
				continue
			}
			seen[comment.ID] = struct{}{}
			doc[entryID] = append(doc[entryID], comment)
			added++
		}
	}

	if added == 0 {
		return
	}
	result.CommentsImported = added
	if err := im.comments.ReplaceAll(doc); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("saving comments: %v", err))
	}
}

// mergeLinks mirrors mergeComments for external links, requiring a
// title and a URL.
func (im *Importer) mergeLinks(raw map[string][]json.RawMessage, result *Result) {
	if len(raw) == 0 {
		return
	}

	doc := im.links.All()
	added := 0
	for entryID, items := range raw {
		seen := make(map[string]struct{}, len(doc[entryID]))
		for _, l := range doc[entryID] {
			seen[l.ID] = struct{}{}
		}
		for _, item := range items {
			var link domain.ExternalLink
			_ = json.Unmarshal(item, &link)
			if link.Title == "" || link.URL == "" {
				continue
			}
			if _, dup := seen[link.ID]; dup {
				continue
			}
			seen[link.ID] = struct{}{}
			doc[entryID] = append(doc[entryID], link)
			added++
		}
	}

	if added == 0 {
		return
	}
	result.LinksImported = added
	if err := im.links.ReplaceAll(doc); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("saving links: %v", err))
	}
}
