// Package exchange builds and merges the unified document shared by
// export downloads, import uploads and git sync.
package exchange

import (
	"time"

	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/store"
)

// FormatVersion is the only document version this build writes and
// fully understands. Other versions are still merged best-effort.
const FormatVersion = "1.0"

// Metadata carries provenance counts computed at export time.
type Metadata struct {
	TotalTools    int `json:"total_tools"`
	TotalComments int `json:"total_comments"`
	TotalLinks    int `json:"total_links"`
}

// Document is the unified export format: a snapshot union of the
// catalog and both annotation stores. Consumers must ignore unknown
// top-level keys.
type Document struct {
	Version       string                           `json:"version"`
	ExportDate    string                           `json:"export_date"`
	Tools         []domain.Tool                    `json:"tools"`
	Comments      map[string][]domain.Comment      `json:"comments"`
	ExternalLinks map[string][]domain.ExternalLink `json:"external_links"`
	Metadata      Metadata                         `json:"metadata"`
}

// Exporter snapshots the three stores into a Document.
type Exporter struct {
	catalog  *store.Catalog
	comments *store.Comments
	links    *store.Links
}

func NewExporter(catalog *store.Catalog, comments *store.Comments, links *store.Links) *Exporter {
	return &Exporter{
		catalog:  catalog,
		comments: comments,
		links:    links,
	}
}

// Export builds the unified document. Pure snapshot: no store is
// mutated, and the metadata counts are computed from the snapshot
// itself so they always match its content.
func (e *Exporter) Export() Document {
	tools := e.catalog.All()
	comments := e.comments.All()
	links := e.links.All()

	totalComments := 0
	for _, list := range comments {
		totalComments += len(list)
	}
	totalLinks := 0
	for _, list := range links {
		totalLinks += len(list)
	}

	return Document{
		Version:       FormatVersion,
		ExportDate:    domain.NowUTC(),
		Tools:         tools,
		Comments:      comments,
		ExternalLinks: links,
		Metadata: Metadata{
			TotalTools:    len(tools),
			TotalComments: totalComments,
			TotalLinks:    totalLinks,
		},
	}
}

// ExportFilename names a download after the moment it was taken,
// e.g. "toolsorter_export_20260131_154210.json".
func ExportFilename() string {
	return "toolsorter_export_" + time.Now().Format("20060102_150405") + ".json"
}
