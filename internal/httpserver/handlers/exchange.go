package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/M3lvz/toolsorter/internal/exchange"
	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/logger"
)

// maxImportBytes caps uploaded documents. The catalog is a personal
// collection, a legitimate export is a few hundred kilobytes at most.
const maxImportBytes = 10 << 20

// ExportCatalog streams the unified document as a timestamped JSON
// download.
func ExportCatalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := d.Exporter.Export()

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", exchange.ExportFilename()))
		w.WriteHeader(http.StatusOK)

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			d.Logger.Warn("export download aborted", logger.Error(err))
		}
	}
}

// ImportCatalog merges an uploaded unified document into the stores.
// The upload can be a multipart form with a "file" part or a raw JSON
// body. The merge result is always 200: per-section problems are
// reported inside it, not as an HTTP failure.
func ImportCatalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := readUpload(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read the uploaded document")
			return
		}
		if len(data) == 0 {
			writeError(w, http.StatusBadRequest, "empty document")
			return
		}

		writeJSON(w, http.StatusOK, d.Importer.Import(data))
	}
}

// readUpload extracts the document bytes from either upload shape.
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()
		return io.ReadAll(io.LimitReader(file, maxImportBytes))
	}

	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
}
