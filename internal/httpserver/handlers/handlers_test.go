package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/ai"
	"github.com/M3lvz/toolsorter/internal/exchange"
	"github.com/M3lvz/toolsorter/internal/gitsync"
	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/logger"
	"github.com/M3lvz/toolsorter/internal/store"
	"github.com/M3lvz/toolsorter/internal/websearch"
)

// okRunner answers every git command with empty output.
type okRunner struct {
	calls [][]string
}

func (r *okRunner) Run(_ context.Context, args ...string) (string, error) {
	r.calls = append(r.calls, args)
	return "", nil
}

// newTestDeps wires real stores in a temp dir and a stubbed git runner.
func newTestDeps(t *testing.T) deps.Deps {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")

	dir := t.TempDir()
	log := logger.New("error", false)

	catalog := store.NewCatalog(dir, log, nil)
	comments := store.NewComments(dir, log, nil)
	links := store.NewLinks(dir, log, nil)
	settings := store.NewSettings(dir, log)

	exporter := exchange.NewExporter(catalog, comments, links)
	importer := exchange.NewImporter(catalog, comments, links, log)

	status := gitsync.NewStatus()
	syncer := gitsync.NewSyncer(&okRunner{}, dir, exporter, importer, status, log)

	client := ai.NewClient("http://127.0.0.1:0", time.Second, log)
	search := websearch.New("http://127.0.0.1:0", time.Second, log)

	return deps.Deps{
		Logger:     log,
		StartTime:  time.Now(),
		Version:    "test",
		DataDir:    dir,
		Catalog:    catalog,
		Comments:   comments,
		Links:      links,
		Settings:   settings,
		Enricher:   ai.NewEnricher(client, search, settings, 3, log),
		Searcher:   ai.NewSearcher(client, settings, log),
		Exporter:   exporter,
		Importer:   importer,
		Syncer:     syncer,
		SyncStatus: status,
	}
}

// mount builds a router with the same shape the route registrars use.
func mount(d deps.Deps) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", Healthz(d))
	r.Get("/readyz", Readyz(d))
	r.Get("/api/stats", Stats(d))
	r.Post("/api/seed/reload", ReloadSeed(d))
	r.Route("/api/tools", func(r chi.Router) {
		r.Get("/", ListTools(d))
		r.Post("/", AddTool(d))
		r.Post("/dedupe", DedupeTools(d))
		r.Get("/{id}", GetTool(d))
		r.Delete("/{id}", DeleteTool(d))
	})
	r.Route("/api/tools/{id}/comments", func(r chi.Router) {
		r.Get("/", ListComments(d))
		r.Post("/", AddComment(d))
		r.Delete("/{commentID}", DeleteComment(d))
	})
	r.Route("/api/tools/{id}/links", func(r chi.Router) {
		r.Get("/", ListLinks(d))
		r.Post("/", AddLink(d))
		r.Delete("/{linkID}", DeleteLink(d))
	})
	r.Post("/api/comments/{commentID}/like", LikeComment(d))
	r.Get("/api/search", Search(d))
	r.Get("/api/settings", GetSettings(d))
	r.Put("/api/settings", UpdateSettings(d))
	r.Get("/api/export", ExportCatalog(d))
	r.Post("/api/import", ImportCatalog(d))
	r.Route("/api/sync", func(r chi.Router) {
		r.Post("/push", PushSync(d))
		r.Post("/pull", PullSync(d))
		r.Get("/status", SyncStatus(d))
		r.Put("/auto", SetAutoSync(d))
	})
	return r
}

// do runs one request against the router and decodes the JSON reply
// into out when out is non-nil.
func do(t *testing.T, h http.Handler, method, path string, payload, out any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}
