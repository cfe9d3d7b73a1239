package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/M3lvz/toolsorter/internal/ai"
	"github.com/M3lvz/toolsorter/internal/domain"
	"github.com/M3lvz/toolsorter/internal/exchange"
	"github.com/M3lvz/toolsorter/internal/gitsync"
	"github.com/M3lvz/toolsorter/internal/httpserver/deps"
	"github.com/M3lvz/toolsorter/internal/httpserver/routes"
	"github.com/M3lvz/toolsorter/internal/logger"
	"github.com/M3lvz/toolsorter/internal/store"
	"github.com/M3lvz/toolsorter/internal/websearch"
)

// stubGit records git invocations and reports success for all of them.
type stubGit struct {
	mu    sync.Mutex
	calls [][]string
}

func (g *stubGit) Run(_ context.Context, args ...string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, args)
	return "", nil
}

type env struct {
	handler http.Handler
	deps    deps.Deps
	syncDir string
	git     *stubGit
}

// newEnv wires the application the way app.New does, minus the real
// network edges: stubbed git, no AI endpoint unless a test injects one.
// Optional mutators adjust the deps before the router is mounted.
func newEnv(t *testing.T, aiBaseURL string, mutate ...func(*deps.Deps)) *env {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")

	dataDir := t.TempDir()
	syncDir := t.TempDir()
	log := logger.New("error", false)

	catalog := store.NewCatalog(dataDir, log, nil)
	comments := store.NewComments(dataDir, log, nil)
	links := store.NewLinks(dataDir, log, nil)
	settings := store.NewSettings(dataDir, log)

	exporter := exchange.NewExporter(catalog, comments, links)
	importer := exchange.NewImporter(catalog, comments, links, log)

	git := &stubGit{}
	status := gitsync.NewStatus()
	syncer := gitsync.NewSyncer(git, syncDir, exporter, importer, status, log)

	if aiBaseURL == "" {
		aiBaseURL = "http://127.0.0.1:0"
	}
	client := ai.NewClient(aiBaseURL, 2*time.Second, log)
	search := websearch.New("http://127.0.0.1:0", 2*time.Second, log)

	d := deps.Deps{
		Logger:     log,
		StartTime:  time.Now(),
		Version:    "integration",
		DataDir:    dataDir,
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

	for _, fn := range mutate {
		fn(&d)
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	return &env{handler: r, deps: d, syncDir: syncDir, git: git}
}

func (e *env) do(t *testing.T, method, path string, payload, out any) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	if payload != nil {
		if err := json.NewEncoder(body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s %s response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec
}

// TestCatalogLifecycle drives a realistic session end to end: add,
// annotate, export, lose everything, re-import, synchronize.
func TestCatalogLifecycle(t *testing.T) {
	e := newEnv(t, "")

	// The app is up.
	rec := e.do(t, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}

	// Build a small catalog.
	var added struct {
		Tool domain.Tool `json:"tool"`
	}
	e.do(t, http.MethodPost, "/api/tools", map[string]any{
		"name": "ChatGPT", "link": "https://chat.openai.com",
		"category": "chatbot", "keywords": "chat, writing", "price": 2,
	}, &added)
	chatgpt := added.Tool
	e.do(t, http.MethodPost, "/api/tools", map[string]any{
		"name": "Midjourney", "category": "images", "keywords": "art",
	}, nil)

	// Annotate the first entry.
	var comment domain.Comment
	e.do(t, http.MethodPost, "/api/tools/"+chatgpt.ID+"/comments", map[string]any{
		"author": "alice", "content": "daily driver", "rating": 5,
	}, &comment)
	e.do(t, http.MethodPost, "/api/comments/"+comment.ID+"/like", nil, nil)
	e.do(t, http.MethodPost, "/api/tools/"+chatgpt.ID+"/links", map[string]any{
		"title": "Getting started", "url": "https://example.com/start", "type": "tutorial",
	}, nil)

	// Search finds it by keyword.
	var search struct {
		Mode    string `json:"mode"`
		Results []struct {
			Tool domain.Tool `json:"tool"`
		} `json:"results"`
	}
	e.do(t, http.MethodGet, "/api/search?q=writing", nil, &search)
	if search.Mode != "exact" || len(search.Results) != 1 || search.Results[0].Tool.ID != chatgpt.ID {
		t.Fatalf("keyword search went wrong: %+v", search)
	}

	// Take a full backup.
	export := e.do(t, http.MethodGet, "/api/export", nil, nil)
	if export.Code != http.StatusOK {
		t.Fatalf("export: %d", export.Code)
	}

	// Lose the catalog entry, keep its discussion.
	e.do(t, http.MethodDelete, "/api/tools/"+chatgpt.ID, nil, nil)
	var list struct {
		Total int `json:"total"`
	}
	e.do(t, http.MethodGet, "/api/tools", nil, &list)
	if list.Total != 1 {
		t.Fatalf("expected 1 tool after delete, got %d", list.Total)
	}

	// Restore from the backup. The tool comes back, its comment was
	// never gone, and nothing gets duplicated.
	var merged exchange.Result
	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(export.Body.Bytes()))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &merged); err != nil {
		t.Fatalf("decode import result: %v", err)
	}
	if merged.ToolsImported != 1 || merged.CommentsImported != 0 || len(merged.Errors) != 0 {
		t.Fatalf("unexpected restore result %+v", merged)
	}
	e.do(t, http.MethodGet, "/api/tools", nil, &list)
	if list.Total != 2 {
		t.Fatalf("expected the catalog restored to 2 tools, got %d", list.Total)
	}

	var comments struct {
		Total int `json:"total"`
	}
	e.do(t, http.MethodGet, "/api/tools/"+chatgpt.ID+"/comments", nil, &comments)
	if comments.Total != 1 {
		t.Fatalf("expected the comment to survive, got %d", comments.Total)
	}

	// Publish the state through git.
	var pushed gitsync.Result
	e.do(t, http.MethodPost, "/api/sync/push", nil, &pushed)
	if !pushed.OK {
		t.Fatalf("push failed: %+v", pushed)
	}
	if _, err := os.Stat(filepath.Join(e.syncDir, gitsync.SyncFileName)); err != nil {
		t.Fatalf("sync file missing: %v", err)
	}

	var snap gitsync.Snapshot
	e.do(t, http.MethodGet, "/api/sync/status", nil, &snap)
	if snap.State != gitsync.StateSuccess {
		t.Fatalf("expected success status, got %+v", snap)
	}
}

// TestPullMergesRemoteState simulates a second machine pulling a sync
// file it has never seen.
func TestPullMergesRemoteState(t *testing.T) {
	e := newEnv(t, "")

	remote := exchange.Document{
		Version:    exchange.FormatVersion,
		ExportDate: domain.NowUTC(),
		Tools: []domain.Tool{
			{
				ID:      domain.ToolID("Zed", "https://zed.dev"),
				Name:    "Zed",
				Link:    "https://zed.dev",
				Price:   domain.PriceDefault,
				AddedAt: domain.NowUTC(),
			},
		},
		Comments:      map[string][]domain.Comment{},
		ExternalLinks: map[string][]domain.ExternalLink{},
	}
	remote.Metadata.TotalTools = 1
	data, err := json.Marshal(remote)
	if err != nil {
		t.Fatalf("marshal remote doc: %v", err)
	}
	if err := os.WriteFile(filepath.Join(e.syncDir, gitsync.SyncFileName), data, 0o644); err != nil {
		t.Fatalf("write sync file: %v", err)
	}

	var pulled gitsync.Result
	e.do(t, http.MethodPost, "/api/sync/pull", nil, &pulled)
	if !pulled.OK || pulled.Import == nil || pulled.Import.ToolsImported != 1 {
		t.Fatalf("unexpected pull result %+v", pulled)
	}

	if _, ok := e.deps.Catalog.Get(domain.ToolID("Zed", "https://zed.dev")); !ok {
		t.Fatal("pulled tool missing from the catalog")
	}
}

// TestSearchUsesAIWhenConfigured exercises the whole AI search path
// over HTTP against a fake chat-completions endpoint.
func TestSearchUsesAIWhenConfigured(t *testing.T) {
	midjourneyID := domain.ToolID("Midjourney", "https://midjourney.com")

	content, err := json.Marshal(map[string]any{
		"analysis": "You want to generate pictures.",
		"recommendations": []map[string]any{
			{"id": midjourneyID, "reason": "purpose-built image generator"},
		},
	})
	if err != nil {
		t.Fatalf("marshal model reply: %v", err)
	}

	completions := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": string(content)}},
			},
		})
	}))
	defer completions.Close()

	e := newEnv(t, completions.URL)

	e.do(t, http.MethodPut, "/api/settings", map[string]any{"api_key": "sk-test"}, nil)
	e.do(t, http.MethodPost, "/api/tools", map[string]any{
		"name": "ChatGPT", "category": "chatbot", "keywords": "chat",
	}, nil)
	e.do(t, http.MethodPost, "/api/tools", map[string]any{
		"name": "Midjourney", "link": "https://midjourney.com",
		"category": "images", "keywords": "art",
	}, nil)

	// The query matches nothing exactly, so the AI phase decides.
	var resp struct {
		Mode     string `json:"mode"`
		Analysis string `json:"analysis"`
		Results  []struct {
			Tool   domain.Tool `json:"tool"`
			Reason string      `json:"reason"`
		} `json:"results"`
	}
	e.do(t, http.MethodGet, "/api/search?q=something+for+pictures&ai=true", nil, &resp)

	if resp.Mode != "ai" {
		t.Fatalf("expected ai mode, got %q", resp.Mode)
	}
	if resp.Analysis == "" {
		t.Error("expected the model analysis to be passed through")
	}
	if len(resp.Results) != 1 || resp.Results[0].Tool.ID != midjourneyID {
		t.Fatalf("unexpected recommendations %+v", resp.Results)
	}
	if resp.Results[0].Reason == "" {
		t.Error("expected the recommendation reason to be passed through")
	}
}

// TestAddToolEnrichesWhenConfigured drives an enrichment-assisted add
// over HTTP against a fake chat-completions endpoint. The snippet
// endpoint is unreachable here, so the pipeline runs in its no-web
// degraded mode.
func TestAddToolEnrichesWhenConfigured(t *testing.T) {
	content, err := json.Marshal(map[string]any{
		"description": "Generates images from text prompts.",
		"keywords":    []string{"Images", "ART", "art", "generation"},
		"category":    "image generation",
	})
	if err != nil {
		t.Fatalf("marshal model reply: %v", err)
	}

	completions := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": string(content)}},
			},
		})
	}))
	defer completions.Close()

	e := newEnv(t, completions.URL)
	e.do(t, http.MethodPut, "/api/settings", map[string]any{"api_key": "sk-test"}, nil)

	var added struct {
		Tool domain.Tool `json:"tool"`
	}
	rec := e.do(t, http.MethodPost, "/api/tools", map[string]any{
		"name": "Midjourney", "link": "https://midjourney.com",
		"description": "some image thing", "enrich": true,
	}, &added)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: %d %s", rec.Code, rec.Body.String())
	}

	tool := added.Tool
	if !tool.AIEnriched || tool.AINote != ai.NoteEnriched {
		t.Fatalf("expected an enriched entry, got %+v", tool)
	}
	if tool.Description != "Generates images from text prompts." {
		t.Errorf("description not replaced: %q", tool.Description)
	}
	if tool.Category != "image generation" {
		t.Errorf("category not replaced: %q", tool.Category)
	}
	if len(tool.Keywords) != 3 {
		t.Errorf("expected 3 deduplicated keywords, got %v", tool.Keywords)
	}
	if tool.ID != domain.ToolID("Midjourney", "https://midjourney.com") {
		t.Errorf("identity changed during enrichment: %q", tool.ID)
	}

	stored, ok := e.deps.Catalog.Get(tool.ID)
	if !ok || !stored.AIEnriched {
		t.Fatalf("stored entry not enriched: %+v", stored)
	}
}
