package handlers

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/M3lvz/toolsorter/internal/domain"
)

func TestAddToolNormalizesInput(t *testing.T) {
	d := newTestDeps(t)
	h := mount(d)

	var resp addToolResponse
	rec := do(t, h, http.MethodPost, "/api/tools", map[string]any{
		"name":     "  ChatGPT  ",
		"link":     "https://chat.openai.com",
		"keywords": "Chat, Writing; CODE",
		"price":    2,
	}, &resp)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if resp.Warning != "" {
		t.Fatalf("unexpected warning %q", resp.Warning)
	}
	if resp.Tool.Name != "ChatGPT" {
		t.Errorf("expected trimmed name, got %q", resp.Tool.Name)
	}
	want := []string{"chat", "writing", "code"}
	if !reflect.DeepEqual(resp.Tool.Keywords, want) {
		t.Errorf("expected keywords %v, got %v", want, resp.Tool.Keywords)
	}
	if resp.Tool.ID != domain.ToolID("ChatGPT", "https://chat.openai.com") {
		t.Errorf("unexpected ID %q", resp.Tool.ID)
	}
	if resp.Tool.AddedAt == "" {
		t.Error("expected AddedAt to be set")
	}

	var list toolListResponse
	do(t, h, http.MethodGet, "/api/tools", nil, &list)
	if list.Total != 1 || len(list.Tools) != 1 {
		t.Fatalf("expected one tool in the catalog, got %+v", list)
	}
}

func TestAddToolRejectsAnonymousEntry(t *testing.T) {
	d := newTestDeps(t)
	h := mount(d)

	var resp errorResponse
	rec := do(t, h, http.MethodPost, "/api/tools", map[string]any{
		"description": "something without a name",
	}, &resp)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp.Error == "" {
		t.Error("expected an error message")
	}
	if d.Catalog.Count() != 0 {
		t.Error("catalog should stay empty")
	}
}

func TestAddToolRejectsBadJSON(t *testing.T) {
	d := newTestDeps(t)
	h := mount(d)

	rec := do(t, h, http.MethodPost, "/api/tools", "not an object", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddToolDuplicateWarns(t *testing.T) {
	d := newTestDeps(t)
	h := mount(d)

	first := map[string]any{"name": "Midjourney", "link": "https://midjourney.com"}
	rec := do(t, h, http.MethodPost, "/api/tools", first, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed add failed: %d", rec.Code)
	}

	// Same identity, different casing and spacing.
	var resp addToolResponse
	rec = do(t, h, http.MethodPost, "/api/tools", map[string]any{
		"name": "  midjourney ",
		"link": "https://midjourney.com",
	}, &resp)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if resp.Warning == "" {
		t.Error("expected a duplicate warning")
	}
	if resp.Tool.Name != "Midjourney" {
		t.Errorf("expected the existing entry back, got %q", resp.Tool.Name)
	}
	if d.Catalog.Count() != 1 {
		t.Errorf("expected 1 tool, got %d", d.Catalog.Count())
	}
}

func TestGetTool(t *testing.T) {
	d := newTestDeps(t)
	h := mount(d)

	var created addToolResponse
	do(t, h, http.MethodPost, "/api/tools", map[string]any{"name": "Whisper"}, &created)

	var tool domain.Tool
	rec := do(t, h, http.MethodGet, "/api/tools/"+created.Tool.ID, nil, &tool)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if tool.Name != "Whisper" {
		t.Errorf("expected Whisper, got %q", tool.Name)
	}

	rec = do(t, h, http.MethodGet, "/api/tools/nope", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
	}
}

func TestDeleteTool(t *testing.T) {
	d := newTestDeps(t)
	h := mount(d)

	var created addToolResponse
	do(t, h, http.MethodPost, "/api/tools", map[string]any{"name": "Claude"}, &created)

	rec := do(t, h, http.MethodDelete, "/api/tools/"+created.Tool.ID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if d.Catalog.Count() != 0 {
		t.Error("expected an empty catalog after delete")
	}

	rec = do(t, h, http.MethodDelete, "/api/tools/"+created.Tool.ID, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestDedupeTools(t *testing.T) {
	d := newTestDeps(t)
	h := mount(d)

	// Two distinct tools plus a duplicate planted behind the API.
	do(t, h, http.MethodPost, "/api/tools", map[string]any{"name": "ChatGPT"}, nil)
	do(t, h, http.MethodPost, "/api/tools", map[string]any{"name": "Claude"}, nil)

	all := d.Catalog.All()
	all = append(all, all[0])
	if err := d.Catalog.ReplaceAll(all); err != nil {
		t.Fatalf("planting duplicate: %v", err)
	}

	var resp dedupeResponse
	rec := do(t, h, http.MethodPost, "/api/tools/dedupe", nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp.Removed != 1 || resp.Total != 2 {
		t.Errorf("expected 1 removed of 2 kept, got %+v", resp)
	}

	// Idempotent when nothing is duplicated.
	do(t, h, http.MethodPost, "/api/tools/dedupe", nil, &resp)
	if resp.Removed != 0 || resp.Total != 2 {
		t.Errorf("expected a no-op, got %+v", resp)
	}
}
