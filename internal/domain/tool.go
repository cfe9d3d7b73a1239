package domain

import (
	"strings"
	"time"
)

const (
	// Price scale bounds (1 = cheap or free, 5 = expensive)
	PriceMin     = 1
	PriceMax     = 5
	PriceDefault = 3

	// MaxKeywords caps keyword lists produced by enrichment or imports
	MaxKeywords = 20
)

// Tool represents the canonical form of a catalog entry.
//
// It is NOT tied to the JSON documents, the export format or any
// external source. All inputs (forms, imports, seeds) are normalized
// into this structure.
//
// A Tool is considered uniquely identified by its ID, which is derived
// from Name and Link (see ToolID).
type Tool struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// Derived from Name and Link (lowercased and trimmed).
	ID string `json:"id"`

	// Name is the display name of the tool.
	// Example: "ChatGPT"
	Name string `json:"name"`

	// Link is the URL where the tool lives.
	// Example: https://chat.openai.com/
	Link string `json:"link"`

	// ─────────────────────────────
	// Functional description
	// (may be overwritten by AI enrichment)
	// ─────────────────────────────

	// Description is a short free-text summary.
	Description string `json:"description"`

	// Category is a free-text grouping label.
	// Example: "chatbot"
	Category string `json:"category"`

	// Keywords are lowercase search terms.
	Keywords []string `json:"keywords"`

	// Price ranks cost on a 1-5 scale.
	Price int `json:"price"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// AddedAt is the RFC3339 UTC timestamp of first insertion.
	AddedAt string `json:"added_at"`

	// ─────────────────────────────
	// Enrichment provenance
	// ─────────────────────────────

	// AIEnriched reports whether the description, keywords and
	// category were rewritten by the enrichment step.
	AIEnriched bool `json:"ai_enriched"`

	// AINote carries a human-readable note when enrichment was
	// skipped or failed. Empty on success.
	AINote string `json:"ai_note,omitempty"`
}

// NowUTC returns the canonical timestamp format used across the catalog.
func NowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ClampPrice forces a price onto the 1-5 scale.
// Zero is treated as "not provided" and maps to the default.
func ClampPrice(p int) int {
	if p == 0 {
		return PriceDefault
	}
	if p < PriceMin {
		return PriceMin
	}
	if p > PriceMax {
		return PriceMax
	}
	return p
}

// NormalizeKeywords trims, lowercases and drops empty keywords.
// Accepts both "," and ";" separated free text via SplitKeywords.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// SplitKeywords parses free-form keyword input.
// Example: "IA; chat; texte" or "ai, chat, text"
func SplitKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	s = strings.ReplaceAll(s, ",", ";")
	return NormalizeKeywords(strings.Split(s, ";"))
}

// Normalize canonicalizes a tool in place: trimmed text fields,
// normalized keywords, clamped price, defaulted timestamp and a
// recomputed ID. Safe to call on partially filled entries.
func (t *Tool) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	t.Link = strings.TrimSpace(t.Link)
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)
	t.Keywords = NormalizeKeywords(t.Keywords)
	t.Price = ClampPrice(t.Price)
	if strings.TrimSpace(t.AddedAt) == "" {
		t.AddedAt = NowUTC()
	}
	t.ID = ToolID(t.Name, t.Link)
}
