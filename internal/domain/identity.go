package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	// ToolIDLength is the hex-prefix length of catalog entry IDs
	// (sufficient for uniqueness at catalog scale).
	ToolIDLength = 16

	// ItemIDLength is the hex-prefix length of per-entry item IDs
	// (comments and external links; collisions only matter inside
	// one entry's list).
	ItemIDLength = 8
)

// ToolID creates a stable ID from a tool's name and link using a
// SHA-256 hash. Both parts are trimmed and lowercased first so that
// cosmetic edits do not fork the identity, even if the description
// or keywords change.
func ToolID(name, link string) string {
	payload := normalizeIDPart(name) + "|" + normalizeIDPart(link)
	hash := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(hash[:])[:ToolIDLength]
}

// ItemID creates a short ID for a per-entry item from its parts
// (typically entry ID, author or title, and a timestamp).
func ItemID(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(hash[:])[:ItemIDLength]
}

func normalizeIDPart(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Dedupe removes duplicate catalog entries, keeping the first
// occurrence and preserving order. Entries missing an ID get one
// assigned from their name and link. Running Dedupe twice yields
// the same result.
func Dedupe(tools []Tool) []Tool {
	seen := make(map[string]bool, len(tools))
	out := make([]Tool, 0, len(tools))

	for _, t := range tools {
		if t.ID == "" {
			t.ID = ToolID(t.Name, t.Link)
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}

	return out
}
