package domain

import "testing"

func TestToolID(t *testing.T) {
	tests := []struct {
		name  string
		nameA string
		linkA string
		nameB string
		linkB string
		same  bool
	}{
		{
			name:  "identical inputs",
			nameA: "ChatGPT",
			linkA: "https://chat.openai.com",
			nameB: "ChatGPT",
			linkB: "https://chat.openai.com",
			same:  true,
		},
		{
			name:  "case insensitive",
			nameA: "ChatGPT",
			linkA: "https://chat.openai.com",
			nameB: "chatgpt",
			linkB: "HTTPS://CHAT.OPENAI.COM",
			same:  true,
		},
		{
			name:  "surrounding whitespace ignored",
			nameA: "  ChatGPT  ",
			linkA: " https://chat.openai.com ",
			nameB: "ChatGPT",
			linkB: "https://chat.openai.com",
			same:  true,
		},
		{
			name:  "different link forks identity",
			nameA: "ChatGPT",
			linkA: "https://chat.openai.com",
			nameB: "ChatGPT",
			linkB: "https://chatgpt.com",
			same:  false,
		},
		{
			name:  "different name forks identity",
			nameA: "ChatGPT",
			linkA: "https://chat.openai.com",
			nameB: "Claude",
			linkB: "https://chat.openai.com",
			same:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idA := ToolID(tt.nameA, tt.linkA)
			idB := ToolID(tt.nameB, tt.linkB)

			if len(idA) != ToolIDLength {
				t.Errorf("ToolID() length = %d, want %d", len(idA), ToolIDLength)
			}
			if tt.same && idA != idB {
				t.Errorf("ToolID() = %q and %q, want equal", idA, idB)
			}
			if !tt.same && idA == idB {
				t.Errorf("ToolID() = %q for both, want different", idA)
			}
		})
	}
}

func TestItemID(t *testing.T) {
	idA := ItemID("entry1", "alice", "2024-01-15T10:00:00Z")
	idB := ItemID("entry1", "bob", "2024-01-15T10:00:00Z")

	if len(idA) != ItemIDLength {
		t.Errorf("ItemID() length = %d, want %d", len(idA), ItemIDLength)
	}
	if idA == idB {
		t.Errorf("ItemID() = %q for different authors, want different", idA)
	}

	// Same parts always derive the same ID
	if again := ItemID("entry1", "alice", "2024-01-15T10:00:00Z"); again != idA {
		t.Errorf("ItemID() = %q, want stable %q", again, idA)
	}
}

func TestDedupe(t *testing.T) {
	tools := []Tool{
		{ID: "aaa", Name: "First", Link: "https://first.example"},
		{ID: "bbb", Name: "Second", Link: "https://second.example"},
		{ID: "aaa", Name: "First again", Link: "https://first.example"},
		{Name: "Third", Link: "https://third.example"}, // missing ID
	}

	out := Dedupe(tools)

	if len(out) != 3 {
		t.Fatalf("Dedupe() returned %d entries, want 3", len(out))
	}
	if out[0].ID != "aaa" || out[0].Name != "First" {
		t.Errorf("Dedupe() first entry = %+v, want first occurrence kept", out[0])
	}
	if out[1].ID != "bbb" {
		t.Errorf("Dedupe() order not preserved: second = %+v", out[1])
	}
	if out[2].ID == "" {
		t.Error("Dedupe() should assign missing IDs")
	}
	if out[2].ID != ToolID("Third", "https://third.example") {
		t.Errorf("Dedupe() assigned ID = %q, want derived from name+link", out[2].ID)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	tools := []Tool{
		{ID: "aaa", Name: "First"},
		{ID: "aaa", Name: "Duplicate"},
		{ID: "bbb", Name: "Second"},
	}

	once := Dedupe(tools)
	twice := Dedupe(once)

	if len(once) != len(twice) {
		t.Fatalf("Dedupe() not idempotent: %d then %d entries", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("Dedupe() second pass changed entry %d: %q -> %q", i, once[i].ID, twice[i].ID)
		}
	}
}

func TestDedupeEmpty(t *testing.T) {
	out := Dedupe(nil)
	if len(out) != 0 {
		t.Errorf("Dedupe(nil) = %v, want empty", out)
	}
}
