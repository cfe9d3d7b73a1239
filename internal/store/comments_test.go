package store

import "testing"

func TestCommentsAddAndList(t *testing.T) {
	comments := NewComments(t.TempDir(), testLogger(), nil)

	added, err := comments.Add("entry-1", "alice", "Solid tool", 4)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if added.ID == "" {
		t.Fatal("Add() should assign an ID")
	}
	if added.Rating != 4 {
		t.Errorf("Add() Rating = %d, want 4", added.Rating)
	}

	list := comments.List("entry-1")
	if len(list) != 1 {
		t.Fatalf("List() = %d comments, want 1", len(list))
	}
	if list[0].Author != "alice" {
		t.Errorf("List()[0].Author = %q, want alice", list[0].Author)
	}
}

func TestCommentsListEmpty(t *testing.T) {
	comments := NewComments(t.TempDir(), testLogger(), nil)

	list := comments.List("never-seen")
	if list == nil {
		t.Fatal("List() = nil, want empty slice")
	}
	if len(list) != 0 {
		t.Errorf("List() = %d comments, want 0", len(list))
	}
}

func TestCommentsRatingClamped(t *testing.T) {
	comments := NewComments(t.TempDir(), testLogger(), nil)

	added, err := comments.Add("entry-1", "bob", "meh", 42)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if added.Rating != 5 {
		t.Errorf("Add() Rating = %d, want clamped to 5", added.Rating)
	}
}

func TestCommentsDelete(t *testing.T) {
	comments := NewComments(t.TempDir(), testLogger(), nil)

	first, err := comments.Add("entry-1", "alice", "first", 3)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	second, err := comments.Add("entry-1", "bob", "second", 3)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, _, err := comments.IncrementLikes(second.ID); err != nil {
		t.Fatalf("IncrementLikes() error = %v", err)
	}

	removed, err := comments.Delete("entry-1", first.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !removed {
		t.Error("Delete() = false, want true")
	}

	list := comments.List("entry-1")
	if len(list) != 1 || list[0].Author != "bob" {
		t.Errorf("List() after delete = %+v, want only bob's comment", list)
	}
	if list[0].Likes != 1 {
		t.Errorf("surviving comment Likes = %d, want 1 untouched by the delete", list[0].Likes)
	}

	removed, err = comments.Delete("entry-1", "missing")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if removed {
		t.Error("Delete() on missing comment = true, want false")
	}
}

func TestCommentsIncrementLikes(t *testing.T) {
	comments := NewComments(t.TempDir(), testLogger(), nil)

	added, err := comments.Add("entry-1", "alice", "like me", 3)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Located by comment ID alone, no entry ID required.
	updated, found, err := comments.IncrementLikes(added.ID)
	if err != nil {
		t.Fatalf("IncrementLikes() error = %v", err)
	}
	if !found {
		t.Fatal("IncrementLikes() found = false, want true")
	}
	if updated.Likes != 1 {
		t.Errorf("IncrementLikes() Likes = %d, want 1", updated.Likes)
	}

	if _, _, err := comments.IncrementLikes(added.ID); err != nil {
		t.Fatalf("IncrementLikes() error = %v", err)
	}
	list := comments.List("entry-1")
	if list[0].Likes != 2 {
		t.Errorf("Likes = %d after two increments, want 2", list[0].Likes)
	}

	_, found, err = comments.IncrementLikes("missing")
	if err != nil {
		t.Fatalf("IncrementLikes() error = %v", err)
	}
	if found {
		t.Error("IncrementLikes() on missing ID found = true, want false")
	}
}

func TestCommentsOrphanedEntriesTolerated(t *testing.T) {
	comments := NewComments(t.TempDir(), testLogger(), nil)

	// The store accepts comments for entry IDs it has never seen;
	// catalog existence is the handler's concern.
	if _, err := comments.Add("ghost-entry", "alice", "still here", 3); err != nil {
		t.Fatalf("Add() for unknown entry error = %v", err)
	}

	total := comments.Count()
	if total != 1 {
		t.Errorf("Count() = %d, want 1", total)
	}
}
