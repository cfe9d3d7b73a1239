// Package store persists the catalog, its annotations and the user
// settings as JSON documents on disk. Every operation reads the whole
// document, mutates it and writes it back atomically: the documents
// are small, and whole-document writes keep them trivially diffable
// and git-friendly.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File names inside the data directory.
const (
	CatalogFile  = "tools.json"
	CommentsFile = "comments.json"
	LinksFile    = "external_links.json"
	SettingsFile = "config.json"
)

// readDocument decodes the JSON document at path into v.
func readDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeDocumentAtomic marshals v as indented JSON and replaces the
// document at path via a temp file in the same directory, so a crash
// mid-write never leaves a half-written document behind.
func writeDocumentAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("failed to write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("failed to sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// notifySync performs a non-blocking send on the sync trigger channel.
// A full channel means a sync is already pending, which covers this
// save too.
func notifySync(ch chan<- struct{}) {
	if ch == nil {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}
