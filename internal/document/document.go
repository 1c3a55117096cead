// Package document persists the assembled conference model as the JSON
// artifact the report generators reload.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"progdoc/internal/conference"
)

// Write serializes doc to path. The document is staged in a temporary file in
// the target directory and renamed into place, so a failure mid-write never
// leaves a partial artifact at path.
func Write(path string, doc *conference.Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".conference_data-*.json")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("flush document: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publish document: %w", err)
	}
	return nil
}

// Load reads a previously written document back into memory.
func Load(path string) (*conference.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var doc conference.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %q: %w", path, err)
	}
	return &doc, nil
}
