package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// FileStorage keeps the document in a single JSON file on disk. Writes go
// through a temp file plus rename so a crash mid-write never truncates the
// previous snapshot.
type FileStorage struct {
	path   string
	logger zerolog.Logger
}

// NewFileStorage returns file-backed document storage rooted at path.
func NewFileStorage(path string, logger zerolog.Logger) *FileStorage {
	return &FileStorage{
		path:   path,
		logger: logger.With().Str("component", "file_storage").Logger(),
	}
}

// Load reads and decodes the document file.
func (s *FileStorage) Load(_ context.Context) (store.Document, bool, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return store.Document{}, false, nil
	}
	if err != nil {
		return store.Document{}, false, fmt.Errorf("failed to read document file: %w", err)
	}

	var doc store.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("document file is unreadable")
		return store.Document{}, false, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	return doc.Normalize(), true, nil
}

// Save encodes the snapshot and atomically replaces the document file.
func (s *FileStorage) Save(_ context.Context, doc store.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create document directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "document-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace document file: %w", err)
	}

	return nil
}
