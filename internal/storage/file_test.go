package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/homeschoolhq/hq-go-api/internal/store"
)

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "document.json")
	fs := NewFileStorage(path, zerolog.Nop())

	_, ok, err := fs.Load(context.Background())
	require.NoError(t, err)
	require.False(t, ok)

	doc := store.Seed(time.Now())
	doc = store.ToggleAttendance(doc, doc.Students[0].ID, "2025-01-06")
	require.NoError(t, fs.Save(context.Background(), doc))

	loaded, ok, err := fs.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, doc, loaded)
}

func TestFileStorageOverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document.json")
	fs := NewFileStorage(path, zerolog.Nop())

	first := store.Seed(time.Now())
	require.NoError(t, fs.Save(context.Background(), first))

	second := store.RemoveStudent(first, first.Students[0].ID)
	require.NoError(t, fs.Save(context.Background(), second))

	loaded, ok, err := fs.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, loaded.Students, 1)
}

func TestFileStorageReportsCorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	fs := NewFileStorage(path, zerolog.Nop())
	_, ok, err := fs.Load(context.Background())
	require.False(t, ok)
	require.ErrorIs(t, err, ErrCorruptDocument)
}
