// Package storage persists the application document as one opaque JSON blob.
// Backends overwrite the whole document on every save so a reload always sees
// either the previous or the new snapshot, never a partial merge.
package storage

import (
	"context"
	"errors"

	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// ErrCorruptDocument signals that a backend found a payload it could not
// decode. Callers fall back to a fresh seed document in that case.
var ErrCorruptDocument = errors.New("stored document is corrupt")

// DocumentStorage loads and saves the single application document.
type DocumentStorage interface {
	// Load returns the stored document. The boolean is false when the
	// backend holds no document yet, which is not an error.
	Load(ctx context.Context) (store.Document, bool, error)

	// Save overwrites the stored document with the given snapshot.
	Save(ctx context.Context, doc store.Document) error
}
