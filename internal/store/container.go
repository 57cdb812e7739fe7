package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Persister writes a snapshot to durable storage as one atomic overwrite.
type Persister interface {
	Save(ctx context.Context, doc Document) error
}

// Mutation transforms one snapshot into the next.
type Mutation func(Document) Document

// Container owns the current document snapshot. It is the only stateful piece
// of the record-keeping core: services read via Snapshot and write via Apply,
// which persists every transition synchronously. A failed write is logged and
// discarded; the in-memory snapshot stays authoritative.
type Container struct {
	mu        sync.RWMutex
	doc       Document
	revision  uint64
	persister Persister
	logger    zerolog.Logger
}

// NewContainer builds a state container around an initial snapshot. The
// persister may be nil for read-only or in-memory use.
func NewContainer(doc Document, persister Persister, logger zerolog.Logger) *Container {
	return &Container{
		doc:       doc.Normalize(),
		persister: persister,
		logger:    logger.With().Str("component", "store_container").Logger(),
	}
}

// Snapshot returns the current document value.
func (c *Container) Snapshot() Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.doc
}

// Revision returns a counter that increases on every applied mutation; cache
// layers key derived results on it.
func (c *Container) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// Apply swaps in the snapshot produced by the mutation and persists it. The
// returned value is the new current snapshot.
func (c *Container) Apply(ctx context.Context, mutation Mutation) Document {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doc = mutation(c.doc)
	c.revision++
	c.persist(ctx)
	return c.doc
}

// Reset replaces the whole document, normalizing and persisting it. Used by
// the demo-data reset and by restores.
func (c *Container) Reset(ctx context.Context, doc Document) Document {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doc = doc.Normalize()
	c.revision++
	c.persist(ctx)
	return c.doc
}

func (c *Container) persist(ctx context.Context) {
	if c.persister == nil {
		return
	}
	if err := c.persister.Save(ctx, c.doc); err != nil {
		c.logger.Warn().Err(err).Msg("failed to persist document, write discarded")
	}
}
