package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// documentKey is the fixed key the whole document lives under. There is one
// document per deployment, so no key scheme is needed.
const documentKey = "hq:document"

// RedisStorage keeps the document as a single JSON string in Redis.
type RedisStorage struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStorage returns Redis-backed document storage using the given client.
func NewRedisStorage(client *redis.Client, logger zerolog.Logger) *RedisStorage {
	return &RedisStorage{
		client: client,
		logger: logger.With().Str("component", "redis_storage").Logger(),
	}
}

// Load fetches and decodes the stored document.
func (s *RedisStorage) Load(ctx context.Context) (store.Document, bool, error) {
	raw, err := s.client.Get(ctx, documentKey).Result()
	if err == redis.Nil {
		return store.Document{}, false, nil
	}
	if err != nil {
		return store.Document{}, false, fmt.Errorf("failed to read document from redis: %w", err)
	}

	var doc store.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		s.logger.Warn().Err(err).Msg("stored document is unreadable")
		return store.Document{}, false, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	return doc.Normalize(), true, nil
}

// Save overwrites the stored document. The key has no TTL, the document is
// durable state rather than a cache entry.
func (s *RedisStorage) Save(ctx context.Context, doc store.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if err := s.client.Set(ctx, documentKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write document to redis: %w", err)
	}

	return nil
}
