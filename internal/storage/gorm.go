package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// documentRowID is the primary key of the single row the document occupies.
const documentRowID = 1

// documentRow is the table shape for SQL-backed storage: one row, one JSON
// payload column. Relational decomposition buys nothing for a document that
// is always read and written whole.
type documentRow struct {
	ID      uint           `gorm:"primaryKey"`
	Payload datatypes.JSON `gorm:"not null"`
}

func (documentRow) TableName() string {
	return "documents"
}

// GormStorage keeps the document in a single-row table, working against any
// GORM dialect (SQLite for local use, Postgres for hosted deployments).
type GormStorage struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewGormStorage migrates the documents table and returns SQL-backed storage.
func NewGormStorage(db *gorm.DB, logger zerolog.Logger) (*GormStorage, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}

	return &GormStorage{
		db:     db,
		logger: logger.With().Str("component", "gorm_storage").Logger(),
	}, nil
}

// Load fetches and decodes the document row.
func (s *GormStorage) Load(ctx context.Context) (store.Document, bool, error) {
	var row documentRow
	err := s.db.WithContext(ctx).First(&row, documentRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.Document{}, false, nil
	}
	if err != nil {
		return store.Document{}, false, fmt.Errorf("failed to read document row: %w", err)
	}

	var doc store.Document
	if err := json.Unmarshal(row.Payload, &doc); err != nil {
		s.logger.Warn().Err(err).Msg("stored document is unreadable")
		return store.Document{}, false, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	return doc.Normalize(), true, nil
}

// Save upserts the document row, replacing the payload in place.
func (s *GormStorage) Save(ctx context.Context, doc store.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	row := documentRow{ID: documentRowID, Payload: raw}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write document row: %w", err)
	}

	return nil
}
