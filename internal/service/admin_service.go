package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// AdminService exposes whole-document operations.
type AdminService interface {
	Reset(ctx context.Context) dto.ResetResult
	Export(ctx context.Context) store.Document
}

type adminService struct {
	container *store.Container
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAdminService constructs the document administration service.
func NewAdminService(container *store.Container, logger zerolog.Logger) AdminService {
	return &adminService{
		container: container,
		logger:    logger.With().Str("component", "admin_service").Logger(),
		now:       time.Now,
	}
}

// Reset discards the document and reinstalls the starter dataset.
func (s *adminService) Reset(ctx context.Context) dto.ResetResult {
	doc := s.container.Reset(ctx, store.Seed(s.now()))
	s.logger.Warn().Int("students", len(doc.Students)).Msg("document reset to seed data")
	return dto.ResetResult{
		Students:   len(doc.Students),
		AppVersion: doc.AppVersion,
	}
}

// Export returns the full document for backup purposes.
func (s *adminService) Export(_ context.Context) store.Document {
	return s.container.Snapshot()
}
