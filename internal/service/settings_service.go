package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// SettingsService reads and updates document-wide preferences.
type SettingsService interface {
	Get(ctx context.Context) store.Settings
	Update(ctx context.Context, req dto.SettingsRequest) (store.Settings, error)
}

type settingsService struct {
	container *store.Container
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSettingsService constructs the settings service.
func NewSettingsService(container *store.Container, validator *validator.Validate, logger zerolog.Logger) SettingsService {
	return &settingsService{
		container: container,
		validator: validator,
		logger:    logger.With().Str("component", "settings_service").Logger(),
	}
}

func (s *settingsService) Get(_ context.Context) store.Settings {
	return s.container.Snapshot().Settings
}

func (s *settingsService) Update(ctx context.Context, req dto.SettingsRequest) (store.Settings, error) {
	if err := s.validator.Struct(req); err != nil {
		return store.Settings{}, err
	}

	var saved store.Settings
	s.container.Apply(ctx, func(doc store.Document) store.Document {
		settings := doc.Settings
		if req.WeekStartsOn != nil {
			settings.WeekStartsOn = *req.WeekStartsOn
		}
		if req.FeedbackEmail != nil {
			settings.FeedbackEmail = *req.FeedbackEmail
		}
		next := store.UpdateSettings(doc, settings)
		saved = next.Settings
		return next
	})

	s.logger.Info().Int("week_starts_on", saved.WeekStartsOn).Msg("settings updated")
	return saved, nil
}
