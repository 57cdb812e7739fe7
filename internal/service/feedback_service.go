package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// FeedbackService collects in-app feedback and prepares it for hand-off.
type FeedbackService interface {
	Submit(ctx context.Context, req dto.FeedbackRequest) (dto.FeedbackResult, error)
	List(ctx context.Context) []store.FeedbackEntry
	Mailto(ctx context.Context, req dto.FeedbackRequest) (dto.FeedbackMailtoResult, error)
}

type feedbackService struct {
	container *store.Container
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	email     string
	logger    zerolog.Logger
	now       func() time.Time
}

// NewFeedbackService constructs the feedback service. Free-text fields are
// stripped of any markup before they reach the document.
func NewFeedbackService(container *store.Container, validator *validator.Validate, fallbackEmail string, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		container: container,
		validator: validator,
		sanitizer: bluemonday.StrictPolicy(),
		email:     fallbackEmail,
		logger:    logger.With().Str("component", "feedback_service").Logger(),
		now:       time.Now,
	}
}

func (s *feedbackService) Submit(ctx context.Context, req dto.FeedbackRequest) (dto.FeedbackResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.FeedbackResult{}, err
	}

	entry := store.FeedbackEntry{
		Name:    s.clean(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Rating:  req.Rating,
		Message: s.clean(req.Message),
		At:      s.now().UTC().Format(time.RFC3339),
	}

	var saved store.FeedbackEntry
	s.container.Apply(ctx, func(doc store.Document) store.Document {
		next := store.AddFeedback(doc, entry)
		saved = next.Feedback[len(next.Feedback)-1]
		return next
	})

	s.logger.Info().Str("feedback_id", saved.ID).Int("rating", saved.Rating).Msg("feedback recorded")
	return dto.FeedbackResult{ID: saved.ID, At: saved.At}, nil
}

func (s *feedbackService) List(_ context.Context) []store.FeedbackEntry {
	return s.container.Snapshot().Feedback
}

// Mailto renders the feedback as a mailto link targeting the configured
// address, falling back to the deployment default when settings hold none.
func (s *feedbackService) Mailto(_ context.Context, req dto.FeedbackRequest) (dto.FeedbackMailtoResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.FeedbackMailtoResult{}, err
	}

	address := s.container.Snapshot().Settings.FeedbackEmail
	if address == "" {
		address = s.email
	}

	subject := fmt.Sprintf("App feedback (%d/5)", req.Rating)
	body := s.clean(req.Message)
	if name := s.clean(req.Name); name != "" {
		body = fmt.Sprintf("%s\n\n- %s", body, name)
	}

	link := fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		address, encodeMailtoComponent(subject), encodeMailtoComponent(body))
	return dto.FeedbackMailtoResult{Mailto: link}, nil
}

func (s *feedbackService) clean(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

// encodeMailtoComponent percent-encodes for the mailto scheme, where spaces
// must be %20 rather than the form-encoding plus sign.
func encodeMailtoComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
