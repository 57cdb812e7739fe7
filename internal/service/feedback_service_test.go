package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

func newFeedbackService(t *testing.T, doc store.Document) (*feedbackService, *store.Container) {
	t.Helper()
	container := store.NewContainer(doc, nil, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewFeedbackService(container, validate, "feedback@homeschoolhq.app", zerolog.Nop()).(*feedbackService)
	svc.now = func() time.Time {
		return time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	}
	return svc, container
}

func TestFeedbackServiceSubmitStripsMarkup(t *testing.T) {
	svc, container := newFeedbackService(t, rosterDocument())

	result, err := svc.Submit(context.Background(), dto.FeedbackRequest{
		Name:    "  Ada <b>L</b>  ",
		Email:   " Ada@Example.COM ",
		Rating:  4,
		Message: "Love it <script>alert(1)</script>",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.ID)
	require.Equal(t, "2025-03-01T10:30:00Z", result.At)

	entries := container.Snapshot().Feedback
	require.Len(t, entries, 1)
	require.Equal(t, "Ada L", entries[0].Name)
	require.Equal(t, "ada@example.com", entries[0].Email)
	require.Equal(t, "Love it", entries[0].Message)
}

func TestFeedbackServiceSubmitRejectsBadRating(t *testing.T) {
	svc, _ := newFeedbackService(t, rosterDocument())

	_, err := svc.Submit(context.Background(), dto.FeedbackRequest{Rating: 6, Message: "hi"})
	require.Error(t, err)
	require.IsType(t, validator.ValidationErrors{}, err)
}

func TestFeedbackServiceMailtoFallsBackToDefaultAddress(t *testing.T) {
	svc, _ := newFeedbackService(t, rosterDocument())

	result, err := svc.Mailto(context.Background(), dto.FeedbackRequest{
		Rating:  5,
		Message: "great app",
		Name:    "Ada",
	})
	require.NoError(t, err)
	require.Equal(t,
		"mailto:feedback@homeschoolhq.app?subject=App%20feedback%20%285%2F5%29&body=great%20app%0A%0A-%20Ada",
		result.Mailto)
}

func TestFeedbackServiceMailtoUsesConfiguredAddress(t *testing.T) {
	doc := rosterDocument()
	doc.Settings.FeedbackEmail = "family@example.com"
	svc, _ := newFeedbackService(t, doc)

	result, err := svc.Mailto(context.Background(), dto.FeedbackRequest{Rating: 3, Message: "ok"})
	require.NoError(t, err)
	require.Contains(t, result.Mailto, "mailto:family@example.com?")
}
