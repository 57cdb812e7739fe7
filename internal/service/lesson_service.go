package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dateutil"
	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/observability"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

var (
	// ErrLessonNotFound indicates no lesson matches the date and id.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")
)

// LessonService manages daily lessons and week templates.
type LessonService interface {
	Week(ctx context.Context, anchor dateutil.Day) dto.WeekLessonsResult
	Day(ctx context.Context, day dateutil.Day) []store.Lesson
	Add(ctx context.Context, req dto.LessonRequest) (store.Lesson, error)
	Update(ctx context.Context, date, lessonID string, req dto.LessonUpdateRequest) (store.Lesson, error)
	Remove(ctx context.Context, date, lessonID string) error

	Templates(ctx context.Context) []store.Template
	AddTemplate(ctx context.Context, req dto.TemplateRequest) (store.Template, error)
	ApplyTemplate(ctx context.Context, templateID string, req dto.ApplyTemplateRequest) (dto.ApplyTemplateResult, error)
}

type lessonService struct {
	container *store.Container
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewLessonService constructs the lesson planning service.
func NewLessonService(container *store.Container, validator *validator.Validate, logger zerolog.Logger) LessonService {
	return &lessonService{
		container: container,
		validator: validator,
		logger:    logger.With().Str("component", "lesson_service").Logger(),
	}
}

func (s *lessonService) Week(_ context.Context, anchor dateutil.Day) dto.WeekLessonsResult {
	doc := s.container.Snapshot()
	start := dateutil.StartOfWeek(anchor, doc.Settings.WeekStartsOn)
	end := start.AddDays(6)

	days := map[string][]store.Lesson{}
	for _, day := range dateutil.Range(start, end) {
		key := day.String()
		if lessons, ok := doc.Lessons[key]; ok && len(lessons) > 0 {
			days[key] = lessons
		}
	}

	return dto.WeekLessonsResult{
		Start: start.String(),
		End:   end.String(),
		Days:  days,
	}
}

func (s *lessonService) Day(_ context.Context, day dateutil.Day) []store.Lesson {
	lessons := s.container.Snapshot().Lessons[day.String()]
	if lessons == nil {
		return []store.Lesson{}
	}
	return lessons
}

func (s *lessonService) Add(ctx context.Context, req dto.LessonRequest) (store.Lesson, error) {
	if err := s.validator.Struct(req); err != nil {
		return store.Lesson{}, err
	}

	lesson := store.Lesson{
		Title:      strings.TrimSpace(req.Title),
		Subject:    strings.TrimSpace(req.Subject),
		Duration:   req.Duration,
		Standards:  trimAll(req.Standards),
		Objectives: req.Objectives,
		Links:      req.Links,
		Notes:      req.Notes,
		For:        trimAll(req.For),
	}

	var saved store.Lesson
	s.container.Apply(ctx, func(doc store.Document) store.Document {
		next := store.AddLesson(doc, req.Date, lesson)
		lessons := next.Lessons[req.Date]
		saved = lessons[len(lessons)-1]
		return next
	})

	s.logger.Info().Str("lesson_id", saved.ID).Str("date", req.Date).Msg("lesson added")
	return saved, nil
}

func (s *lessonService) Update(ctx context.Context, date, lessonID string, req dto.LessonUpdateRequest) (store.Lesson, error) {
	if err := s.validator.Struct(req); err != nil {
		return store.Lesson{}, err
	}
	if !lessonExists(s.container.Snapshot(), date, lessonID) {
		return store.Lesson{}, ErrLessonNotFound
	}

	patch := store.LessonPatch{
		Title:      req.Title,
		Subject:    req.Subject,
		Duration:   req.Duration,
		Standards:  req.Standards,
		Objectives: req.Objectives,
		Links:      req.Links,
		Notes:      req.Notes,
		For:        req.For,
	}

	var saved store.Lesson
	s.container.Apply(ctx, func(doc store.Document) store.Document {
		next := store.UpdateLesson(doc, date, lessonID, patch)
		for _, lesson := range next.Lessons[date] {
			if lesson.ID == lessonID {
				saved = lesson
			}
		}
		return next
	})

	return saved, nil
}

func (s *lessonService) Remove(ctx context.Context, date, lessonID string) error {
	if !lessonExists(s.container.Snapshot(), date, lessonID) {
		return ErrLessonNotFound
	}

	s.container.Apply(ctx, func(doc store.Document) store.Document {
		return store.RemoveLesson(doc, date, lessonID)
	})
	return nil
}

func (s *lessonService) Templates(_ context.Context) []store.Template {
	return s.container.Snapshot().Templates
}

func (s *lessonService) AddTemplate(ctx context.Context, req dto.TemplateRequest) (store.Template, error) {
	if err := s.validator.Struct(req); err != nil {
		return store.Template{}, err
	}

	items := make([]store.TemplateItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, store.TemplateItem{
			Title:      strings.TrimSpace(item.Title),
			Subject:    strings.TrimSpace(item.Subject),
			Duration:   item.Duration,
			Standards:  trimAll(item.Standards),
			Objectives: item.Objectives,
		})
	}

	template := store.Template{Name: strings.TrimSpace(req.Name), Items: items}

	var saved store.Template
	s.container.Apply(ctx, func(doc store.Document) store.Document {
		next := store.AddTemplate(doc, template)
		saved = next.Templates[len(next.Templates)-1]
		return next
	})

	s.logger.Info().Str("template_id", saved.ID).Msg("template added")
	return saved, nil
}

func (s *lessonService) ApplyTemplate(ctx context.Context, templateID string, req dto.ApplyTemplateRequest) (dto.ApplyTemplateResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ApplyTemplateResult{}, err
	}

	anchor, err := dateutil.Parse(req.Anchor)
	if err != nil {
		return dto.ApplyTemplateResult{}, err
	}

	snapshot := s.container.Snapshot()
	template, ok := snapshot.TemplateByID(templateID)
	if !ok {
		return dto.ApplyTemplateResult{}, ErrTemplateNotFound
	}
	if _, ok := snapshot.StudentByID(req.StudentID); !ok {
		return dto.ApplyTemplateResult{}, ErrStudentNotFound
	}

	s.container.Apply(ctx, func(doc store.Document) store.Document {
		return store.ApplyTemplateToWeek(doc, templateID, anchor, req.StudentID)
	})
	observability.TemplateExpansions().Inc()

	weekStart := dateutil.StartOfWeek(anchor, snapshot.Settings.WeekStartsOn)
	s.logger.Info().
		Str("template_id", templateID).
		Str("student_id", req.StudentID).
		Str("week_start", weekStart.String()).
		Int("lessons", len(template.Items)).
		Msg("template applied")

	return dto.ApplyTemplateResult{
		TemplateID: templateID,
		WeekStart:  weekStart.String(),
		Created:    len(template.Items),
	}, nil
}

func lessonExists(doc store.Document, date, lessonID string) bool {
	for _, lesson := range doc.Lessons[date] {
		if lesson.ID == lessonID {
			return true
		}
	}
	return false
}
