package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// ErrStudentNotFound indicates the requested student does not exist.
var ErrStudentNotFound = errors.New("student not found")

// StudentService manages the student roster and active selection.
type StudentService interface {
	List(ctx context.Context) dto.StudentListResult
	Upsert(ctx context.Context, req dto.StudentRequest) (store.Student, error)
	Remove(ctx context.Context, studentID string) error
	SetActive(ctx context.Context, req dto.ActiveStudentRequest) error
}

type studentService struct {
	container *store.Container
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentService constructs the student roster service.
func NewStudentService(container *store.Container, validator *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		container: container,
		validator: validator,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(_ context.Context) dto.StudentListResult {
	doc := s.container.Snapshot()
	return dto.StudentListResult{
		Students:        doc.Students,
		ActiveStudentID: doc.ActiveStudentID,
	}
}

func (s *studentService) Upsert(ctx context.Context, req dto.StudentRequest) (store.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return store.Student{}, err
	}

	student := store.Student{
		ID:            strings.TrimSpace(req.ID),
		Name:          strings.TrimSpace(req.Name),
		Grade:         strings.TrimSpace(req.Grade),
		Subjects:      trimAll(req.Subjects),
		WeeklyTargets: req.WeeklyTargets,
	}

	if student.ID != "" {
		if _, ok := s.container.Snapshot().StudentByID(student.ID); !ok {
			return store.Student{}, ErrStudentNotFound
		}
	}

	var saved store.Student
	s.container.Apply(ctx, func(doc store.Document) store.Document {
		next := store.UpsertStudent(doc, student)
		if student.ID == "" {
			saved = next.Students[len(next.Students)-1]
		} else {
			saved, _ = next.StudentByID(student.ID)
		}
		return next
	})

	s.logger.Info().Str("student_id", saved.ID).Msg("student saved")
	return saved, nil
}

func (s *studentService) Remove(ctx context.Context, studentID string) error {
	if _, ok := s.container.Snapshot().StudentByID(studentID); !ok {
		return ErrStudentNotFound
	}

	s.container.Apply(ctx, func(doc store.Document) store.Document {
		return store.RemoveStudent(doc, studentID)
	})

	s.logger.Info().Str("student_id", studentID).Msg("student removed")
	return nil
}

func (s *studentService) SetActive(ctx context.Context, req dto.ActiveStudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}
	if _, ok := s.container.Snapshot().StudentByID(req.StudentID); !ok {
		return ErrStudentNotFound
	}

	s.container.Apply(ctx, func(doc store.Document) store.Document {
		return store.SetActiveStudent(doc, req.StudentID)
	})
	return nil
}

func trimAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
