package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/metrics"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// ErrAssignmentNotFound indicates no assignment matches the given keys.
var ErrAssignmentNotFound = errors.New("assignment not found")

// GradeService records assignments and rolls them up to a transcript.
type GradeService interface {
	Subjects(ctx context.Context, studentID string) (map[string]store.SubjectGrades, error)
	AddAssignment(ctx context.Context, req dto.AssignmentRequest) (store.Assignment, error)
	RemoveAssignment(ctx context.Context, studentID, subject, assignmentID string) error
	Transcript(ctx context.Context, studentID string) (metrics.Transcript, error)
}

type gradeService struct {
	container *store.Container
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGradeService constructs the gradebook service.
func NewGradeService(container *store.Container, validator *validator.Validate, logger zerolog.Logger) GradeService {
	return &gradeService{
		container: container,
		validator: validator,
		logger:    logger.With().Str("component", "grade_service").Logger(),
	}
}

func (s *gradeService) Subjects(_ context.Context, studentID string) (map[string]store.SubjectGrades, error) {
	doc := s.container.Snapshot()
	if _, ok := doc.StudentByID(studentID); !ok {
		return nil, ErrStudentNotFound
	}
	subjects := doc.Grades[studentID]
	if subjects == nil {
		return map[string]store.SubjectGrades{}, nil
	}
	return subjects, nil
}

func (s *gradeService) AddAssignment(ctx context.Context, req dto.AssignmentRequest) (store.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return store.Assignment{}, err
	}
	if _, ok := s.container.Snapshot().StudentByID(req.StudentID); !ok {
		return store.Assignment{}, ErrStudentNotFound
	}

	subject := strings.TrimSpace(req.Subject)
	assignment := store.Assignment{
		Title: strings.TrimSpace(req.Title),
		Score: req.Score,
		Max:   req.Max,
		Date:  req.Date,
	}

	var saved store.Assignment
	s.container.Apply(ctx, func(doc store.Document) store.Document {
		next := store.AddAssignment(doc, req.StudentID, subject, assignment)
		assignments := next.Grades[req.StudentID][subject].Assignments
		saved = assignments[len(assignments)-1]
		return next
	})

	s.logger.Info().
		Str("student_id", req.StudentID).
		Str("subject", subject).
		Str("assignment_id", saved.ID).
		Msg("assignment recorded")
	return saved, nil
}

func (s *gradeService) RemoveAssignment(ctx context.Context, studentID, subject, assignmentID string) error {
	doc := s.container.Snapshot()
	found := false
	for _, assignment := range doc.Grades[studentID][subject].Assignments {
		if assignment.ID == assignmentID {
			found = true
		}
	}
	if !found {
		return ErrAssignmentNotFound
	}

	s.container.Apply(ctx, func(doc store.Document) store.Document {
		return store.RemoveAssignment(doc, studentID, subject, assignmentID)
	})
	return nil
}

func (s *gradeService) Transcript(_ context.Context, studentID string) (metrics.Transcript, error) {
	doc := s.container.Snapshot()
	if _, ok := doc.StudentByID(studentID); !ok {
		return metrics.Transcript{}, ErrStudentNotFound
	}
	return metrics.RollupGrades(doc, studentID), nil
}
