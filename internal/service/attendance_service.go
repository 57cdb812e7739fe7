package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dateutil"
	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/metrics"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// AttendanceService records and summarizes daily attendance.
type AttendanceService interface {
	Toggle(ctx context.Context, req dto.AttendanceToggleRequest) (dto.AttendanceToggleResult, error)
	Summary(ctx context.Context, studentID string, from, to dateutil.Day) (metrics.AttendanceSummary, error)
}

type attendanceService struct {
	container *store.Container
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(container *store.Container, validator *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		container: container,
		validator: validator,
		logger:    logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) Toggle(ctx context.Context, req dto.AttendanceToggleRequest) (dto.AttendanceToggleResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AttendanceToggleResult{}, err
	}
	if _, ok := s.container.Snapshot().StudentByID(req.StudentID); !ok {
		return dto.AttendanceToggleResult{}, ErrStudentNotFound
	}

	var present bool
	s.container.Apply(ctx, func(doc store.Document) store.Document {
		next := store.ToggleAttendance(doc, req.StudentID, req.Date)
		present = next.Attendance[req.StudentID][req.Date]
		return next
	})

	return dto.AttendanceToggleResult{
		StudentID: req.StudentID,
		Date:      req.Date,
		Present:   present,
	}, nil
}

func (s *attendanceService) Summary(_ context.Context, studentID string, from, to dateutil.Day) (metrics.AttendanceSummary, error) {
	doc := s.container.Snapshot()
	if _, ok := doc.StudentByID(studentID); !ok {
		return metrics.AttendanceSummary{}, ErrStudentNotFound
	}
	return metrics.SummarizeAttendance(doc, studentID, from, to), nil
}
