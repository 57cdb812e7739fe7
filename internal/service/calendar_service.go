package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dateutil"
	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// ErrInvalidMonth indicates the year/month pair is out of range.
var ErrInvalidMonth = errors.New("invalid year or month")

// CalendarService renders the month grid with per-day activity.
type CalendarService interface {
	Month(ctx context.Context, studentID string, year, month int) (dto.CalendarMonthResponse, error)
}

type calendarService struct {
	container *store.Container
	logger    zerolog.Logger
}

// NewCalendarService constructs the calendar service.
func NewCalendarService(container *store.Container, logger zerolog.Logger) CalendarService {
	return &calendarService{
		container: container,
		logger:    logger.With().Str("component", "calendar_service").Logger(),
	}
}

func (s *calendarService) Month(_ context.Context, studentID string, year, month int) (dto.CalendarMonthResponse, error) {
	if year < 1970 || year > 9999 || month < 1 || month > 12 {
		return dto.CalendarMonthResponse{}, ErrInvalidMonth
	}

	doc := s.container.Snapshot()
	if _, ok := doc.StudentByID(studentID); !ok {
		return dto.CalendarMonthResponse{}, ErrStudentNotFound
	}
	record := doc.Attendance[studentID]

	matrix := dateutil.MonthMatrix(year, time.Month(month), doc.Settings.WeekStartsOn)
	weeks := make([][]dto.CalendarDay, 0, len(matrix))
	for _, row := range matrix {
		week := make([]dto.CalendarDay, 0, len(row))
		for _, day := range row {
			key := day.String()

			count := 0
			minutes := 0.0
			for _, lesson := range doc.Lessons[key] {
				if !lesson.VisibleTo(studentID) {
					continue
				}
				count++
				minutes += lesson.Duration * 60
			}

			week = append(week, dto.CalendarDay{
				Date:         key,
				InMonth:      day.Time().Month() == time.Month(month),
				Present:      record[key],
				LessonCount:  count,
				TotalMinutes: int(minutes),
			})
		}
		weeks = append(weeks, week)
	}

	return dto.CalendarMonthResponse{Year: year, Month: month, Weeks: weeks}, nil
}
