package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/homeschoolhq/hq-go-api/internal/dateutil"
	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/metrics"
	"github.com/homeschoolhq/hq-go-api/internal/observability"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// Dashboard window sizes, in weeks and days.
const (
	trendWeeks = 8
	heatDays   = 90
)

// ReportService aggregates the derived reporting views. Results are cached in
// Redis keyed on the document revision, so any write naturally invalidates
// every cached report.
type ReportService interface {
	Dashboard(ctx context.Context, studentID string, today dateutil.Day) (dto.DashboardResponse, error)
	Attendance(ctx context.Context, req dto.AttendanceReportRequest) (dto.AttendanceReportResponse, error)
}

type reportService struct {
	container *store.Container
	cache     *redis.Client
	ttl       time.Duration
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewReportService constructs the reporting service. A nil cache disables
// caching without changing results.
func NewReportService(container *store.Container, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ReportService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &reportService{
		container: container,
		cache:     cache,
		ttl:       ttl,
		logger:    logger.With().Str("component", "report_service").Logger(),
		tracer:    otel.Tracer("github.com/homeschoolhq/hq-go-api/internal/service/report"),
	}
}

func (s *reportService) Dashboard(ctx context.Context, studentID string, today dateutil.Day) (dto.DashboardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "report.dashboard")
	defer span.End()

	doc := s.container.Snapshot()
	revision := s.container.Revision()
	span.SetAttributes(
		attribute.String("report.student_id", studentID),
		attribute.String("report.date", today.String()),
		attribute.Int64("report.revision", int64(revision)),
	)

	student, ok := doc.StudentByID(studentID)
	if !ok {
		span.SetStatus(codes.Error, "student not found")
		return dto.DashboardResponse{}, ErrStudentNotFound
	}

	cacheKey := fmt.Sprintf("report:dashboard:%d:%s:%s", revision, studentID, today.String())
	if cached, ok := s.fetchCache(ctx, cacheKey); ok {
		cached.CacheHit = true
		observability.ReportCache().WithLabelValues("hit").Inc()
		return cached, nil
	}

	response := dto.DashboardResponse{
		Student:    student,
		Date:       today.String(),
		Hours:      metrics.WeeklyHours(doc, studentID, today),
		Trend:      metrics.WeeklyHoursSeries(doc, studentID, trendWeeks, today),
		Heat:       metrics.AttendanceHeat(doc, studentID, heatDays, today),
		Attendance: metrics.SummarizeAttendance(doc, studentID, today.AddDays(-(heatDays-1)), today),
		Progress:   metrics.WeeklyProgress(doc, studentID, today),
		Standards:  metrics.StandardsCoverage(doc, studentID),
		Transcript: metrics.RollupGrades(doc, studentID),
	}

	s.writeCache(ctx, cacheKey, response)
	observability.ReportCache().WithLabelValues("miss").Inc()
	span.SetStatus(codes.Ok, "computed")

	return response, nil
}

func (s *reportService) Attendance(ctx context.Context, req dto.AttendanceReportRequest) (dto.AttendanceReportResponse, error) {
	ctx, span := s.tracer.Start(ctx, "report.attendance")
	defer span.End()

	from, err := dateutil.Parse(req.From)
	if err != nil {
		span.RecordError(err)
		return dto.AttendanceReportResponse{}, err
	}
	to, err := dateutil.Parse(req.To)
	if err != nil {
		span.RecordError(err)
		return dto.AttendanceReportResponse{}, err
	}

	doc := s.container.Snapshot()
	student, ok := doc.StudentByID(req.StudentID)
	if !ok {
		span.SetStatus(codes.Error, "student not found")
		return dto.AttendanceReportResponse{}, ErrStudentNotFound
	}

	record := doc.Attendance[req.StudentID]
	days := make([]metrics.HeatPoint, 0)
	for _, day := range dateutil.Range(from, to) {
		present := 0
		if record[day.String()] {
			present = 1
		}
		days = append(days, metrics.HeatPoint{Date: day.String(), Present: present})
	}

	return dto.AttendanceReportResponse{
		Student: student,
		From:    from.String(),
		To:      to.String(),
		Summary: metrics.SummarizeAttendance(doc, req.StudentID, from, to),
		Days:    days,
	}, nil
}

func (s *reportService) fetchCache(ctx context.Context, key string) (dto.DashboardResponse, bool) {
	if s.cache == nil {
		return dto.DashboardResponse{}, false
	}
	payload, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read report cache")
		}
		return dto.DashboardResponse{}, false
	}

	var response dto.DashboardResponse
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		s.logger.Warn().Err(err).Msg("failed to decode report cache")
		return dto.DashboardResponse{}, false
	}
	return response, true
}

func (s *reportService) writeCache(ctx context.Context, key string, response dto.DashboardResponse) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(response)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode report cache")
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store report cache")
	}
}
