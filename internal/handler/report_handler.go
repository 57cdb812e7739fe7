package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/export"
	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler exposes dashboard and report endpoints.
type ReportHandler struct {
	reports service.ReportService
	grades  service.GradeService
	logger  zerolog.Logger
}

// NewReportHandler constructs a report handler.
func NewReportHandler(reports service.ReportService, grades service.GradeService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		grades:  grades,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// RegisterDashboard wires the dashboard route.
func (h *ReportHandler) RegisterDashboard(router fiber.Router) {
	router.Get("/:studentId", h.dashboard)
}

// Register wires report routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/attendance", h.attendance)
	router.Get("/attendance.xlsx", h.attendanceWorkbook)
	router.Get("/transcript/:studentId.xlsx", h.transcriptWorkbook)
}

func (h *ReportHandler) dashboard(c *fiber.Ctx) error {
	today, err := parseDayQuery(c, "date")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
	}

	response, err := h.reports.Dashboard(c.Context(), c.Params("studentId"), today)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard")
	}

	meta := fiber.Map{"cache_hit": response.CacheHit}
	return utils.OK(c, response, "dashboard retrieved", meta)
}

func (h *ReportHandler) attendance(c *fiber.Ctx) error {
	report, err := h.buildAttendanceReport(c)
	if err != nil {
		return err
	}
	return utils.SendSuccess(c, "attendance report retrieved", report)
}

func (h *ReportHandler) attendanceWorkbook(c *fiber.Ctx) error {
	report, err := h.buildAttendanceReport(c)
	if err != nil {
		return err
	}

	buf, buildErr := export.AttendanceWorkbook(report)
	if buildErr != nil {
		requestLogger(h.logger, c).Error().Err(buildErr).Msg("failed to render attendance workbook")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to render workbook")
	}

	filename := fmt.Sprintf("attendance-%s-%s.xlsx", report.Student.Name, report.To)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

func (h *ReportHandler) transcriptWorkbook(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	transcript, err := h.grades.Transcript(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build transcript")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build transcript")
	}

	today, err := parseDayQuery(c, "date")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
	}
	dashboard, err := h.reports.Dashboard(c.Context(), studentID, today)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to resolve student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to render workbook")
	}

	buf, buildErr := export.TranscriptWorkbook(dashboard.Student, transcript)
	if buildErr != nil {
		requestLogger(h.logger, c).Error().Err(buildErr).Msg("failed to render transcript workbook")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to render workbook")
	}

	filename := fmt.Sprintf("transcript-%s.xlsx", dashboard.Student.Name)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

func (h *ReportHandler) buildAttendanceReport(c *fiber.Ctx) (dto.AttendanceReportResponse, error) {
	req := dto.AttendanceReportRequest{
		StudentID: c.Query("studentId"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}

	report, err := h.reports.Attendance(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return dto.AttendanceReportResponse{}, utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		return dto.AttendanceReportResponse{}, utils.SendError(c, fiber.StatusBadRequest, "invalid report range")
	}
	return report, nil
}
