package handler_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/homeschoolhq/hq-go-api/internal/dateutil"
	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/handler"
	"github.com/homeschoolhq/hq-go-api/internal/metrics"
	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

type mockReportService struct {
	dashboard    dto.DashboardResponse
	dashboardErr error
	attendance   dto.AttendanceReportResponse
	attendErr    error
	lastDate     string
}

func (m *mockReportService) Dashboard(_ context.Context, _ string, today dateutil.Day) (dto.DashboardResponse, error) {
	m.lastDate = today.String()
	if m.dashboardErr != nil {
		return dto.DashboardResponse{}, m.dashboardErr
	}
	return m.dashboard, nil
}

func (m *mockReportService) Attendance(_ context.Context, _ dto.AttendanceReportRequest) (dto.AttendanceReportResponse, error) {
	if m.attendErr != nil {
		return dto.AttendanceReportResponse{}, m.attendErr
	}
	return m.attendance, nil
}

type mockGradeService struct {
	transcript    metrics.Transcript
	transcriptErr error
}

func (m *mockGradeService) Subjects(_ context.Context, _ string) (map[string]store.SubjectGrades, error) {
	return map[string]store.SubjectGrades{}, nil
}

func (m *mockGradeService) AddAssignment(_ context.Context, _ dto.AssignmentRequest) (store.Assignment, error) {
	return store.Assignment{}, nil
}

func (m *mockGradeService) RemoveAssignment(_ context.Context, _, _, _ string) error {
	return nil
}

func (m *mockGradeService) Transcript(_ context.Context, _ string) (metrics.Transcript, error) {
	if m.transcriptErr != nil {
		return metrics.Transcript{}, m.transcriptErr
	}
	return m.transcript, nil
}

func newReportApp(reports *mockReportService, grades *mockGradeService) *fiber.App {
	app := fiber.New()
	h := handler.NewReportHandler(reports, grades, zerolog.New(io.Discard))
	h.RegisterDashboard(app.Group("/api/v1/dashboard"))
	h.Register(app.Group("/api/v1/reports"))
	return app
}

func TestReportHandler_DashboardSurfacesCacheMeta(t *testing.T) {
	reports := &mockReportService{dashboard: dto.DashboardResponse{
		Student:  store.Student{ID: "s1", Name: "Ada"},
		Date:     "2025-01-08",
		Hours:    map[string]float64{"Math": 1.5},
		CacheHit: true,
	}}
	app := newReportApp(reports, &mockGradeService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/s1?date=2025-01-08", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "2025-01-08", reports.lastDate)

	var body struct {
		Success bool                   `json:"success"`
		Data    dto.DashboardResponse  `json:"data"`
		Meta    map[string]interface{} `json:"meta"`
	}
	decodeBody(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "s1", body.Data.Student.ID)
	require.Equal(t, true, body.Meta["cache_hit"])
}

func TestReportHandler_DashboardUnknownStudent(t *testing.T) {
	reports := &mockReportService{dashboardErr: service.ErrStudentNotFound}
	app := newReportApp(reports, &mockGradeService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/ghost", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestReportHandler_DashboardRejectsBadDate(t *testing.T) {
	app := newReportApp(&mockReportService{}, &mockGradeService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/s1?date=January", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReportHandler_AttendanceWorkbookDownload(t *testing.T) {
	reports := &mockReportService{attendance: dto.AttendanceReportResponse{
		Student: store.Student{ID: "s1", Name: "Ada"},
		From:    "2025-01-06",
		To:      "2025-01-10",
		Summary: metrics.AttendanceSummary{Present: 2, Total: 5, Percent: 40},
		Days: []metrics.HeatPoint{
			{Date: "2025-01-06", Present: 1},
			{Date: "2025-01-07", Present: 1},
			{Date: "2025-01-08", Present: 0},
		},
	}}
	app := newReportApp(reports, &mockGradeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/attendance.xlsx?studentId=s1&from=2025-01-06&to=2025-01-10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get(fiber.HeaderContentType), "spreadsheetml")
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attendance-Ada-2025-01-10.xlsx")

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	workbook, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer workbook.Close()

	name, err := workbook.GetCellValue("Attendance", "B1")
	require.NoError(t, err)
	require.Equal(t, "Ada", name)
}

func TestReportHandler_TranscriptWorkbookUnknownStudent(t *testing.T) {
	grades := &mockGradeService{transcriptErr: service.ErrStudentNotFound}
	app := newReportApp(&mockReportService{}, grades)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/reports/transcript/ghost.xlsx", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
