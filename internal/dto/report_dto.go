package dto

import (
	"github.com/homeschoolhq/hq-go-api/internal/metrics"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// DashboardResponse aggregates every reporting view for one student.
type DashboardResponse struct {
	Student    store.Student             `json:"student"`
	Date       string                    `json:"date"`
	Hours      map[string]float64        `json:"hours"`
	Trend      []metrics.TrendPoint      `json:"trend"`
	Heat       []metrics.HeatPoint       `json:"heat"`
	Attendance metrics.AttendanceSummary `json:"attendance"`
	Progress   []metrics.SubjectProgress `json:"progress"`
	Standards  []metrics.StandardCount   `json:"standards"`
	Transcript metrics.Transcript        `json:"transcript"`
	CacheHit   bool                      `json:"-"`
}

// AttendanceReportRequest bounds the attendance summary report.
type AttendanceReportRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	From      string `json:"from" validate:"required,datetime=2006-01-02"`
	To        string `json:"to" validate:"required,datetime=2006-01-02"`
}

// AttendanceReportResponse is the attendance summary plus its day detail.
type AttendanceReportResponse struct {
	Student store.Student             `json:"student"`
	From    string                    `json:"from"`
	To      string                    `json:"to"`
	Summary metrics.AttendanceSummary `json:"summary"`
	Days    []metrics.HeatPoint       `json:"days"`
}
