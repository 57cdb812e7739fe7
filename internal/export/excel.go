// Package export renders reporting views as downloadable spreadsheet files.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/metrics"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// AttendanceWorkbook builds an xlsx workbook from the attendance report: a
// summary header followed by one row per day in the range.
func AttendanceWorkbook(report dto.AttendanceReportResponse) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Student", report.Student.Name},
		{"Grade", report.Student.Grade},
		{"From", report.From},
		{"To", report.To},
		{"Days present", report.Summary.Present},
		{"School days", report.Summary.Total},
		{"Attendance", fmt.Sprintf("%d%%", report.Summary.Percent)},
		{},
		{"Date", "Present"},
	}
	for _, day := range report.Days {
		present := "No"
		if day.Present == 1 {
			present = "Yes"
		}
		rows = append(rows, []interface{}{day.Date, present})
	}

	if err := writeRows(f, sheet, rows); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

// TranscriptWorkbook builds an xlsx workbook from a student transcript: one
// row per subject plus the cumulative GPA.
func TranscriptWorkbook(student store.Student, transcript metrics.Transcript) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Transcript"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Student", student.Name},
		{"Grade", student.Grade},
		{},
		{"Subject", "Percent", "GPA"},
	}
	for _, line := range transcript.Lines {
		rows = append(rows, []interface{}{line.Subject, line.Percent, line.GPA})
	}
	rows = append(rows, []interface{}{})
	if transcript.Available {
		rows = append(rows, []interface{}{"Cumulative GPA", transcript.CumulativeGPA})
	} else {
		rows = append(rows, []interface{}{"Cumulative GPA", "n/a"})
	}

	if err := writeRows(f, sheet, rows); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return nil
}
