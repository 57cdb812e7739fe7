// Package metrics derives reporting values from a document snapshot. Every
// function is pure with respect to the snapshot passed in, so results can be
// memoized on (snapshot revision, arguments).
package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/homeschoolhq/hq-go-api/internal/dateutil"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

// TrendPoint is one week in the hours trend, labelled with a compact
// month-day range.
type TrendPoint struct {
	Week  string  `json:"week"`
	Hours float64 `json:"hours"`
}

// HeatPoint is one calendar day in the attendance heat series.
type HeatPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
}

// AttendanceSummary aggregates weekday attendance over an inclusive range.
type AttendanceSummary struct {
	Present int `json:"present"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// SubjectGrade is one transcript line.
type SubjectGrade struct {
	Subject string  `json:"subject"`
	Percent int     `json:"percent"`
	GPA     float64 `json:"gpa"`
}

// Transcript rolls every graded subject up to a cumulative GPA. Available is
// false when no subject has any assignment.
type Transcript struct {
	Lines         []SubjectGrade `json:"lines"`
	CumulativeGPA float64        `json:"cumulativeGpa"`
	Available     bool           `json:"available"`
}

// StandardCount is one standard code with its lesson occurrence count.
type StandardCount struct {
	Standard string `json:"standard"`
	Count    int    `json:"count"`
}

// SubjectProgress compares logged hours against the weekly target for one
// subject.
type SubjectProgress struct {
	Subject string  `json:"subject"`
	Done    float64 `json:"done"`
	Target  float64 `json:"target"`
	Percent int     `json:"percent"`
}

// WeeklyHours sums lesson durations by subject for the week containing ref,
// counting only lessons visible to the student. Subjects with no lessons are
// absent from the result.
func WeeklyHours(doc store.Document, studentID string, ref dateutil.Day) map[string]float64 {
	start := dateutil.StartOfWeek(ref, doc.Settings.WeekStartsOn)
	end := start.AddDays(6)

	hours := map[string]float64{}
	eachLessonInRange(doc, start, end, func(lesson store.Lesson) {
		if !lesson.VisibleTo(studentID) {
			return
		}
		subject := lesson.Subject
		if subject == "" {
			subject = "Other"
		}
		hours[subject] += lesson.Duration
	})
	return hours
}

// WeeklyHoursSeries computes the total-hours trend for the most recent
// weeksBack weeks ending at the week containing today, oldest first. Weeks
// with no lessons contribute a zero point, so the series always has exactly
// weeksBack entries.
func WeeklyHoursSeries(doc store.Document, studentID string, weeksBack int, today dateutil.Day) []TrendPoint {
	if weeksBack <= 0 {
		return []TrendPoint{}
	}

	series := make([]TrendPoint, 0, weeksBack)
	for i := weeksBack - 1; i >= 0; i-- {
		ref := today.AddDays(-7 * i)
		start := dateutil.StartOfWeek(ref, doc.Settings.WeekStartsOn)
		end := start.AddDays(6)

		total := 0.0
		eachLessonInRange(doc, start, end, func(lesson store.Lesson) {
			if lesson.VisibleTo(studentID) {
				total += lesson.Duration
			}
		})

		series = append(series, TrendPoint{
			Week:  fmt.Sprintf("%s→%s", monthDay(start), monthDay(end)),
			Hours: math.Round(total*100) / 100,
		})
	}
	return series
}

// AttendanceHeat emits one point per calendar day for the last days days
// ending at today, oldest first. Present is 1 only when the attendance record
// holds an explicit true flag; a missing date and an explicit false both
// yield 0.
func AttendanceHeat(doc store.Document, studentID string, days int, today dateutil.Day) []HeatPoint {
	if days <= 0 {
		return []HeatPoint{}
	}

	record := doc.Attendance[studentID]
	series := make([]HeatPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		present := 0
		if record[day.String()] {
			present = 1
		}
		series = append(series, HeatPoint{Date: day.String(), Present: present})
	}
	return series
}

// SummarizeAttendance counts weekday attendance over [start, end] inclusive,
// skipping Saturdays and Sundays. Percent is 0 when the range contains no
// weekdays.
func SummarizeAttendance(doc store.Document, studentID string, start, end dateutil.Day) AttendanceSummary {
	record := doc.Attendance[studentID]

	summary := AttendanceSummary{}
	for _, day := range dateutil.Range(start, end) {
		if day.IsWeekend() {
			continue
		}
		summary.Total++
		if record[day.String()] {
			summary.Present++
		}
	}
	if summary.Total > 0 {
		summary.Percent = roundPercent(float64(summary.Present), float64(summary.Total))
	}
	return summary
}

// RollupGrades computes the per-subject percent and GPA lines plus the
// cumulative GPA for one student. Subjects are ordered by name for stable
// output. The cumulative value is the unweighted mean across subjects with at
// least one assignment and is unavailable when there are none.
func RollupGrades(doc store.Document, studentID string) Transcript {
	subjects := doc.Grades[studentID]
	names := make([]string, 0, len(subjects))
	for name := range subjects {
		names = append(names, name)
	}
	sort.Strings(names)

	transcript := Transcript{Lines: []SubjectGrade{}}
	gpaTotal := 0.0
	graded := 0
	for _, name := range names {
		var score, max float64
		for _, assignment := range subjects[name].Assignments {
			score += assignment.Score
			max += assignment.Max
		}

		percent := 0
		if max > 0 {
			percent = roundPercent(score, max)
		}
		gpa := GPAForPercent(percent)
		transcript.Lines = append(transcript.Lines, SubjectGrade{Subject: name, Percent: percent, GPA: gpa})

		if len(subjects[name].Assignments) > 0 {
			gpaTotal += gpa
			graded++
		}
	}

	if graded > 0 {
		transcript.CumulativeGPA = math.Round(gpaTotal/float64(graded)*100) / 100
		transcript.Available = true
	}
	return transcript
}

// StandardsCoverage counts how often each standard code is tagged on lessons
// visible to the student, most frequent first. Ties keep the order codes were
// first encountered, walking dates ascending.
func StandardsCoverage(doc store.Document, studentID string) []StandardCount {
	dates := make([]string, 0, len(doc.Lessons))
	for date := range doc.Lessons {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	counts := map[string]int{}
	var order []string
	for _, date := range dates {
		for _, lesson := range doc.Lessons[date] {
			if !lesson.VisibleTo(studentID) {
				continue
			}
			for _, standard := range lesson.Standards {
				if _, seen := counts[standard]; !seen {
					order = append(order, standard)
				}
				counts[standard]++
			}
		}
	}

	coverage := make([]StandardCount, 0, len(order))
	for _, standard := range order {
		coverage = append(coverage, StandardCount{Standard: standard, Count: counts[standard]})
	}
	sort.SliceStable(coverage, func(i, j int) bool {
		return coverage[i].Count > coverage[j].Count
	})
	return coverage
}

// WeeklyProgress compares this week's logged hours against each configured
// subject's weekly target. Percent caps at 100 and is 0 for a zero target.
func WeeklyProgress(doc store.Document, studentID string, ref dateutil.Day) []SubjectProgress {
	student, ok := doc.StudentByID(studentID)
	if !ok {
		return []SubjectProgress{}
	}

	hours := WeeklyHours(doc, studentID, ref)
	progress := make([]SubjectProgress, 0, len(student.Subjects))
	for _, subject := range student.Subjects {
		done := hours[subject]
		target := student.WeeklyTargets[subject]

		percent := 0
		if target > 0 {
			percent = roundPercent(done, target)
			if percent > 100 {
				percent = 100
			}
		}
		progress = append(progress, SubjectProgress{Subject: subject, Done: done, Target: target, Percent: percent})
	}
	return progress
}

func eachLessonInRange(doc store.Document, start, end dateutil.Day, visit func(store.Lesson)) {
	for date, lessons := range doc.Lessons {
		day, err := dateutil.Parse(date)
		if err != nil {
			continue
		}
		if day.Before(start) || day.After(end) {
			continue
		}
		for _, lesson := range lessons {
			visit(lesson)
		}
	}
}

func monthDay(d dateutil.Day) string {
	return d.String()[5:]
}

func roundPercent(part, whole float64) int {
	return int(math.Round(part / whole * 100))
}
