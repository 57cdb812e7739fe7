package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaultsCollections(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{}`), &doc))
	doc = doc.Normalize()

	require.NotNil(t, doc.Students)
	require.NotNil(t, doc.Attendance)
	require.NotNil(t, doc.Lessons)
	require.NotNil(t, doc.Templates)
	require.NotNil(t, doc.Portfolio)
	require.NotNil(t, doc.Grades)
	require.NotNil(t, doc.Feedback)
	require.Equal(t, 1, doc.Settings.WeekStartsOn)
	require.Equal(t, DocumentVersion, doc.AppVersion)
}

func TestDecodeDefaultsWeekStartToMonday(t *testing.T) {
	// A settings block without the key defaults to Monday.
	var partial Document
	require.NoError(t, json.Unmarshal([]byte(`{"settings":{"feedbackEmail":"fam@example.com"}}`), &partial))
	require.Equal(t, 1, partial.Settings.WeekStartsOn)
	require.Equal(t, "fam@example.com", partial.Settings.FeedbackEmail)

	// An explicit 0 is the Sunday convention and survives decode and
	// normalization.
	var sunday Document
	require.NoError(t, json.Unmarshal([]byte(`{"settings":{"weekStartsOn":0}}`), &sunday))
	require.Equal(t, 0, sunday.Settings.WeekStartsOn)
	require.Equal(t, 0, sunday.Normalize().Settings.WeekStartsOn)
}

func TestNormalizeCoercesNegativeNumbers(t *testing.T) {
	doc := Document{
		Students: []Student{{ID: "s1", Name: "A", WeeklyTargets: map[string]float64{"Math": -3}}},
		Lessons: map[string][]Lesson{
			"2025-01-06": {{ID: "l1", Title: "Fractions", Duration: -1.5}},
		},
		Grades: map[string]map[string]SubjectGrades{
			"s1": {"Math": {Assignments: []Assignment{{ID: "a1", Score: -4, Max: -10}}}},
		},
		Settings: Settings{WeekStartsOn: 5},
	}.Normalize()

	require.Zero(t, doc.Students[0].WeeklyTargets["Math"])
	require.Zero(t, doc.Lessons["2025-01-06"][0].Duration)
	require.Zero(t, doc.Grades["s1"]["Math"].Assignments[0].Score)
	require.Zero(t, doc.Grades["s1"]["Math"].Assignments[0].Max)
	require.Equal(t, 1, doc.Settings.WeekStartsOn)
}

func TestNormalizeSnapsDanglingActiveStudent(t *testing.T) {
	doc := Document{
		Students:        []Student{{ID: "s1", Name: "A"}, {ID: "s2", Name: "B"}},
		ActiveStudentID: "gone",
	}.Normalize()

	require.Equal(t, "s1", doc.ActiveStudentID)
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := Seed(time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC))
	doc = AddLesson(doc, "2025-03-03", Lesson{Title: "Fractions", Subject: "Math", Duration: 1.5, Standards: []string{"5.NF.1"}})
	doc = ToggleAttendance(doc, doc.Students[0].ID, "2025-03-03")
	doc = AddTemplate(doc, Template{Name: "Week A", Items: []TemplateItem{{Title: "Reading", Subject: "ELA", Duration: 1}}})
	doc = AddPortfolioItem(doc, doc.Students[0].ID, PortfolioItem{Date: "2025-03-03", Title: "Essay", URL: "https://example.com/essay"})
	doc = AddAssignment(doc, doc.Students[0].ID, "Math", Assignment{Title: "Quiz", Score: 18, Max: 20, Date: "2025-03-03"})
	doc = AddFeedback(doc, FeedbackEntry{Rating: 5, Message: "Works well", At: "2025-03-03T12:00:00Z"})

	encoded, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	require.Equal(t, doc, decoded.Normalize())
}

func TestActiveStudentFallsBackToFirst(t *testing.T) {
	doc := Seed(time.Now())
	doc = RemoveStudent(doc, doc.ActiveStudentID)

	student, ok := doc.ActiveStudent()
	require.True(t, ok)
	require.Equal(t, doc.Students[0].ID, student.ID)

	_, ok = Document{}.ActiveStudent()
	require.False(t, ok)
}

func TestLessonVisibility(t *testing.T) {
	require.True(t, Lesson{}.VisibleTo("anyone"))
	require.True(t, Lesson{For: []string{"s1", "s2"}}.VisibleTo("s2"))
	require.False(t, Lesson{For: []string{"s1"}}.VisibleTo("s2"))
}
