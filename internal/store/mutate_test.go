package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/homeschoolhq/hq-go-api/internal/dateutil"
)

func TestUpsertStudentAddsAndReplaces(t *testing.T) {
	doc := Document{}.Normalize()

	doc = UpsertStudent(doc, Student{Name: "Ada", Grade: "4", Subjects: []string{"Math"}})
	require.Len(t, doc.Students, 1)
	require.NotEmpty(t, doc.Students[0].ID)
	require.Equal(t, doc.Students[0].ID, doc.ActiveStudentID)

	id := doc.Students[0].ID
	doc = UpsertStudent(doc, Student{ID: id, Name: "Ada Lovelace", Grade: "5", Subjects: []string{"Math", "ELA"}})
	require.Len(t, doc.Students, 1)
	require.Equal(t, "Ada Lovelace", doc.Students[0].Name)
}

func TestUpsertStudentClampsWeeklyTargets(t *testing.T) {
	doc := Document{}.Normalize()

	doc = UpsertStudent(doc, Student{
		Name:          "Ada",
		Subjects:      []string{"Math", "ELA"},
		WeeklyTargets: map[string]float64{"Math": -3, "ELA": 4},
	})

	require.Zero(t, doc.Students[0].WeeklyTargets["Math"])
	require.Equal(t, 4.0, doc.Students[0].WeeklyTargets["ELA"])
}

func TestRemoveStudentLeavesOrphanedRecords(t *testing.T) {
	doc := Seed(time.Now())
	victim := doc.Students[0].ID

	doc = ToggleAttendance(doc, victim, "2025-01-06")
	doc = AddLesson(doc, "2025-01-06", Lesson{Title: "Fractions", Subject: "Math", Duration: 1, For: []string{victim}})
	doc = AddPortfolioItem(doc, victim, PortfolioItem{Date: "2025-01-06", Title: "Essay", URL: "https://example.com"})
	doc = AddAssignment(doc, victim, "Math", Assignment{Title: "Quiz", Score: 9, Max: 10, Date: "2025-01-06"})

	doc = RemoveStudent(doc, victim)

	_, ok := doc.StudentByID(victim)
	require.False(t, ok)

	// Dependent records survive the removal.
	require.True(t, doc.Attendance[victim]["2025-01-06"])
	require.Len(t, doc.Lessons["2025-01-06"], 1)
	require.Len(t, doc.Portfolio[victim], 1)
	require.Len(t, doc.Grades[victim]["Math"].Assignments, 1)
}

func TestToggleAttendanceFlips(t *testing.T) {
	doc := Document{}.Normalize()

	doc = ToggleAttendance(doc, "s1", "2025-01-06")
	require.True(t, doc.Attendance["s1"]["2025-01-06"])

	doc = ToggleAttendance(doc, "s1", "2025-01-06")
	require.False(t, doc.Attendance["s1"]["2025-01-06"])
}

func TestToggleAttendanceSharesSiblings(t *testing.T) {
	doc := Document{}.Normalize()
	doc = AddLesson(doc, "2025-01-06", Lesson{Title: "Fractions", Subject: "Math", Duration: 1})

	next := ToggleAttendance(doc, "s1", "2025-01-06")

	// Untouched collections are shared, the attendance map is not.
	require.Equal(t, doc.Lessons, next.Lessons)
	require.Empty(t, doc.Attendance)
	require.NotEmpty(t, next.Attendance)
}

func TestLessonLifecycle(t *testing.T) {
	doc := Document{}.Normalize()
	doc = AddLesson(doc, "2025-01-06", Lesson{Title: "Fractions", Subject: "Math", Duration: -2})
	require.Len(t, doc.Lessons["2025-01-06"], 1)
	require.Zero(t, doc.Lessons["2025-01-06"][0].Duration)

	id := doc.Lessons["2025-01-06"][0].ID
	title := "Fractions II"
	duration := 1.5
	doc = UpdateLesson(doc, "2025-01-06", id, LessonPatch{Title: &title, Duration: &duration})
	require.Equal(t, "Fractions II", doc.Lessons["2025-01-06"][0].Title)
	require.Equal(t, 1.5, doc.Lessons["2025-01-06"][0].Duration)
	require.Equal(t, "Math", doc.Lessons["2025-01-06"][0].Subject)

	// Unknown ids and dates leave the snapshot unchanged.
	require.Equal(t, doc, UpdateLesson(doc, "2025-01-06", "missing", LessonPatch{Title: &title}))
	require.Equal(t, doc, UpdateLesson(doc, "2025-01-07", id, LessonPatch{Title: &title}))
	require.Equal(t, doc, RemoveLesson(doc, "2025-01-06", "missing"))
	require.Equal(t, doc, RemoveLesson(doc, "2025-01-07", id))

	doc = RemoveLesson(doc, "2025-01-06", id)
	require.Empty(t, doc.Lessons["2025-01-06"])
}

func TestRemoveNoOpsOnAbsentKeys(t *testing.T) {
	doc := Seed(time.Now())

	require.Equal(t, doc, RemovePortfolioItem(doc, "ghost", "item"))
	require.Equal(t, doc, RemoveAssignment(doc, "ghost", "Math", "a1"))
	require.Equal(t, doc, RemoveStudent(doc, "ghost"))
}

func TestAssignmentCoercion(t *testing.T) {
	doc := Document{}.Normalize()
	doc = AddAssignment(doc, "s1", "Math", Assignment{Title: "Quiz", Score: -5, Max: -10})

	got := doc.Grades["s1"]["Math"].Assignments[0]
	require.Zero(t, got.Score)
	require.Zero(t, got.Max)
	require.NotEmpty(t, got.ID)
}

func TestApplyTemplateToWeekWrapsAcrossWeekdays(t *testing.T) {
	doc := Seed(time.Now())
	student := doc.Students[0]

	items := make([]TemplateItem, 7)
	for i := range items {
		items[i] = TemplateItem{Title: "Item", Subject: "Math", Duration: 1}
	}
	doc = AddTemplate(doc, Template{Name: "Week A", Items: items})
	templateID := doc.Templates[0].ID

	// Anchor mid-week: Wednesday 2025-01-08 targets the week of Monday 2025-01-06.
	anchor, err := dateutil.Parse("2025-01-08")
	require.NoError(t, err)
	doc = ApplyTemplateToWeek(doc, templateID, anchor, student.ID)

	require.Len(t, doc.Lessons["2025-01-06"], 2) // items 1 and 6
	require.Len(t, doc.Lessons["2025-01-07"], 2) // items 2 and 7
	require.Len(t, doc.Lessons["2025-01-08"], 1)
	require.Len(t, doc.Lessons["2025-01-09"], 1)
	require.Len(t, doc.Lessons["2025-01-10"], 1)
	require.Empty(t, doc.Lessons["2025-01-11"])
	require.Empty(t, doc.Lessons["2025-01-12"])

	for _, lesson := range doc.Lessons["2025-01-06"] {
		require.Equal(t, []string{student.ID}, lesson.For)
	}
}

func TestApplyTemplateDefaultsSubject(t *testing.T) {
	doc := Seed(time.Now())
	student := doc.Students[0]

	doc = AddTemplate(doc, Template{Name: "Week B", Items: []TemplateItem{{Title: "Warmup", Duration: 0.5}}})
	anchor, err := dateutil.Parse("2025-01-06")
	require.NoError(t, err)
	doc = ApplyTemplateToWeek(doc, doc.Templates[0].ID, anchor, student.ID)

	require.Equal(t, student.Subjects[0], doc.Lessons["2025-01-06"][0].Subject)
}

func TestApplyTemplateUnknownIDIsNoOp(t *testing.T) {
	doc := Seed(time.Now())
	anchor, err := dateutil.Parse("2025-01-06")
	require.NoError(t, err)

	require.Equal(t, doc, ApplyTemplateToWeek(doc, "missing", anchor, doc.Students[0].ID))
}

func TestApplyTemplateTwiceDuplicates(t *testing.T) {
	doc := Seed(time.Now())
	doc = AddTemplate(doc, Template{Name: "Week A", Items: []TemplateItem{{Title: "Reading", Subject: "ELA", Duration: 1}}})
	anchor, err := dateutil.Parse("2025-01-06")
	require.NoError(t, err)

	doc = ApplyTemplateToWeek(doc, doc.Templates[0].ID, anchor, doc.Students[0].ID)
	doc = ApplyTemplateToWeek(doc, doc.Templates[0].ID, anchor, doc.Students[0].ID)

	require.Len(t, doc.Lessons["2025-01-06"], 2)
}

type failingPersister struct {
	calls int
}

func (f *failingPersister) Save(context.Context, Document) error {
	f.calls++
	return errors.New("disk full")
}

func TestContainerDiscardsFailedWrites(t *testing.T) {
	persister := &failingPersister{}
	container := NewContainer(Seed(time.Now()), persister, zerolog.Nop())

	before := container.Revision()
	container.Apply(context.Background(), func(doc Document) Document {
		return ToggleAttendance(doc, doc.Students[0].ID, "2025-01-06")
	})

	require.Equal(t, 1, persister.calls)
	require.Equal(t, before+1, container.Revision())

	// The in-memory snapshot keeps the mutation despite the failed write.
	snapshot := container.Snapshot()
	require.True(t, snapshot.Attendance[snapshot.Students[0].ID]["2025-01-06"])
}

func TestContainerReset(t *testing.T) {
	container := NewContainer(Seed(time.Now()), nil, zerolog.Nop())
	fresh := Seed(time.Now())

	got := container.Reset(context.Background(), fresh)
	require.Equal(t, fresh.Students[0].ID, got.ActiveStudentID)
	require.Equal(t, got, container.Snapshot())
}
