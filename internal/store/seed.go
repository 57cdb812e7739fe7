package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/homeschoolhq/hq-go-api/internal/dateutil"
)

// DefaultSubjects is the subject list offered to new students.
var DefaultSubjects = []string{"Math", "ELA", "Science", "History", "PE", "Art"}

// NewID produces a fresh entity identifier.
func NewID() string {
	return uuid.NewString()
}

// Seed builds the default dataset used when no document is stored or the
// stored blob cannot be decoded: two sample students with subjects and
// weekly hour targets.
func Seed(now time.Time) Document {
	first := Student{
		ID:       NewID(),
		Name:     "Student One",
		Grade:    "5",
		Subjects: append([]string(nil), DefaultSubjects...),
		WeeklyTargets: map[string]float64{
			"Math": 5, "ELA": 5, "Science": 3, "History": 3, "PE": 2, "Art": 2,
		},
	}
	second := Student{
		ID:       NewID(),
		Name:     "Student Two",
		Grade:    "2",
		Subjects: []string{"Math", "ELA", "Science", "Art"},
		WeeklyTargets: map[string]float64{
			"Math": 4, "ELA": 4, "Science": 2, "Art": 2,
		},
	}

	return Document{
		Students:        []Student{first, second},
		ActiveStudentID: first.ID,
		Attendance:      map[string]map[string]bool{},
		Lessons:         map[string][]Lesson{},
		Templates:       []Template{},
		Portfolio:       map[string][]PortfolioItem{},
		Grades:          map[string]map[string]SubjectGrades{},
		Feedback:        []FeedbackEntry{},
		Settings:        Settings{WeekStartsOn: 1},
		CreatedAt:       dateutil.FromTime(now).String(),
		AppVersion:      DocumentVersion,
	}
}
