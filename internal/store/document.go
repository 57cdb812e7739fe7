package store

import (
	"encoding/json"
	"slices"
)

// DocumentVersion tags every persisted document with the producing
// application generation.
const DocumentVersion = "hq-go-v1"

// Student is a learner profile. The subject list is authoritative for which
// subjects appear in targets, lesson forms, and coverage views.
type Student struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Grade         string             `json:"grade"`
	Subjects      []string           `json:"subjects"`
	WeeklyTargets map[string]float64 `json:"weeklyTargets"`
}

// Link is an external resource attached to a lesson.
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Lesson is a dated calendar entry. The owning date is the key of the lessons
// collection, not a field of the lesson itself.
type Lesson struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Subject    string   `json:"subject"`
	Duration   float64  `json:"duration"`
	Standards  []string `json:"standards,omitempty"`
	Objectives string   `json:"objectives,omitempty"`
	Links      []Link   `json:"links,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	// For restricts visibility to the listed student ids. Empty means the
	// lesson is visible to every student. Read paths go through VisibleTo.
	For []string `json:"for,omitempty"`
}

// VisibleTo reports whether the lesson applies to the given student.
func (l Lesson) VisibleTo(studentID string) bool {
	return len(l.For) == 0 || slices.Contains(l.For, studentID)
}

// TemplateItem is one dateless lesson blueprint inside a template.
type TemplateItem struct {
	Title      string   `json:"title"`
	Subject    string   `json:"subject"`
	Duration   float64  `json:"duration"`
	Standards  []string `json:"standards,omitempty"`
	Objectives string   `json:"objectives,omitempty"`
}

// Template is a reusable ordered list of lesson blueprints. It carries no
// dates; expansion binds it to a concrete week.
type Template struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Items []TemplateItem `json:"items"`
}

// PortfolioItem is a dated work artifact belonging to one student.
type PortfolioItem struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Subject string `json:"subject,omitempty"`
	URL     string `json:"url"`
	Notes   string `json:"notes,omitempty"`
}

// Assignment is a scored piece of work within one student/subject pair.
type Assignment struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
	Max   float64 `json:"max"`
	Date  string  `json:"date"`
}

// SubjectGrades groups the assignments recorded for one subject.
type SubjectGrades struct {
	Assignments []Assignment `json:"assignments"`
}

// FeedbackEntry is one piece of user feedback captured in-app.
type FeedbackEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Rating     int    `json:"rating"`
	Message    string `json:"message"`
	At         string `json:"at"`
	AppVersion string `json:"appVersion"`
}

// Settings holds document-wide preferences.
type Settings struct {
	// WeekStartsOn selects the week-boundary convention: 0 = Sunday,
	// 1 = Monday.
	WeekStartsOn  int    `json:"weekStartsOn"`
	FeedbackEmail string `json:"feedbackEmail"`
}

// UnmarshalJSON defaults the week convention to Monday when a stored
// settings block leaves weekStartsOn out. An explicit 0 still decodes as
// Sunday.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type settings Settings
	aux := struct {
		WeekStartsOn *int `json:"weekStartsOn"`
		*settings
	}{settings: (*settings)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.WeekStartsOn == nil {
		s.WeekStartsOn = 1
	} else {
		s.WeekStartsOn = *aux.WeekStartsOn
	}
	return nil
}

// Document is one immutable snapshot of the full record store. Mutations
// never modify a Document in place; they return a new value sharing every
// untouched collection.
type Document struct {
	Students        []Student                           `json:"students"`
	ActiveStudentID string                              `json:"activeStudentId"`
	Attendance      map[string]map[string]bool          `json:"attendance"`
	Lessons         map[string][]Lesson                 `json:"lessons"`
	Templates       []Template                          `json:"templates"`
	Portfolio       map[string][]PortfolioItem          `json:"portfolio"`
	Grades          map[string]map[string]SubjectGrades `json:"grades"`
	Feedback        []FeedbackEntry                     `json:"feedback"`
	Settings        Settings                            `json:"settings"`
	CreatedAt       string                              `json:"createdAt"`
	AppVersion      string                              `json:"appVersion"`
}

// UnmarshalJSON defaults the settings block when a stored blob predates it
// entirely, so week computations stay Monday-first instead of flipping to
// Sunday through the zero value.
func (d *Document) UnmarshalJSON(data []byte) error {
	type document Document
	aux := struct {
		Settings *Settings `json:"settings"`
		*document
	}{document: (*document)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Settings == nil {
		d.Settings = Settings{WeekStartsOn: 1}
	} else {
		d.Settings = *aux.Settings
	}
	return nil
}

// StudentByID resolves a student profile; ok is false when the id is unknown.
func (d Document) StudentByID(id string) (Student, bool) {
	for _, student := range d.Students {
		if student.ID == id {
			return student, true
		}
	}
	return Student{}, false
}

// ActiveStudent returns the currently selected student, falling back to the
// first profile when the stored id no longer resolves.
func (d Document) ActiveStudent() (Student, bool) {
	if student, ok := d.StudentByID(d.ActiveStudentID); ok {
		return student, true
	}
	if len(d.Students) > 0 {
		return d.Students[0], true
	}
	return Student{}, false
}

// TemplateByID resolves a template; ok is false when the id is unknown.
func (d Document) TemplateByID(id string) (Template, bool) {
	for _, template := range d.Templates {
		if template.ID == id {
			return template, true
		}
	}
	return Template{}, false
}

// Normalize defaults missing collections and coerces numeric fields so that
// every field read after deserialization is well-typed. Unknown week-start
// values fall back to Monday and a dangling active-student id snaps to the
// first profile.
func (d Document) Normalize() Document {
	if d.Students == nil {
		d.Students = []Student{}
	}
	for i, student := range d.Students {
		if student.Subjects == nil {
			d.Students[i].Subjects = []string{}
		}
		if student.WeeklyTargets == nil {
			d.Students[i].WeeklyTargets = map[string]float64{}
		}
		for subject, target := range student.WeeklyTargets {
			d.Students[i].WeeklyTargets[subject] = clampNonNegative(target)
		}
	}

	if d.Attendance == nil {
		d.Attendance = map[string]map[string]bool{}
	}
	if d.Lessons == nil {
		d.Lessons = map[string][]Lesson{}
	}
	for date, day := range d.Lessons {
		for i, lesson := range day {
			d.Lessons[date][i].Duration = clampNonNegative(lesson.Duration)
		}
	}
	if d.Templates == nil {
		d.Templates = []Template{}
	}
	for i, template := range d.Templates {
		for j, item := range template.Items {
			d.Templates[i].Items[j].Duration = clampNonNegative(item.Duration)
		}
	}
	if d.Portfolio == nil {
		d.Portfolio = map[string][]PortfolioItem{}
	}
	if d.Grades == nil {
		d.Grades = map[string]map[string]SubjectGrades{}
	}
	for _, subjects := range d.Grades {
		for subject, grades := range subjects {
			for i, assignment := range grades.Assignments {
				grades.Assignments[i].Score = clampNonNegative(assignment.Score)
				grades.Assignments[i].Max = clampNonNegative(assignment.Max)
			}
			subjects[subject] = grades
		}
	}
	if d.Feedback == nil {
		d.Feedback = []FeedbackEntry{}
	}

	if d.Settings.WeekStartsOn != 0 && d.Settings.WeekStartsOn != 1 {
		d.Settings.WeekStartsOn = 1
	}
	if _, ok := d.StudentByID(d.ActiveStudentID); !ok && len(d.Students) > 0 {
		d.ActiveStudentID = d.Students[0].ID
	}
	if d.AppVersion == "" {
		d.AppVersion = DocumentVersion
	}

	return d
}

func clampNonNegative(value float64) float64 {
	if value < 0 || value != value {
		return 0
	}
	return value
}
