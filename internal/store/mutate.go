package store

// Mutations are pure functions from (snapshot, payload) to a new snapshot.
// Each one replaces only the top-level collection it touches; every sibling
// collection is structurally shared with the input. Removing or updating an
// absent identifier is a no-op that returns a value-equal snapshot. No
// mutation validates referential integrity across collections: removing a
// student leaves that student's lessons, attendance, portfolio, and grades
// in place as orphaned records.

// UpsertStudent replaces the student with a matching id or appends a new
// profile, assigning a fresh identifier when none is set.
func UpsertStudent(doc Document, student Student) Document {
	if student.ID == "" {
		student.ID = NewID()
	}
	if len(student.WeeklyTargets) > 0 {
		targets := make(map[string]float64, len(student.WeeklyTargets))
		for subject, hours := range student.WeeklyTargets {
			targets[subject] = clampNonNegative(hours)
		}
		student.WeeklyTargets = targets
	}
	students := make([]Student, 0, len(doc.Students)+1)
	replaced := false
	for _, existing := range doc.Students {
		if existing.ID == student.ID {
			students = append(students, student)
			replaced = true
			continue
		}
		students = append(students, existing)
	}
	if !replaced {
		students = append(students, student)
	}
	doc.Students = students
	if doc.ActiveStudentID == "" {
		doc.ActiveStudentID = student.ID
	}
	return doc
}

// RemoveStudent drops a student profile. Dependent records are deliberately
// left behind; this function is the single place a cascade would hook in.
func RemoveStudent(doc Document, studentID string) Document {
	students := make([]Student, 0, len(doc.Students))
	for _, student := range doc.Students {
		if student.ID != studentID {
			students = append(students, student)
		}
	}
	doc.Students = students
	return doc
}

// SetActiveStudent records which student the session is focused on.
func SetActiveStudent(doc Document, studentID string) Document {
	doc.ActiveStudentID = studentID
	return doc
}

// ToggleAttendance flips the present flag for one student on one date. A date
// never recorded toggles to present.
func ToggleAttendance(doc Document, studentID, date string) Document {
	days := make(map[string]bool, len(doc.Attendance[studentID])+1)
	for d, present := range doc.Attendance[studentID] {
		days[d] = present
	}
	days[date] = !days[date]

	attendance := make(map[string]map[string]bool, len(doc.Attendance)+1)
	for id, record := range doc.Attendance {
		attendance[id] = record
	}
	attendance[studentID] = days
	doc.Attendance = attendance
	return doc
}

// AddLesson appends a lesson to the given date, assigning an identifier when
// none is set and coercing the duration to a non-negative value.
func AddLesson(doc Document, date string, lesson Lesson) Document {
	if lesson.ID == "" {
		lesson.ID = NewID()
	}
	lesson.Duration = clampNonNegative(lesson.Duration)

	day := doc.Lessons[date]
	updated := make([]Lesson, 0, len(day)+1)
	updated = append(updated, day...)
	updated = append(updated, lesson)
	doc.Lessons = replaceLessonDay(doc.Lessons, date, updated)
	return doc
}

// LessonPatch describes a partial lesson update; nil fields are left as-is.
type LessonPatch struct {
	Title      *string
	Subject    *string
	Duration   *float64
	Standards  []string
	Objectives *string
	Links      []Link
	Notes      *string
	For        []string
}

// UpdateLesson applies a patch to one lesson on one date. An unknown date or
// lesson id leaves the snapshot unchanged.
func UpdateLesson(doc Document, date, lessonID string, patch LessonPatch) Document {
	day, ok := doc.Lessons[date]
	if !ok {
		return doc
	}

	updated := make([]Lesson, len(day))
	touched := false
	for i, lesson := range day {
		if lesson.ID == lessonID {
			updated[i] = applyLessonPatch(lesson, patch)
			touched = true
			continue
		}
		updated[i] = lesson
	}
	if !touched {
		return doc
	}
	doc.Lessons = replaceLessonDay(doc.Lessons, date, updated)
	return doc
}

// RemoveLesson drops one lesson from one date; unknown ids are no-ops.
func RemoveLesson(doc Document, date, lessonID string) Document {
	day, ok := doc.Lessons[date]
	if !ok {
		return doc
	}
	updated := make([]Lesson, 0, len(day))
	for _, lesson := range day {
		if lesson.ID != lessonID {
			updated = append(updated, lesson)
		}
	}
	if len(updated) == len(day) {
		return doc
	}
	doc.Lessons = replaceLessonDay(doc.Lessons, date, updated)
	return doc
}

// AddTemplate appends a reusable weekly template, assigning an identifier
// when none is set.
func AddTemplate(doc Document, template Template) Document {
	if template.ID == "" {
		template.ID = NewID()
	}
	for i, item := range template.Items {
		template.Items[i].Duration = clampNonNegative(item.Duration)
	}
	templates := make([]Template, 0, len(doc.Templates)+1)
	templates = append(templates, doc.Templates...)
	templates = append(templates, template)
	doc.Templates = templates
	return doc
}

// AddPortfolioItem appends a work artifact to one student's portfolio.
func AddPortfolioItem(doc Document, studentID string, item PortfolioItem) Document {
	if item.ID == "" {
		item.ID = NewID()
	}
	items := make([]PortfolioItem, 0, len(doc.Portfolio[studentID])+1)
	items = append(items, doc.Portfolio[studentID]...)
	items = append(items, item)

	portfolio := make(map[string][]PortfolioItem, len(doc.Portfolio)+1)
	for id, existing := range doc.Portfolio {
		portfolio[id] = existing
	}
	portfolio[studentID] = items
	doc.Portfolio = portfolio
	return doc
}

// RemovePortfolioItem drops one artifact; unknown ids are no-ops.
func RemovePortfolioItem(doc Document, studentID, itemID string) Document {
	existing, ok := doc.Portfolio[studentID]
	if !ok {
		return doc
	}
	items := make([]PortfolioItem, 0, len(existing))
	for _, item := range existing {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	portfolio := make(map[string][]PortfolioItem, len(doc.Portfolio))
	for id, value := range doc.Portfolio {
		portfolio[id] = value
	}
	portfolio[studentID] = items
	doc.Portfolio = portfolio
	return doc
}

// AddAssignment records a scored assignment under one student/subject pair,
// coercing score and max to non-negative values.
func AddAssignment(doc Document, studentID, subject string, assignment Assignment) Document {
	if assignment.ID == "" {
		assignment.ID = NewID()
	}
	assignment.Score = clampNonNegative(assignment.Score)
	assignment.Max = clampNonNegative(assignment.Max)

	subjects := doc.Grades[studentID]
	grades := subjects[subject]
	assignments := make([]Assignment, 0, len(grades.Assignments)+1)
	assignments = append(assignments, grades.Assignments...)
	assignments = append(assignments, assignment)

	doc.Grades = replaceSubjectGrades(doc.Grades, studentID, subject, SubjectGrades{Assignments: assignments})
	return doc
}

// RemoveAssignment drops one assignment; unknown ids are no-ops.
func RemoveAssignment(doc Document, studentID, subject, assignmentID string) Document {
	subjects, ok := doc.Grades[studentID]
	if !ok {
		return doc
	}
	grades, ok := subjects[subject]
	if !ok {
		return doc
	}
	assignments := make([]Assignment, 0, len(grades.Assignments))
	for _, assignment := range grades.Assignments {
		if assignment.ID != assignmentID {
			assignments = append(assignments, assignment)
		}
	}
	doc.Grades = replaceSubjectGrades(doc.Grades, studentID, subject, SubjectGrades{Assignments: assignments})
	return doc
}

// UpdateSettings replaces the document-wide preferences, reverting an unknown
// week-start convention to Monday.
func UpdateSettings(doc Document, settings Settings) Document {
	if settings.WeekStartsOn != 0 && settings.WeekStartsOn != 1 {
		settings.WeekStartsOn = 1
	}
	doc.Settings = settings
	return doc
}

// AddFeedback appends a feedback entry, assigning an identifier and the
// producing document version when unset.
func AddFeedback(doc Document, entry FeedbackEntry) Document {
	if entry.ID == "" {
		entry.ID = NewID()
	}
	if entry.AppVersion == "" {
		entry.AppVersion = DocumentVersion
	}
	feedback := make([]FeedbackEntry, 0, len(doc.Feedback)+1)
	feedback = append(feedback, doc.Feedback...)
	feedback = append(feedback, entry)
	doc.Feedback = feedback
	return doc
}

func applyLessonPatch(lesson Lesson, patch LessonPatch) Lesson {
	if patch.Title != nil {
		lesson.Title = *patch.Title
	}
	if patch.Subject != nil {
		lesson.Subject = *patch.Subject
	}
	if patch.Duration != nil {
		lesson.Duration = clampNonNegative(*patch.Duration)
	}
	if patch.Standards != nil {
		lesson.Standards = patch.Standards
	}
	if patch.Objectives != nil {
		lesson.Objectives = *patch.Objectives
	}
	if patch.Links != nil {
		lesson.Links = patch.Links
	}
	if patch.Notes != nil {
		lesson.Notes = *patch.Notes
	}
	if patch.For != nil {
		lesson.For = patch.For
	}
	return lesson
}

func replaceLessonDay(lessons map[string][]Lesson, date string, day []Lesson) map[string][]Lesson {
	updated := make(map[string][]Lesson, len(lessons)+1)
	for d, existing := range lessons {
		updated[d] = existing
	}
	updated[date] = day
	return updated
}

func replaceSubjectGrades(grades map[string]map[string]SubjectGrades, studentID, subject string, value SubjectGrades) map[string]map[string]SubjectGrades {
	subjects := make(map[string]SubjectGrades, len(grades[studentID])+1)
	for s, existing := range grades[studentID] {
		subjects[s] = existing
	}
	subjects[subject] = value

	updated := make(map[string]map[string]SubjectGrades, len(grades)+1)
	for id, existing := range grades {
		updated[id] = existing
	}
	updated[studentID] = subjects
	return updated
}
