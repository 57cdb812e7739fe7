package store

import "github.com/homeschoolhq/hq-go-api/internal/dateutil"

// ApplyTemplateToWeek expands a template onto the week containing anchor.
// Candidate dates are the first five days of that week; item i lands on
// candidate i mod 5, so a seven-item template wraps its last two items back
// onto the first two weekdays. Every expanded lesson is scoped to the
// applying student only, and an unset item subject defaults to that
// student's first configured subject. Expansion appends unconditionally:
// applying the same template twice duplicates its lessons.
func ApplyTemplateToWeek(doc Document, templateID string, anchor dateutil.Day, studentID string) Document {
	template, ok := doc.TemplateByID(templateID)
	if !ok {
		return doc
	}

	defaultSubject := ""
	if student, ok := doc.StudentByID(studentID); ok && len(student.Subjects) > 0 {
		defaultSubject = student.Subjects[0]
	}

	start := dateutil.StartOfWeek(anchor, doc.Settings.WeekStartsOn)
	candidates := make([]string, 5)
	for i := range candidates {
		candidates[i] = start.AddDays(i).String()
	}

	scope := []string{}
	if studentID != "" {
		scope = []string{studentID}
	}

	for i, item := range template.Items {
		subject := item.Subject
		if subject == "" {
			subject = defaultSubject
		}
		doc = AddLesson(doc, candidates[i%len(candidates)], Lesson{
			Title:      item.Title,
			Subject:    subject,
			Duration:   item.Duration,
			Standards:  item.Standards,
			Objectives: item.Objectives,
			For:        scope,
		})
	}
	return doc
}
