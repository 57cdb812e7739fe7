package dto

import "github.com/homeschoolhq/hq-go-api/internal/store"

// LessonRequest creates a lesson on a given date.
type LessonRequest struct {
	Date       string       `json:"date" validate:"required,datetime=2006-01-02"`
	Title      string       `json:"title" validate:"required,min=1,max=200"`
	Subject    string       `json:"subject" validate:"max=60"`
	Duration   float64      `json:"duration" validate:"gte=0"`
	Standards  []string     `json:"standards"`
	Objectives string       `json:"objectives"`
	Links      []store.Link `json:"links"`
	Notes      string       `json:"notes"`
	For        []string     `json:"for"`
}

// LessonUpdateRequest patches an existing lesson. Nil fields are untouched,
// nil slices too: sending an empty slice clears the field.
type LessonUpdateRequest struct {
	Title      *string      `json:"title"`
	Subject    *string      `json:"subject"`
	Duration   *float64     `json:"duration" validate:"omitempty,gte=0"`
	Standards  []string     `json:"standards"`
	Objectives *string      `json:"objectives"`
	Links      []store.Link `json:"links"`
	Notes      *string      `json:"notes"`
	For        []string     `json:"for"`
}

// WeekLessonsResult groups one week's lessons by date, Monday or Sunday first
// depending on settings.
type WeekLessonsResult struct {
	Start string                    `json:"start"`
	End   string                    `json:"end"`
	Days  map[string][]store.Lesson `json:"days"`
}

// TemplateRequest creates a reusable week template.
type TemplateRequest struct {
	Name  string                `json:"name" validate:"required,min=1,max=120"`
	Items []TemplateItemRequest `json:"items" validate:"required,min=1,dive"`
}

// TemplateItemRequest is one planned lesson inside a template.
type TemplateItemRequest struct {
	Title      string   `json:"title" validate:"required,min=1,max=200"`
	Subject    string   `json:"subject" validate:"max=60"`
	Duration   float64  `json:"duration" validate:"gte=0"`
	Standards  []string `json:"standards"`
	Objectives string   `json:"objectives"`
}

// ApplyTemplateRequest expands a template into the week containing Anchor for
// the given student.
type ApplyTemplateRequest struct {
	Anchor    string `json:"anchor" validate:"required,datetime=2006-01-02"`
	StudentID string `json:"studentId" validate:"required"`
}

// ApplyTemplateResult reports how many lessons the expansion created.
type ApplyTemplateResult struct {
	TemplateID string `json:"templateId"`
	WeekStart  string `json:"weekStart"`
	Created    int    `json:"created"`
}
