package dto

import "github.com/homeschoolhq/hq-go-api/internal/store"

// StudentRequest creates or updates a student profile. An empty ID means
// create.
type StudentRequest struct {
	ID            string             `json:"id"`
	Name          string             `json:"name" validate:"required,min=1,max=120"`
	Grade         string             `json:"grade" validate:"max=20"`
	Subjects      []string           `json:"subjects" validate:"dive,max=60"`
	WeeklyTargets map[string]float64 `json:"weeklyTargets"`
}

// ActiveStudentRequest switches the selected student.
type ActiveStudentRequest struct {
	StudentID string `json:"studentId" validate:"required"`
}

// StudentListResult pairs the roster with the current selection.
type StudentListResult struct {
	Students        []store.Student `json:"students"`
	ActiveStudentID string          `json:"activeStudentId"`
}
