package dto

// AssignmentRequest records a scored assignment under one subject.
type AssignmentRequest struct {
	StudentID string  `json:"studentId" validate:"required"`
	Subject   string  `json:"subject" validate:"required,min=1,max=60"`
	Title     string  `json:"title" validate:"required,min=1,max=200"`
	Score     float64 `json:"score" validate:"gte=0"`
	Max       float64 `json:"max" validate:"gte=0"`
	Date      string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
