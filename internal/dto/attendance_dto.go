package dto

// AttendanceToggleRequest flips one student-day attendance flag.
type AttendanceToggleRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

// AttendanceToggleResult reports the flag after the flip.
type AttendanceToggleResult struct {
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	Present   bool   `json:"present"`
}
