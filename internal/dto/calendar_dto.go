package dto

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date         string `json:"date"`
	InMonth      bool   `json:"inMonth"`
	Present      bool   `json:"present"`
	LessonCount  int    `json:"lessonCount"`
	TotalMinutes int    `json:"totalMinutes"`
}

// CalendarMonthResponse is the month grid in display order, full weeks only.
type CalendarMonthResponse struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Weeks [][]CalendarDay `json:"weeks"`
}
