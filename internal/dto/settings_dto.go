package dto

// SettingsRequest updates application-wide preferences. Nil fields are
// untouched.
type SettingsRequest struct {
	WeekStartsOn  *int    `json:"weekStartsOn" validate:"omitempty,oneof=0 1"`
	FeedbackEmail *string `json:"feedbackEmail" validate:"omitempty,email"`
}
