package dto

// FeedbackRequest captures an in-app feedback submission.
type FeedbackRequest struct {
	Name    string `json:"name" validate:"max=120"`
	Email   string `json:"email" validate:"omitempty,email"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

// FeedbackResult echoes the stored entry identity.
type FeedbackResult struct {
	ID string `json:"id"`
	At string `json:"at"`
}

// FeedbackMailtoResult carries a prefilled mailto link so the client can hand
// the entry off to the user's mail program.
type FeedbackMailtoResult struct {
	Mailto string `json:"mailto"`
}
