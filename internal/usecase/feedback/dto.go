package feedback

// AddFeedbackRequest represents the payload for adding a feedback entry to Owner's account.
type AddFeedbackRequest struct {
	Owner   string `validate:"required"`
	Title   string `validate:"required,max=100"`
	Content string `validate:"required"`
}

// UpdateFeedbackRequest represents the payload for replacing an entry's title and content.
type UpdateFeedbackRequest struct {
	ID      int64  `validate:"required"`
	Title   string `validate:"required,max=100"`
	Content string `validate:"required"`
}
