package feedback

import (
	"context"

	domain "feedback-service/internal/domain/feedback"
	"feedback-service/internal/domain/session"
)

// Usecase defines the owner-only operations on feedback entries.
type Usecase interface {
	AddFeedback(ctx context.Context, identity session.Identity, in AddFeedbackRequest) (*domain.Feedback, error)
	GetFeedback(ctx context.Context, identity session.Identity, id int64) (*domain.Feedback, error)
	UpdateFeedback(ctx context.Context, identity session.Identity, in UpdateFeedbackRequest) (*domain.Feedback, error)
	DeleteFeedback(ctx context.Context, identity session.Identity, id int64) error
}
