package user

import (
	"feedback-service/internal/domain/feedback"
	domain "feedback-service/internal/domain/user"
)

// Profile is a user together with every feedback entry it owns.
type Profile struct {
	User      *domain.User
	Feedbacks []feedback.Feedback
}
