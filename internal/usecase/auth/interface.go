package auth

import (
	"context"

	domain "feedback-service/internal/domain/user"
)

// Usecase defines registration and credential verification.
type Usecase interface {
	Register(ctx context.Context, fields map[string]string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}
