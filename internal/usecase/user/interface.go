package user

import (
	"context"

	"feedback-service/internal/domain/session"
)

// Usecase defines the owner-only operations on a user account.
type Usecase interface {
	GetProfile(ctx context.Context, identity session.Identity, username string) (*Profile, error)
	DeleteUser(ctx context.Context, identity session.Identity, username string) error
}
