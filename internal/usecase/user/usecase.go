package user

import (
	"context"

	"go.uber.org/zap"

	"feedback-service/internal/domain/feedback"
	"feedback-service/internal/domain/session"
	domain "feedback-service/internal/domain/user"
	apperrors "feedback-service/pkg/errors"
	"feedback-service/pkg/logger"
)

// Repository defines the user store operations used by account management.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error) // Retrieve user by username
	Delete(ctx context.Context, username string) error                        // Delete user and owned feedback
}

// FeedbackLister lists the feedback entries owned by a user.
type FeedbackLister interface {
	ListByOwner(ctx context.Context, username string) ([]feedback.Feedback, error)
}

// Service implements profile viewing and account deletion.
// Every operation is gated by session.Authorize before any store is touched.
type Service struct {
	repo      Repository
	feedbacks FeedbackLister
	log       *zap.Logger
}

// New creates a new user Service.
func New(repo Repository, feedbacks FeedbackLister, log *zap.Logger) *Service {
	return &Service{repo: repo, feedbacks: feedbacks, log: log}
}

// GetProfile returns the user and its feedback when identity owns the account.
func (s *Service) GetProfile(ctx context.Context, identity session.Identity, username string) (*Profile, error) {
	if !session.Authorize(identity, username) {
		return nil, apperrors.NewUnauthorizedError()
	}

	log := logger.WithContext(ctx, s.log)

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		log.Warn("failed to load profile", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	items, err := s.feedbacks.ListByOwner(ctx, username)
	if err != nil {
		log.Error("failed to list feedback for profile", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	return &Profile{User: u, Feedbacks: items}, nil
}

// DeleteUser removes the account and all of its feedback when identity owns it.
func (s *Service) DeleteUser(ctx context.Context, identity session.Identity, username string) error {
	if !session.Authorize(identity, username) {
		return apperrors.NewUnauthorizedError()
	}

	log := logger.WithContext(ctx, s.log)

	if err := s.repo.Delete(ctx, username); err != nil {
		log.Warn("failed to delete user", zap.String("username", username), zap.Error(err))
		return err
	}

	log.Info("user deleted", zap.String("username", username))
	return nil
}
