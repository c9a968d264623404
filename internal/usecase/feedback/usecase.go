package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "feedback-service/internal/domain/feedback"
	"feedback-service/internal/domain/session"
	apperrors "feedback-service/pkg/errors"
	"feedback-service/pkg/logger"
)

// Repository defines the feedback store operations.
type Repository interface {
	Create(ctx context.Context, title, content, owner string) (*domain.Feedback, error) // Create entry with a fresh ID
	GetByID(ctx context.Context, id int64) (*domain.Feedback, error)                    // Retrieve entry by ID
	Update(ctx context.Context, f *domain.Feedback) error                                // Replace title and content
	Delete(ctx context.Context, id int64) error                                         // Delete entry by ID
}

// Service implements feedback management for the owning user.
type Service struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new feedback Service.
func New(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	var messages []string
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}
	return apperrors.NewValidationError("", strings.Join(messages, ", "))
}

// AddFeedback creates an entry owned by in.Owner. Only the owner may add to its own account.
func (s *Service) AddFeedback(ctx context.Context, identity session.Identity, in AddFeedbackRequest) (*domain.Feedback, error) {
	if !session.Authorize(identity, in.Owner) {
		return nil, apperrors.NewUnauthorizedError()
	}

	log := logger.WithContext(ctx, s.log)

	if err := s.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	f, err := s.repo.Create(ctx, in.Title, in.Content, in.Owner)
	if err != nil {
		log.Warn("failed to add feedback", zap.String("owner", in.Owner), zap.Error(err))
		return nil, err
	}

	log.Info("feedback added", zap.Int64("id", f.ID), zap.String("owner", in.Owner))
	return f, nil
}

// owned loads entry id and checks that identity owns it.
func (s *Service) owned(ctx context.Context, identity session.Identity, id int64) (*domain.Feedback, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.Authorize(identity, f.Username) {
		return nil, apperrors.NewUnauthorizedError()
	}
	return f, nil
}

// GetFeedback returns entry id when identity owns it.
func (s *Service) GetFeedback(ctx context.Context, identity session.Identity, id int64) (*domain.Feedback, error) {
	return s.owned(ctx, identity, id)
}

// UpdateFeedback replaces the title and content of an entry owned by identity.
func (s *Service) UpdateFeedback(ctx context.Context, identity session.Identity, in UpdateFeedbackRequest) (*domain.Feedback, error) {
	f, err := s.owned(ctx, identity, in.ID)
	if err != nil {
		return nil, err
	}

	log := logger.WithContext(ctx, s.log)

	if err := s.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	f.Title = in.Title
	f.Content = in.Content
	if err := s.repo.Update(ctx, f); err != nil {
		log.Warn("failed to update feedback", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	log.Info("feedback updated", zap.Int64("id", in.ID))
	return f, nil
}

// DeleteFeedback removes an entry owned by identity.
func (s *Service) DeleteFeedback(ctx context.Context, identity session.Identity, id int64) error {
	if _, err := s.owned(ctx, identity, id); err != nil {
		return err
	}

	log := logger.WithContext(ctx, s.log)

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Warn("failed to delete feedback", zap.Int64("id", id), zap.Error(err))
		return err
	}

	log.Info("feedback deleted", zap.Int64("id", id))
	return nil
}
