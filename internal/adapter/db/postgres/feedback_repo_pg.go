package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"feedback-service/internal/domain/feedback"
	apperrors "feedback-service/pkg/errors"
)

// FeedbackRepoPG implements the feedback Repository using GORM.
type FeedbackRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewFeedbackRepoPG creates a new instance of FeedbackRepoPG.
func NewFeedbackRepoPG(db *gorm.DB, log *zap.Logger) *FeedbackRepoPG {
	return &FeedbackRepoPG{db: db, log: log}
}

// Create inserts a feedback entry for an existing owner and returns it with its new ID.
func (r *FeedbackRepoPG) Create(ctx context.Context, title, content, owner string) (*feedback.Feedback, error) {
	model := FeedbackSchema{
		Title:    title,
		Content:  content,
		Username: owner,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owners int64
		if err := tx.Model(&UserSchema{}).Where("username = ?", owner).Count(&owners).Error; err != nil {
			return err
		}
		if owners == 0 {
			return apperrors.NewNotFoundError("user", "")
		}
		return tx.Create(&model).Error
	})
	if err != nil {
		var notFound *apperrors.NotFoundError
		if errors.As(err, &notFound) || isForeignKeyConstraintViolation(err) {
			r.log.Warn("feedback owner not found", zap.String("username", owner))
			return nil, apperrors.NewNotFoundError("user", "")
		}
		r.log.Error("failed to create feedback in db", zap.Error(err), zap.String("username", owner))
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	r.log.Info("feedback created in db", zap.Int64("id", model.ID), zap.String("username", owner))
	return model.toDomain(), nil
}

// GetByID retrieves a feedback entry by its ID.
func (r *FeedbackRepoPG) GetByID(ctx context.Context, id int64) (*feedback.Feedback, error) {
	var model FeedbackSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("feedback not found", zap.Int64("id", id))
			return nil, apperrors.NewNotFoundError("feedback", "")
		}
		r.log.Error("failed to get feedback from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return model.toDomain(), nil
}

// ListByOwner returns every feedback entry owned by username, oldest first.
func (r *FeedbackRepoPG) ListByOwner(ctx context.Context, username string) ([]feedback.Feedback, error) {
	var models []FeedbackSchema
	if err := r.db.WithContext(ctx).Where("username = ?", username).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to list feedback from db", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	items := make([]feedback.Feedback, len(models))
	for i, m := range models {
		items[i] = *m.toDomain()
	}
	return items, nil
}

// Update replaces the title and content of an existing entry.
func (r *FeedbackRepoPG) Update(ctx context.Context, f *feedback.Feedback) error {
	if f == nil {
		return errors.New("feedback cannot be nil")
	}

	res := r.db.WithContext(ctx).Model(&FeedbackSchema{}).
		Where("id = ?", f.ID).
		Updates(map[string]any{"title": f.Title, "content": f.Content})
	if res.Error != nil {
		r.log.Error("failed to update feedback in db", zap.Error(res.Error), zap.Int64("id", f.ID))
		return fmt.Errorf("failed to update feedback: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("feedback", "")
	}

	r.log.Info("feedback updated in db", zap.Int64("id", f.ID))
	return nil
}

// Delete removes a feedback entry by ID.
func (r *FeedbackRepoPG) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&FeedbackSchema{}, id)
	if res.Error != nil {
		r.log.Error("failed to delete feedback in db", zap.Error(res.Error), zap.Int64("id", id))
		return fmt.Errorf("failed to delete feedback: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("feedback", "")
	}

	r.log.Info("feedback deleted in db", zap.Int64("id", id))
	return nil
}

// Count returns the number of stored feedback entries.
func (r *FeedbackRepoPG) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&FeedbackSchema{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return n, nil
}
