package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"feedback-service/internal/domain/user"
	apperrors "feedback-service/pkg/errors"
)

// UserRepoPG implements the user Repository using GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// Create inserts a new user inside a single transaction.
// A username or email collision rolls the transaction back and yields CreateConflict.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (user.CreateOutcome, error) {
	if u == nil {
		return user.CreateOK, errors.New("user cannot be nil")
	}

	model := toUserSchema(u)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	if err != nil {
		if isUniqueConstraintViolation(err) {
			r.log.Warn("user create conflict", zap.String("username", u.Username))
			return user.CreateConflict, nil
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("username", u.Username))
		return user.CreateOK, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.String("username", model.Username))
	return user.CreateOK, nil
}

// GetByUsername retrieves a user by username.
func (r *UserRepoPG) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.String("username", username))
			return nil, apperrors.NewNotFoundError("user", "")
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.toDomain(), nil
}

// Delete removes a user and every feedback entry it owns in one transaction.
func (r *UserRepoPG) Delete(ctx context.Context, username string) error {
	var feedbacks int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("username = ?", username).Delete(&FeedbackSchema{})
		if res.Error != nil {
			return res.Error
		}
		feedbacks = res.RowsAffected

		res = tx.Where("username = ?", username).Delete(&UserSchema{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NewNotFoundError("user", "")
		}
		return nil
	})
	if err != nil {
		var notFound *apperrors.NotFoundError
		if errors.As(err, &notFound) {
			r.log.Warn("user to delete not found", zap.String("username", username))
			return err
		}
		r.log.Error("failed to delete user in db", zap.Error(err), zap.String("username", username))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	r.log.Info("user deleted in db", zap.String("username", username), zap.Int64("feedbacks_deleted", feedbacks))
	return nil
}

// Count returns the number of stored users.
func (r *UserRepoPG) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&UserSchema{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
