package postgres

import (
	"gorm.io/gorm"

	"feedback-service/internal/domain/feedback"
	"feedback-service/internal/domain/user"
)

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	Username  string           `gorm:"primaryKey;size:20"`           // Primary identity
	Password  string           `gorm:"type:text;not null"`           // Opaque password hash
	Email     string           `gorm:"size:50;not null;uniqueIndex"` // Unique email address
	FirstName string           `gorm:"size:30;not null"`
	LastName  string           `gorm:"size:30;not null"`
	Feedbacks []FeedbackSchema `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// FeedbackSchema represents the database schema for the feedbacks table.
type FeedbackSchema struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"` // Never reused, even after deletes
	Title    string `gorm:"size:100;not null"`
	Content  string `gorm:"type:text;not null"`
	Username string `gorm:"size:20;not null;index"` // Owner, references users.username
}

// TableName specifies the table name for the FeedbackSchema model.
func (FeedbackSchema) TableName() string {
	return "feedbacks"
}

// AutoMigrate creates or updates the users and feedbacks tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserSchema{}, &FeedbackSchema{})
}

func toUserSchema(u *user.User) UserSchema {
	return UserSchema{
		Username:  u.Username,
		Password:  u.PasswordHash,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func (m UserSchema) toDomain() *user.User {
	return &user.User{
		Username:     m.Username,
		PasswordHash: m.Password,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
	}
}

func (m FeedbackSchema) toDomain() *feedback.Feedback {
	return &feedback.Feedback{
		ID:       m.ID,
		Title:    m.Title,
		Content:  m.Content,
		Username: m.Username,
	}
}
