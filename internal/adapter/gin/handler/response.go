package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"feedback-service/internal/domain/feedback"
	"feedback-service/internal/domain/user"
	apperrors "feedback-service/pkg/errors"
	"feedback-service/pkg/logger"
)

// UserResponse represents the HTTP response for user data. The password hash is never exposed.
type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FeedbackResponse represents the HTTP response for a feedback entry
type FeedbackResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Username string `json:"username"`
}

// ProfileResponse represents the HTTP response for a user's profile page
type ProfileResponse struct {
	User      UserResponse       `json:"user"`
	Feedbacks []FeedbackResponse `json:"feedbacks"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toFeedbackResponse(f *feedback.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:       f.ID,
		Title:    f.Title,
		Content:  f.Content,
		Username: f.Username,
	}
}

// CookieConfig describes the session cookie written by login and register.
type CookieConfig struct {
	Name   string
	MaxAge int // seconds
	Secure bool
}

func (cc CookieConfig) set(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cc.Name, sessionID, cc.MaxAge, "/", "", cc.Secure, true)
}

func (cc CookieConfig) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cc.Name, "", -1, "/", "", cc.Secure, true)
}

// errorCode maps an HTTP status to the machine-readable error field.
func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_input"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "already_exists"
	default:
		return "internal_error"
	}
}

// handleError converts usecase errors to HTTP responses.
// Errors without an HTTP status, and all 5xx errors, get a generic message.
func handleError(c *gin.Context, log *zap.Logger, err error) {
	status := http.StatusInternalServerError
	var statuser apperrors.HTTPStatuser
	if errors.As(err, &statuser) {
		status = statuser.HTTPStatus()
	}

	resp := ErrorResponse{Error: errorCode(status), Message: err.Error()}
	if status >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context(), log).Error("request failed", zap.Error(err))
		resp.Message = "An internal error occurred"
	}

	var missing *apperrors.MissingFieldError
	if errors.As(err, &missing) {
		resp.Fields = missing.Fields
	}

	_ = c.Error(err)
	c.JSON(status, resp)
}

// handleBindError reports a request body that failed binding or form validation as 400.
func handleBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "request body is malformed",
		})
		return
	}

	messages := make([]string, 0, len(validationErrors))
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := toSnake(e.Field())
		fields = append(fields, field)
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		case "eqfield":
			messages = append(messages, fmt.Sprintf("%s must match %s", field, toSnake(e.Param())))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: strings.Join(messages, ", "),
		Fields:  fields,
	})
}

// toSnake converts a Go field name such as RepeatedPassword to repeated_password.
func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
