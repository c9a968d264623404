package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"feedback-service/internal/adapter/gin/middleware"
	sessionstore "feedback-service/internal/adapter/session"
	"feedback-service/internal/usecase/user"
	"feedback-service/pkg/logger"
)

// UserHandler handles HTTP requests for account operations
type UserHandler struct {
	uc       user.Usecase
	sessions sessionstore.Store
	cookie   CookieConfig
	log      *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, sessions sessionstore.Store, cookie CookieConfig, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:       uc,
		sessions: sessions,
		cookie:   cookie,
		log:      log,
	}
}

// GetProfile handles GET /users/:username
func (h *UserHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.uc.GetProfile(c.Request.Context(), middleware.IdentityFrom(c), username)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	feedbacks := make([]FeedbackResponse, len(profile.Feedbacks))
	for i := range profile.Feedbacks {
		feedbacks[i] = toFeedbackResponse(&profile.Feedbacks[i])
	}

	c.JSON(http.StatusOK, ProfileResponse{
		User:      toUserResponse(profile.User),
		Feedbacks: feedbacks,
	})
}

// DeleteUser handles DELETE /users/:username. The caller's session ends with the account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	username := c.Param("username")

	if err := h.uc.DeleteUser(c.Request.Context(), middleware.IdentityFrom(c), username); err != nil {
		handleError(c, h.log, err)
		return
	}

	if id := middleware.SessionIDFrom(c); id != "" {
		if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
			logger.WithContext(c.Request.Context(), h.log).Warn("failed to delete session of deleted user", zap.Error(err))
		}
	}
	h.cookie.clear(c)
	c.Status(http.StatusNoContent)
}
