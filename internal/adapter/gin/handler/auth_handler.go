package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"feedback-service/internal/adapter/gin/middleware"
	sessionstore "feedback-service/internal/adapter/session"
	"feedback-service/internal/usecase/auth"
	"feedback-service/pkg/logger"
)

// AuthHandler handles register, login and logout.
type AuthHandler struct {
	uc       auth.Usecase
	sessions sessionstore.Store
	cookie   CookieConfig
	log      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(uc auth.Usecase, sessions sessionstore.Store, cookie CookieConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		uc:       uc,
		sessions: sessions,
		cookie:   cookie,
		log:      log,
	}
}

// RegisterRequest represents the registration form. Presence of the stored
// fields is checked by the auth usecase; the tags here cover format and length.
type RegisterRequest struct {
	Username         string `json:"username" form:"username" binding:"omitempty,min=3,max=20"`
	Password         string `json:"password" form:"password"`
	RepeatedPassword string `json:"repeated_password" form:"repeated_password" binding:"eqfield=Password"`
	Email            string `json:"email" form:"email" binding:"omitempty,email,max=50"`
	FirstName        string `json:"first_name" form:"first_name" binding:"omitempty,min=2,max=30"`
	LastName         string `json:"last_name" form:"last_name" binding:"omitempty,min=2,max=30"`
}

func (r RegisterRequest) fields() map[string]string {
	return map[string]string{
		auth.FieldUsername:         r.Username,
		auth.FieldPassword:         r.Password,
		auth.FieldRepeatedPassword: r.RepeatedPassword,
		auth.FieldEmail:            r.Email,
		auth.FieldFirstName:        r.FirstName,
		auth.FieldLastName:         r.LastName,
	}
}

// LoginRequest represents the login form
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// redirectIfAuthenticated sends an already logged-in caller to its own profile.
func redirectIfAuthenticated(c *gin.Context) bool {
	identity := middleware.IdentityFrom(c)
	if !identity.IsAuthenticated() {
		return false
	}
	c.Redirect(http.StatusSeeOther, "/users/"+url.PathEscape(identity.Username()))
	return true
}

// startSession creates a session for username and writes its cookie.
func (h *AuthHandler) startSession(c *gin.Context, username string) bool {
	id, err := h.sessions.Create(c.Request.Context(), username)
	if err != nil {
		handleError(c, h.log, err)
		return false
	}
	h.cookie.set(c, id)
	return true
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("Invalid register request", zap.Error(err))
		handleBindError(c, err)
		return
	}

	u, err := h.uc.Register(c.Request.Context(), req.fields())
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	if !h.startSession(c, u.Username) {
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(u))
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("Invalid login request", zap.Error(err))
		handleBindError(c, err)
		return
	}

	u, err := h.uc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "invalid username or password",
		})
		return
	}

	if !h.startSession(c, u.Username) {
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

// Logout handles POST /logout. It always succeeds and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(h.cookie.Name); err == nil && id != "" {
		if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
			logger.WithContext(c.Request.Context(), h.log).Warn("failed to delete session on logout", zap.Error(err))
		}
	}
	h.cookie.clear(c)
	c.Status(http.StatusNoContent)
}
