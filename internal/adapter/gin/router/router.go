package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"feedback-service/internal/adapter/gin/handler"
	"feedback-service/internal/adapter/gin/middleware"
	sessionstore "feedback-service/internal/adapter/session"
)

// Handlers groups the HTTP handlers mounted by SetupRouter.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Feedback *handler.FeedbackHandler
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	h Handlers,
	sessions sessionstore.Store,
	cookieName string,
	serviceName string,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	app := router.Group("", middleware.Session(sessions, cookieName, log))
	{
		app.POST("/register", h.Auth.Register)
		app.POST("/login", h.Auth.Login)
		app.POST("/logout", h.Auth.Logout)

		users := app.Group("/users/:username")
		{
			users.GET("", h.User.GetProfile)
			users.DELETE("", h.User.DeleteUser)
			users.POST("/feedback", h.Feedback.AddFeedback)
		}

		feedback := app.Group("/feedback")
		{
			feedback.GET("/:id", h.Feedback.GetFeedback)
			feedback.PUT("/:id", h.Feedback.UpdateFeedback)
			feedback.DELETE("/:id", h.Feedback.DeleteFeedback)
		}
	}

	return router
}
