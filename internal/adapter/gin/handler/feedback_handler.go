package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"feedback-service/internal/adapter/gin/middleware"
	"feedback-service/internal/usecase/feedback"
	"feedback-service/pkg/logger"
)

// FeedbackHandler handles HTTP requests for feedback entries
type FeedbackHandler struct {
	uc  feedback.Usecase
	log *zap.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler instance
func NewFeedbackHandler(uc feedback.Usecase, log *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{uc: uc, log: log}
}

// FeedbackRequest represents the HTTP request body for adding or editing feedback.
// Title and content rules are enforced by the feedback usecase after the ownership check.
type FeedbackRequest struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// parseID reads the :id path parameter, writing a 400 response when it is not a positive integer.
func parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Feedback ID must be a positive number",
		})
		return 0, false
	}
	return id, true
}

// AddFeedback handles POST /users/:username/feedback
func (h *FeedbackHandler) AddFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("Invalid add feedback request", zap.Error(err))
		handleBindError(c, err)
		return
	}

	f, err := h.uc.AddFeedback(c.Request.Context(), middleware.IdentityFrom(c), feedback.AddFeedbackRequest{
		Owner:   c.Param("username"),
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toFeedbackResponse(f))
}

// GetFeedback handles GET /feedback/:id
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	f, err := h.uc.GetFeedback(c.Request.Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toFeedbackResponse(f))
}

// UpdateFeedback handles PUT /feedback/:id
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("Invalid update feedback request", zap.Error(err))
		handleBindError(c, err)
		return
	}

	f, err := h.uc.UpdateFeedback(c.Request.Context(), middleware.IdentityFrom(c), feedback.UpdateFeedbackRequest{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toFeedbackResponse(f))
}

// DeleteFeedback handles DELETE /feedback/:id
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteFeedback(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		handleError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
