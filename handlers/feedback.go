package handlers

import (
	"net/http"

	"healthguard/services/feedback"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FeedbackHandler exposes the public feedback endpoint.
type FeedbackHandler struct {
	Feedback feedback.FeedbackService
}

// Create stores a public rating submission. No authentication required.
func (h *FeedbackHandler) Create(c *gin.Context) {
	logger := getLogger(c)

	var req feedback.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid feedback request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	fb, err := h.Feedback.Create(req)
	if err != nil {
		if _, ok := err.(feedback.ValidationError); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
			return
		}
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Thank you for your feedback", "feedback": fb})
}
