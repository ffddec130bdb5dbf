package feedback

import (
	"fmt"
	"time"

	feedbackRepo "healthguard/database/repository/feedback"
	"healthguard/models"

	"github.com/google/uuid"
)

// ValidationError reports a malformed feedback payload.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// CreateRequest carries a public feedback submission.
type CreateRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Rating     int    `json:"rating"`
	Message    string `json:"message"`
}

// FeedbackService records public rating submissions.
type FeedbackService interface {
	Create(req CreateRequest) (*models.Feedback, error)
}

// DefaultFeedbackService is the production implementation.
type DefaultFeedbackService struct {
	Feedback feedbackRepo.FeedbackRepository
}

// Create validates and stores a feedback submission.
func (s *DefaultFeedbackService) Create(req CreateRequest) (*models.Feedback, error) {
	if req.Name == "" || req.Message == "" {
		return nil, ValidationError{Reason: "name and message are required"}
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ValidationError{Reason: "rating must be between 1 and 5"}
	}

	fb := &models.Feedback{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Rating:     req.Rating,
		Message:    req.Message,
		CreatedAt:  time.Now(),
	}
	if err := s.Feedback.Create(fb); err != nil {
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}
	return fb, nil
}
