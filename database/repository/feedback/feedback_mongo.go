package feedbackRepo

import (
	"context"
	"fmt"
	"time"

	"healthguard/database"
	"healthguard/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// FeedbackRepository defines methods for feedback data access.
type FeedbackRepository interface {
	// Create inserts a new feedback record.
	Create(fb *models.Feedback) error
}

// MongoFeedbackRepo implements FeedbackRepository using MongoDB.
type MongoFeedbackRepo struct {
	coll *mongo.Collection
}

// NewMongoFeedbackRepo creates a new instance of FeedbackRepository using MongoDB.
func NewMongoFeedbackRepo() FeedbackRepository {
	coll := database.MongoClient.Database("healthguard").Collection("feedback")
	return &MongoFeedbackRepo{coll: coll}
}

// Create inserts a new feedback document.
func (r *MongoFeedbackRepo) Create(fb *models.Feedback) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fb.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, fb)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}
