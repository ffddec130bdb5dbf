package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"healthguard/database"
	"healthguard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReminderRepo implements ReminderRepository using MongoDB.
type MongoReminderRepo struct {
	coll *mongo.Collection
}

// NewMongoReminderRepo creates a new instance of ReminderRepository using MongoDB.
func NewMongoReminderRepo() ReminderRepository {
	coll := database.MongoClient.Database("healthguard").Collection("reminders")
	repo := &MongoReminderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoReminderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a schedule by its unique ID.
func (r *MongoReminderRepo) GetByID(id string) (*models.ReminderSchedule, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var schedule models.ReminderSchedule
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&schedule); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch reminder with id %s: %w", id, err)
	}
	return &schedule, nil
}

// ListByDoctor retrieves all schedules owned by a doctor, newest first.
func (r *MongoReminderRepo) ListByDoctor(doctorID string) ([]models.ReminderSchedule, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"doctor_id": doctorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reminders for doctor %s: %w", doctorID, err)
	}
	defer cursor.Close(ctx)

	var schedules []models.ReminderSchedule
	for cursor.Next(ctx) {
		var s models.ReminderSchedule
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode reminder: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

// ListActive retrieves every schedule in the active state.
func (r *MongoReminderRepo) ListActive() ([]models.ReminderSchedule, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"status": models.ReminderActive})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve active reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var schedules []models.ReminderSchedule
	for cursor.Next(ctx) {
		var s models.ReminderSchedule
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode reminder: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}
