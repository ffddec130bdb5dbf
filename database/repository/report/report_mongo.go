package reportRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthguard/database"
	"healthguard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a report id does not match any document.
var ErrNotFound = errors.New("report not found")

// ReportRepository defines methods for health report data access.
type ReportRepository interface {
	// Create inserts a new report record.
	Create(report *models.HealthReport) error
	// GetByID retrieves a report by its unique ID, or nil when absent.
	GetByID(id string) (*models.HealthReport, error)
	// ListByPatient retrieves a patient's reports, newest first.
	ListByPatient(patientID string) ([]models.HealthReport, error)
	// Delete removes a report record by its ID.
	Delete(id string) error
}

// MongoReportRepo implements ReportRepository using MongoDB.
type MongoReportRepo struct {
	coll *mongo.Collection
}

// NewMongoReportRepo creates a new instance of ReportRepository using MongoDB.
func NewMongoReportRepo() ReportRepository {
	coll := database.MongoClient.Database("healthguard").Collection("health_reports")
	repo := &MongoReportRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoReportRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new report document.
func (r *MongoReportRepo) Create(report *models.HealthReport) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	report.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID retrieves a report by its unique ID, or nil when absent.
func (r *MongoReportRepo) GetByID(id string) (*models.HealthReport, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var report models.HealthReport
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve report with id %s: %w", id, err)
	}
	return &report, nil
}

// ListByPatient retrieves a patient's reports, newest first.
func (r *MongoReportRepo) ListByPatient(patientID string) ([]models.HealthReport, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"patient_id": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reports for patient %s: %w", patientID, err)
	}
	defer cursor.Close(ctx)

	var reports []models.HealthReport
	for cursor.Next(ctx) {
		var rep models.HealthReport
		if err := cursor.Decode(&rep); err != nil {
			return nil, fmt.Errorf("failed to decode report: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// Delete removes a report document by its ID.
func (r *MongoReportRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete report with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
