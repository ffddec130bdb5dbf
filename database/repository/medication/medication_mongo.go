package medicationRepo

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

// ErrNotFound is returned when a medication id does not match any document.
var ErrNotFound = errors.New("medication not found")

// MongoMedicationRepo implements MedicationRepository using MongoDB.
type MongoMedicationRepo struct {
	coll *mongo.Collection
}

// NewMongoMedicationRepo creates a new instance of MedicationRepository using MongoDB.
func NewMongoMedicationRepo() MedicationRepository {
	coll := database.MongoClient.Database("healthguard").Collection("medications")
	repo := &MongoMedicationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoMedicationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new medication document.
func (r *MongoMedicationRepo) Create(med *models.Medication) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	med.CreatedAt = time.Now()
	if med.Status == "" {
		med.Status = models.MedicationActive
	}
	_, err := r.coll.InsertOne(ctx, med)
	if err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

// GetByID retrieves a medication by its unique ID, or nil when absent.
func (r *MongoMedicationRepo) GetByID(id string) (*models.Medication, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var med models.Medication
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&med)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve medication with id %s: %w", id, err)
	}
	return &med, nil
}

// List retrieves medications matching the patient and/or doctor filter, newest first.
func (r *MongoMedicationRepo) List(patientID, doctorID string) ([]models.Medication, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if patientID != "" {
		filter["patient_id"] = patientID
	}
	if doctorID != "" {
		filter["doctor_id"] = doctorID
	}
	if len(filter) == 0 {
		return nil, fmt.Errorf("patientID or doctorID required")
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve medications: %w", err)
	}
	defer cursor.Close(ctx)

	var meds []models.Medication
	for cursor.Next(ctx) {
		var m models.Medication
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode medication: %w", err)
		}
		meds = append(meds, m)
	}
	return meds, nil
}

// UpdateSetDocument applies a field-level $set update to a medication.
func (r *MongoMedicationRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update medication with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a medication document by its ID.
func (r *MongoMedicationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete medication with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
