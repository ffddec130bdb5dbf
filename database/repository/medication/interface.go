package medicationRepo

import (
	"healthguard/models"

	"go.mongodb.org/mongo-driver/bson"
)

// MedicationRepository defines methods for medication data access.
type MedicationRepository interface {
	// Create inserts a new medication record.
	Create(med *models.Medication) error
	// GetByID retrieves a medication by its unique ID, or nil when absent.
	GetByID(id string) (*models.Medication, error)
	// List retrieves medications matching the patient and/or doctor filter,
	// newest first. At least one of the two IDs must be set.
	List(patientID, doctorID string) ([]models.Medication, error)
	// UpdateSetDocument applies a field-level $set update to a medication.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a medication record by its ID.
	Delete(id string) error
}
