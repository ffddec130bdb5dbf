package patientRepo

import (
	"healthguard/models"

	"go.mongodb.org/mongo-driver/bson"
)

// PatientRepository defines methods for patient data access.
type PatientRepository interface {
	// GetByID retrieves a patient by its unique ID, or nil when absent.
	GetByID(id string) (*models.Patient, error)
	// GetByEmail retrieves a patient by email, or nil when absent.
	GetByEmail(email string) (*models.Patient, error)
	// ListByDoctor retrieves all patients onboarded by a doctor, newest first.
	ListByDoctor(doctorID string) ([]models.Patient, error)
	// Create inserts a new patient record.
	Create(patient *models.Patient) error
	// UpdateSetDocument applies a field-level $set update to a patient.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a patient record by its ID.
	Delete(id string) error
}
