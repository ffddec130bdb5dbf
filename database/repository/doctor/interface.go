package doctorRepo

import "healthguard/models"

// DoctorRepository defines methods for doctor data access.
type DoctorRepository interface {
	// GetByID retrieves a doctor by its unique ID.
	GetByID(id string) (*models.Doctor, error)
	// GetByEmail retrieves a doctor by email, or nil when absent.
	GetByEmail(email string) (*models.Doctor, error)
	// Create inserts a new doctor record.
	Create(doctor *models.Doctor) error
}
