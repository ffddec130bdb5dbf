package appointmentRepo

import (
	"healthguard/models"

	"go.mongodb.org/mongo-driver/bson"
)

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	// Create inserts a new appointment record.
	Create(appt *models.Appointment) error
	// GetByID retrieves an appointment by its unique ID, or nil when absent.
	GetByID(id string) (*models.Appointment, error)
	// ListByDoctor retrieves a doctor's appointments ordered by date and time.
	ListByDoctor(doctorID string) ([]models.Appointment, error)
	// ListByPatient retrieves a patient's appointments, most recent date first.
	ListByPatient(patientID string) ([]models.Appointment, error)
	// UpdateSetDocument applies a field-level $set update to an appointment.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes an appointment record by its ID.
	Delete(id string) error
}
