package models

import "time"

// Medication statuses.
const (
	MedicationActive    = "active"
	MedicationCompleted = "completed"
	MedicationStopped   = "stopped"
)

// Medication is a prescription entry attached to a patient.
type Medication struct {
	ID           string    `bson:"id" json:"id"`
	PatientID    string    `bson:"patient_id" json:"patientId"`
	DoctorID     string    `bson:"doctor_id" json:"doctorId"`
	Name         string    `bson:"name" json:"name"`
	Dosage       string    `bson:"dosage" json:"dosage"`
	Frequency    string    `bson:"frequency" json:"frequency"`
	Duration     string    `bson:"duration" json:"duration"`
	Instructions string    `bson:"instructions" json:"instructions"`
	Status       string    `bson:"status" json:"status"`
	StartDate    string    `bson:"start_date" json:"startDate"`
	EndDate      string    `bson:"end_date" json:"endDate"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
