package models

import "time"

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a visit a doctor has scheduled for a patient. Date and time
// are stored as entered ("2006-01-02" / "15:04") and used for listing order.
type Appointment struct {
	ID           string    `bson:"id" json:"id"`
	DoctorID     string    `bson:"doctor_id" json:"doctorId"`
	PatientID    string    `bson:"patient_id" json:"patientId"`
	PatientName  string    `bson:"patient_name" json:"patientName"`
	PatientEmail string    `bson:"patient_email" json:"patientEmail"`
	Date         string    `bson:"date" json:"date"`
	Time         string    `bson:"time" json:"time"`
	Reason       string    `bson:"reason" json:"reason"`
	Status       string    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
