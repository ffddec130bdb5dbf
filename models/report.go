package models

import "time"

// HealthReport is a diagnostic report a doctor has uploaded for a patient.
// FileURL is an opaque link; this service does not store report files.
type HealthReport struct {
	ID         string    `bson:"id" json:"id"`
	PatientID  string    `bson:"patient_id" json:"patientId"`
	DoctorID   string    `bson:"doctor_id" json:"doctorId"`
	Title      string    `bson:"title" json:"title"`
	Type       string    `bson:"type" json:"type"`
	Notes      string    `bson:"notes" json:"notes"`
	Result     string    `bson:"result" json:"result"`
	FileURL    string    `bson:"file_url" json:"fileUrl"`
	ReportDate string    `bson:"report_date" json:"reportDate"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
