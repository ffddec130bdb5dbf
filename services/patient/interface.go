package patient

import (
	"context"

	doctorRepo "healthguard/database/repository/doctor"
	patientRepo "healthguard/database/repository/patient"
	"healthguard/models"
	"healthguard/services/mailer"
)

// OnboardRequest carries the payload a doctor submits to create a patient
// account. Password is optional; when empty a credential is generated.
type OnboardRequest struct {
	DoctorID       string `json:"-"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	FullName       string `json:"fullName"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medicalHistory"`
}

// UpdateRequest carries a partial patient edit. Nil fields are untouched.
type UpdateRequest struct {
	FullName       *string `json:"fullName"`
	Age            *int    `json:"age"`
	Gender         *string `json:"gender"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medicalHistory"`
}

// OnboardResult is returned once at creation. GeneratedPassword holds the
// plaintext credential when the service generated one; it is never persisted
// and never retrievable again.
type OnboardResult struct {
	Patient           *models.Patient `json:"patient"`
	GeneratedPassword string          `json:"generatedPassword,omitempty"`
	EmailSent         bool            `json:"emailSent"`
}

// PatientService manages doctor-owned patient records.
type PatientService interface {
	// Onboard creates a patient account under a doctor and emails the
	// credentials. Creation succeeds even when the email fails.
	Onboard(ctx context.Context, req OnboardRequest) (*OnboardResult, error)
	// Get fetches one patient owned by the doctor.
	Get(doctorID, id string) (*models.Patient, error)
	// ListByDoctor lists the doctor's patients, newest first.
	ListByDoctor(doctorID string) ([]models.Patient, error)
	// Update applies a partial edit to a patient owned by the doctor.
	Update(doctorID, id string, req UpdateRequest) (*models.Patient, error)
	// Delete removes a patient owned by the doctor.
	Delete(doctorID, id string) error
}

// DefaultPatientService is the production implementation of PatientService.
type DefaultPatientService struct {
	Patients patientRepo.PatientRepository
	Doctors  doctorRepo.DoctorRepository
	Mailer   mailer.Mailer
}
