package medication

import (
	"fmt"
	"time"

	medicationRepo "healthguard/database/repository/medication"
	patientRepo "healthguard/database/repository/patient"
	"healthguard/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ValidationError reports a malformed medication payload.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// NotOwnerError reports an access attempt by a doctor who did not prescribe
// the medication.
type NotOwnerError struct {
	DoctorID string
	ID       string
}

func (e NotOwnerError) Error() string {
	return fmt.Sprintf("medication %s was not prescribed by doctor %s", e.ID, e.DoctorID)
}

// CreateRequest carries the payload for a new prescription entry.
type CreateRequest struct {
	DoctorID     string `json:"-"`
	PatientID    string `json:"patientId"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

// UpdateRequest carries a partial medication edit. Nil fields are untouched.
type UpdateRequest struct {
	Name         *string `json:"name"`
	Dosage       *string `json:"dosage"`
	Frequency    *string `json:"frequency"`
	Duration     *string `json:"duration"`
	Instructions *string `json:"instructions"`
	Status       *string `json:"status"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
}

// MedicationService manages prescription entries.
type MedicationService interface {
	Create(req CreateRequest) (*models.Medication, error)
	List(patientID, doctorID string) ([]models.Medication, error)
	Update(doctorID, id string, req UpdateRequest) (*models.Medication, error)
	Delete(doctorID, id string) error
}

// DefaultMedicationService is the production implementation.
type DefaultMedicationService struct {
	Medications medicationRepo.MedicationRepository
	Patients    patientRepo.PatientRepository
}

func validStatus(s string) bool {
	switch s {
	case models.MedicationActive, models.MedicationCompleted, models.MedicationStopped:
		return true
	}
	return false
}

// Create records a prescription for one of the doctor's patients.
func (s *DefaultMedicationService) Create(req CreateRequest) (*models.Medication, error) {
	if req.DoctorID == "" || req.PatientID == "" {
		return nil, ValidationError{Reason: "doctorId and patientId are required"}
	}
	if req.Name == "" || req.Dosage == "" {
		return nil, ValidationError{Reason: "name and dosage are required"}
	}

	patient, err := s.Patients.GetByID(req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if patient == nil {
		return nil, ValidationError{Reason: "patient not found"}
	}
	if patient.DoctorID != req.DoctorID {
		return nil, NotOwnerError{DoctorID: req.DoctorID, ID: req.PatientID}
	}

	med := &models.Medication{
		ID:           uuid.New().String(),
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		Name:         req.Name,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Duration:     req.Duration,
		Instructions: req.Instructions,
		Status:       models.MedicationActive,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CreatedAt:    time.Now(),
	}
	if err := s.Medications.Create(med); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}
	return med, nil
}

// List retrieves medications filtered by patient and/or doctor, newest first.
func (s *DefaultMedicationService) List(patientID, doctorID string) ([]models.Medication, error) {
	if patientID == "" && doctorID == "" {
		return nil, ValidationError{Reason: "patientId or doctorId is required"}
	}
	return s.Medications.List(patientID, doctorID)
}

func (s *DefaultMedicationService) owned(doctorID, id string) (*models.Medication, error) {
	med, err := s.Medications.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch medication: %w", err)
	}
	if med == nil {
		return nil, medicationRepo.ErrNotFound
	}
	if med.DoctorID != doctorID {
		return nil, NotOwnerError{DoctorID: doctorID, ID: id}
	}
	return med, nil
}

// Update applies a partial edit to an owned medication.
func (s *DefaultMedicationService) Update(doctorID, id string, req UpdateRequest) (*models.Medication, error) {
	if _, err := s.owned(doctorID, id); err != nil {
		return nil, err
	}

	patch := bson.M{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Dosage != nil {
		patch["dosage"] = *req.Dosage
	}
	if req.Frequency != nil {
		patch["frequency"] = *req.Frequency
	}
	if req.Duration != nil {
		patch["duration"] = *req.Duration
	}
	if req.Instructions != nil {
		patch["instructions"] = *req.Instructions
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, ValidationError{Reason: fmt.Sprintf("unknown status %q", *req.Status)}
		}
		patch["status"] = *req.Status
	}
	if req.StartDate != nil {
		patch["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		patch["end_date"] = *req.EndDate
	}
	if len(patch) == 0 {
		return nil, ValidationError{Reason: "no fields to update"}
	}
	if err := s.Medications.UpdateSetDocument(id, patch); err != nil {
		return nil, err
	}
	return s.Medications.GetByID(id)
}

// Delete removes an owned medication entry.
func (s *DefaultMedicationService) Delete(doctorID, id string) error {
	if _, err := s.owned(doctorID, id); err != nil {
		return err
	}
	return s.Medications.Delete(id)
}
