package report

import (
	"fmt"
	"time"

	patientRepo "healthguard/database/repository/patient"
	reportRepo "healthguard/database/repository/report"
	"healthguard/models"

	"github.com/google/uuid"
)

// ValidationError reports a malformed report payload.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// NotOwnerError reports an access attempt by a doctor who did not upload the
// report.
type NotOwnerError struct {
	DoctorID string
	ID       string
}

func (e NotOwnerError) Error() string {
	return fmt.Sprintf("report %s was not uploaded by doctor %s", e.ID, e.DoctorID)
}

// CreateRequest carries the payload for a new health report entry.
type CreateRequest struct {
	DoctorID   string `json:"-"`
	PatientID  string `json:"patientId"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Notes      string `json:"notes"`
	Result     string `json:"result"`
	FileURL    string `json:"fileUrl"`
	ReportDate string `json:"reportDate"`
}

// ReportService manages diagnostic report entries.
type ReportService interface {
	Create(req CreateRequest) (*models.HealthReport, error)
	ListByPatient(patientID string) ([]models.HealthReport, error)
	Delete(doctorID, id string) error
}

// DefaultReportService is the production implementation.
type DefaultReportService struct {
	Reports  reportRepo.ReportRepository
	Patients patientRepo.PatientRepository
}

// Create records a report for one of the doctor's patients.
func (s *DefaultReportService) Create(req CreateRequest) (*models.HealthReport, error) {
	if req.DoctorID == "" || req.PatientID == "" {
		return nil, ValidationError{Reason: "doctorId and patientId are required"}
	}
	if req.Title == "" {
		return nil, ValidationError{Reason: "title is required"}
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

	report := &models.HealthReport{
		ID:         uuid.New().String(),
		PatientID:  req.PatientID,
		DoctorID:   req.DoctorID,
		Title:      req.Title,
		Type:       req.Type,
		Notes:      req.Notes,
		Result:     req.Result,
		FileURL:    req.FileURL,
		ReportDate: req.ReportDate,
		CreatedAt:  time.Now(),
	}
	if err := s.Reports.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

// ListByPatient lists a patient's reports, newest first.
func (s *DefaultReportService) ListByPatient(patientID string) ([]models.HealthReport, error) {
	return s.Reports.ListByPatient(patientID)
}

// Delete removes a report uploaded by the doctor.
func (s *DefaultReportService) Delete(doctorID, id string) error {
	report, err := s.Reports.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch report: %w", err)
	}
	if report == nil {
		return reportRepo.ErrNotFound
	}
	if report.DoctorID != doctorID {
		return NotOwnerError{DoctorID: doctorID, ID: id}
	}
	return s.Reports.Delete(id)
}
