package appointment

import (
	"fmt"
	"time"

	appointmentRepo "healthguard/database/repository/appointment"
	patientRepo "healthguard/database/repository/patient"
	"healthguard/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ValidationError reports a malformed appointment payload.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// NotOwnerError reports an access attempt by a doctor who does not own the
// appointment.
type NotOwnerError struct {
	DoctorID string
	ID       string
}

func (e NotOwnerError) Error() string {
	return fmt.Sprintf("appointment %s does not belong to doctor %s", e.ID, e.DoctorID)
}

// CreateRequest carries the payload for scheduling a visit. The patient's
// name and email are snapshotted from the patient record at creation.
type CreateRequest struct {
	DoctorID  string `json:"-"`
	PatientID string `json:"patientId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Reason    string `json:"reason"`
}

// UpdateRequest carries a partial appointment edit. Nil fields are untouched.
type UpdateRequest struct {
	Date   *string `json:"date"`
	Time   *string `json:"time"`
	Reason *string `json:"reason"`
	Status *string `json:"status"`
}

// AppointmentService manages doctor-scheduled visits.
type AppointmentService interface {
	Create(req CreateRequest) (*models.Appointment, error)
	ListByDoctor(doctorID string) ([]models.Appointment, error)
	ListByPatient(patientID string) ([]models.Appointment, error)
	Update(doctorID, id string, req UpdateRequest) (*models.Appointment, error)
	Delete(doctorID, id string) error
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Patients     patientRepo.PatientRepository
}

func validStatus(s string) bool {
	switch s {
	case models.AppointmentScheduled, models.AppointmentCompleted, models.AppointmentCancelled:
		return true
	}
	return false
}

// Create schedules a visit for one of the doctor's patients.
func (s *DefaultAppointmentService) Create(req CreateRequest) (*models.Appointment, error) {
	if req.DoctorID == "" || req.PatientID == "" {
		return nil, ValidationError{Reason: "doctorId and patientId are required"}
	}
	if req.Date == "" || req.Time == "" {
		return nil, ValidationError{Reason: "date and time are required"}
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

	appt := &models.Appointment{
		ID:           uuid.New().String(),
		DoctorID:     req.DoctorID,
		PatientID:    req.PatientID,
		PatientName:  patient.FullName,
		PatientEmail: patient.Email,
		Date:         req.Date,
		Time:         req.Time,
		Reason:       req.Reason,
		Status:       models.AppointmentScheduled,
		CreatedAt:    time.Now(),
	}
	if err := s.Appointments.Create(appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appt, nil
}

// ListByDoctor lists a doctor's appointments ordered by date and time.
func (s *DefaultAppointmentService) ListByDoctor(doctorID string) ([]models.Appointment, error) {
	return s.Appointments.ListByDoctor(doctorID)
}

// ListByPatient lists a patient's appointments, most recent date first.
func (s *DefaultAppointmentService) ListByPatient(patientID string) ([]models.Appointment, error) {
	return s.Appointments.ListByPatient(patientID)
}

func (s *DefaultAppointmentService) owned(doctorID, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, appointmentRepo.ErrNotFound
	}
	if appt.DoctorID != doctorID {
		return nil, NotOwnerError{DoctorID: doctorID, ID: id}
	}
	return appt, nil
}

// Update applies a partial edit to an owned appointment.
func (s *DefaultAppointmentService) Update(doctorID, id string, req UpdateRequest) (*models.Appointment, error) {
	if _, err := s.owned(doctorID, id); err != nil {
		return nil, err
	}

	patch := bson.M{}
	if req.Date != nil {
		patch["date"] = *req.Date
	}
	if req.Time != nil {
		patch["time"] = *req.Time
	}
	if req.Reason != nil {
		patch["reason"] = *req.Reason
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, ValidationError{Reason: fmt.Sprintf("unknown status %q", *req.Status)}
		}
		patch["status"] = *req.Status
	}
	if len(patch) == 0 {
		return nil, ValidationError{Reason: "no fields to update"}
	}
	if err := s.Appointments.UpdateSetDocument(id, patch); err != nil {
		return nil, err
	}
	return s.Appointments.GetByID(id)
}

// Delete removes an owned appointment.
func (s *DefaultAppointmentService) Delete(doctorID, id string) error {
	if _, err := s.owned(doctorID, id); err != nil {
		return err
	}
	return s.Appointments.Delete(id)
}
