package dashboard

import (
	"fmt"

	appointmentRepo "healthguard/database/repository/appointment"
	doctorRepo "healthguard/database/repository/doctor"
	medicationRepo "healthguard/database/repository/medication"
	patientRepo "healthguard/database/repository/patient"
	reportRepo "healthguard/database/repository/report"
	"healthguard/models"
	"healthguard/utils"

	"go.uber.org/zap"
)

// PatientDashboard aggregates everything a patient's home screen shows.
type PatientDashboard struct {
	Patient      *models.Patient       `json:"patient"`
	Doctor       *models.Doctor        `json:"doctor,omitempty"`
	Appointments []models.Appointment  `json:"appointments"`
	Medications  []models.Medication   `json:"medications"`
	Reports      []models.HealthReport `json:"reports"`
}

// DashboardService assembles aggregate views over the per-entity stores.
type DashboardService interface {
	PatientDashboard(patientID string) (*PatientDashboard, error)
}

// DefaultDashboardService is the production implementation.
type DefaultDashboardService struct {
	Patients     patientRepo.PatientRepository
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Medications  medicationRepo.MedicationRepository
	Reports      reportRepo.ReportRepository
}

// PatientDashboard fetches the patient's record, their doctor, and the three
// activity lists. A failure in one of the lists degrades to an empty list
// rather than failing the whole view.
func (s *DefaultDashboardService) PatientDashboard(patientID string) (*PatientDashboard, error) {
	patient, err := s.Patients.GetByID(patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if patient == nil {
		return nil, patientRepo.ErrNotFound
	}

	view := &PatientDashboard{
		Patient:      patient,
		Appointments: []models.Appointment{},
		Medications:  []models.Medication{},
		Reports:      []models.HealthReport{},
	}

	logger := utils.GetLogger()
	if patient.DoctorID != "" {
		doctor, err := s.Doctors.GetByID(patient.DoctorID)
		if err != nil {
			logger.Warn("Dashboard doctor lookup failed",
				zap.String("patientId", patientID), zap.Error(err))
		} else {
			view.Doctor = doctor
		}
	}

	if appts, err := s.Appointments.ListByPatient(patientID); err != nil {
		logger.Warn("Dashboard appointment lookup failed",
			zap.String("patientId", patientID), zap.Error(err))
	} else if appts != nil {
		view.Appointments = appts
	}

	if meds, err := s.Medications.List(patientID, ""); err != nil {
		logger.Warn("Dashboard medication lookup failed",
			zap.String("patientId", patientID), zap.Error(err))
	} else if meds != nil {
		view.Medications = meds
	}

	if reports, err := s.Reports.ListByPatient(patientID); err != nil {
		logger.Warn("Dashboard report lookup failed",
			zap.String("patientId", patientID), zap.Error(err))
	} else if reports != nil {
		view.Reports = reports
	}

	return view, nil
}
