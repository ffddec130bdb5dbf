package dashboard

import (
	"errors"
	"testing"

	patientRepo "healthguard/database/repository/patient"
	"healthguard/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakePatientRepo struct {
	patient *models.Patient
}

func (r *fakePatientRepo) GetByID(id string) (*models.Patient, error) {
	if r.patient != nil && r.patient.ID == id {
		cp := *r.patient
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePatientRepo) GetByEmail(string) (*models.Patient, error)    { return nil, nil }
func (r *fakePatientRepo) ListByDoctor(string) ([]models.Patient, error) { return nil, nil }
func (r *fakePatientRepo) Create(*models.Patient) error                  { return nil }
func (r *fakePatientRepo) UpdateSetDocument(string, bson.M) error        { return nil }
func (r *fakePatientRepo) Delete(string) error                           { return nil }

type fakeDoctorRepo struct {
	doctor *models.Doctor
}

func (r *fakeDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	if r.doctor != nil && r.doctor.ID == id {
		cp := *r.doctor
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeDoctorRepo) GetByEmail(string) (*models.Doctor, error) { return nil, nil }
func (r *fakeDoctorRepo) Create(*models.Doctor) error               { return nil }

type fakeApptRepo struct {
	appts []models.Appointment
	err   error
}

func (r *fakeApptRepo) Create(*models.Appointment) error                  { return nil }
func (r *fakeApptRepo) GetByID(string) (*models.Appointment, error)       { return nil, nil }
func (r *fakeApptRepo) ListByDoctor(string) ([]models.Appointment, error) { return nil, nil }
func (r *fakeApptRepo) UpdateSetDocument(string, bson.M) error            { return nil }
func (r *fakeApptRepo) Delete(string) error                               { return nil }

func (r *fakeApptRepo) ListByPatient(string) ([]models.Appointment, error) {
	return r.appts, r.err
}

type fakeMedRepo struct {
	meds []models.Medication
}

func (r *fakeMedRepo) Create(*models.Medication) error            { return nil }
func (r *fakeMedRepo) GetByID(string) (*models.Medication, error) { return nil, nil }
func (r *fakeMedRepo) UpdateSetDocument(string, bson.M) error     { return nil }
func (r *fakeMedRepo) Delete(string) error                        { return nil }

func (r *fakeMedRepo) List(patientID, doctorID string) ([]models.Medication, error) {
	return r.meds, nil
}

type fakeReportRepo struct {
	reports []models.HealthReport
}

func (r *fakeReportRepo) Create(*models.HealthReport) error            { return nil }
func (r *fakeReportRepo) GetByID(string) (*models.HealthReport, error) { return nil, nil }
func (r *fakeReportRepo) Delete(string) error                          { return nil }

func (r *fakeReportRepo) ListByPatient(string) ([]models.HealthReport, error) {
	return r.reports, nil
}

func TestPatientDashboard(t *testing.T) {
	svc := &DefaultDashboardService{
		Patients: &fakePatientRepo{patient: &models.Patient{ID: "p-1", DoctorID: "d-1", FullName: "Jane Roe"}},
		Doctors:  &fakeDoctorRepo{doctor: &models.Doctor{ID: "d-1", Name: "Dr. Asha Rao"}},
		Appointments: &fakeApptRepo{appts: []models.Appointment{
			{ID: "a-1", PatientID: "p-1"},
		}},
		Medications: &fakeMedRepo{meds: []models.Medication{
			{ID: "m-1", PatientID: "p-1"}, {ID: "m-2", PatientID: "p-1"},
		}},
		Reports: &fakeReportRepo{},
	}

	view, err := svc.PatientDashboard("p-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Patient.FullName != "Jane Roe" {
		t.Errorf("wrong patient: %+v", view.Patient)
	}
	if view.Doctor == nil || view.Doctor.Name != "Dr. Asha Rao" {
		t.Errorf("doctor not resolved: %+v", view.Doctor)
	}
	if len(view.Appointments) != 1 || len(view.Medications) != 2 {
		t.Errorf("lists not assembled: %d appts, %d meds", len(view.Appointments), len(view.Medications))
	}
	if view.Reports == nil {
		t.Error("empty report list should be non-nil")
	}
}

func TestPatientDashboard_UnknownPatient(t *testing.T) {
	svc := &DefaultDashboardService{
		Patients:     &fakePatientRepo{},
		Doctors:      &fakeDoctorRepo{},
		Appointments: &fakeApptRepo{},
		Medications:  &fakeMedRepo{},
		Reports:      &fakeReportRepo{},
	}
	_, err := svc.PatientDashboard("ghost")
	if !errors.Is(err, patientRepo.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPatientDashboard_ListFailureDegrades(t *testing.T) {
	svc := &DefaultDashboardService{
		Patients:     &fakePatientRepo{patient: &models.Patient{ID: "p-1"}},
		Doctors:      &fakeDoctorRepo{},
		Appointments: &fakeApptRepo{err: errors.New("cursor timeout")},
		Medications:  &fakeMedRepo{},
		Reports:      &fakeReportRepo{},
	}

	view, err := svc.PatientDashboard("p-1")
	if err != nil {
		t.Fatalf("a list failure must not fail the view: %v", err)
	}
	if len(view.Appointments) != 0 {
		t.Errorf("expected empty appointment list, got %d", len(view.Appointments))
	}
}
