package appointment

import (
	"testing"

	appointmentRepo "healthguard/database/repository/appointment"
	"healthguard/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeApptRepo struct {
	byID map[string]*models.Appointment
}

func newFakeApptRepo() *fakeApptRepo {
	return &fakeApptRepo{byID: make(map[string]*models.Appointment)}
}

func (r *fakeApptRepo) Create(a *models.Appointment) error {
	cp := *a
	r.byID[a.ID] = &cp
	return nil
}

func (r *fakeApptRepo) GetByID(id string) (*models.Appointment, error) {
	if a, ok := r.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeApptRepo) ListByDoctor(doctorID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.byID {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApptRepo) ListByPatient(patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.byID {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApptRepo) UpdateSetDocument(id string, patch bson.M) error {
	a, ok := r.byID[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "date":
			a.Date = v.(string)
		case "time":
			a.Time = v.(string)
		case "reason":
			a.Reason = v.(string)
		case "status":
			a.Status = v.(string)
		}
	}
	return nil
}

func (r *fakeApptRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return appointmentRepo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakePatientRepo struct {
	byID map[string]*models.Patient
}

func (r *fakePatientRepo) GetByID(id string) (*models.Patient, error) {
	if p, ok := r.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePatientRepo) GetByEmail(string) (*models.Patient, error)        { return nil, nil }
func (r *fakePatientRepo) ListByDoctor(string) ([]models.Patient, error)     { return nil, nil }
func (r *fakePatientRepo) Create(*models.Patient) error                      { return nil }
func (r *fakePatientRepo) UpdateSetDocument(string, bson.M) error            { return nil }
func (r *fakePatientRepo) Delete(string) error                               { return nil }

func newTestService() (*DefaultAppointmentService, *fakeApptRepo) {
	appts := newFakeApptRepo()
	patients := &fakePatientRepo{byID: map[string]*models.Patient{
		"p-1": {ID: "p-1", DoctorID: "doc-1", FullName: "Jane Roe", Email: "jane@example.com"},
	}}
	return &DefaultAppointmentService{Appointments: appts, Patients: patients}, appts
}

func TestCreate_SnapshotsPatientDetails(t *testing.T) {
	svc, _ := newTestService()

	appt, err := svc.Create(CreateRequest{
		DoctorID:  "doc-1",
		PatientID: "p-1",
		Date:      "2026-09-01",
		Time:      "10:30",
		Reason:    "Follow-up",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.PatientName != "Jane Roe" || appt.PatientEmail != "jane@example.com" {
		t.Errorf("patient details not snapshotted: %+v", appt)
	}
	if appt.Status != models.AppointmentScheduled {
		t.Errorf("status should default to scheduled, got %q", appt.Status)
	}
}

func TestCreate_RejectsForeignPatient(t *testing.T) {
	svc, appts := newTestService()

	_, err := svc.Create(CreateRequest{
		DoctorID: "other-doc", PatientID: "p-1", Date: "2026-09-01", Time: "10:30",
	})
	if _, ok := err.(NotOwnerError); !ok {
		t.Errorf("expected NotOwnerError, got %v", err)
	}
	if len(appts.byID) != 0 {
		t.Error("nothing should be persisted")
	}
}

func TestUpdate_StatusValidation(t *testing.T) {
	svc, appts := newTestService()
	appts.byID["a-1"] = &models.Appointment{ID: "a-1", DoctorID: "doc-1", Status: models.AppointmentScheduled}

	bogus := "rescheduled"
	if _, err := svc.Update("doc-1", "a-1", UpdateRequest{Status: &bogus}); err == nil {
		t.Error("expected validation error for unknown status")
	}

	done := models.AppointmentCompleted
	updated, err := svc.Update("doc-1", "a-1", UpdateRequest{Status: &done})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.AppointmentCompleted {
		t.Errorf("status not updated, got %q", updated.Status)
	}
}

func TestDelete_Ownership(t *testing.T) {
	svc, appts := newTestService()
	appts.byID["a-1"] = &models.Appointment{ID: "a-1", DoctorID: "doc-1"}

	if err := svc.Delete("other-doc", "a-1"); err == nil {
		t.Error("expected ownership error")
	}
	if err := svc.Delete("doc-1", "a-1"); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if err := svc.Delete("doc-1", "a-1"); err != appointmentRepo.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
