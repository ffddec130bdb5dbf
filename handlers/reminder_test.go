package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	reminderRepo "healthguard/database/repository/reminder"
	"healthguard/models"
	"healthguard/services/reminder"

	"github.com/gin-gonic/gin"
)

type fakeReminderService struct {
	created   *models.ReminderSchedule
	emailSent bool
	createErr error
	deleteErr error
	lastReq   reminder.CreateReminderRequest
}

func (f *fakeReminderService) Create(_ context.Context, req reminder.CreateReminderRequest) (*models.ReminderSchedule, bool, error) {
	f.lastReq = req
	if f.createErr != nil {
		return nil, false, f.createErr
	}
	return f.created, f.emailSent, nil
}

func (f *fakeReminderService) ListByDoctor(doctorID string) ([]models.ReminderSchedule, error) {
	return []models.ReminderSchedule{*f.created}, nil
}

func (f *fakeReminderService) Update(doctorID, id string, req reminder.UpdateReminderRequest) (*models.ReminderSchedule, error) {
	return f.created, nil
}

func (f *fakeReminderService) Delete(doctorID, id string) error { return f.deleteErr }

func (f *fakeReminderService) EvaluateAndFire(context.Context, string) (reminder.FireOutcome, error) {
	return reminder.OutcomeSkipped, nil
}

func (f *fakeReminderService) EvaluateDue(context.Context) reminder.EvalSummary {
	return reminder.EvalSummary{}
}

func setupRouter(svc reminder.ReminderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &ReminderHandler{Reminders: svc}
	// Stand-in for the auth middleware.
	r.Use(func(c *gin.Context) {
		c.Set("accountID", "doc-1")
		c.Set("accountKind", "doctor")
	})
	r.POST("/api/reminders", h.Create)
	r.GET("/api/reminders", h.List)
	r.DELETE("/api/reminders/:id", h.Delete)
	return r
}

func testSchedule(frequency string) *models.ReminderSchedule {
	now := time.Now()
	return &models.ReminderSchedule{
		ID:           "r-1",
		DoctorID:     "doc-1",
		PatientEmail: "jane@example.com",
		Subject:      "Take Medicine",
		Message:      "After lunch.",
		Frequency:    frequency,
		Interval:     1,
		Status:       models.ReminderActive,
		CreatedAt:    now,
	}
}

func TestCreateReminder_RecurringSuccess(t *testing.T) {
	svc := &fakeReminderService{created: testSchedule(models.FrequencyDaily), emailSent: true}
	router := setupRouter(svc)

	body := `{"patientEmail":"jane@example.com","subject":"Take Medicine","message":"After lunch.","frequency":"daily"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reminders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}
	if svc.lastReq.DoctorID != "doc-1" {
		t.Errorf("doctor ID not taken from auth context, got %q", svc.lastReq.DoctorID)
	}

	var resp struct {
		EmailSent bool   `json:"emailSent"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !resp.EmailSent {
		t.Error("expected emailSent=true")
	}
	if resp.Message != "Reminder scheduled & first email sent to jane@example.com" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestCreateReminder_OnceSuccessMessage(t *testing.T) {
	svc := &fakeReminderService{created: testSchedule(models.FrequencyOnce), emailSent: true}
	router := setupRouter(svc)

	body := `{"patientEmail":"jane@example.com","subject":"s","message":"m","frequency":"once"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reminders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Message != "Reminder sent to jane@example.com" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestCreateReminder_EmailFailureStillCreated(t *testing.T) {
	svc := &fakeReminderService{created: testSchedule(models.FrequencyDaily), emailSent: false}
	router := setupRouter(svc)

	body := `{"patientEmail":"jane@example.com","subject":"s","message":"m","frequency":"daily"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reminders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var resp struct {
		EmailSent bool   `json:"emailSent"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.EmailSent {
		t.Error("expected emailSent=false")
	}
	if !strings.Contains(resp.Message, "email failed") {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestCreateReminder_ValidationError(t *testing.T) {
	svc := &fakeReminderService{createErr: reminder.ValidationError{Reason: "patientEmail is required"}}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/reminders", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDeleteReminder_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", reminderRepo.ErrNotFound, http.StatusNotFound},
		{"not owner", reminder.NotOwnerError{DoctorID: "doc-1", ID: "r-1"}, http.StatusForbidden},
		{"ok", nil, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeReminderService{created: testSchedule(models.FrequencyDaily), deleteErr: tc.err}
			router := setupRouter(svc)

			req := httptest.NewRequest(http.MethodDelete, "/api/reminders/r-1", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
