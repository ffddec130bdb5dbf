package reminder

import (
	"context"
	"time"

	reminderRepo "healthguard/database/repository/reminder"
	"healthguard/models"
	"healthguard/services/mailer"
)

// CreateReminderRequest carries the validated fields for a new schedule.
// Identity is always caller-supplied; the service never reads ambient
// session state.
type CreateReminderRequest struct {
	DoctorID      string `json:"doctorId"`
	PatientID     string `json:"patientId"`
	PatientEmail  string `json:"patientEmail"`
	PatientName   string `json:"patientName"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	Frequency     string `json:"frequency"`
	Interval      int    `json:"interval"`
	ScheduledTime string `json:"scheduledTime"`
}

// UpdateReminderRequest is a partial update; nil fields are left unchanged.
type UpdateReminderRequest struct {
	Subject       *string `json:"subject,omitempty"`
	Message       *string `json:"message,omitempty"`
	Frequency     *string `json:"frequency,omitempty"`
	Interval      *int    `json:"interval,omitempty"`
	ScheduledTime *string `json:"scheduledTime,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// FireOutcome classifies one evaluation of a schedule.
type FireOutcome int

const (
	// OutcomeSkipped means the schedule was not active or not yet due.
	OutcomeSkipped FireOutcome = iota
	// OutcomeFired means a delivery succeeded and was recorded.
	OutcomeFired
	// OutcomeFailed means the delivery attempt failed; state is unchanged
	// apart from the failure counter.
	OutcomeFailed
)

// EvalSummary aggregates one pass over all active schedules.
type EvalSummary struct {
	Evaluated int
	Fired     int
	Failed    int
}

// ReminderService owns the reminder lifecycle: creation with an immediate
// first send, owner-scoped mutation, and due-schedule evaluation.
type ReminderService interface {
	Create(ctx context.Context, req CreateReminderRequest) (*models.ReminderSchedule, bool, error)
	ListByDoctor(doctorID string) ([]models.ReminderSchedule, error)
	Update(doctorID, id string, req UpdateReminderRequest) (*models.ReminderSchedule, error)
	Delete(doctorID, id string) error
	EvaluateAndFire(ctx context.Context, id string) (FireOutcome, error)
	EvaluateDue(ctx context.Context) EvalSummary
}

// DefaultReminderService is the production implementation.
type DefaultReminderService struct {
	Repo   reminderRepo.ReminderRepository
	Mailer mailer.Mailer
	// Now is the clock; defaults to time.Now when nil.
	Now func() time.Time
	// MaxFailures pauses a schedule after this many consecutive delivery
	// failures. Zero disables auto-pause.
	MaxFailures int

	locks keyedMutex
}
