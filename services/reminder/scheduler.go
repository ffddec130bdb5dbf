package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	reminderRepo "healthguard/database/repository/reminder"
	"healthguard/models"
	"healthguard/services/mailer"
	"healthguard/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// keyedMutex serializes work per schedule ID so overlapping evaluations of
// the same schedule within this process never race each other.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(id string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[id]
	if !ok {
		l = &sync.Mutex{}
		k.locks[id] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *DefaultReminderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func validFrequency(f string) bool {
	switch f {
	case models.FrequencyOnce, models.FrequencyHourly, models.FrequencyDaily, models.FrequencyCustomDays:
		return true
	}
	return false
}

// due decides whether a schedule's cadence condition is satisfied at now.
// A schedule that has never fired is always due. ScheduledTime is display
// metadata only; daily cadence uses a 24-hour elapsed check.
func due(s *models.ReminderSchedule, now time.Time) bool {
	if s.LastSent == nil {
		return true
	}
	elapsed := now.Sub(*s.LastSent)

	interval := s.Interval
	if interval <= 0 {
		interval = 1
	}

	switch s.Frequency {
	case models.FrequencyOnce:
		return false
	case models.FrequencyHourly:
		return elapsed >= time.Duration(interval)*time.Hour
	case models.FrequencyDaily:
		return elapsed >= 24*time.Hour
	case models.FrequencyCustomDays:
		return elapsed >= time.Duration(interval)*24*time.Hour
	default:
		return false
	}
}

// Create validates the request, persists the schedule and attempts the first
// send synchronously regardless of cadence. A failed send still leaves the
// schedule record in place; the returned bool reports delivery.
func (s *DefaultReminderService) Create(ctx context.Context, req CreateReminderRequest) (*models.ReminderSchedule, bool, error) {
	if req.DoctorID == "" || req.PatientEmail == "" || req.Subject == "" || req.Message == "" {
		return nil, false, ValidationError{Reason: "doctorId, patientEmail, subject and message are required"}
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = models.FrequencyOnce
	}
	if !validFrequency(frequency) {
		return nil, false, ValidationError{Reason: fmt.Sprintf("unknown frequency %q", frequency)}
	}
	interval := req.Interval
	if interval <= 0 {
		interval = 1
	}

	schedule := &models.ReminderSchedule{
		ID:            uuid.New().String(),
		DoctorID:      req.DoctorID,
		PatientID:     req.PatientID,
		PatientEmail:  req.PatientEmail,
		PatientName:   req.PatientName,
		Subject:       req.Subject,
		Message:       req.Message,
		Frequency:     frequency,
		Interval:      interval,
		ScheduledTime: req.ScheduledTime,
		Status:        models.ReminderActive,
	}
	if err := s.Repo.Create(schedule); err != nil {
		return nil, false, fmt.Errorf("failed to create reminder: %w", err)
	}

	outcome, err := s.EvaluateAndFire(ctx, schedule.ID)
	if err != nil {
		utils.GetLogger().Warn("First reminder send failed",
			zap.String("reminderId", schedule.ID), zap.Error(err))
	}

	created, getErr := s.Repo.GetByID(schedule.ID)
	if getErr != nil || created == nil {
		// Fall back to the in-memory copy; the record was inserted above.
		created = schedule
	}
	return created, outcome == OutcomeFired, nil
}

// ListByDoctor returns a doctor's schedules, newest first.
func (s *DefaultReminderService) ListByDoctor(doctorID string) ([]models.ReminderSchedule, error) {
	if doctorID == "" {
		return nil, ValidationError{Reason: "doctorId is required"}
	}
	return s.Repo.ListByDoctor(doctorID)
}

// Update applies a partial edit to a schedule owned by doctorID. Firing
// fields (last_sent, fail_count) are never touched here, so a concurrent
// firing cannot be clobbered by an edit.
func (s *DefaultReminderService) Update(doctorID, id string, req UpdateReminderRequest) (*models.ReminderSchedule, error) {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminder: %w", err)
	}
	if existing == nil {
		return nil, reminderRepo.ErrNotFound
	}
	if existing.DoctorID != doctorID {
		return nil, NotOwnerError{DoctorID: doctorID, ID: id}
	}

	patch := bson.M{}
	if req.Subject != nil {
		patch["subject"] = *req.Subject
	}
	if req.Message != nil {
		patch["message"] = *req.Message
	}
	if req.Frequency != nil {
		if !validFrequency(*req.Frequency) {
			return nil, ValidationError{Reason: fmt.Sprintf("unknown frequency %q", *req.Frequency)}
		}
		patch["frequency"] = *req.Frequency
	}
	if req.Interval != nil {
		if *req.Interval <= 0 {
			return nil, ValidationError{Reason: "interval must be positive"}
		}
		patch["interval"] = *req.Interval
	}
	if req.ScheduledTime != nil {
		patch["scheduled_time"] = *req.ScheduledTime
	}
	if req.Status != nil {
		switch *req.Status {
		case models.ReminderActive, models.ReminderPaused:
		default:
			return nil, ValidationError{Reason: fmt.Sprintf("cannot set status %q", *req.Status)}
		}
		if existing.Status == models.ReminderCompleted {
			return nil, ValidationError{Reason: "completed reminders cannot be reactivated"}
		}
		patch["status"] = *req.Status
		// Resuming clears the failure streak that paused the schedule.
		if *req.Status == models.ReminderActive {
			patch["fail_count"] = 0
		}
	}
	if len(patch) == 0 {
		return existing, nil
	}

	if err := s.Repo.UpdateSetDocument(id, patch); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

// Delete removes a schedule owned by doctorID.
func (s *DefaultReminderService) Delete(doctorID, id string) error {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch reminder: %w", err)
	}
	if existing == nil {
		return reminderRepo.ErrNotFound
	}
	if existing.DoctorID != doctorID {
		return NotOwnerError{DoctorID: doctorID, ID: id}
	}
	return s.Repo.Delete(id)
}

// EvaluateAndFire performs one firing attempt for the schedule. The schedule
// is re-read under a per-ID lock so concurrent evaluations observe each
// other's advancement; the store's conditional MarkFired guards against
// racing processes. A failed delivery leaves last_sent untouched so the
// schedule stays due.
func (s *DefaultReminderService) EvaluateAndFire(ctx context.Context, id string) (FireOutcome, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	schedule, err := s.Repo.GetByID(id)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("failed to fetch reminder: %w", err)
	}
	if schedule == nil {
		return OutcomeSkipped, reminderRepo.ErrNotFound
	}
	if schedule.Status != models.ReminderActive {
		return OutcomeSkipped, nil
	}

	now := s.now()
	if !due(schedule, now) {
		return OutcomeSkipped, nil
	}

	if schedule.PatientEmail == "" {
		// Permanent failure: no address to deliver to. The failure counter
		// flags and eventually pauses the schedule instead of retrying forever.
		_, _ = s.Repo.RecordFailure(id, s.MaxFailures)
		return OutcomeFailed, DeliveryError{Reason: "reminder target has no email address"}
	}

	html, err := mailer.ReminderHTML(schedule.Subject, schedule.Message)
	if err != nil {
		return OutcomeFailed, err
	}

	// The send blocks on network I/O; no store lock is held across it.
	result := s.Mailer.Send(ctx, mailer.Email{
		To:      schedule.PatientEmail,
		ToName:  schedule.PatientName,
		Subject: schedule.Subject,
		HTML:    html,
	})
	if !result.Success {
		count, recErr := s.Repo.RecordFailure(id, s.MaxFailures)
		if recErr != nil {
			utils.GetLogger().Error("Failed to record reminder failure",
				zap.String("reminderId", id), zap.Error(recErr))
		} else if s.MaxFailures > 0 && count >= s.MaxFailures {
			utils.GetLogger().Warn("Reminder paused after repeated delivery failures",
				zap.String("reminderId", id), zap.Int("failures", count))
		}
		return OutcomeFailed, DeliveryError{Reason: result.Error}
	}

	completed := schedule.Frequency == models.FrequencyOnce
	if err := s.Repo.MarkFired(id, schedule.LastSent, now, completed); err != nil {
		if errors.Is(err, reminderRepo.ErrFireConflict) {
			// Another process recorded a firing first; ours was a duplicate.
			utils.GetLogger().Warn("Concurrent firing detected",
				zap.String("reminderId", id))
			return OutcomeSkipped, nil
		}
		return OutcomeFailed, fmt.Errorf("delivered but failed to record firing: %w", err)
	}

	utils.GetLogger().Sugar().Infof("Reminder %s fired to %s (%s)",
		id, schedule.PatientEmail, schedule.Frequency)
	return OutcomeFired, nil
}

// EvaluateDue runs one pass over all active schedules. Each schedule is
// evaluated independently; one failure never stops the pass.
func (s *DefaultReminderService) EvaluateDue(ctx context.Context) EvalSummary {
	logger := utils.GetLogger()

	schedules, err := s.Repo.ListActive()
	if err != nil {
		logger.Error("Failed to list active reminders", zap.Error(err))
		return EvalSummary{}
	}

	var summary EvalSummary
	for i := range schedules {
		summary.Evaluated++
		outcome, err := s.EvaluateAndFire(ctx, schedules[i].ID)
		switch outcome {
		case OutcomeFired:
			summary.Fired++
		case OutcomeFailed:
			summary.Failed++
			logger.Warn("Reminder evaluation failed",
				zap.String("reminderId", schedules[i].ID), zap.Error(err))
		}
	}
	return summary
}
