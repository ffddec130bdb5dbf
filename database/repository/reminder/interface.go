package reminderRepo

import (
	"errors"
	"time"

	"healthguard/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNotFound is returned when a reminder id does not match any document.
	ErrNotFound = errors.New("reminder not found")
	// ErrFireConflict is returned by MarkFired when another evaluation has
	// advanced last_sent since the schedule was read.
	ErrFireConflict = errors.New("reminder already fired by a concurrent evaluation")
)

// ReminderRepository defines methods for reminder schedule data access.
//
// Firing updates are field-level and conditional on the previously observed
// last_sent value, so a concurrent manual edit cannot clobber them and
// overlapping evaluations of the same schedule resolve to a single winner.
type ReminderRepository interface {
	// Create inserts a new schedule record.
	Create(schedule *models.ReminderSchedule) error
	// GetByID retrieves a schedule by its unique ID, or nil when absent.
	GetByID(id string) (*models.ReminderSchedule, error)
	// ListByDoctor retrieves all schedules owned by a doctor, newest first.
	ListByDoctor(doctorID string) ([]models.ReminderSchedule, error)
	// ListActive retrieves every schedule in the active state.
	ListActive() ([]models.ReminderSchedule, error)
	// UpdateSetDocument applies a field-level $set update to a schedule.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a schedule record by its ID.
	Delete(id string) error
	// MarkFired records a successful delivery: it advances last_sent from
	// prevLastSent to firedAt, resets the failure counter and, when completed
	// is set, moves the schedule to the completed state. Returns
	// ErrFireConflict when last_sent no longer equals prevLastSent.
	MarkFired(id string, prevLastSent *time.Time, firedAt time.Time, completed bool) error
	// RecordFailure increments the consecutive-failure counter and pauses the
	// schedule once the counter reaches pauseAt. Returns the updated counter.
	RecordFailure(id string, pauseAt int) (int, error)
}
