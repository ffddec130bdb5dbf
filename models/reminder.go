package models

import "time"

// Reminder cadence frequencies.
const (
	FrequencyOnce       = "once"
	FrequencyHourly     = "hourly"
	FrequencyDaily      = "daily"
	FrequencyCustomDays = "custom-days"
)

// Reminder lifecycle states.
const (
	ReminderActive    = "active"
	ReminderPaused    = "paused"
	ReminderCompleted = "completed"
)

// ReminderSchedule describes a recurring email reminder a doctor has set up
// for one of their patients. LastSent advances only after a confirmed
// delivery; a failed send leaves the record untouched so the next evaluation
// retries it.
type ReminderSchedule struct {
	ID           string     `bson:"id" json:"id"`
	DoctorID     string     `bson:"doctor_id" json:"doctorId"`
	PatientID    string     `bson:"patient_id" json:"patientId"`
	PatientEmail string     `bson:"patient_email" json:"patientEmail"`
	PatientName  string     `bson:"patient_name" json:"patientName"`
	Subject      string     `bson:"subject" json:"subject"`
	Message      string     `bson:"message" json:"message"`
	Frequency    string     `bson:"frequency" json:"frequency"`
	Interval     int        `bson:"interval" json:"interval"`
	ScheduledTime string    `bson:"scheduled_time" json:"scheduledTime"`
	Status       string     `bson:"status" json:"status"`
	LastSent     *time.Time `bson:"last_sent,omitempty" json:"lastSent,omitempty"`
	FailCount    int        `bson:"fail_count" json:"failCount"`
	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
}
