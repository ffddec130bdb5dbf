package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeEvaluateReminders = "reminder:evaluate"

// EvaluatePayload is carried by a reminder:evaluate task. RequestedAt is
// informational; the evaluation pass always works off the current time.
type EvaluatePayload struct {
	RequestedAt time.Time `json:"requestedAt"`
}

// NewEvaluateTask builds a task that triggers one due-schedule sweep.
func NewEvaluateTask() (*asynq.Task, error) {
	b, err := json.Marshal(EvaluatePayload{RequestedAt: time.Now()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEvaluateReminders, b), nil
}
