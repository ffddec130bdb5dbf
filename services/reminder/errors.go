package reminder

import "fmt"

// ValidationError rejects a request before any side effect.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// DeliveryError reports a failed send. The schedule itself is left eligible
// for retry; callers surface this to the operator rather than dropping it.
type DeliveryError struct {
	Reason string
}

func (e DeliveryError) Error() string {
	return "email delivery failed: " + e.Reason
}

// NotOwnerError rejects mutation of a schedule by a doctor who does not own it.
type NotOwnerError struct {
	DoctorID string
	ID       string
}

func (e NotOwnerError) Error() string {
	return fmt.Sprintf("reminder %s is not owned by doctor %s", e.ID, e.DoctorID)
}
