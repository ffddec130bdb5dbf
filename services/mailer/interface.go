package mailer

import "context"

// Email is one outbound message. Text is optional; when empty a plain-text
// fallback is derived by stripping tags from HTML.
type Email struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Result reports the outcome of a single delivery attempt. Transport
// failures are captured here, never raised past the Mailer boundary.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Mailer delivers a message to a recipient over an external transport.
// Implementations make exactly one network call per Send and do not retry;
// retry policy belongs to the caller.
type Mailer interface {
	Send(ctx context.Context, msg Email) Result
}
