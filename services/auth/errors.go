package auth

import "fmt"

// Login failure codes surfaced to clients so the frontend can distinguish
// an unknown email from a bad password.
const (
	CodeEmailNotFound = "email_not_found"
	CodeWrongPassword = "wrong_password"
)

// AuthError is an authentication failure with a stable machine code.
type AuthError struct {
	Code    string
	Message string
}

func (e AuthError) Error() string { return e.Message }

// ValidationError reports a malformed registration or login payload.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// ConflictError reports an email already bound to an account.
type ConflictError struct {
	Email string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("an account with email %s already exists", e.Email)
}
