package auth

import (
	"context"

	doctorRepo "healthguard/database/repository/doctor"
	patientRepo "healthguard/database/repository/patient"
	userRepo "healthguard/database/repository/user"
	"healthguard/models"
	"healthguard/services/mailer"
)

// Account kinds carried in the token's kind claim. They record which
// collection an authenticated subject came from.
const (
	KindPatient = "patient"
	KindDoctor  = "doctor"
	KindUser    = "user"
)

// RegisterDoctorRequest carries the payload for doctor self-registration.
type RegisterDoctorRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Specialization  string `json:"specialization"`
	LicenseNumber   string `json:"licenseNumber"`
}

// RegisterUserRequest carries the payload for generic account signup.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ChangePasswordRequest rotates a patient's issued credential.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// LoginResult is the response to a successful login.
type LoginResult struct {
	Token     string `json:"token"`
	Kind      string `json:"kind"`
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
}

// AuthService handles registration, login and credential rotation.
type AuthService interface {
	// Login authenticates an email/password pair. The email is resolved
	// against patients first, then doctors, then generic users.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// RegisterDoctor creates a doctor account and returns it with a token.
	RegisterDoctor(ctx context.Context, req RegisterDoctorRequest) (*models.Doctor, string, error)
	// RegisterUser creates a generic account and returns it with a token.
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*models.User, string, error)
	// ChangePassword verifies the current patient credential, stores a new
	// hash and sends a confirmation email. The returned flag reports whether
	// the email went out; the rotation itself succeeds either way.
	ChangePassword(ctx context.Context, patientID string, req ChangePasswordRequest) (bool, error)
}

// DefaultAuthService is the production implementation of AuthService.
type DefaultAuthService struct {
	Patients patientRepo.PatientRepository
	Doctors  doctorRepo.DoctorRepository
	Users    userRepo.UserRepository
	Mailer   mailer.Mailer
}
