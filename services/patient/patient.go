package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"healthguard/config"
	patientRepo "healthguard/database/repository/patient"
	"healthguard/models"
	"healthguard/services/credential"
	"healthguard/services/mailer"
	"healthguard/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const minPasswordLength = 6

// ValidationError reports a malformed onboarding or edit payload.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// ConflictError reports an email already bound to a patient account.
type ConflictError struct {
	Email string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("a patient with email %s already exists", e.Email)
}

// NotOwnerError reports an access attempt by a doctor who does not own the
// patient record.
type NotOwnerError struct {
	DoctorID string
	ID       string
}

func (e NotOwnerError) Error() string {
	return fmt.Sprintf("patient %s is not managed by doctor %s", e.ID, e.DoctorID)
}

func loginURL() string {
	base := "http://localhost:3000"
	if config.AppConfig != nil && config.AppConfig.AppBaseURL != "" {
		base = strings.TrimRight(config.AppConfig.AppBaseURL, "/")
	}
	return base + "/login"
}

// Onboard creates a patient account under the requesting doctor. When no
// password is supplied one is generated; either way the plaintext goes out
// in the welcome email and, if generated, comes back once in the result.
func (s *DefaultPatientService) Onboard(ctx context.Context, req OnboardRequest) (*OnboardResult, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.DoctorID == "" {
		return nil, ValidationError{Reason: "doctorId is required"}
	}
	if req.Email == "" || req.FullName == "" {
		return nil, ValidationError{Reason: "email and fullName are required"}
	}

	doctor, err := s.Doctors.GetByID(req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doctor == nil {
		return nil, ValidationError{Reason: "doctor account not found"}
	}

	existing, err := s.Patients.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up patient: %w", err)
	}
	if existing != nil {
		return nil, ConflictError{Email: req.Email}
	}

	plaintext := req.Password
	generated := ""
	if plaintext == "" {
		plaintext, err = credential.Generate(credential.DefaultLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate password: %w", err)
		}
		generated = plaintext
	} else if len(plaintext) < minPasswordLength {
		return nil, ValidationError{Reason: fmt.Sprintf("password must be at least %d characters", minPasswordLength)}
	}

	hash, err := credential.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	p := &models.Patient{
		ID:             uuid.New().String(),
		Email:          req.Email,
		PasswordHash:   hash,
		FullName:       req.FullName,
		Age:            req.Age,
		Gender:         req.Gender,
		Phone:          req.Phone,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
		DoctorID:       req.DoctorID,
		CreatedAt:      time.Now(),
	}
	if err := s.Patients.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	utils.GetLogger().Info("Patient onboarded",
		zap.String("patientId", p.ID),
		zap.String("doctorId", req.DoctorID))

	emailSent := s.sendWelcome(ctx, p, plaintext)
	return &OnboardResult{Patient: p, GeneratedPassword: generated, EmailSent: emailSent}, nil
}

func (s *DefaultPatientService) sendWelcome(ctx context.Context, p *models.Patient, plaintext string) bool {
	body, err := mailer.WelcomeHTML(p.FullName, p.Email, plaintext, loginURL())
	if err != nil {
		utils.GetLogger().Warn("Failed to render welcome email", zap.Error(err))
		return false
	}
	result := s.Mailer.Send(ctx, mailer.Email{
		To:      p.Email,
		ToName:  p.FullName,
		Subject: "Welcome to HealthGuard",
		HTML:    body,
	})
	if !result.Success {
		utils.GetLogger().Warn("Welcome email failed",
			zap.String("patientId", p.ID),
			zap.String("error", result.Error))
	}
	return result.Success
}

func (s *DefaultPatientService) owned(doctorID, id string) (*models.Patient, error) {
	p, err := s.Patients.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if p == nil {
		return nil, patientRepo.ErrNotFound
	}
	if p.DoctorID != doctorID {
		return nil, NotOwnerError{DoctorID: doctorID, ID: id}
	}
	return p, nil
}

// Get fetches one patient owned by the doctor.
func (s *DefaultPatientService) Get(doctorID, id string) (*models.Patient, error) {
	return s.owned(doctorID, id)
}

// ListByDoctor lists the doctor's patients, newest first.
func (s *DefaultPatientService) ListByDoctor(doctorID string) ([]models.Patient, error) {
	return s.Patients.ListByDoctor(doctorID)
}

// Update applies a partial edit to an owned patient. Credentials are out of
// scope here; password rotation goes through the auth service.
func (s *DefaultPatientService) Update(doctorID, id string, req UpdateRequest) (*models.Patient, error) {
	if _, err := s.owned(doctorID, id); err != nil {
		return nil, err
	}

	patch := bson.M{}
	if req.FullName != nil {
		patch["full_name"] = *req.FullName
	}
	if req.Age != nil {
		patch["age"] = *req.Age
	}
	if req.Gender != nil {
		patch["gender"] = *req.Gender
	}
	if req.Phone != nil {
		patch["phone"] = *req.Phone
	}
	if req.Address != nil {
		patch["address"] = *req.Address
	}
	if req.MedicalHistory != nil {
		patch["medical_history"] = *req.MedicalHistory
	}
	if len(patch) == 0 {
		return nil, ValidationError{Reason: "no fields to update"}
	}
	if err := s.Patients.UpdateSetDocument(id, patch); err != nil {
		return nil, err
	}
	return s.Patients.GetByID(id)
}

// Delete removes an owned patient record.
func (s *DefaultPatientService) Delete(doctorID, id string) error {
	if _, err := s.owned(doctorID, id); err != nil {
		return err
	}
	return s.Patients.Delete(id)
}
