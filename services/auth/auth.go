package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"healthguard/models"
	"healthguard/services/credential"
	"healthguard/services/mailer"
	"healthguard/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const minPasswordLength = 6

// resolvedAccount is the outcome of looking an email up across the three
// account collections in priority order.
type resolvedAccount struct {
	kind         string
	id           string
	email        string
	name         string
	passwordHash string
}

func (s *DefaultAuthService) resolveByEmail(email string) (*resolvedAccount, error) {
	patient, err := s.Patients.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up patient: %w", err)
	}
	if patient != nil {
		return &resolvedAccount{
			kind:         KindPatient,
			id:           patient.ID,
			email:        patient.Email,
			name:         patient.FullName,
			passwordHash: patient.PasswordHash,
		}, nil
	}

	doctor, err := s.Doctors.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up doctor: %w", err)
	}
	if doctor != nil {
		return &resolvedAccount{
			kind:         KindDoctor,
			id:           doctor.ID,
			email:        doctor.Email,
			name:         doctor.Name,
			passwordHash: doctor.PasswordHash,
		}, nil
	}

	user, err := s.Users.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user != nil {
		return &resolvedAccount{
			kind:         KindUser,
			id:           user.ID,
			email:        user.Email,
			passwordHash: user.PasswordHash,
		}, nil
	}
	return nil, nil
}

// Login authenticates against patients, then doctors, then generic users.
// The first collection holding the email decides the outcome; a password
// mismatch there does not fall through to the next collection.
func (s *DefaultAuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ValidationError{Reason: "email and password are required"}
	}

	account, err := s.resolveByEmail(email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, AuthError{Code: CodeEmailNotFound, Message: "no account found with this email"}
	}
	if !credential.Verify(password, account.passwordHash) {
		return nil, AuthError{Code: CodeWrongPassword, Message: "incorrect password"}
	}

	token, err := utils.GenerateToken(account.id, account.email, account.kind)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	s.cacheToken(ctx, token, account)

	utils.GetLogger().Info("Login succeeded",
		zap.String("kind", account.kind),
		zap.String("accountId", account.id))

	return &LoginResult{
		Token:     token,
		Kind:      account.kind,
		AccountID: account.id,
		Email:     account.email,
		Name:      account.name,
	}, nil
}

// cacheToken records the token hash so the auth middleware can admit the
// bearer without re-verifying the signature. Cache unavailability is not an
// error; validation falls back to signature checks.
func (s *DefaultAuthService) cacheToken(ctx context.Context, token string, account *resolvedAccount) {
	if utils.AuthCacheClient == nil {
		return
	}
	key := utils.AuthCachePrefix + utils.HashToken(token)
	value := account.kind + ":" + account.id
	if err := utils.AuthCacheClient.Set(ctx, key, value, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache auth token", zap.Error(err))
	}
}

// RegisterDoctor creates a doctor account from a self-registration payload.
func (s *DefaultAuthService) RegisterDoctor(ctx context.Context, req RegisterDoctorRequest) (*models.Doctor, string, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" {
		return nil, "", ValidationError{Reason: "name and email are required"}
	}
	if len(req.Password) < minPasswordLength {
		return nil, "", ValidationError{Reason: fmt.Sprintf("password must be at least %d characters", minPasswordLength)}
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return nil, "", ValidationError{Reason: "passwords do not match"}
	}

	existing, err := s.Doctors.GetByEmail(req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up doctor: %w", err)
	}
	if existing != nil {
		return nil, "", ConflictError{Email: req.Email}
	}

	hash, err := credential.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	doctor := &models.Doctor{
		ID:             uuid.New().String(),
		Email:          req.Email,
		PasswordHash:   hash,
		Name:           req.Name,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
		CreatedAt:      time.Now(),
	}
	if err := s.Doctors.Create(doctor); err != nil {
		return nil, "", fmt.Errorf("failed to create doctor: %w", err)
	}

	token, err := utils.GenerateToken(doctor.ID, doctor.Email, KindDoctor)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	utils.GetLogger().Info("Doctor registered", zap.String("doctorId", doctor.ID))
	return doctor, token, nil
}

// RegisterUser creates a generic self-registered account.
func (s *DefaultAuthService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*models.User, string, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		return nil, "", ValidationError{Reason: "email is required"}
	}
	if len(req.Password) < minPasswordLength {
		return nil, "", ValidationError{Reason: fmt.Sprintf("password must be at least %d characters", minPasswordLength)}
	}
	role := req.Role
	if role == "" {
		role = models.RolePatient
	}
	if role != models.RolePatient && role != models.RoleAdmin {
		return nil, "", ValidationError{Reason: fmt.Sprintf("unknown role %q", role)}
	}

	existing, err := s.Users.GetByEmail(req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, "", ConflictError{Email: req.Email}
	}

	hash, err := credential.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.Users.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, KindUser)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// ChangePassword rotates a patient's credential after verifying the current
// one. A confirmation email is attempted; its failure does not undo the
// rotation.
func (s *DefaultAuthService) ChangePassword(ctx context.Context, patientID string, req ChangePasswordRequest) (bool, error) {
	patient, err := s.Patients.GetByID(patientID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if patient == nil {
		return false, AuthError{Code: CodeEmailNotFound, Message: "account not found"}
	}
	if !credential.Verify(req.CurrentPassword, patient.PasswordHash) {
		return false, AuthError{Code: CodeWrongPassword, Message: "current password is incorrect"}
	}
	if len(req.NewPassword) < minPasswordLength {
		return false, ValidationError{Reason: fmt.Sprintf("new password must be at least %d characters", minPasswordLength)}
	}

	hash, err := credential.Hash(req.NewPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.Patients.UpdateSetDocument(patient.ID, bson.M{"password_hash": hash}); err != nil {
		return false, fmt.Errorf("failed to store new password: %w", err)
	}

	body, err := mailer.PasswordChangedHTML(patient.FullName)
	if err != nil {
		utils.GetLogger().Warn("Failed to render password change email", zap.Error(err))
		return false, nil
	}
	result := s.Mailer.Send(ctx, mailer.Email{
		To:      patient.Email,
		ToName:  patient.FullName,
		Subject: "Your HealthGuard password was changed",
		HTML:    body,
	})
	if !result.Success {
		utils.GetLogger().Warn("Password change email failed",
			zap.String("patientId", patient.ID),
			zap.String("error", result.Error))
	}
	return result.Success, nil
}
