package userRepo

import "healthguard/models"

// UserRepository defines methods for generic account data access.
type UserRepository interface {
	// GetByEmail retrieves a user by email, or nil when absent.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
}
