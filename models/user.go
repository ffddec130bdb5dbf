package models

import "time"

// Roles for self-registered accounts.
const (
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

// User is a self-registered account that is neither a doctor nor a
// doctor-created patient. Login falls back to this collection last.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
